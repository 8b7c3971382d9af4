// Copyright 2025 The vklens Authors
// SPDX-License-Identifier: MIT

// Command vklayer builds the layer as a C shared library
// (go build -buildmode=c-shared) that the Vulkan loader loads by name
// from its JSON manifest, and that a host application also links
// against directly for the overlay's public C API (spec.md §6).
//
// vk_layer_abi.go implements the five functions every explicit Vulkan
// layer must export (vkNegotiateLoaderLayerInterfaceVersion,
// vkGetInstanceProcAddr, vkGetDeviceProcAddr,
// vkEnumerateInstanceLayerProperties, vkEnumerateDeviceLayerProperties);
// dispatch.go's CreateInstance/CreateDevice call into link.go, which
// walks the VkLayerInstanceCreateInfo/VkLayerDeviceCreateInfo pNext
// chain the loader hands vkCreateInstance/vkCreateDevice to learn
// the next link's own GetProcAddr, per the loader/layer interface
// (SPEC_FULL.md §6's "resolve the next link in the dispatch chain").
// intercepts.go implements the entry points the layer actually has
// bookkeeping for; everything else in the loader's query is passed
// straight through to the next link. overlay_api.go is the thin cgo
// shim over internal/overlay that spec.md §6's public C API exports.
package main
