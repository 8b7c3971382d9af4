// Copyright 2025 The vklens Authors
// SPDX-License-Identifier: MIT

// Package vk provides the Vulkan ABI types and driver dispatch resolution
// used by the layer: handle types, the subset of structures and enums the
// layer's entry points need to copy out of application-supplied pointers,
// and a Commands table of resolved driver function pointers called through
// via github.com/go-webgpu/goffi.
//
// Unlike a normal Vulkan consumer, this package never loads libvulkan
// itself. The loader hands the layer a PFN_vkGetInstanceProcAddr (and,
// after vkCreateDevice, a PFN_vkGetDeviceProcAddr) for the *next* link in
// the dispatch chain; Commands.LoadInstance and Commands.LoadDevice resolve
// the entry points the layer intercepts from those functions.
package vk
