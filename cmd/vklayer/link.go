// Copyright 2025 The vklens Authors
// SPDX-License-Identifier: MIT

package main

import "unsafe"

// structureTypeLoaderInstanceCreateInfo and structureTypeLoaderDeviceCreateInfo
// are VK_STRUCTURE_TYPE_LOADER_INSTANCE_CREATE_INFO / _DEVICE_CREATE_INFO, the
// two sType values the loader uses to tag the pNext node it hands a layer's
// vkCreateInstance/vkCreateDevice (no vulkan_core.h include needed: these are
// fixed values from the loader/layer interface, not driver-dependent).
const (
	structureTypeLoaderInstanceCreateInfo = 47
	structureTypeLoaderDeviceCreateInfo   = 48

	layerFunctionLinkInfo = 0
)

// chainHeader mirrors the sType/pNext prefix every Vulkan structure shares.
// Layer code walks a pNext chain without knowing the full layout of each
// node by reading only this prefix until it finds the sType it wants.
type chainHeader struct {
	sType uint32
	_     uint32 // padding: pNext is 8-byte aligned on every platform the loader supports
	pNext unsafe.Pointer
}

// layerFunctionNode mirrors VkLayerInstanceCreateInfo and
// VkLayerDeviceCreateInfo, which share a layout: header, a function tag,
// and a union of either the link-info pointer or a loader-data callback.
type layerFunctionNode struct {
	chainHeader
	function uint32
	_        uint32
	union    unsafe.Pointer
}

// instanceLink mirrors VkLayerInstanceLink: a singly linked list of the
// layers below this one in the chain, each node exposing that layer's own
// vkGetInstanceProcAddr.
type instanceLink struct {
	next                      *instanceLink
	pfnNextGetInstanceProcAddr unsafe.Pointer
}

// deviceLink mirrors VkLayerDeviceLink, the vkCreateDevice equivalent.
type deviceLink struct {
	next                      *deviceLink
	pfnNextGetInstanceProcAddr unsafe.Pointer
	pfnNextGetDeviceProcAddr   unsafe.Pointer
}

// nextInstanceProcAddr walks pNext looking for the loader's
// VK_LAYER_LINK_INFO node and returns the next link's vkGetInstanceProcAddr,
// per the loader/layer interface's "each layer's vkCreateInstance locates
// its own link info, then advances it before calling down" convention. The
// advance mutates the node in place: the same pNext chain is shared by every
// layer still to be called for this vkCreateInstance, and each one must see
// the next entry when it performs the identical walk.
func nextInstanceProcAddr(pNext unsafe.Pointer) unsafe.Pointer {
	for pNext != nil {
		node := (*layerFunctionNode)(pNext)
		if node.sType == structureTypeLoaderInstanceCreateInfo && node.function == layerFunctionLinkInfo {
			link := (*instanceLink)(node.union)
			if link == nil {
				return nil
			}
			proc := link.pfnNextGetInstanceProcAddr
			node.union = unsafe.Pointer(link.next)
			return proc
		}
		pNext = node.pNext
	}
	return nil
}

// nextDeviceProcAddrs is the vkCreateDevice equivalent, returning both
// proc-addr functions VkLayerDeviceLink carries.
func nextDeviceProcAddrs(pNext unsafe.Pointer) (getInstanceProcAddr, getDeviceProcAddr unsafe.Pointer) {
	for pNext != nil {
		node := (*layerFunctionNode)(pNext)
		if node.sType == structureTypeLoaderDeviceCreateInfo && node.function == layerFunctionLinkInfo {
			link := (*deviceLink)(node.union)
			if link == nil {
				return nil, nil
			}
			getInstanceProcAddr = link.pfnNextGetInstanceProcAddr
			getDeviceProcAddr = link.pfnNextGetDeviceProcAddr
			node.union = unsafe.Pointer(link.next)
			return getInstanceProcAddr, getDeviceProcAddr
		}
		pNext = node.pNext
	}
	return nil, nil
}
