// Copyright 2025 The vklens Authors
// SPDX-License-Identifier: MIT

package main

import (
	"unsafe"

	"github.com/vklens/vklens/internal/vk"
)

// The structs below mirror the real Vulkan create-info layouts field for
// field, including the fields this layer never reads, so offsets line up
// the way they do in the application's actual memory. Each decode
// function copies only what internal/vk's friendly Go structs need.

type cBufferCreateInfo struct {
	sType              uint32
	_                  uint32
	pNext              unsafe.Pointer
	flags              uint32
	_                  uint32
	size               uint64
	usage              uint32
	sharingMode        int32
	queueFamilyCount   uint32
	pQueueFamilyIdx    unsafe.Pointer
}

func decodeBufferCreateInfo(p unsafe.Pointer) *vk.BufferCreateInfo {
	c := (*cBufferCreateInfo)(p)
	var indices []uint32
	if c.queueFamilyCount > 0 && c.pQueueFamilyIdx != nil {
		indices = append(indices, unsafe.Slice((*uint32)(c.pQueueFamilyIdx), int(c.queueFamilyCount))...)
	}
	return &vk.BufferCreateInfo{
		SType:              vk.StructureType(c.sType),
		Flags:              c.flags,
		Size:               c.size,
		Usage:              vk.BufferUsageFlags(c.usage),
		SharingMode:        c.sharingMode,
		QueueFamilyIndices: indices,
	}
}

type cFenceCreateInfo struct {
	sType uint32
	_     uint32
	pNext unsafe.Pointer
	flags uint32
	_     uint32
}

func decodeFenceCreateInfo(p unsafe.Pointer) *vk.FenceCreateInfo {
	c := (*cFenceCreateInfo)(p)
	return &vk.FenceCreateInfo{SType: vk.StructureType(c.sType), Flags: c.flags}
}

type cSemaphoreCreateInfo struct {
	sType uint32
	_     uint32
	pNext unsafe.Pointer
	flags uint32
	_     uint32
}

func decodeSemaphoreCreateInfo(p unsafe.Pointer) *vk.SemaphoreCreateInfo {
	c := (*cSemaphoreCreateInfo)(p)
	return &vk.SemaphoreCreateInfo{SType: vk.StructureType(c.sType), Flags: c.flags}
}

type cCommandPoolCreateInfo struct {
	sType            uint32
	_                uint32
	pNext            unsafe.Pointer
	flags            uint32
	queueFamilyIndex uint32
}

func decodeCommandPoolCreateInfo(p unsafe.Pointer) *vk.CommandPoolCreateInfo {
	c := (*cCommandPoolCreateInfo)(p)
	return &vk.CommandPoolCreateInfo{
		SType:            vk.StructureType(c.sType),
		Flags:            c.flags,
		QueueFamilyIndex: c.queueFamilyIndex,
	}
}

type cCommandBufferAllocateInfo struct {
	sType              uint32
	_                  uint32
	pNext              unsafe.Pointer
	commandPool        uint64
	level              int32
	commandBufferCount uint32
}

func decodeCommandBufferAllocateInfo(p unsafe.Pointer) *vk.CommandBufferAllocateInfo {
	c := (*cCommandBufferAllocateInfo)(p)
	return &vk.CommandBufferAllocateInfo{
		SType:              vk.StructureType(c.sType),
		CommandPool:        vk.CommandPool(c.commandPool),
		Level:              c.level,
		CommandBufferCount: c.commandBufferCount,
	}
}

type cSwapchainCreateInfoKHR struct {
	sType                 uint32
	_                     uint32
	pNext                 unsafe.Pointer
	flags                 uint32
	surface               uint64
	minImageCount         uint32
	imageFormat           int32
	imageColorSpace       int32
	imageExtentW          uint32
	imageExtentH          uint32
	imageArrayLayers      uint32
	imageUsage            uint32
	imageSharingMode      int32
	queueFamilyIndexCount uint32
	_                     uint32
	pQueueFamilyIndices   unsafe.Pointer
	preTransform          int32
	compositeAlpha        int32
	presentMode           int32
	clipped               uint32
	oldSwapchain          uint64
}

func decodeSwapchainCreateInfo(p unsafe.Pointer) *vk.SwapchainCreateInfoKHR {
	c := (*cSwapchainCreateInfoKHR)(p)
	return &vk.SwapchainCreateInfoKHR{
		SType:            vk.StructureType(c.sType),
		Flags:            c.flags,
		Surface:          vk.SurfaceKHR(c.surface),
		MinImageCount:    c.minImageCount,
		ImageFormat:      vk.Format(c.imageFormat),
		ImageExtentW:     c.imageExtentW,
		ImageExtentH:     c.imageExtentH,
		ImageArrayLayers: c.imageArrayLayers,
		ImageUsage:       vk.ImageUsageFlags(c.imageUsage),
		OldSwapchain:     vk.SwapchainKHR(c.oldSwapchain),
	}
}
