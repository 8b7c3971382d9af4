// Copyright 2025 The vklens Authors
// SPDX-License-Identifier: MIT

package main

import (
	"unsafe"

	"github.com/vklens/vklens/internal/vk"
)

// cSubmitInfo mirrors VkSubmitInfo's real C layout field-for-field so a
// vkQueueSubmit intercept can decode the driver-shaped array the
// application passed without this package needing to import a real
// vulkan.h. Field order and the padding before each 8-byte-aligned pointer
// both matter here.
type cSubmitInfo struct {
	sType                uint32
	_                    uint32
	pNext                unsafe.Pointer
	waitSemaphoreCount   uint32
	_                    uint32
	pWaitSemaphores      unsafe.Pointer
	pWaitDstStageMask    unsafe.Pointer
	commandBufferCount   uint32
	_                    uint32
	pCommandBuffers      unsafe.Pointer
	signalSemaphoreCount uint32
	_                    uint32
	pSignalSemaphores    unsafe.Pointer
}

// decodeSubmitInfos reinterprets a VkSubmitInfo array the driver/application
// handed vkQueueSubmit as a []vk.SubmitInfo internal/submit.Submit can work
// with. count is the submitCount argument from the Vulkan call.
func decodeSubmitInfos(p unsafe.Pointer, count uint32) []vk.SubmitInfo {
	if p == nil || count == 0 {
		return nil
	}
	raw := unsafe.Slice((*cSubmitInfo)(p), int(count))
	out := make([]vk.SubmitInfo, count)
	for i, s := range raw {
		out[i] = vk.SubmitInfo{
			SType:            vk.StructureType(s.sType),
			WaitSemaphores:   decodeSemaphores(s.pWaitSemaphores, s.waitSemaphoreCount),
			WaitDstStageMask: decodeStageMasks(s.pWaitDstStageMask, s.waitSemaphoreCount),
			CommandBuffers:   decodeCommandBuffers(s.pCommandBuffers, s.commandBufferCount),
			SignalSemaphores: decodeSemaphores(s.pSignalSemaphores, s.signalSemaphoreCount),
		}
	}
	return out
}

func decodeSemaphores(p unsafe.Pointer, count uint32) []vk.Semaphore {
	if p == nil || count == 0 {
		return nil
	}
	raw := unsafe.Slice((*uint64)(p), int(count))
	out := make([]vk.Semaphore, count)
	for i, v := range raw {
		out[i] = vk.Semaphore(v)
	}
	return out
}

func decodeStageMasks(p unsafe.Pointer, count uint32) []vk.PipelineStageFlags {
	if p == nil || count == 0 {
		return nil
	}
	raw := unsafe.Slice((*uint32)(p), int(count))
	out := make([]vk.PipelineStageFlags, count)
	for i, v := range raw {
		out[i] = vk.PipelineStageFlags(v)
	}
	return out
}

func decodeCommandBuffers(p unsafe.Pointer, count uint32) []vk.CommandBuffer {
	if p == nil || count == 0 {
		return nil
	}
	raw := unsafe.Slice((*uintptr)(p), int(count))
	out := make([]vk.CommandBuffer, count)
	for i, v := range raw {
		out[i] = vk.CommandBuffer(v)
	}
	return out
}
