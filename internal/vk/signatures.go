// Copyright 2025 The vklens Authors
// SPDX-License-Identifier: MIT

package vk

import (
	"github.com/go-webgpu/goffi/ffi"
	"github.com/go-webgpu/goffi/types"
)

// Signature templates, reused across entry points with identical argument
// shapes the way hal/vulkan/vk/signatures.go reuses them across the ~700
// functions of the real Vulkan API. The layer only intercepts a few dozen
// entry points, so the set below is the minimal shape inventory they need.
var (
	sigResultPtrPtrPtr       types.CallInterface // VkResult(ptr,ptr,ptr) - vkCreateInstance, vkCreateDevice
	sigResultHandlePtrPtrPtr types.CallInterface // VkResult(handle,ptr,ptr,ptr) - vkCreateBuffer, vkCreateImage, ...
	sigResultHandlePtr       types.CallInterface // VkResult(handle,ptr) - vkBeginCommandBuffer
	sigResultHandle          types.CallInterface // VkResult(handle) - vkEndCommandBuffer
	sigResultHandleU32       types.CallInterface // VkResult(handle,u32) - vkResetCommandBuffer
	sigResultHandleHandle    types.CallInterface // VkResult(handle,handle) - vkGetFenceStatus
	sigResultHandle4         types.CallInterface // VkResult(handle,handle,handle,u64) - vkBindBufferMemory
	sigResultWaitForFences   types.CallInterface // VkResult(handle,u32,ptr,u32,u64) - vkWaitForFences
	sigResultHandleU32PtrHandle types.CallInterface // VkResult(handle,u32,ptr,handle) - vkQueueSubmit
	sigResultHandleU32Ptr    types.CallInterface // VkResult(handle,u32,ptr) - vkResetFences
	sigResultAcquireNextImage types.CallInterface // VkResult(handle,handle,u64,handle,handle,ptr)

	sigVoidHandlePtr         types.CallInterface // void(handle,ptr) - vkDestroyDevice
	sigVoidHandleHandlePtr   types.CallInterface // void(handle,handle,ptr) - vkDestroyBuffer(device,buf,alloc)
	sigVoidHandleU32Handle   types.CallInterface // void(handle,u32,handle) - vkCmdBindPipeline
	sigVoidHandleU32x4       types.CallInterface // void(handle,u32,u32,u32,u32) - vkCmdDraw
	sigVoidHandleU32x3I32U32 types.CallInterface // void(handle,u32,u32,u32,i32,u32) - vkCmdDrawIndexed
	sigVoidHandleU32U32U32   types.CallInterface // void(handle,u32,u32,u32) - vkCmdDispatch
	sigVoidCmdFillBuffer     types.CallInterface // void(handle,handle,u64,u64,u32)
	sigVoidCmdCopyBuffer     types.CallInterface // void(handle,handle,handle,u32,ptr)
	sigVoidCmdUpdateBuffer   types.CallInterface // void(handle,handle,u64,u64,ptr)
	sigVoidCmdPipelineBarrier types.CallInterface // void(handle,u32,u32,u32,u32,ptr,u32,ptr,u32,ptr)
	sigVoidCmdBindDescriptorSets types.CallInterface // void(handle,u32,handle,u32,u32,ptr,u32,ptr)
	sigVoidCmdPushConstants  types.CallInterface // void(handle,handle,u32,u32,u32,ptr)
	sigVoidHandlePtrPtr      types.CallInterface // void(handle,ptr,ptr) - vkCmdBeginRenderPass
	sigVoidHandle            types.CallInterface // void(handle) - vkCmdEndRenderPass
	sigVoidHandleU32         types.CallInterface // void(handle,u32) - vkCmdNextSubpass
	sigVoidHandleU32Ptr      types.CallInterface // void(handle,u32,ptr) - vkCmdExecuteCommands

	sigResultHandlePtrPtr       types.CallInterface // VkResult(handle,ptr,ptr) - vkAllocateCommandBuffers
	sigResultQueryPoolResults   types.CallInterface // VkResult(handle,handle,u32,u32,u64,ptr,u64,u32) - vkGetQueryPoolResults
	sigVoidHandleHandleU32      types.CallInterface // void(handle,handle,u32) - vkCmdEndQuery
	sigVoidHandleHandleU32U32   types.CallInterface // void(handle,handle,u32,u32) - vkCmdBeginQuery, vkCmdResetQueryPool
	sigVoidHandleU32HandleU32   types.CallInterface // void(handle,u32,handle,u32) - vkCmdWriteTimestamp
	sigVoidHandleHandleU32Ptr   types.CallInterface // void(handle,handle,u32,ptr) - vkFreeCommandBuffers
	sigVoidCmdBindVertexBuffers types.CallInterface // void(handle,u32,u32,ptr,ptr) - vkCmdBindVertexBuffers
	sigVoidCmdBindIndexBuffer   types.CallInterface // void(handle,handle,u64,u32) - vkCmdBindIndexBuffer
	sigVoidHandleU32U32Ptr      types.CallInterface // void(handle,u32,u32,ptr) - vkGetDeviceQueue

	initOnce bool
)

// initSignatures prepares every CallInterface template. Called once from
// Commands.LoadInstance the way hal/vulkan/vk.InitSignatures is called
// once after the Vulkan library loads.
func initSignatures() error {
	if initOnce {
		return nil
	}

	ptr := types.PointerTypeDescriptor
	u32 := types.UInt32TypeDescriptor
	u64 := types.UInt64TypeDescriptor
	i32 := types.SInt32TypeDescriptor
	voidRet := types.VoidTypeDescriptor
	resultRet := types.SInt32TypeDescriptor // VkResult is int32

	type prep struct {
		cif  *types.CallInterface
		ret  *types.TypeDescriptor
		args []*types.TypeDescriptor
	}

	preps := []prep{
		{&sigResultPtrPtrPtr, resultRet, []*types.TypeDescriptor{ptr, ptr, ptr}},
		{&sigResultHandlePtrPtrPtr, resultRet, []*types.TypeDescriptor{u64, ptr, ptr, ptr}},
		{&sigResultHandlePtr, resultRet, []*types.TypeDescriptor{u64, ptr}},
		{&sigResultHandle, resultRet, []*types.TypeDescriptor{u64}},
		{&sigResultHandleU32, resultRet, []*types.TypeDescriptor{u64, u32}},
		{&sigResultHandleHandle, resultRet, []*types.TypeDescriptor{u64, u64}},
		{&sigResultHandle4, resultRet, []*types.TypeDescriptor{u64, u64, u64, u64}},
		{&sigResultWaitForFences, resultRet, []*types.TypeDescriptor{u64, u32, ptr, u32, u64}},
		{&sigResultHandleU32PtrHandle, resultRet, []*types.TypeDescriptor{u64, u32, ptr, u64}},
		{&sigResultHandleU32Ptr, resultRet, []*types.TypeDescriptor{u64, u32, ptr}},
		{&sigResultAcquireNextImage, resultRet, []*types.TypeDescriptor{u64, u64, u64, u64, u64, ptr}},

		{&sigVoidHandlePtr, voidRet, []*types.TypeDescriptor{u64, ptr}},
		{&sigVoidHandleHandlePtr, voidRet, []*types.TypeDescriptor{u64, u64, ptr}},
		{&sigVoidHandleU32Handle, voidRet, []*types.TypeDescriptor{u64, u32, u64}},
		{&sigVoidHandleU32x4, voidRet, []*types.TypeDescriptor{u64, u32, u32, u32, u32}},
		{&sigVoidHandleU32x3I32U32, voidRet, []*types.TypeDescriptor{u64, u32, u32, u32, i32, u32}},
		{&sigVoidHandleU32U32U32, voidRet, []*types.TypeDescriptor{u64, u32, u32, u32}},
		{&sigVoidCmdFillBuffer, voidRet, []*types.TypeDescriptor{u64, u64, u64, u64, u32}},
		{&sigVoidCmdCopyBuffer, voidRet, []*types.TypeDescriptor{u64, u64, u64, u32, ptr}},
		{&sigVoidCmdUpdateBuffer, voidRet, []*types.TypeDescriptor{u64, u64, u64, u64, ptr}},
		{&sigVoidCmdPipelineBarrier, voidRet, []*types.TypeDescriptor{u64, u32, u32, u32, u32, ptr, u32, ptr, u32, ptr}},
		{&sigVoidCmdBindDescriptorSets, voidRet, []*types.TypeDescriptor{u64, u32, u64, u32, u32, ptr, u32, ptr}},
		{&sigVoidCmdPushConstants, voidRet, []*types.TypeDescriptor{u64, u64, u32, u32, u32, ptr}},
		{&sigVoidHandlePtrPtr, voidRet, []*types.TypeDescriptor{u64, ptr, ptr}},
		{&sigVoidHandle, voidRet, []*types.TypeDescriptor{u64}},
		{&sigVoidHandleU32, voidRet, []*types.TypeDescriptor{u64, u32}},
		{&sigVoidHandleU32Ptr, voidRet, []*types.TypeDescriptor{u64, u32, ptr}},

		{&sigResultHandlePtrPtr, resultRet, []*types.TypeDescriptor{u64, ptr, ptr}},
		{&sigResultQueryPoolResults, resultRet, []*types.TypeDescriptor{u64, u64, u32, u32, u64, ptr, u64, u32}},
		{&sigVoidHandleHandleU32, voidRet, []*types.TypeDescriptor{u64, u64, u32}},
		{&sigVoidHandleHandleU32U32, voidRet, []*types.TypeDescriptor{u64, u64, u32, u32}},
		{&sigVoidHandleU32HandleU32, voidRet, []*types.TypeDescriptor{u64, u32, u64, u32}},
		{&sigVoidHandleHandleU32Ptr, voidRet, []*types.TypeDescriptor{u64, u64, u32, ptr}},
		{&sigVoidCmdBindVertexBuffers, voidRet, []*types.TypeDescriptor{u64, u32, u32, ptr, ptr}},
		{&sigVoidCmdBindIndexBuffer, voidRet, []*types.TypeDescriptor{u64, u64, u64, u32}},
		{&sigVoidHandleU32U32Ptr, voidRet, []*types.TypeDescriptor{u64, u32, u32, ptr}},
	}

	for _, p := range preps {
		if err := ffi.PrepareCallInterface(p.cif, types.DefaultCall, p.ret, p.args); err != nil {
			return err
		}
	}

	initOnce = true
	return nil
}
