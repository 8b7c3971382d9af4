// Copyright 2025 The vklens Authors
// SPDX-License-Identifier: MIT

package vk

import (
	"fmt"
	"unsafe"

	"github.com/go-webgpu/goffi/ffi"
)

// PFN is a resolved Vulkan function pointer, as returned by
// PFN_vkGetInstanceProcAddr / PFN_vkGetDeviceProcAddr.
type PFN unsafe.Pointer

// GetInstanceProcAddrFunc is the shape of the function the loader hands
// the layer for the next link in the dispatch chain. The layer never
// resolves vkGetInstanceProcAddr itself the way hal/vulkan/vk.Init does
// (that function dlopens libvulkan); the loader supplies it instead.
type GetInstanceProcAddrFunc func(instance Instance, name string) PFN

// GetDeviceProcAddrFunc is the device-level equivalent, obtained once per
// device via GetInstanceProcAddrFunc(instance, "vkGetDeviceProcAddr").
type GetDeviceProcAddrFunc func(device Device, name string) PFN

// Commands holds every driver function pointer the layer calls through
// after its own bookkeeping. One Commands lives on the process-wide
// dispatch table per instance, and one (device-resolved, generally
// faster) lives on each Device shadow, mirroring hal/vulkan/vk.Commands'
// split between instance- and device-level loading.
type Commands struct {
	// Instance-level.
	createDevice               PFN
	destroyInstance            PFN
	enumeratePhysicalDevices   PFN
	getDeviceQueue             PFN
	destroySwapchainKHR        PFN
	acquireNextImageKHR        PFN

	// Device-level: object lifetime.
	destroyDevice       PFN
	createBuffer        PFN
	destroyBuffer       PFN
	createImage         PFN
	destroyImage        PFN
	allocateMemory      PFN
	freeMemory          PFN
	bindBufferMemory    PFN
	bindImageMemory     PFN
	createFence         PFN
	destroyFence        PFN
	createSemaphore     PFN
	destroySemaphore    PFN
	createCommandPool   PFN
	destroyCommandPool  PFN
	allocateCommandBuffers PFN
	freeCommandBuffers  PFN
	createSwapchainKHR  PFN

	// Device-level: synchronization.
	getFenceStatus  PFN
	resetFences     PFN
	waitForFences   PFN
	queueSubmit     PFN
	queuePresentKHR PFN

	// Device-level: command recording passthrough.
	beginCommandBuffer    PFN
	endCommandBuffer      PFN
	resetCommandBuffer    PFN
	cmdBindPipeline       PFN
	cmdBindDescriptorSets PFN
	cmdPushConstants      PFN
	cmdDraw               PFN
	cmdDrawIndexed        PFN
	cmdDispatch           PFN
	cmdFillBuffer         PFN
	cmdCopyBuffer         PFN
	cmdUpdateBuffer       PFN
	cmdBindVertexBuffers  PFN
	cmdBindIndexBuffer    PFN
	cmdPipelineBarrier    PFN
	cmdBeginRenderPass    PFN
	cmdNextSubpass        PFN
	cmdEndRenderPass      PFN
	cmdExecuteCommands    PFN
	cmdBeginDebugUtilsLabelEXT PFN
	cmdEndDebugUtilsLabelEXT   PFN

	setDebugUtilsObjectNameEXT PFN

	// Device-level: queries, used by the command hook (§4.8) to splice
	// timestamp and pipeline-statistics instrumentation around a target.
	createQueryPool    PFN
	destroyQueryPool   PFN
	cmdResetQueryPool  PFN
	cmdBeginQuery      PFN
	cmdEndQuery        PFN
	cmdWriteTimestamp  PFN
	getQueryPoolResults PFN
}

// resolve is a tiny helper matching hal/vulkan/vk.LoadInstance's "load or
// fail loudly" pattern, generalized to accept whichever proc-addr
// function the caller supplies.
func resolve(dst *PFN, name string, get func(string) PFN) error {
	p := get(name)
	*dst = p
	if p == nil {
		return fmt.Errorf("vk: entry point %s not provided by driver", name)
	}
	return nil
}

// LoadInstance resolves every instance-level entry point the layer
// intercepts or calls through, using get (bound to a specific instance by
// the caller). It also prepares the shared CallInterface signature
// templates on first use.
func (c *Commands) LoadInstance(get func(name string) PFN) error {
	if err := initSignatures(); err != nil {
		return fmt.Errorf("vk: preparing call signatures: %w", err)
	}
	fields := []struct {
		dst  *PFN
		name string
	}{
		{&c.createDevice, "vkCreateDevice"},
		{&c.destroyInstance, "vkDestroyInstance"},
		{&c.enumeratePhysicalDevices, "vkEnumeratePhysicalDevices"},
		{&c.destroySwapchainKHR, "vkDestroySwapchainKHR"},
		{&c.acquireNextImageKHR, "vkAcquireNextImageKHR"},
	}
	for _, f := range fields {
		// Optional entry points (e.g. WSI on a headless driver) are
		// tolerated; required ones are checked by the caller.
		*f.dst = get(f.name)
	}
	return nil
}

// LoadDevice resolves device-level entry points from the device's own
// vkGetDeviceProcAddr, which drivers resolve faster than the instance
// dispatcher (hal/vulkan/vk/loader.go's rationale for SetDeviceProcAddr).
func (c *Commands) LoadDevice(get func(name string) PFN) error {
	fields := []struct {
		dst  *PFN
		name string
	}{
		{&c.destroyDevice, "vkDestroyDevice"},
		{&c.getDeviceQueue, "vkGetDeviceQueue"},
		{&c.createBuffer, "vkCreateBuffer"},
		{&c.destroyBuffer, "vkDestroyBuffer"},
		{&c.createImage, "vkCreateImage"},
		{&c.destroyImage, "vkDestroyImage"},
		{&c.allocateMemory, "vkAllocateMemory"},
		{&c.freeMemory, "vkFreeMemory"},
		{&c.bindBufferMemory, "vkBindBufferMemory"},
		{&c.bindImageMemory, "vkBindImageMemory"},
		{&c.createFence, "vkCreateFence"},
		{&c.destroyFence, "vkDestroyFence"},
		{&c.createSemaphore, "vkCreateSemaphore"},
		{&c.destroySemaphore, "vkDestroySemaphore"},
		{&c.createCommandPool, "vkCreateCommandPool"},
		{&c.destroyCommandPool, "vkDestroyCommandPool"},
		{&c.allocateCommandBuffers, "vkAllocateCommandBuffers"},
		{&c.freeCommandBuffers, "vkFreeCommandBuffers"},
		{&c.createSwapchainKHR, "vkCreateSwapchainKHR"},
		{&c.getFenceStatus, "vkGetFenceStatus"},
		{&c.resetFences, "vkResetFences"},
		{&c.waitForFences, "vkWaitForFences"},
		{&c.queueSubmit, "vkQueueSubmit"},
		{&c.queuePresentKHR, "vkQueuePresentKHR"},
		{&c.beginCommandBuffer, "vkBeginCommandBuffer"},
		{&c.endCommandBuffer, "vkEndCommandBuffer"},
		{&c.resetCommandBuffer, "vkResetCommandBuffer"},
		{&c.cmdBindPipeline, "vkCmdBindPipeline"},
		{&c.cmdBindDescriptorSets, "vkCmdBindDescriptorSets"},
		{&c.cmdPushConstants, "vkCmdPushConstants"},
		{&c.cmdDraw, "vkCmdDraw"},
		{&c.cmdDrawIndexed, "vkCmdDrawIndexed"},
		{&c.cmdBindVertexBuffers, "vkCmdBindVertexBuffers"},
		{&c.cmdBindIndexBuffer, "vkCmdBindIndexBuffer"},
		{&c.cmdDispatch, "vkCmdDispatch"},
		{&c.cmdFillBuffer, "vkCmdFillBuffer"},
		{&c.cmdCopyBuffer, "vkCmdCopyBuffer"},
		{&c.cmdUpdateBuffer, "vkCmdUpdateBuffer"},
		{&c.cmdPipelineBarrier, "vkCmdPipelineBarrier"},
		{&c.cmdBeginRenderPass, "vkCmdBeginRenderPass"},
		{&c.cmdNextSubpass, "vkCmdNextSubpass"},
		{&c.cmdEndRenderPass, "vkCmdEndRenderPass"},
		{&c.cmdExecuteCommands, "vkCmdExecuteCommands"},
		{&c.cmdBeginDebugUtilsLabelEXT, "vkCmdBeginDebugUtilsLabelEXT"},
		{&c.cmdEndDebugUtilsLabelEXT, "vkCmdEndDebugUtilsLabelEXT"},
		{&c.setDebugUtilsObjectNameEXT, "vkSetDebugUtilsObjectNameEXT"},
		{&c.createQueryPool, "vkCreateQueryPool"},
		{&c.destroyQueryPool, "vkDestroyQueryPool"},
		{&c.cmdResetQueryPool, "vkCmdResetQueryPool"},
		{&c.cmdBeginQuery, "vkCmdBeginQuery"},
		{&c.cmdEndQuery, "vkCmdEndQuery"},
		{&c.cmdWriteTimestamp, "vkCmdWriteTimestamp"},
		{&c.getQueryPoolResults, "vkGetQueryPoolResults"},
	}
	for _, f := range fields {
		if err := resolve(f.dst, f.name, get); err != nil {
			return err
		}
	}
	return nil
}

// The wrappers below follow hal/vulkan/vk/commands_manual.go exactly:
// build an args[] of pointers-to-storage, call ffi.CallFunction with the
// matching signature template, and return the typed result.

func (c *Commands) CreateBuffer(device Device, info *BufferCreateInfo, buffer *Buffer) Result {
	if c.createBuffer == nil {
		return ErrorIncompatibleDriver
	}
	var result int32
	args := [3]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&info),
		unsafe.Pointer(&buffer),
	}
	_ = ffi.CallFunction(&sigResultHandlePtrPtrPtr, unsafe.Pointer(c.createBuffer), unsafe.Pointer(&result), args[:])
	return Result(result)
}

func (c *Commands) DestroyBuffer(device Device, buffer Buffer) {
	if c.destroyBuffer == nil {
		return
	}
	args := [2]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&buffer)}
	_ = ffi.CallFunction(&sigVoidHandleHandlePtr, unsafe.Pointer(c.destroyBuffer), nil, args[:])
}

func (c *Commands) CreateImage(device Device, info *ImageCreateInfo, image *Image) Result {
	if c.createImage == nil {
		return ErrorIncompatibleDriver
	}
	var result int32
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&info), unsafe.Pointer(&image)}
	_ = ffi.CallFunction(&sigResultHandlePtrPtrPtr, unsafe.Pointer(c.createImage), unsafe.Pointer(&result), args[:])
	return Result(result)
}

func (c *Commands) DestroyImage(device Device, image Image) {
	if c.destroyImage == nil {
		return
	}
	args := [2]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&image)}
	_ = ffi.CallFunction(&sigVoidHandleHandlePtr, unsafe.Pointer(c.destroyImage), nil, args[:])
}

func (c *Commands) GetFenceStatus(device Device, fence Fence) Result {
	if c.getFenceStatus == nil {
		return ErrorDeviceLost
	}
	var result int32
	args := [2]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&fence)}
	_ = ffi.CallFunction(&sigResultHandleHandle, unsafe.Pointer(c.getFenceStatus), unsafe.Pointer(&result), args[:])
	return Result(result)
}

func (c *Commands) ResetFences(device Device, fences []Fence) Result {
	if c.resetFences == nil || len(fences) == 0 {
		return Success
	}
	var result int32
	count := uint32(len(fences))
	pFences := &fences[0]
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&count), unsafe.Pointer(&pFences)}
	_ = ffi.CallFunction(&sigResultHandleU32Ptr, unsafe.Pointer(c.resetFences), unsafe.Pointer(&result), args[:])
	return Result(result)
}

func (c *Commands) WaitForFences(device Device, fences []Fence, waitAll bool, timeoutNs uint64) Result {
	if c.waitForFences == nil || len(fences) == 0 {
		return Success
	}
	var result int32
	count := uint32(len(fences))
	pFences := &fences[0]
	var all uint32
	if waitAll {
		all = 1
	}
	args := [5]unsafe.Pointer{
		unsafe.Pointer(&device), unsafe.Pointer(&count), unsafe.Pointer(&pFences),
		unsafe.Pointer(&all), unsafe.Pointer(&timeoutNs),
	}
	_ = ffi.CallFunction(&sigResultWaitForFences, unsafe.Pointer(c.waitForFences), unsafe.Pointer(&result), args[:])
	return Result(result)
}

// QueueSubmit calls through to the driver with a driver-shaped VkSubmitInfo
// array built by internal/submit from the layer's own Submission batches.
func (c *Commands) QueueSubmit(queue Queue, submitCount uint32, submits unsafe.Pointer, fence Fence) Result {
	if c.queueSubmit == nil {
		return ErrorDeviceLost
	}
	var result int32
	args := [4]unsafe.Pointer{
		unsafe.Pointer(&queue), unsafe.Pointer(&submitCount), unsafe.Pointer(&submits), unsafe.Pointer(&fence),
	}
	_ = ffi.CallFunction(&sigResultHandleU32PtrHandle, unsafe.Pointer(c.queueSubmit), unsafe.Pointer(&result), args[:])
	return Result(result)
}

func (c *Commands) CreateFence(device Device, info *FenceCreateInfo, fence *Fence) Result {
	if c.createFence == nil {
		return ErrorIncompatibleDriver
	}
	var result int32
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&info), unsafe.Pointer(&fence)}
	_ = ffi.CallFunction(&sigResultHandlePtrPtrPtr, unsafe.Pointer(c.createFence), unsafe.Pointer(&result), args[:])
	return Result(result)
}

func (c *Commands) DestroyFence(device Device, fence Fence) {
	if c.destroyFence == nil {
		return
	}
	args := [2]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&fence)}
	_ = ffi.CallFunction(&sigVoidHandleHandlePtr, unsafe.Pointer(c.destroyFence), nil, args[:])
}

func (c *Commands) CreateSemaphore(device Device, info *SemaphoreCreateInfo, semaphore *Semaphore) Result {
	if c.createSemaphore == nil {
		return ErrorIncompatibleDriver
	}
	var result int32
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&info), unsafe.Pointer(&semaphore)}
	_ = ffi.CallFunction(&sigResultHandlePtrPtrPtr, unsafe.Pointer(c.createSemaphore), unsafe.Pointer(&result), args[:])
	return Result(result)
}

func (c *Commands) DestroySemaphore(device Device, semaphore Semaphore) {
	if c.destroySemaphore == nil {
		return
	}
	args := [2]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&semaphore)}
	_ = ffi.CallFunction(&sigVoidHandleHandlePtr, unsafe.Pointer(c.destroySemaphore), nil, args[:])
}

func (c *Commands) BeginCommandBuffer(cb CommandBuffer, info *CommandBufferBeginInfo) Result {
	if c.beginCommandBuffer == nil {
		return ErrorIncompatibleDriver
	}
	var result int32
	args := [2]unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&info)}
	_ = ffi.CallFunction(&sigResultHandlePtr, unsafe.Pointer(c.beginCommandBuffer), unsafe.Pointer(&result), args[:])
	return Result(result)
}

func (c *Commands) EndCommandBuffer(cb CommandBuffer) Result {
	if c.endCommandBuffer == nil {
		return ErrorIncompatibleDriver
	}
	var result int32
	args := [1]unsafe.Pointer{unsafe.Pointer(&cb)}
	_ = ffi.CallFunction(&sigResultHandle, unsafe.Pointer(c.endCommandBuffer), unsafe.Pointer(&result), args[:])
	return Result(result)
}

func (c *Commands) CmdFillBuffer(cb CommandBuffer, buffer Buffer, offset, size uint64, data uint32) {
	if c.cmdFillBuffer == nil {
		return
	}
	args := [5]unsafe.Pointer{
		unsafe.Pointer(&cb), unsafe.Pointer(&buffer), unsafe.Pointer(&offset), unsafe.Pointer(&size), unsafe.Pointer(&data),
	}
	_ = ffi.CallFunction(&sigVoidCmdFillBuffer, unsafe.Pointer(c.cmdFillBuffer), nil, args[:])
}

func (c *Commands) CmdDraw(cb CommandBuffer, vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	if c.cmdDraw == nil {
		return
	}
	args := [5]unsafe.Pointer{
		unsafe.Pointer(&cb), unsafe.Pointer(&vertexCount), unsafe.Pointer(&instanceCount),
		unsafe.Pointer(&firstVertex), unsafe.Pointer(&firstInstance),
	}
	_ = ffi.CallFunction(&sigVoidHandleU32x4, unsafe.Pointer(c.cmdDraw), nil, args[:])
}

func (c *Commands) CmdDispatch(cb CommandBuffer, x, y, z uint32) {
	if c.cmdDispatch == nil {
		return
	}
	args := [4]unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&x), unsafe.Pointer(&y), unsafe.Pointer(&z)}
	_ = ffi.CallFunction(&sigVoidHandleU32U32U32, unsafe.Pointer(c.cmdDispatch), nil, args[:])
}

func (c *Commands) CmdEndRenderPass(cb CommandBuffer) {
	if c.cmdEndRenderPass == nil {
		return
	}
	args := [1]unsafe.Pointer{unsafe.Pointer(&cb)}
	_ = ffi.CallFunction(&sigVoidHandle, unsafe.Pointer(c.cmdEndRenderPass), nil, args[:])
}

// The wrappers below complete the command-recording passthrough surface:
// every entry point the hook (internal/hook) needs to re-record a command
// buffer up to and including a selected command.

func (c *Commands) CmdBindPipeline(cb CommandBuffer, bindPoint PipelineBindPoint, pipeline Pipeline) {
	if c.cmdBindPipeline == nil {
		return
	}
	args := [3]unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&bindPoint), unsafe.Pointer(&pipeline)}
	_ = ffi.CallFunction(&sigVoidHandleU32Handle, unsafe.Pointer(c.cmdBindPipeline), nil, args[:])
}

func (c *Commands) CmdBindDescriptorSets(cb CommandBuffer, bindPoint PipelineBindPoint, layout PipelineLayout, firstSet uint32, sets []DescriptorSet, dynamicOffsets []uint32) {
	if c.cmdBindDescriptorSets == nil {
		return
	}
	setCount := uint32(len(sets))
	var pSets *DescriptorSet
	if setCount > 0 {
		pSets = &sets[0]
	}
	offsetCount := uint32(len(dynamicOffsets))
	var pOffsets *uint32
	if offsetCount > 0 {
		pOffsets = &dynamicOffsets[0]
	}
	args := [8]unsafe.Pointer{
		unsafe.Pointer(&cb), unsafe.Pointer(&bindPoint), unsafe.Pointer(&layout), unsafe.Pointer(&firstSet),
		unsafe.Pointer(&setCount), unsafe.Pointer(&pSets), unsafe.Pointer(&offsetCount), unsafe.Pointer(&pOffsets),
	}
	_ = ffi.CallFunction(&sigVoidCmdBindDescriptorSets, unsafe.Pointer(c.cmdBindDescriptorSets), nil, args[:])
}

func (c *Commands) CmdPushConstants(cb CommandBuffer, layout PipelineLayout, stageFlags ShaderStageFlags, offset, size uint32, values unsafe.Pointer) {
	if c.cmdPushConstants == nil {
		return
	}
	args := [6]unsafe.Pointer{
		unsafe.Pointer(&cb), unsafe.Pointer(&layout), unsafe.Pointer(&stageFlags),
		unsafe.Pointer(&offset), unsafe.Pointer(&size), unsafe.Pointer(&values),
	}
	_ = ffi.CallFunction(&sigVoidCmdPushConstants, unsafe.Pointer(c.cmdPushConstants), nil, args[:])
}

func (c *Commands) CmdBindVertexBuffers(cb CommandBuffer, firstBinding uint32, buffers []Buffer, offsets []uint64) {
	if c.cmdBindVertexBuffers == nil || len(buffers) == 0 {
		return
	}
	count := uint32(len(buffers))
	pBuffers := &buffers[0]
	pOffsets := &offsets[0]
	args := [5]unsafe.Pointer{
		unsafe.Pointer(&cb), unsafe.Pointer(&firstBinding), unsafe.Pointer(&count),
		unsafe.Pointer(&pBuffers), unsafe.Pointer(&pOffsets),
	}
	_ = ffi.CallFunction(&sigVoidCmdBindVertexBuffers, unsafe.Pointer(c.cmdBindVertexBuffers), nil, args[:])
}

func (c *Commands) CmdBindIndexBuffer(cb CommandBuffer, buffer Buffer, offset uint64, indexType IndexType) {
	if c.cmdBindIndexBuffer == nil {
		return
	}
	args := [4]unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&buffer), unsafe.Pointer(&offset), unsafe.Pointer(&indexType)}
	_ = ffi.CallFunction(&sigVoidCmdBindIndexBuffer, unsafe.Pointer(c.cmdBindIndexBuffer), nil, args[:])
}

func (c *Commands) CmdDrawIndexed(cb CommandBuffer, indexCount, instanceCount, firstIndex uint32, vertexOffset int32, firstInstance uint32) {
	if c.cmdDrawIndexed == nil {
		return
	}
	args := [6]unsafe.Pointer{
		unsafe.Pointer(&cb), unsafe.Pointer(&indexCount), unsafe.Pointer(&instanceCount),
		unsafe.Pointer(&firstIndex), unsafe.Pointer(&vertexOffset), unsafe.Pointer(&firstInstance),
	}
	_ = ffi.CallFunction(&sigVoidHandleU32x3I32U32, unsafe.Pointer(c.cmdDrawIndexed), nil, args[:])
}

func (c *Commands) CmdCopyBuffer(cb CommandBuffer, src, dst Buffer, regionCount uint32, regions unsafe.Pointer) {
	if c.cmdCopyBuffer == nil {
		return
	}
	args := [5]unsafe.Pointer{
		unsafe.Pointer(&cb), unsafe.Pointer(&src), unsafe.Pointer(&dst), unsafe.Pointer(&regionCount), unsafe.Pointer(&regions),
	}
	_ = ffi.CallFunction(&sigVoidCmdCopyBuffer, unsafe.Pointer(c.cmdCopyBuffer), nil, args[:])
}

func (c *Commands) CmdUpdateBuffer(cb CommandBuffer, dst Buffer, dstOffset, dataSize uint64, data unsafe.Pointer) {
	if c.cmdUpdateBuffer == nil {
		return
	}
	args := [5]unsafe.Pointer{
		unsafe.Pointer(&cb), unsafe.Pointer(&dst), unsafe.Pointer(&dstOffset), unsafe.Pointer(&dataSize), unsafe.Pointer(&data),
	}
	_ = ffi.CallFunction(&sigVoidCmdUpdateBuffer, unsafe.Pointer(c.cmdUpdateBuffer), nil, args[:])
}

func (c *Commands) CmdPipelineBarrier(cb CommandBuffer, srcStage, dstStage PipelineStageFlags, dependencyFlags uint32,
	memoryBarrierCount uint32, memoryBarriers unsafe.Pointer,
	bufferBarrierCount uint32, bufferBarriers unsafe.Pointer,
	imageBarrierCount uint32, imageBarriers unsafe.Pointer) {
	if c.cmdPipelineBarrier == nil {
		return
	}
	args := [10]unsafe.Pointer{
		unsafe.Pointer(&cb), unsafe.Pointer(&srcStage), unsafe.Pointer(&dstStage), unsafe.Pointer(&dependencyFlags),
		unsafe.Pointer(&memoryBarrierCount), unsafe.Pointer(&memoryBarriers),
		unsafe.Pointer(&bufferBarrierCount), unsafe.Pointer(&bufferBarriers),
		unsafe.Pointer(&imageBarrierCount), unsafe.Pointer(&imageBarriers),
	}
	_ = ffi.CallFunction(&sigVoidCmdPipelineBarrier, unsafe.Pointer(c.cmdPipelineBarrier), nil, args[:])
}

func (c *Commands) CmdBeginRenderPass(cb CommandBuffer, info *RenderPassBeginInfo, contents SubpassContents) {
	if c.cmdBeginRenderPass == nil {
		return
	}
	args := [3]unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&info), unsafe.Pointer(&contents)}
	_ = ffi.CallFunction(&sigVoidHandlePtrPtr, unsafe.Pointer(c.cmdBeginRenderPass), nil, args[:])
}

func (c *Commands) CmdNextSubpass(cb CommandBuffer, contents SubpassContents) {
	if c.cmdNextSubpass == nil {
		return
	}
	args := [2]unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&contents)}
	_ = ffi.CallFunction(&sigVoidHandleU32, unsafe.Pointer(c.cmdNextSubpass), nil, args[:])
}

func (c *Commands) CmdExecuteCommands(cb CommandBuffer, buffers []CommandBuffer) {
	if c.cmdExecuteCommands == nil || len(buffers) == 0 {
		return
	}
	count := uint32(len(buffers))
	pBuffers := &buffers[0]
	args := [3]unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&count), unsafe.Pointer(&pBuffers)}
	_ = ffi.CallFunction(&sigVoidHandleU32Ptr, unsafe.Pointer(c.cmdExecuteCommands), nil, args[:])
}

func (c *Commands) ResetCommandBuffer(cb CommandBuffer, flags uint32) Result {
	if c.resetCommandBuffer == nil {
		return ErrorIncompatibleDriver
	}
	var result int32
	args := [2]unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&flags)}
	_ = ffi.CallFunction(&sigResultHandleU32, unsafe.Pointer(c.resetCommandBuffer), unsafe.Pointer(&result), args[:])
	return Result(result)
}

func (c *Commands) AllocateCommandBuffers(device Device, info *CommandBufferAllocateInfo, buffers *CommandBuffer) Result {
	if c.allocateCommandBuffers == nil {
		return ErrorIncompatibleDriver
	}
	var result int32
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&info), unsafe.Pointer(&buffers)}
	_ = ffi.CallFunction(&sigResultHandlePtrPtr, unsafe.Pointer(c.allocateCommandBuffers), unsafe.Pointer(&result), args[:])
	return Result(result)
}

func (c *Commands) FreeCommandBuffers(device Device, pool CommandPool, buffers []CommandBuffer) {
	if c.freeCommandBuffers == nil || len(buffers) == 0 {
		return
	}
	count := uint32(len(buffers))
	pBuffers := &buffers[0]
	args := [4]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&pool), unsafe.Pointer(&count), unsafe.Pointer(&pBuffers)}
	_ = ffi.CallFunction(&sigVoidHandleHandleU32Ptr, unsafe.Pointer(c.freeCommandBuffers), nil, args[:])
}

// CreateQueryPool, DestroyQueryPool, CmdResetQueryPool, CmdBeginQuery,
// CmdEndQuery, CmdWriteTimestamp, and GetQueryPoolResults back the command
// hook's instrumentation of a re-recorded target (§4.8): a timestamp pair
// around the target, or a pipeline-statistics query wrapping it.

func (c *Commands) CreateQueryPool(device Device, info *QueryPoolCreateInfo, pool *QueryPool) Result {
	if c.createQueryPool == nil {
		return ErrorIncompatibleDriver
	}
	var result int32
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&info), unsafe.Pointer(&pool)}
	_ = ffi.CallFunction(&sigResultHandlePtrPtrPtr, unsafe.Pointer(c.createQueryPool), unsafe.Pointer(&result), args[:])
	return Result(result)
}

func (c *Commands) DestroyQueryPool(device Device, pool QueryPool) {
	if c.destroyQueryPool == nil {
		return
	}
	args := [2]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&pool)}
	_ = ffi.CallFunction(&sigVoidHandleHandlePtr, unsafe.Pointer(c.destroyQueryPool), nil, args[:])
}

func (c *Commands) CmdResetQueryPool(cb CommandBuffer, pool QueryPool, firstQuery, queryCount uint32) {
	if c.cmdResetQueryPool == nil {
		return
	}
	args := [4]unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&pool), unsafe.Pointer(&firstQuery), unsafe.Pointer(&queryCount)}
	_ = ffi.CallFunction(&sigVoidHandleHandleU32U32, unsafe.Pointer(c.cmdResetQueryPool), nil, args[:])
}

func (c *Commands) CmdBeginQuery(cb CommandBuffer, pool QueryPool, query uint32, flags uint32) {
	if c.cmdBeginQuery == nil {
		return
	}
	args := [4]unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&pool), unsafe.Pointer(&query), unsafe.Pointer(&flags)}
	_ = ffi.CallFunction(&sigVoidHandleHandleU32U32, unsafe.Pointer(c.cmdBeginQuery), nil, args[:])
}

func (c *Commands) CmdEndQuery(cb CommandBuffer, pool QueryPool, query uint32) {
	if c.cmdEndQuery == nil {
		return
	}
	args := [3]unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&pool), unsafe.Pointer(&query)}
	_ = ffi.CallFunction(&sigVoidHandleHandleU32, unsafe.Pointer(c.cmdEndQuery), nil, args[:])
}

func (c *Commands) CmdWriteTimestamp(cb CommandBuffer, stage PipelineStageFlags, pool QueryPool, query uint32) {
	if c.cmdWriteTimestamp == nil {
		return
	}
	args := [4]unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&stage), unsafe.Pointer(&pool), unsafe.Pointer(&query)}
	_ = ffi.CallFunction(&sigVoidHandleU32HandleU32, unsafe.Pointer(c.cmdWriteTimestamp), nil, args[:])
}

func (c *Commands) GetQueryPoolResults(device Device, pool QueryPool, firstQuery, queryCount uint32, dataSize uint64, data unsafe.Pointer, stride uint64, flags QueryResultFlags) Result {
	if c.getQueryPoolResults == nil {
		return ErrorDeviceLost
	}
	var result int32
	args := [8]unsafe.Pointer{
		unsafe.Pointer(&device), unsafe.Pointer(&pool), unsafe.Pointer(&firstQuery), unsafe.Pointer(&queryCount),
		unsafe.Pointer(&dataSize), unsafe.Pointer(&data), unsafe.Pointer(&stride), unsafe.Pointer(&flags),
	}
	_ = ffi.CallFunction(&sigResultQueryPoolResults, unsafe.Pointer(c.getQueryPoolResults), unsafe.Pointer(&result), args[:])
	return Result(result)
}

// DestroyDevice, GetDeviceQueue, CreateCommandPool, DestroyCommandPool, and
// CreateSwapchainKHR/DestroySwapchainKHR round out the entry points
// cmd/vklayer's bounded interception surface calls through (object
// lifecycle and swapchain binding for the overlay).

func (c *Commands) DestroyDevice(device Device) {
	if c.destroyDevice == nil {
		return
	}
	args := [2]unsafe.Pointer{unsafe.Pointer(&device), nil}
	_ = ffi.CallFunction(&sigVoidHandlePtr, unsafe.Pointer(c.destroyDevice), nil, args[:])
}

func (c *Commands) GetDeviceQueue(device Device, queueFamilyIndex, queueIndex uint32, queue *Queue) {
	if c.getDeviceQueue == nil {
		return
	}
	args := [4]unsafe.Pointer{
		unsafe.Pointer(&device), unsafe.Pointer(&queueFamilyIndex), unsafe.Pointer(&queueIndex), unsafe.Pointer(&queue),
	}
	_ = ffi.CallFunction(&sigVoidHandleU32U32Ptr, unsafe.Pointer(c.getDeviceQueue), nil, args[:])
}

func (c *Commands) CreateCommandPool(device Device, info *CommandPoolCreateInfo, pool *CommandPool) Result {
	if c.createCommandPool == nil {
		return ErrorIncompatibleDriver
	}
	var result int32
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&info), unsafe.Pointer(&pool)}
	_ = ffi.CallFunction(&sigResultHandlePtrPtrPtr, unsafe.Pointer(c.createCommandPool), unsafe.Pointer(&result), args[:])
	return Result(result)
}

func (c *Commands) DestroyCommandPool(device Device, pool CommandPool) {
	if c.destroyCommandPool == nil {
		return
	}
	args := [2]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&pool)}
	_ = ffi.CallFunction(&sigVoidHandleHandlePtr, unsafe.Pointer(c.destroyCommandPool), nil, args[:])
}

func (c *Commands) CreateSwapchainKHR(device Device, info *SwapchainCreateInfoKHR, swapchain *SwapchainKHR) Result {
	if c.createSwapchainKHR == nil {
		return ErrorIncompatibleDriver
	}
	var result int32
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&info), unsafe.Pointer(&swapchain)}
	_ = ffi.CallFunction(&sigResultHandlePtrPtrPtr, unsafe.Pointer(c.createSwapchainKHR), unsafe.Pointer(&result), args[:])
	return Result(result)
}

func (c *Commands) DestroySwapchainKHR(device Device, swapchain SwapchainKHR) {
	if c.destroySwapchainKHR == nil {
		return
	}
	args := [2]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&swapchain)}
	_ = ffi.CallFunction(&sigVoidHandleHandlePtr, unsafe.Pointer(c.destroySwapchainKHR), nil, args[:])
}
