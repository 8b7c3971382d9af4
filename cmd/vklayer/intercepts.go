// Copyright 2025 The vklens Authors
// SPDX-License-Identifier: MIT

package main

/*
#include "layer.h"
*/
import "C"

import (
	"unsafe"

	"github.com/vklens/vklens/internal/dispatch"
	"github.com/vklens/vklens/internal/hook"
	"github.com/vklens/vklens/internal/objects"
	"github.com/vklens/vklens/internal/overlay"
	"github.com/vklens/vklens/internal/record"
	"github.com/vklens/vklens/internal/submit"
	"github.com/vklens/vklens/internal/vk"
	"github.com/vklens/vklens/internal/vklog"
)

// commandBufferShadow resolves a raw VkCommandBuffer off the process-wide
// dispatch table. Every Cmd* intercept below starts here.
func commandBufferShadow(cb C.VkCommandBuffer) *objects.CommandBuffer {
	raw := vk.CommandBuffer(uintptr(unsafe.Pointer(cb)))
	shadow, _ := dispatch.Instance().Find(vk.DispatchKey(uintptr(raw))).(*objects.CommandBuffer)
	return shadow
}

//export vklens_EnumeratePhysicalDevices
func vklens_EnumeratePhysicalDevices(instance C.VkInstance, pPhysicalDeviceCount *C.uint32_t, pPhysicalDevices *C.VkPhysicalDevice) C.VkResult {
	handle := vk.Instance(uintptr(unsafe.Pointer(instance)))
	st := lookupInstance(handle)
	if st == nil {
		return C.VkResult(vk.ErrorInitializationFailed)
	}

	enumerate := wrapGetInstanceProcAddr(st.nextGIPA, handle)("vkEnumeratePhysicalDevices")
	if enumerate == nil {
		return C.VkResult(vk.ErrorIncompatibleDriver)
	}
	result := C.VkResult(callNextEnumeratePhysicalDevices(enumerate, unsafe.Pointer(instance), unsafe.Pointer(pPhysicalDeviceCount), unsafe.Pointer(pPhysicalDevices)))
	if vk.Result(result) != vk.Success && vk.Result(result) != vk.Incomplete {
		return result
	}

	// Record ownership for every handle the driver actually wrote, so a
	// later vkCreateDevice against any of them can recover this
	// instance's proc-addr chain (dispatch.go's vklens_CreateDevice).
	if pPhysicalDevices != nil && pPhysicalDeviceCount != nil {
		got := unsafe.Slice(pPhysicalDevices, int(*pPhysicalDeviceCount))
		for _, d := range got {
			if pd := vk.PhysicalDevice(uintptr(unsafe.Pointer(d))); pd != 0 {
				recordPhysicalDeviceOwner(pd, st)
			}
		}
	}
	return result
}

//export vklens_GetDeviceQueue
func vklens_GetDeviceQueue(device C.VkDevice, queueFamilyIndex, queueIndex C.uint32_t, pQueue *C.VkQueue) {
	handle := vk.Device(uintptr(unsafe.Pointer(device)))
	st := lookupDevice(handle)
	if st == nil {
		return
	}

	var raw vk.Queue
	st.shadow.Commands.GetDeviceQueue(handle, uint32(queueFamilyIndex), uint32(queueIndex), &raw)
	*pQueue = C.VkQueue(unsafe.Pointer(uintptr(raw)))
	if raw == 0 {
		return
	}

	shadow := &objects.Queue{Raw: raw, FamilyIdx: uint32(queueFamilyIndex), QueueIdx: uint32(queueIndex)}
	shadow.Device = st.shadow

	st.shadow.General.Lock()
	st.shadow.Queues = append(st.shadow.Queues, shadow)
	st.shadow.General.Unlock()
	dispatch.Instance().Bind(vk.DispatchKey(uintptr(raw)), shadow)
}

//export vklens_CreateBuffer
func vklens_CreateBuffer(device C.VkDevice, pCreateInfo, pAllocator unsafe.Pointer, pBuffer *C.VkBuffer) C.VkResult {
	handle := vk.Device(uintptr(unsafe.Pointer(device)))
	st := lookupDevice(handle)
	if st == nil {
		return C.VkResult(vk.ErrorInitializationFailed)
	}

	info := decodeBufferCreateInfo(pCreateInfo)
	var raw vk.Buffer
	result := st.shadow.Commands.CreateBuffer(handle, info, &raw)
	if result != vk.Success {
		return C.VkResult(result)
	}
	*pBuffer = C.VkBuffer(raw)

	shadow := &objects.Buffer{Raw: raw, Create: *info}
	shadow.Device = st.shadow
	st.shadow.General.Lock()
	st.shadow.Buffers.Insert(raw, shadow)
	st.shadow.General.Unlock()
	return C.VkResult(result)
}

//export vklens_DestroyBuffer
func vklens_DestroyBuffer(device C.VkDevice, buffer C.VkBuffer, pAllocator unsafe.Pointer) {
	handle := vk.Device(uintptr(unsafe.Pointer(device)))
	st := lookupDevice(handle)
	if st == nil {
		return
	}
	raw := vk.Buffer(buffer)
	st.shadow.Commands.DestroyBuffer(handle, raw)
	st.shadow.General.Lock()
	st.shadow.Buffers.Remove(raw)
	st.shadow.General.Unlock()
}

//export vklens_CreateFence
func vklens_CreateFence(device C.VkDevice, pCreateInfo, pAllocator unsafe.Pointer, pFence *C.VkFence) C.VkResult {
	handle := vk.Device(uintptr(unsafe.Pointer(device)))
	st := lookupDevice(handle)
	if st == nil {
		return C.VkResult(vk.ErrorInitializationFailed)
	}

	info := decodeFenceCreateInfo(pCreateInfo)
	var raw vk.Fence
	result := st.shadow.Commands.CreateFence(handle, info, &raw)
	if result != vk.Success {
		return C.VkResult(result)
	}
	*pFence = C.VkFence(raw)

	shadow := &objects.Fence{Raw: raw}
	shadow.Device = st.shadow
	st.shadow.General.Lock()
	st.shadow.Fences.Insert(raw, shadow)
	st.shadow.General.Unlock()
	return C.VkResult(result)
}

//export vklens_DestroyFence
func vklens_DestroyFence(device C.VkDevice, fence C.VkFence, pAllocator unsafe.Pointer) {
	handle := vk.Device(uintptr(unsafe.Pointer(device)))
	st := lookupDevice(handle)
	if st == nil {
		return
	}
	raw := vk.Fence(fence)
	st.shadow.Commands.DestroyFence(handle, raw)
	st.shadow.General.Lock()
	st.shadow.Fences.Remove(raw)
	st.shadow.General.Unlock()
}

//export vklens_CreateSemaphore
func vklens_CreateSemaphore(device C.VkDevice, pCreateInfo, pAllocator unsafe.Pointer, pSemaphore *C.VkSemaphore) C.VkResult {
	handle := vk.Device(uintptr(unsafe.Pointer(device)))
	st := lookupDevice(handle)
	if st == nil {
		return C.VkResult(vk.ErrorInitializationFailed)
	}

	info := decodeSemaphoreCreateInfo(pCreateInfo)
	var raw vk.Semaphore
	result := st.shadow.Commands.CreateSemaphore(handle, info, &raw)
	if result != vk.Success {
		return C.VkResult(result)
	}
	*pSemaphore = C.VkSemaphore(raw)

	shadow := &objects.Semaphore{Raw: raw}
	shadow.Device = st.shadow
	st.shadow.General.Lock()
	st.shadow.Semaphores.Insert(raw, shadow)
	st.shadow.General.Unlock()
	return C.VkResult(result)
}

//export vklens_DestroySemaphore
func vklens_DestroySemaphore(device C.VkDevice, semaphore C.VkSemaphore, pAllocator unsafe.Pointer) {
	handle := vk.Device(uintptr(unsafe.Pointer(device)))
	st := lookupDevice(handle)
	if st == nil {
		return
	}
	raw := vk.Semaphore(semaphore)
	st.shadow.Commands.DestroySemaphore(handle, raw)
	st.shadow.General.Lock()
	st.shadow.Semaphores.Remove(raw)
	st.shadow.General.Unlock()
}

//export vklens_CreateCommandPool
func vklens_CreateCommandPool(device C.VkDevice, pCreateInfo, pAllocator unsafe.Pointer, pPool *C.VkCommandPool) C.VkResult {
	handle := vk.Device(uintptr(unsafe.Pointer(device)))
	st := lookupDevice(handle)
	if st == nil {
		return C.VkResult(vk.ErrorInitializationFailed)
	}

	info := decodeCommandPoolCreateInfo(pCreateInfo)
	var raw vk.CommandPool
	result := st.shadow.Commands.CreateCommandPool(handle, info, &raw)
	if result != vk.Success {
		return C.VkResult(result)
	}
	*pPool = C.VkCommandPool(raw)

	shadow := &objects.CommandPool{Raw: raw}
	shadow.Device = st.shadow
	st.shadow.General.Lock()
	st.shadow.CommandPools.Insert(raw, shadow)
	st.shadow.General.Unlock()
	return C.VkResult(result)
}

//export vklens_DestroyCommandPool
func vklens_DestroyCommandPool(device C.VkDevice, pool C.VkCommandPool, pAllocator unsafe.Pointer) {
	handle := vk.Device(uintptr(unsafe.Pointer(device)))
	st := lookupDevice(handle)
	if st == nil {
		return
	}
	raw := vk.CommandPool(pool)
	st.shadow.Commands.DestroyCommandPool(handle, raw)

	st.shadow.General.Lock()
	shadow := st.shadow.CommandPools.Remove(raw)
	st.shadow.General.Unlock()
	if shadow == nil {
		return
	}
	for _, cb := range shadow.Buffers {
		dispatch.Instance().Unbind(vk.DispatchKey(uintptr(cb.Raw)))
	}
}

//export vklens_AllocateCommandBuffers
func vklens_AllocateCommandBuffers(device C.VkDevice, pAllocateInfo unsafe.Pointer, pCommandBuffers *C.VkCommandBuffer) C.VkResult {
	handle := vk.Device(uintptr(unsafe.Pointer(device)))
	st := lookupDevice(handle)
	if st == nil {
		return C.VkResult(vk.ErrorInitializationFailed)
	}

	info := decodeCommandBufferAllocateInfo(pAllocateInfo)
	st.shadow.General.RLock()
	pool := st.shadow.CommandPools.Find(info.CommandPool)
	st.shadow.General.RUnlock()
	if pool == nil {
		return C.VkResult(vk.ErrorInitializationFailed)
	}

	count := int(info.CommandBufferCount)
	if count == 0 {
		return C.VkResult(vk.Success)
	}
	raws := make([]vk.CommandBuffer, count)
	result := st.shadow.Commands.AllocateCommandBuffers(handle, info, &raws[0])
	if result != vk.Success {
		return C.VkResult(result)
	}

	out := unsafe.Slice(pCommandBuffers, count)
	for i, raw := range raws {
		out[i] = C.VkCommandBuffer(unsafe.Pointer(uintptr(raw)))

		shadow := &objects.CommandBuffer{Raw: raw, Pool: pool, Level: info.Level}
		shadow.Device = st.shadow
		pool.AddBuffer(shadow)
		dispatch.Instance().Bind(vk.DispatchKey(uintptr(raw)), shadow)
	}
	return C.VkResult(result)
}

//export vklens_FreeCommandBuffers
func vklens_FreeCommandBuffers(device C.VkDevice, pool C.VkCommandPool, commandBufferCount C.uint32_t, pCommandBuffers *C.VkCommandBuffer) {
	handle := vk.Device(uintptr(unsafe.Pointer(device)))
	st := lookupDevice(handle)
	if st == nil {
		return
	}

	count := int(commandBufferCount)
	in := unsafe.Slice(pCommandBuffers, count)
	raws := make([]vk.CommandBuffer, count)
	for i, v := range in {
		raws[i] = vk.CommandBuffer(uintptr(unsafe.Pointer(v)))
	}
	st.shadow.Commands.FreeCommandBuffers(handle, vk.CommandPool(pool), raws)

	st.shadow.General.RLock()
	poolShadow := st.shadow.CommandPools.Find(vk.CommandPool(pool))
	st.shadow.General.RUnlock()

	for _, raw := range raws {
		key := vk.DispatchKey(uintptr(raw))
		shadow, _ := dispatch.Instance().Find(key).(*objects.CommandBuffer)
		dispatch.Instance().Unbind(key)
		if poolShadow != nil && shadow != nil {
			poolShadow.RemoveBuffer(shadow)
		}
	}
}

// cCommandBufferBeginInfo mirrors VkCommandBufferBeginInfo's layout up to
// flags; the trailing pInheritanceInfo pointer is left out and never
// read, for primary and secondary command buffers alike —
// decodeCommandBufferBeginInfo copies only sType and flags.
type cCommandBufferBeginInfo struct {
	sType uint32
	_     uint32
	pNext unsafe.Pointer
	flags uint32
	_     uint32
}

func decodeCommandBufferBeginInfo(p unsafe.Pointer) *vk.CommandBufferBeginInfo {
	c := (*cCommandBufferBeginInfo)(p)
	return &vk.CommandBufferBeginInfo{SType: vk.StructureType(c.sType), Flags: vk.CommandBufferUsageFlags(c.flags)}
}

//export vklens_BeginCommandBuffer
func vklens_BeginCommandBuffer(cb C.VkCommandBuffer, pBeginInfo unsafe.Pointer) C.VkResult {
	shadow := commandBufferShadow(cb)
	if shadow == nil {
		return C.VkResult(vk.ErrorInitializationFailed)
	}
	info := decodeCommandBufferBeginInfo(pBeginInfo)
	result := shadow.Device.Commands.BeginCommandBuffer(shadow.Raw, info)
	if result == vk.Success {
		record.Begin(shadow)
	}
	return C.VkResult(result)
}

//export vklens_EndCommandBuffer
func vklens_EndCommandBuffer(cb C.VkCommandBuffer) C.VkResult {
	shadow := commandBufferShadow(cb)
	if shadow == nil {
		return C.VkResult(vk.ErrorInitializationFailed)
	}
	result := shadow.Device.Commands.EndCommandBuffer(shadow.Raw)
	if result == vk.Success {
		record.End(shadow)
	}
	return C.VkResult(result)
}

//export vklens_ResetCommandBuffer
func vklens_ResetCommandBuffer(cb C.VkCommandBuffer, flags C.uint32_t) C.VkResult {
	shadow := commandBufferShadow(cb)
	if shadow == nil {
		return C.VkResult(vk.ErrorInitializationFailed)
	}
	result := shadow.Device.Commands.ResetCommandBuffer(shadow.Raw, uint32(flags))
	if result == vk.Success {
		record.Reset(shadow)
	}
	return C.VkResult(result)
}

//export vklens_CmdBindPipeline
func vklens_CmdBindPipeline(cb C.VkCommandBuffer, bindPoint C.int32_t, pipeline C.VkPipeline) {
	shadow := commandBufferShadow(cb)
	if shadow == nil {
		return
	}
	dev := shadow.Device
	bp := vk.PipelineBindPoint(bindPoint)
	raw := vk.Pipeline(pipeline)
	dev.Commands.CmdBindPipeline(shadow.Raw, bp, raw)

	dev.General.RLock()
	var graphics *objects.GraphicsPipeline
	var compute *objects.ComputePipeline
	if bp == vk.PipelineBindPointGraphics {
		graphics = dev.GraphicsPipelines.Find(raw)
	} else {
		compute = dev.ComputePipelines.Find(raw)
	}
	dev.General.RUnlock()

	record.CmdBindPipeline(shadow, bp, graphics, compute)
}

//export vklens_CmdBindVertexBuffers
func vklens_CmdBindVertexBuffers(cb C.VkCommandBuffer, firstBinding, bindingCount C.uint32_t, pBuffers *C.VkBuffer, pOffsets *C.uint64_t) {
	shadow := commandBufferShadow(cb)
	if shadow == nil {
		return
	}
	dev := shadow.Device
	count := int(bindingCount)
	bufIn := unsafe.Slice(pBuffers, count)
	offIn := unsafe.Slice(pOffsets, count)

	rawBuffers := make([]vk.Buffer, count)
	offsets := make([]uint64, count)
	shadows := make([]*objects.Buffer, count)

	dev.General.RLock()
	for i := 0; i < count; i++ {
		rawBuffers[i] = vk.Buffer(bufIn[i])
		offsets[i] = uint64(offIn[i])
		shadows[i] = dev.Buffers.Find(rawBuffers[i])
	}
	dev.General.RUnlock()

	dev.Commands.CmdBindVertexBuffers(shadow.Raw, uint32(firstBinding), rawBuffers, offsets)
	record.CmdBindVertexBuffers(shadow, uint32(firstBinding), shadows, offsets)
}

//export vklens_CmdBindIndexBuffer
func vklens_CmdBindIndexBuffer(cb C.VkCommandBuffer, buffer C.VkBuffer, offset C.uint64_t, indexType C.int32_t) {
	shadow := commandBufferShadow(cb)
	if shadow == nil {
		return
	}
	dev := shadow.Device
	raw := vk.Buffer(buffer)
	it := vk.IndexType(indexType)
	dev.Commands.CmdBindIndexBuffer(shadow.Raw, raw, uint64(offset), it)

	dev.General.RLock()
	bufShadow := dev.Buffers.Find(raw)
	dev.General.RUnlock()

	record.CmdBindIndexBuffer(shadow, bufShadow, uint64(offset), it)
}

//export vklens_CmdDraw
func vklens_CmdDraw(cb C.VkCommandBuffer, vertexCount, instanceCount, firstVertex, firstInstance C.uint32_t) {
	shadow := commandBufferShadow(cb)
	if shadow == nil {
		return
	}
	shadow.Device.Commands.CmdDraw(shadow.Raw, uint32(vertexCount), uint32(instanceCount), uint32(firstVertex), uint32(firstInstance))
	record.CmdDraw(shadow, uint32(vertexCount), uint32(instanceCount), uint32(firstVertex), uint32(firstInstance))
}

//export vklens_CmdDrawIndexed
func vklens_CmdDrawIndexed(cb C.VkCommandBuffer, indexCount, instanceCount, firstIndex C.uint32_t, vertexOffset C.int32_t, firstInstance C.uint32_t) {
	shadow := commandBufferShadow(cb)
	if shadow == nil {
		return
	}
	shadow.Device.Commands.CmdDrawIndexed(shadow.Raw, uint32(indexCount), uint32(instanceCount), uint32(firstIndex), int32(vertexOffset), uint32(firstInstance))
	record.CmdDrawIndexed(shadow, uint32(indexCount), uint32(instanceCount), uint32(firstIndex), int32(vertexOffset), uint32(firstInstance))
}

// cRenderPassBeginInfo mirrors VkRenderPassBeginInfo. VkClearValue is a
// 16-byte union per element; ClearValues is carried as raw bytes since
// the layer never interprets a clear color itself.
type cRenderPassBeginInfo struct {
	sType           uint32
	_               uint32
	pNext           unsafe.Pointer
	renderPass      uint64
	framebuffer     uint64
	areaX, areaY    int32
	areaW, areaH    uint32
	clearValueCount uint32
	_               uint32
	pClearValues    unsafe.Pointer
}

func decodeRenderPassBeginInfo(p unsafe.Pointer) *vk.RenderPassBeginInfo {
	c := (*cRenderPassBeginInfo)(p)
	var clear []byte
	if c.clearValueCount > 0 && c.pClearValues != nil {
		clear = append(clear, unsafe.Slice((*byte)(c.pClearValues), int(c.clearValueCount)*16)...)
	}
	return &vk.RenderPassBeginInfo{
		SType:       vk.StructureType(c.sType),
		RenderPass:  vk.RenderPass(c.renderPass),
		Framebuffer: vk.Framebuffer(c.framebuffer),
		RenderAreaX: c.areaX,
		RenderAreaY: c.areaY,
		RenderAreaW: c.areaW,
		RenderAreaH: c.areaH,
		ClearValues: clear,
	}
}

//export vklens_CmdBeginRenderPass
func vklens_CmdBeginRenderPass(cb C.VkCommandBuffer, pRenderPassBegin unsafe.Pointer, contents C.int32_t) {
	shadow := commandBufferShadow(cb)
	if shadow == nil {
		return
	}
	dev := shadow.Device
	info := decodeRenderPassBeginInfo(pRenderPassBegin)
	dev.Commands.CmdBeginRenderPass(shadow.Raw, info, vk.SubpassContents(contents))

	dev.General.RLock()
	rp := dev.RenderPasses.Find(info.RenderPass)
	fb := dev.Framebuffers.Find(info.Framebuffer)
	dev.General.RUnlock()

	record.CmdBeginRenderPass(shadow, rp, fb)
}

//export vklens_CmdNextSubpass
func vklens_CmdNextSubpass(cb C.VkCommandBuffer, contents C.int32_t) {
	shadow := commandBufferShadow(cb)
	if shadow == nil {
		return
	}
	shadow.Device.Commands.CmdNextSubpass(shadow.Raw, vk.SubpassContents(contents))
	record.CmdNextSubpass(shadow)
}

//export vklens_CmdEndRenderPass
func vklens_CmdEndRenderPass(cb C.VkCommandBuffer) {
	shadow := commandBufferShadow(cb)
	if shadow == nil {
		return
	}
	shadow.Device.Commands.CmdEndRenderPass(shadow.Raw)
	record.CmdEndRenderPass(shadow)
}

//export vklens_CmdExecuteCommands
func vklens_CmdExecuteCommands(cb C.VkCommandBuffer, commandBufferCount C.uint32_t, pCommandBuffers *C.VkCommandBuffer) {
	shadow := commandBufferShadow(cb)
	if shadow == nil {
		return
	}
	count := int(commandBufferCount)
	in := unsafe.Slice(pCommandBuffers, count)
	raws := make([]vk.CommandBuffer, count)
	secondaries := make([]*objects.CommandBuffer, count)
	for i, v := range in {
		raws[i] = vk.CommandBuffer(uintptr(unsafe.Pointer(v)))
		secondaries[i], _ = dispatch.Instance().Find(vk.DispatchKey(uintptr(raws[i]))).(*objects.CommandBuffer)
	}
	shadow.Device.Commands.CmdExecuteCommands(shadow.Raw, raws)
	record.CmdExecuteCommands(shadow, secondaries)
}

//export vklens_CreateSwapchainKHR
func vklens_CreateSwapchainKHR(device C.VkDevice, pCreateInfo, pAllocator unsafe.Pointer, pSwapchain *C.VkSwapchainKHR) C.VkResult {
	handle := vk.Device(uintptr(unsafe.Pointer(device)))
	st := lookupDevice(handle)
	if st == nil {
		return C.VkResult(vk.ErrorInitializationFailed)
	}

	info := decodeSwapchainCreateInfo(pCreateInfo)
	var raw vk.SwapchainKHR
	result := st.shadow.Commands.CreateSwapchainKHR(handle, info, &raw)
	if result != vk.Success {
		return C.VkResult(result)
	}
	*pSwapchain = C.VkSwapchainKHR(raw)

	shadow := &objects.Swapchain{Raw: raw, Create: *info}
	shadow.Device = st.shadow
	st.shadow.General.Lock()
	st.shadow.Swapchains.Insert(raw, shadow)
	st.shadow.LastSwapchain = shadow
	st.shadow.General.Unlock()

	if ov := deviceOverlay(st.shadow); ov != nil {
		ov.BindSwapchain(shadow)
	}
	return C.VkResult(result)
}

//export vklens_DestroySwapchainKHR
func vklens_DestroySwapchainKHR(device C.VkDevice, swapchain C.VkSwapchainKHR, pAllocator unsafe.Pointer) {
	handle := vk.Device(uintptr(unsafe.Pointer(device)))
	st := lookupDevice(handle)
	if st == nil {
		return
	}
	raw := vk.SwapchainKHR(swapchain)
	st.shadow.Commands.DestroySwapchainKHR(handle, raw)

	st.shadow.General.Lock()
	shadow := st.shadow.Swapchains.Remove(raw)
	if shadow != nil && st.shadow.LastSwapchain == shadow {
		st.shadow.LastSwapchain = nil
	}
	st.shadow.General.Unlock()
}

//export vklens_QueueSubmit
func vklens_QueueSubmit(queue C.VkQueue, submitCount C.uint32_t, pSubmits unsafe.Pointer, fence C.VkFence) C.VkResult {
	raw := vk.Queue(uintptr(unsafe.Pointer(queue)))
	queueShadow, _ := dispatch.Instance().Find(vk.DispatchKey(uintptr(raw))).(*objects.Queue)
	if queueShadow == nil {
		vklog.Error("vklens: vkQueueSubmit called with an unrecognized VkQueue")
		return C.VkResult(vk.ErrorDeviceLost)
	}
	dev := queueShadow.Device
	batches := decodeSubmitInfos(pSubmits, uint32(submitCount))

	var appFence *objects.Fence
	if rawFence := vk.Fence(fence); rawFence != 0 {
		dev.General.RLock()
		appFence = dev.Fences.Find(rawFence)
		dev.General.RUnlock()
	}

	if _, err := submit.Submit(dev, queueShadow, batches, appFence); err != nil {
		if res, ok := err.(vk.Result); ok {
			return C.VkResult(res)
		}
		vklog.Warn("vklens: vkQueueSubmit failed", "err", err.Error())
		return C.VkResult(vk.ErrorDeviceLost)
	}

	runSelectedHook(dev, queueShadow, batches)
	return C.VkResult(vk.Success)
}

// runSelectedHook checks whether the overlay bound to dev has a pending
// GUI selection with no hook currently tracking it, and if one of the
// just-submitted command buffers' records still contains the selected
// command, arms a timestamp hook and replays a standalone secondary up
// to that point.
func runSelectedHook(dev *objects.Device, queue *objects.Queue, batches []vk.SubmitInfo) {
	ov := deviceOverlay(dev)
	if ov == nil {
		return
	}
	path := ov.Selected()
	if len(path) == 0 || ov.CurrentState().HookState != hook.StateIdle {
		return
	}

	for _, batch := range batches {
		for _, rawCB := range batch.CommandBuffers {
			cb, _ := dispatch.Instance().Find(vk.DispatchKey(uintptr(rawCB))).(*objects.CommandBuffer)
			if cb == nil {
				continue
			}
			rec := record.Of(cb)
			if rec == nil {
				continue
			}
			target, err := hook.Locate(rec.Root(), path)
			if err != nil {
				continue
			}

			h, err := hook.Arm(target, hook.InstrumentTimestamp)
			if err != nil {
				vklog.Warn("vklens: selected command cannot be hooked", "err", err.Error())
				return
			}
			if err := hook.PrepareQueryPool(dev.Commands, dev.Raw, h); err != nil {
				vklog.Warn("vklens: failed to create hook query pool", "err", err.Error())
				return
			}
			ov.Arm(h)
			captureHook(dev, queue, cb.Pool, rec.Root(), h, ov)
			return
		}
	}
}

// captureHook allocates a one-shot secondary command buffer, replays the
// record up to the hooked command into it, submits it standalone on the
// same queue, and retires the hook immediately: GetQueryPoolResults'
// WAIT flag (internal/hook.Retire) blocks until the secondary's own
// execution completes, so there is nothing else to synchronize on here.
func captureHook(dev *objects.Device, queue *objects.Queue, pool *objects.CommandPool, root *record.Command, h *hook.Hook, ov *overlay.Overlay) {
	if pool == nil {
		hook.Retire(dev.Commands, dev.Raw, h, ov.ResultQueue(), 1)
		return
	}

	allocInfo := &vk.CommandBufferAllocateInfo{CommandPool: pool.Raw, Level: 1, CommandBufferCount: 1}
	var secondary vk.CommandBuffer
	if res := dev.Commands.AllocateCommandBuffers(dev.Raw, allocInfo, &secondary); res != vk.Success {
		vklog.Warn("vklens: hook secondary allocation failed", "result", res.String())
		hook.Retire(dev.Commands, dev.Raw, h, ov.ResultQueue(), 1)
		return
	}
	defer dev.Commands.FreeCommandBuffers(dev.Raw, pool.Raw, []vk.CommandBuffer{secondary})

	if res := dev.Commands.BeginCommandBuffer(secondary, &vk.CommandBufferBeginInfo{}); res != vk.Success {
		vklog.Warn("vklens: hook secondary begin failed", "result", res.String())
		hook.Retire(dev.Commands, dev.Raw, h, ov.ResultQueue(), 1)
		return
	}
	if err := hook.BuildSecondary(dev.Commands, secondary, root, h); err != nil {
		vklog.Warn("vklens: hook replay failed", "err", err.Error())
	}
	dev.Commands.EndCommandBuffer(secondary)

	if _, err := submit.Submit(dev, queue, []vk.SubmitInfo{{CommandBuffers: []vk.CommandBuffer{secondary}}}, nil); err != nil {
		vklog.Warn("vklens: hook secondary submission failed", "err", err.Error())
	}
	hook.Retire(dev.Commands, dev.Raw, h, ov.ResultQueue(), 1)
}
