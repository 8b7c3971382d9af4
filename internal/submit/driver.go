// Copyright 2025 The vklens Authors
// SPDX-License-Identifier: MIT

package submit

import (
	"unsafe"

	"github.com/vklens/vklens/internal/vk"
)

// driverSubmitInfo is the driver ABI's count+pointer shape for
// VkSubmitInfo, built from the layer's slice-shaped vk.SubmitInfo the
// same way hal/vulkan/queue.go's Submit assembles its vk.SubmitInfo
// before handing it to the driver's vkQueueSubmit.
type driverSubmitInfo struct {
	SType vk.StructureType
	PNext unsafe.Pointer

	WaitSemaphoreCount uint32
	PWaitSemaphores    *vk.Semaphore
	PWaitDstStageMask  *vk.PipelineStageFlags

	CommandBufferCount uint32
	PCommandBuffers    *vk.CommandBuffer

	SignalSemaphoreCount uint32
	PSignalSemaphores    *vk.Semaphore
}

// buildDriverSubmitInfos flattens each slice-shaped batch into the
// driver's count+pointer struct. Empty slices are left as nil/0 rather
// than indexing an empty slice's element zero.
func buildDriverSubmitInfos(batches []vk.SubmitInfo) []driverSubmitInfo {
	out := make([]driverSubmitInfo, len(batches))
	for i, b := range batches {
		d := driverSubmitInfo{SType: vk.StructureTypeSubmitInfo}
		if n := len(b.WaitSemaphores); n > 0 {
			d.WaitSemaphoreCount = uint32(n)
			d.PWaitSemaphores = &b.WaitSemaphores[0]
			d.PWaitDstStageMask = &b.WaitDstStageMask[0]
		}
		if n := len(b.CommandBuffers); n > 0 {
			d.CommandBufferCount = uint32(n)
			d.PCommandBuffers = &b.CommandBuffers[0]
		}
		if n := len(b.SignalSemaphores); n > 0 {
			d.SignalSemaphoreCount = uint32(n)
			d.PSignalSemaphores = &b.SignalSemaphores[0]
		}
		out[i] = d
	}
	return out
}

// callQueueSubmit passes the marshaled batch array through to the
// driver via vk.Commands.QueueSubmit, which expects an unsafe.Pointer to
// the first element exactly as hal/vulkan/vk/commands_manual.go's other
// manual wrappers do.
func callQueueSubmit(cmds *vk.Commands, queue vk.Queue, infos []driverSubmitInfo, fence vk.Fence) vk.Result {
	if len(infos) == 0 {
		return vk.Success
	}
	return cmds.QueueSubmit(queue, uint32(len(infos)), unsafe.Pointer(&infos[0]), fence)
}
