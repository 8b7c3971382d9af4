// Copyright 2025 The vklens Authors
// SPDX-License-Identifier: MIT

package record

import (
	"github.com/vklens/vklens/internal/objects"
	"github.com/vklens/vklens/internal/vk"
	"github.com/vklens/vklens/internal/vklog"
)

// BindPipelineData is the payload of a KindBindPipeline node.
type BindPipelineData struct {
	BindPoint vk.PipelineBindPoint
	Graphics  *objects.GraphicsPipeline
	Compute   *objects.ComputePipeline
}

// CmdBindPipeline records a vkCmdBindPipeline call.
func CmdBindPipeline(cb *objects.CommandBuffer, bindPoint vk.PipelineBindPoint, graphics *objects.GraphicsPipeline, compute *objects.ComputePipeline) {
	r := Of(cb)
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if bindPoint == vk.PipelineBindPointGraphics {
		r.bound.graphicsPipeline = graphics
	} else {
		r.bound.computePipeline = compute
	}
	r.append(KindBindPipeline, &BindPipelineData{BindPoint: bindPoint, Graphics: graphics, Compute: compute})
}

// BindDescriptorSetsData is the payload of a KindBindDescriptorSets
// node.
type BindDescriptorSetsData struct {
	BindPoint vk.PipelineBindPoint
	Layout    *objects.PipelineLayout
	FirstSet  uint32
	Sets      []*objects.DescriptorSet
}

// CmdBindDescriptorSets records a vkCmdBindDescriptorSets call and
// applies the descriptor-set disturbing rule to the bound state.
func CmdBindDescriptorSets(cb *objects.CommandBuffer, bindPoint vk.PipelineBindPoint, layout *objects.PipelineLayout, firstSet uint32, sets []*objects.DescriptorSet) {
	r := Of(cb)
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bound.bindDescriptorSets(layout, firstSet, sets)
	r.append(KindBindDescriptorSets, &BindDescriptorSetsData{BindPoint: bindPoint, Layout: layout, FirstSet: firstSet, Sets: sets})
}

// PushConstantsData is the payload of a KindPushConstants node.
type PushConstantsData struct {
	Layout *objects.PipelineLayout
	Stage  vk.ShaderStageFlags
	Offset uint32
	Data   []byte
}

// CmdPushConstants records a vkCmdPushConstants call and merges the
// range into the push-constant shadow.
func CmdPushConstants(cb *objects.CommandBuffer, layout *objects.PipelineLayout, stage vk.ShaderStageFlags, offset uint32, data []byte) {
	r := Of(cb)
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bound.push.merge(stage, offset, data)
	r.append(KindPushConstants, &PushConstantsData{Layout: layout, Stage: stage, Offset: offset, Data: append([]byte{}, data...)})
}

// CmdBindVertexBuffers records a vkCmdBindVertexBuffers call.
func CmdBindVertexBuffers(cb *objects.CommandBuffer, firstBinding uint32, buffers []*objects.Buffer, offsets []uint64) {
	r := Of(cb)
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	node := r.append(KindBindVertexBuffers, struct {
		FirstBinding uint32
		Buffers      []*objects.Buffer
		Offsets      []uint64
	}{firstBinding, buffers, offsets})

	for i, b := range buffers {
		idx := firstBinding + uint32(i)
		r.bound.vertexBuffers[idx] = boundVertexBuffer{Buffer: b, Offset: offsets[i]}
		r.tracker.useBuffer(b, BufferUsesVertex, node)
	}
}

// CmdBindIndexBuffer records a vkCmdBindIndexBuffer call.
func CmdBindIndexBuffer(cb *objects.CommandBuffer, buffer *objects.Buffer, offset uint64, indexType vk.IndexType) {
	r := Of(cb)
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	node := r.append(KindBindIndexBuffer, struct {
		Buffer *objects.Buffer
		Offset uint64
		Type   vk.IndexType
	}{buffer, offset, indexType})

	r.bound.indexBuffer = &boundIndexBuffer{Buffer: buffer, Offset: offset, Type: indexType}
	r.tracker.useBuffer(buffer, BufferUsesIndex, node)
}

// DrawData is the payload of a KindDraw node: the draw parameters plus
// an independent snapshot of the bound state at the time of the call
// (spec.md §4.3 point 3).
type DrawData struct {
	VertexCount, InstanceCount, FirstVertex, FirstInstance uint32
	Bound                                                  *boundStateSnapshot
}

// CmdDraw records a vkCmdDraw call.
func CmdDraw(cb *objects.CommandBuffer, vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	r := Of(cb)
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.append(KindDraw, &DrawData{
		VertexCount:   vertexCount,
		InstanceCount: instanceCount,
		FirstVertex:   firstVertex,
		FirstInstance: firstInstance,
		Bound:         r.bound.snapshot(),
	})
}

// DrawIndexedData is the payload of a KindDrawIndexed node.
type DrawIndexedData struct {
	IndexCount, InstanceCount, FirstIndex                uint32
	VertexOffset                                         int32
	FirstInstance                                        uint32
	Bound                                                *boundStateSnapshot
}

// CmdDrawIndexed records a vkCmdDrawIndexed call.
func CmdDrawIndexed(cb *objects.CommandBuffer, indexCount, instanceCount, firstIndex uint32, vertexOffset int32, firstInstance uint32) {
	r := Of(cb)
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.append(KindDrawIndexed, &DrawIndexedData{
		IndexCount:    indexCount,
		InstanceCount: instanceCount,
		FirstIndex:    firstIndex,
		VertexOffset:  vertexOffset,
		FirstInstance: firstInstance,
		Bound:         r.bound.snapshot(),
	})
}

// DispatchData is the payload of a KindDispatch node.
type DispatchData struct {
	GroupCountX, GroupCountY, GroupCountZ uint32
	Bound                                 *boundStateSnapshot
}

// CmdDispatch records a vkCmdDispatch call.
func CmdDispatch(cb *objects.CommandBuffer, x, y, z uint32) {
	r := Of(cb)
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.append(KindDispatch, &DispatchData{GroupCountX: x, GroupCountY: y, GroupCountZ: z, Bound: r.bound.snapshot()})
}

// CopyBufferData is the payload of a KindCopyBuffer node.
type CopyBufferData struct {
	Src, Dst           *objects.Buffer
	SrcOffset, DstOffset, Size uint64
}

// CmdCopyBuffer records one vkCmdCopyBuffer region as a single node.
// cmd/vklayer does not intercept vkCmdCopyBuffer, so the application's
// own copies are not recorded through it.
func CmdCopyBuffer(cb *objects.CommandBuffer, src, dst *objects.Buffer, srcOffset, dstOffset, size uint64) {
	r := Of(cb)
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	node := r.append(KindCopyBuffer, &CopyBufferData{Src: src, Dst: dst, SrcOffset: srcOffset, DstOffset: dstOffset, Size: size})
	r.tracker.useBuffer(src, BufferUsesTransferSrc, node)
	r.tracker.useBuffer(dst, BufferUsesTransferDst, node)
}

// FillBufferData is the payload of a KindFillBuffer node.
type FillBufferData struct {
	Buffer        *objects.Buffer
	Offset, Size  uint64
	Data          uint32
}

// CmdFillBuffer records a vkCmdFillBuffer call.
func CmdFillBuffer(cb *objects.CommandBuffer, buffer *objects.Buffer, offset, size uint64, data uint32) {
	r := Of(cb)
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	node := r.append(KindFillBuffer, &FillBufferData{Buffer: buffer, Offset: offset, Size: size, Data: data})
	r.tracker.useBuffer(buffer, BufferUsesTransferDst, node)
}

// UpdateBufferData is the payload of a KindUpdateBuffer node.
type UpdateBufferData struct {
	Buffer *objects.Buffer
	Offset uint64
	Data   []byte
}

// CmdUpdateBuffer records a vkCmdUpdateBuffer call.
func CmdUpdateBuffer(cb *objects.CommandBuffer, buffer *objects.Buffer, offset uint64, data []byte) {
	r := Of(cb)
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	node := r.append(KindUpdateBuffer, &UpdateBufferData{Buffer: buffer, Offset: offset, Data: append([]byte{}, data...)})
	r.tracker.useBuffer(buffer, BufferUsesTransferDst, node)
}

// PipelineBarrierData is the payload of a KindPipelineBarrier node.
type PipelineBarrierData struct {
	SrcStage, DstStage vk.PipelineStageFlags
	BufferBarriers     []vk.BufferMemoryBarrier
	ImageBarriers      []vk.ImageMemoryBarrier
}

// CmdPipelineBarrier records a vkCmdPipelineBarrier call, registering
// each image barrier's new layout as the image's expected post-command
// layout.
func CmdPipelineBarrier(cb *objects.CommandBuffer, srcStage, dstStage vk.PipelineStageFlags, bufferBarriers []vk.BufferMemoryBarrier, imageBarriers []vk.ImageMemoryBarrier, resolveImage func(vk.Image) *objects.Image, resolveBuffer func(vk.Buffer) *objects.Buffer) {
	r := Of(cb)
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	node := r.append(KindPipelineBarrier, &PipelineBarrierData{
		SrcStage: srcStage, DstStage: dstStage,
		BufferBarriers: bufferBarriers, ImageBarriers: imageBarriers,
	})

	for _, bb := range bufferBarriers {
		if b := resolveBuffer(bb.Buffer); b != nil {
			r.tracker.useBuffer(b, BufferUsesTransferDst, node)
		}
	}
	for _, ib := range imageBarriers {
		if img := resolveImage(ib.Image); img != nil {
			r.tracker.useImage(img, ImageUsesTransferDst, node, int32(ib.NewLayout), true)
		}
	}
}

// BeginRenderPassData is the payload of a KindBeginRenderPass section
// node.
type BeginRenderPassData struct {
	RenderPass  *objects.RenderPass
	Framebuffer *objects.Framebuffer
}

// CmdBeginRenderPass opens a render-pass section (spec.md §9's resolved
// Open Question: the render pass is the section boundary; subpasses are
// first-class leaf children inside it, not a second nesting level).
func CmdBeginRenderPass(cb *objects.CommandBuffer, rp *objects.RenderPass, fb *objects.Framebuffer) *Command {
	r := Of(cb)
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.openSection(KindBeginRenderPass, &BeginRenderPassData{RenderPass: rp, Framebuffer: fb})
}

// CmdNextSubpass records a vkCmdNextSubpass call as a leaf node inside
// the open render-pass section.
func CmdNextSubpass(cb *objects.CommandBuffer) {
	r := Of(cb)
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.append(KindNextSubpass, nil)
}

// CmdEndRenderPass closes the render-pass section. A mismatched End
// (closing something that isn't an open render pass) is an application
// bug, not tolerated the way label Ends are — it is reported through
// vklog so it is visible without aborting the process in release
// builds.
func CmdEndRenderPass(cb *objects.CommandBuffer) {
	r := Of(cb)
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.closeSection(KindBeginRenderPass); !ok {
		vklog.Bug("vklens: EndRenderPass with no matching BeginRenderPass open")
	}
}

// LabelData is the payload of KindBeginLabel/KindEndLabel nodes.
type LabelData struct {
	Name  string
	Color [4]float32
}

// CmdBeginDebugUtilsLabel opens a debug-label section.
func CmdBeginDebugUtilsLabel(cb *objects.CommandBuffer, name string, color [4]float32) {
	r := Of(cb)
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.openSection(KindBeginLabel, &LabelData{Name: name, Color: color})
}

// CmdEndDebugUtilsLabel closes a debug-label section. An unmatched End
// is a no-op per spec.md §4.3 — applications routinely mismatch these
// and the layer must not let that corrupt the record.
func CmdEndDebugUtilsLabel(cb *objects.CommandBuffer) {
	r := Of(cb)
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closeSection(KindBeginLabel)
}

// ExecuteCommandsData is the payload of a KindExecuteCommands node.
type ExecuteCommandsData struct {
	Secondaries []*objects.CommandBuffer
}

// CmdExecuteCommands records a vkCmdExecuteCommands call and merges each
// secondary record's resource-use tables into the primary's (spec.md
// §4.4): destruction of a resource used only by a secondary must still
// invalidate the primary.
func CmdExecuteCommands(cb *objects.CommandBuffer, secondaries []*objects.CommandBuffer) {
	r := Of(cb)
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.append(KindExecuteCommands, &ExecuteCommandsData{Secondaries: secondaries})

	for _, sec := range secondaries {
		secRecord := Of(sec)
		if secRecord == nil {
			continue
		}
		secRecord.mu.Lock()
		r.tracker.merge(secRecord.tracker)
		secRecord.mu.Unlock()
	}
}
