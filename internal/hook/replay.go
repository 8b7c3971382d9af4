package hook

import (
	"fmt"
	"unsafe"

	"github.com/vklens/vklens/internal/objects"
	"github.com/vklens/vklens/internal/record"
	"github.com/vklens/vklens/internal/vk"
)

// boundVertexBuffers mirrors internal/record.CmdBindVertexBuffers'
// anonymous Data payload exactly, field for field, so a type switch can
// recognize it without internal/record exporting a named type for it.
type boundVertexBuffers = struct {
	FirstBinding uint32
	Buffers      []*objects.Buffer
	Offsets      []uint64
}

// boundIndexBufferData mirrors internal/record.CmdBindIndexBuffer's
// anonymous Data payload.
type boundIndexBufferData = struct {
	Buffer *objects.Buffer
	Offset uint64
	Type   vk.IndexType
}

// BuildSecondary re-records root's command tree into cb up to and
// including the command Locate(root, h.Target) identifies, splicing in
// h.Kind's instrumentation around it (spec.md §4.8). cb must already be
// in the recording state (vkBeginCommandBuffer already called). It
// calls through c the same way the original commands would have, using
// each node's shadow objects for their Raw driver handles.
func BuildSecondary(c *vk.Commands, cb vk.CommandBuffer, root *record.Command, h *Hook) error {
	target, err := Locate(root, h.Target)
	if err != nil {
		return err
	}

	r := &replayer{c: c, cb: cb, target: target, hook: h}
	found, err := r.walk(root.Children)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("hook: target command not reached while replaying its own record")
	}
	return nil
}

type replayer struct {
	c      *vk.Commands
	cb     vk.CommandBuffer
	target *record.Command
	hook   *Hook
}

// walk replays nodes in order, recursing into render-pass and
// debug-label sections, stopping as soon as the target is reached (the
// secondary only needs to reproduce state up to and including it —
// spec.md §4.8 — so nothing after the target is replayed, and a render
// pass the target sits inside is closed immediately afterward rather
// than continuing through its remaining subpasses).
func (r *replayer) walk(nodes []*record.Command) (found bool, err error) {
	for _, n := range nodes {
		switch n.Kind {
		case record.KindBeginRenderPass:
			if err := r.beginRenderPass(n); err != nil {
				return false, err
			}
			inside, err := r.walk(n.Children)
			if err != nil {
				return false, err
			}
			if inside {
				r.c.CmdEndRenderPass(r.cb)
				return true, nil
			}
			r.c.CmdEndRenderPass(r.cb)
			continue

		case record.KindBeginLabel:
			// Cosmetic only; the capture buffer never presents, so debug
			// labels are dropped rather than replayed.
			inside, err := r.walk(n.Children)
			if err != nil {
				return false, err
			}
			if inside {
				return true, nil
			}
			continue
		}

		isTarget := n == r.target
		if isTarget {
			if err := r.beginInstrument(n); err != nil {
				return false, err
			}
		}

		if err := r.dispatchLeaf(n); err != nil {
			return false, err
		}

		if isTarget {
			if err := r.endInstrument(n); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

func (r *replayer) beginRenderPass(n *record.Command) error {
	data, ok := n.Data.(*record.BeginRenderPassData)
	if !ok || data.RenderPass == nil || data.Framebuffer == nil {
		return fmt.Errorf("hook: malformed BeginRenderPass node")
	}
	info := &vk.RenderPassBeginInfo{
		SType:       vk.StructureTypeRenderPassBeginInfo,
		RenderPass:  data.RenderPass.Raw,
		Framebuffer: data.Framebuffer.Raw,
		RenderAreaW: data.Framebuffer.Width,
		RenderAreaH: data.Framebuffer.Height,
	}
	r.c.CmdBeginRenderPass(r.cb, info, vk.SubpassContentsInline)
	return nil
}

func (r *replayer) dispatchLeaf(n *record.Command) error {
	if n.Kind == record.KindNextSubpass {
		r.c.CmdNextSubpass(r.cb, vk.SubpassContentsInline)
		return nil
	}

	switch d := n.Data.(type) {
	case *record.BindPipelineData:
		var pipeline vk.Pipeline
		if d.BindPoint == vk.PipelineBindPointGraphics && d.Graphics != nil {
			pipeline = d.Graphics.Raw
		} else if d.Compute != nil {
			pipeline = d.Compute.Raw
		}
		r.c.CmdBindPipeline(r.cb, d.BindPoint, pipeline)

	case *record.BindDescriptorSetsData:
		sets := make([]vk.DescriptorSet, len(d.Sets))
		for i, s := range d.Sets {
			sets[i] = s.Raw
		}
		var layout vk.PipelineLayout
		if d.Layout != nil {
			layout = d.Layout.Raw
		}
		r.c.CmdBindDescriptorSets(r.cb, d.BindPoint, layout, d.FirstSet, sets, nil)

	case *record.PushConstantsData:
		if len(d.Data) == 0 || d.Layout == nil {
			return nil
		}
		r.c.CmdPushConstants(r.cb, d.Layout.Raw, d.Stage, d.Offset, uint32(len(d.Data)), unsafe.Pointer(&d.Data[0]))

	case *record.DrawData:
		r.c.CmdDraw(r.cb, d.VertexCount, d.InstanceCount, d.FirstVertex, d.FirstInstance)

	case *record.DrawIndexedData:
		r.c.CmdDrawIndexed(r.cb, d.IndexCount, d.InstanceCount, d.FirstIndex, d.VertexOffset, d.FirstInstance)

	case *record.DispatchData:
		r.c.CmdDispatch(r.cb, d.GroupCountX, d.GroupCountY, d.GroupCountZ)

	case *record.CopyBufferData:
		if d.Src == nil || d.Dst == nil {
			return nil
		}
		region := vk.BufferCopy{SrcOffset: d.SrcOffset, DstOffset: d.DstOffset, Size: d.Size}
		r.c.CmdCopyBuffer(r.cb, d.Src.Raw, d.Dst.Raw, 1, unsafe.Pointer(&region))

	case *record.FillBufferData:
		if d.Buffer == nil {
			return nil
		}
		r.c.CmdFillBuffer(r.cb, d.Buffer.Raw, d.Offset, d.Size, d.Data)

	case *record.UpdateBufferData:
		if d.Buffer == nil || len(d.Data) == 0 {
			return nil
		}
		r.c.CmdUpdateBuffer(r.cb, d.Buffer.Raw, d.Offset, uint64(len(d.Data)), unsafe.Pointer(&d.Data[0]))

	case *record.PipelineBarrierData:
		var bufPtr, imgPtr unsafe.Pointer
		if len(d.BufferBarriers) > 0 {
			bufPtr = unsafe.Pointer(&d.BufferBarriers[0])
		}
		if len(d.ImageBarriers) > 0 {
			imgPtr = unsafe.Pointer(&d.ImageBarriers[0])
		}
		r.c.CmdPipelineBarrier(r.cb, d.SrcStage, d.DstStage, 0,
			0, nil,
			uint32(len(d.BufferBarriers)), bufPtr,
			uint32(len(d.ImageBarriers)), imgPtr)

	case *record.ExecuteCommandsData:
		buffers := make([]vk.CommandBuffer, len(d.Secondaries))
		for i, sec := range d.Secondaries {
			buffers[i] = sec.Raw
		}
		r.c.CmdExecuteCommands(r.cb, buffers)

	case boundVertexBuffers:
		if len(d.Buffers) == 0 {
			return nil
		}
		buffers := make([]vk.Buffer, len(d.Buffers))
		for i, b := range d.Buffers {
			buffers[i] = b.Raw
		}
		r.c.CmdBindVertexBuffers(r.cb, d.FirstBinding, buffers, d.Offsets)

	case boundIndexBufferData:
		if d.Buffer == nil {
			return nil
		}
		r.c.CmdBindIndexBuffer(r.cb, d.Buffer.Raw, d.Offset, d.Type)

	case nil:
		// No node besides KindNextSubpass (handled above) carries nil
		// Data; KindEndRenderPass/KindEndLabel never become tree nodes at
		// all — CmdEndRenderPass/CmdEndDebugUtilsLabel only pop the
		// section stack (internal/record/commands.go).
	}
	return nil
}
