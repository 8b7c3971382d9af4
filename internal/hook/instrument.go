package hook

import (
	"fmt"
	"unsafe"

	"github.com/vklens/vklens/internal/objects"
	"github.com/vklens/vklens/internal/record"
	"github.com/vklens/vklens/internal/vk"
)

// defaultPipelineStatistics covers the counters most useful for
// inspecting a single draw: vertex/primitive counts into the rasterizer
// and fragment-shader invocations, mirroring the subset
// hal/vulkan/query.go documents as commonly requested.
const defaultPipelineStatistics vk.QueryPipelineStatisticFlags = 0x00000001 | // input assembly vertices
	0x00000002 | // input assembly primitives
	0x00000080 // fragment shader invocations

// PrepareQueryPool creates the query pool h's instrumentation needs
// (none for InstrumentReadback) and attaches it to h, grounded on
// hal/vulkan/query.go's vkCreateQueryPool wrapping (internal/objects's
// QueryPool doc comment).
func PrepareQueryPool(c *vk.Commands, device vk.Device, h *Hook) error {
	var info vk.QueryPoolCreateInfo
	switch h.Kind {
	case InstrumentTimestamp:
		info = vk.QueryPoolCreateInfo{
			SType:      vk.StructureTypeQueryPoolCreateInfo,
			QueryType:  vk.QueryTypeTimestamp,
			QueryCount: 2,
		}
	case InstrumentPipelineStatistics:
		info = vk.QueryPoolCreateInfo{
			SType:              vk.StructureTypeQueryPoolCreateInfo,
			QueryType:          vk.QueryTypePipelineStatistics,
			QueryCount:         1,
			PipelineStatistics: defaultPipelineStatistics,
		}
	default:
		return nil
	}

	var raw vk.QueryPool
	if res := c.CreateQueryPool(device, &info, &raw); res != vk.Success {
		return fmt.Errorf("hook: vkCreateQueryPool failed: %v", res)
	}
	h.Pool = &objects.QueryPool{Raw: raw, QueryType: int32(info.QueryType), Count: info.QueryCount}
	return nil
}

// beginInstrument/endInstrument splice the hook's chosen instrumentation
// immediately before and after the target's own driver call is issued
// (spec.md §4.8's "instrumentation around the target").
func (r *replayer) beginInstrument(n *record.Command) error {
	h := r.hook
	switch h.Kind {
	case InstrumentTimestamp:
		if h.Pool != nil {
			r.c.CmdResetQueryPool(r.cb, h.Pool.Raw, 0, h.Pool.Count)
			r.c.CmdWriteTimestamp(r.cb, vk.PipelineStageTopOfPipe, h.Pool.Raw, 0)
		}
	case InstrumentPipelineStatistics:
		if h.Pool != nil {
			r.c.CmdResetQueryPool(r.cb, h.Pool.Raw, 0, h.Pool.Count)
			r.c.CmdBeginQuery(r.cb, h.Pool.Raw, 0, uint32(vk.QueryControlPrecise))
		}
	case InstrumentReadback:
		h.ReadbackSrc = resolveReadbackSource(n)
	}
	return nil
}

func (r *replayer) endInstrument(n *record.Command) error {
	h := r.hook
	switch h.Kind {
	case InstrumentTimestamp:
		if h.Pool != nil {
			r.c.CmdWriteTimestamp(r.cb, vk.PipelineStageBottomOfPipe, h.Pool.Raw, 1)
		}
	case InstrumentPipelineStatistics:
		if h.Pool != nil {
			r.c.CmdEndQuery(r.cb, h.Pool.Raw, 0)
		}
	case InstrumentReadback:
		if h.ReadbackSrc != nil && h.ReadbackDst != nil && h.ReadbackSize > 0 {
			region := vk.BufferCopy{SrcOffset: 0, DstOffset: 0, Size: h.ReadbackSize}
			r.c.CmdCopyBuffer(r.cb, h.ReadbackSrc.Raw, h.ReadbackDst.Raw, 1, unsafe.Pointer(&region))
		}
	}
	return nil
}

// resolveReadbackSource picks the buffer a readback hook copies from:
// the target's bound index buffer if it has one, otherwise its
// lowest-binding-index bound vertex buffer. Draws with neither
// (fullscreen triangle tricks, fixed-function generation) have nothing
// readback-able and leave h.ReadbackSrc nil, which endInstrument
// silently skips.
func resolveReadbackSource(n *record.Command) *objects.Buffer {
	switch d := n.Data.(type) {
	case *record.DrawData:
		best, out := ^uint32(0), (*objects.Buffer)(nil)
		for idx, vb := range d.Bound.VertexBuffers {
			if idx < best {
				best, out = idx, vb.Buffer
			}
		}
		return out
	case *record.DrawIndexedData:
		if d.Bound.IndexBuffer != nil {
			return d.Bound.IndexBuffer.Buffer
		}
		best, out := ^uint32(0), (*objects.Buffer)(nil)
		for idx, vb := range d.Bound.VertexBuffers {
			if idx < best {
				best, out = idx, vb.Buffer
			}
		}
		return out
	}
	return nil
}
