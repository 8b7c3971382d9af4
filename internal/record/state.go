// Copyright 2025 The vklens Authors
// SPDX-License-Identifier: MIT

package record

import (
	"sort"

	"github.com/vklens/vklens/internal/objects"
	"github.com/vklens/vklens/internal/vk"
)

// pushRange is one non-overlapping, coalesced byte range of a
// pushConstantState's shadow for a single shader stage.
type pushRange struct {
	offset uint32
	bytes  []byte
}

func (r pushRange) end() uint32 { return r.offset + uint32(len(r.bytes)) }

// pushConstantState is the per-command-buffer shadow push_constants
// state from spec.md §4.3: a map from shader stage to (bytes, live
// ranges). It is carried on boundState rather than the record directly
// because CmdBindDescriptorSets with an incompatible layout invalidates
// it, the same forward-carried-then-invalidated shape as the rest of
// the bound state.
type pushConstantState struct {
	byStage map[vk.ShaderStageFlags][]pushRange
}

func newPushConstantState() *pushConstantState {
	return &pushConstantState{byStage: make(map[vk.ShaderStageFlags][]pushRange)}
}

// merge inserts data at [offset, offset+len(data)) for stage, trimming
// or removing any existing range it overlaps and coalescing with
// adjacent ranges that end up touching — a single forward pass with no
// iterator pre/post-increment bug, the corrected-merge rule from
// SPEC_FULL.md §9 (the teacher idiom this generalizes has no equivalent
// range-merge of its own; the correction is against the spec's §9 note
// about a historical off-by-one, not against any teacher code).
func (p *pushConstantState) merge(stage vk.ShaderStageFlags, offset uint32, data []byte) {
	newEnd := offset + uint32(len(data))
	ranges := p.byStage[stage]

	var kept []pushRange
	for _, r := range ranges {
		switch {
		case r.end() <= offset || r.offset >= newEnd:
			// No overlap: keep untouched.
			kept = append(kept, r)
		case r.offset < offset && r.end() > newEnd:
			// New range falls strictly inside an old one: keep the
			// surviving head and tail as two ranges.
			kept = append(kept, pushRange{offset: r.offset, bytes: append([]byte{}, r.bytes[:offset-r.offset]...)})
			kept = append(kept, pushRange{offset: newEnd, bytes: append([]byte{}, r.bytes[newEnd-r.offset:]...)})
		case r.offset < offset:
			// Overlaps from the left: keep the surviving head.
			kept = append(kept, pushRange{offset: r.offset, bytes: append([]byte{}, r.bytes[:offset-r.offset]...)})
		case r.end() > newEnd:
			// Overlaps from the right: keep the surviving tail.
			kept = append(kept, pushRange{offset: newEnd, bytes: append([]byte{}, r.bytes[newEnd-r.offset:]...)})
		default:
			// Fully covered by the new range: drop it.
		}
	}

	kept = append(kept, pushRange{offset: offset, bytes: append([]byte{}, data...)})
	sort.Slice(kept, func(i, j int) bool { return kept[i].offset < kept[j].offset })

	coalesced := kept[:0:0]
	for _, r := range kept {
		if n := len(coalesced); n > 0 && coalesced[n-1].end() == r.offset {
			coalesced[n-1].bytes = append(coalesced[n-1].bytes, r.bytes...)
			continue
		}
		coalesced = append(coalesced, r)
	}
	p.byStage[stage] = coalesced
}

// snapshot returns a deep copy of the ranges live for stage. Draw and
// dispatch nodes do not capture it: boundState.snapshot carries no push
// constants.
func (p *pushConstantState) snapshot(stage vk.ShaderStageFlags) []pushRange {
	ranges := p.byStage[stage]
	out := make([]pushRange, len(ranges))
	for i, r := range ranges {
		out[i] = pushRange{offset: r.offset, bytes: append([]byte{}, r.bytes...)}
	}
	return out
}

func (p *pushConstantState) clear() {
	p.byStage = make(map[vk.ShaderStageFlags][]pushRange)
}

// boundState is the captured-per-binding state carried forward as
// commands are recorded (spec.md §4.3): bound pipelines, vertex/index
// buffers, descriptor sets, and the push-constant shadow. Draw/dispatch
// nodes snapshot a copy of the pipelines, vertex/index buffers and
// descriptor sets so later rebinding never mutates an already-recorded
// node; the push-constant shadow is not part of that snapshot.
type boundState struct {
	graphicsPipeline *objects.GraphicsPipeline
	computePipeline  *objects.ComputePipeline

	vertexBuffers map[uint32]boundVertexBuffer
	indexBuffer   *boundIndexBuffer

	lastLayout  *objects.PipelineLayout
	boundSets   map[uint32]*objects.DescriptorSet
	push        *pushConstantState
}

type boundVertexBuffer struct {
	Buffer *objects.Buffer
	Offset uint64
}

type boundIndexBuffer struct {
	Buffer *objects.Buffer
	Offset uint64
	Type   vk.IndexType
}

func newBoundState() *boundState {
	return &boundState{
		vertexBuffers: make(map[uint32]boundVertexBuffer),
		boundSets:     make(map[uint32]*objects.DescriptorSet),
		push:          newPushConstantState(),
	}
}

// bindDescriptorSets implements the descriptor-set disturbing rule from
// spec.md §4.3 exactly: slots before firstSet are disturbed (and
// everything above the first disturbed slot cascades, mirroring
// Vulkan's own compatibility-chain rule) if incompatible with newLayout;
// the newly bound range is installed; every slot after the bound range
// is truncated.
func (b *boundState) bindDescriptorSets(newLayout *objects.PipelineLayout, firstSet uint32, sets []*objects.DescriptorSet) {
	if b.lastLayout != nil && b.lastLayout != newLayout {
		b.push.clear()
	}
	b.lastLayout = newLayout

	for i := uint32(0); i < firstSet; i++ {
		cur, ok := b.boundSets[i]
		if !ok {
			continue
		}
		want := setLayoutAt(newLayout, i)
		if cur.Layout != want {
			for j := i; j < firstSet; j++ {
				delete(b.boundSets, j)
			}
			break
		}
	}

	lastSet := firstSet
	for i, s := range sets {
		idx := firstSet + uint32(i)
		b.boundSets[idx] = s
		lastSet = idx
	}

	for idx := range b.boundSets {
		if idx > lastSet {
			delete(b.boundSets, idx)
		}
	}
}

func setLayoutAt(layout *objects.PipelineLayout, idx uint32) *objects.DescriptorSetLayout {
	if layout == nil || layout.Data == nil || int(idx) >= len(layout.Data.SetLayouts) {
		return nil
	}
	return layout.Data.SetLayouts[idx]
}

// snapshot returns a defensive copy of the bound state, used by
// Draw/Dispatch nodes so they remain correct after further binding
// calls (spec.md §4.3 point 3).
func (b *boundState) snapshot() *boundStateSnapshot {
	out := &boundStateSnapshot{
		GraphicsPipeline: b.graphicsPipeline,
		ComputePipeline:  b.computePipeline,
		IndexBuffer:      b.indexBuffer,
		VertexBuffers:    make(map[uint32]boundVertexBuffer, len(b.vertexBuffers)),
		DescriptorSets:   make(map[uint32]*objects.DescriptorSet, len(b.boundSets)),
	}
	for k, v := range b.vertexBuffers {
		out.VertexBuffers[k] = v
	}
	for k, v := range b.boundSets {
		out.DescriptorSets[k] = v
	}
	return out
}

// boundStateSnapshot is the immutable copy captured into a Draw/Dispatch
// node's Data.
type boundStateSnapshot struct {
	GraphicsPipeline *objects.GraphicsPipeline
	ComputePipeline  *objects.ComputePipeline
	VertexBuffers    map[uint32]boundVertexBuffer
	IndexBuffer      *boundIndexBuffer
	DescriptorSets   map[uint32]*objects.DescriptorSet
}
