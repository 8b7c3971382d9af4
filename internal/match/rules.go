// Copyright 2025 The vklens Authors
// SPDX-License-Identifier: MIT

package match

import (
	"github.com/vklens/vklens/internal/objects"
	"github.com/vklens/vklens/internal/record"
	"github.com/vklens/vklens/internal/vk"
)

// nodeMatch implements spec.md §4.7's node-match contract: a pair
// (match, total) with 0 <= match <= total, and total == -1 meaning the
// two nodes are structurally incomparable and must prune the search.
func nodeMatch(a, b *record.Command) (match, total float64) {
	if a.Kind != b.Kind {
		return 0, -1
	}

	switch a.Kind {
	case record.KindPipelineBarrier:
		return matchBarriers(a.Data.(*record.PipelineBarrierData), b.Data.(*record.PipelineBarrierData))
	case record.KindDraw:
		return matchDraw(a.Data.(*record.DrawData), b.Data.(*record.DrawData))
	case record.KindDrawIndexed:
		return matchDrawIndexed(a.Data.(*record.DrawIndexedData), b.Data.(*record.DrawIndexedData))
	case record.KindDispatch:
		return matchDispatch(a.Data.(*record.DispatchData), b.Data.(*record.DispatchData))
	case record.KindBeginRenderPass:
		return matchRenderPassBegin(a, b)
	case record.KindBeginLabel, record.KindExecuteCommands, record.KindRoot:
		return matchSection(a, b)
	default:
		return matchLeafByEquality(a, b)
	}
}

// matchLeafByEquality covers every leaf kind with no richer scoring
// rule of its own (bind pipeline, bind descriptor sets, push constants
// outside a draw's snapshot, vertex/index buffer binds, buffer copies,
// fills, updates, next-subpass): two nodes of the same kind
// either fully match or don't, there being no partial-credit dimension
// spec.md §4.7 defines for them.
func matchLeafByEquality(a, b *record.Command) (match, total float64) {
	if dataEqual(a.Data, b.Data) {
		return 1, 1
	}
	return 0, 1
}

// matchBarriers implements the "unordered-multiset match" rule: score
// proportionally to the number of equal stage-mask/barrier-entry pairs
// found by greedily consuming each of b's entries against a's.
func matchBarriers(a, b *record.PipelineBarrierData) (match, total float64) {
	stageScore := 0.0
	if a.SrcStage == b.SrcStage && a.DstStage == b.DstStage {
		stageScore = 1
	}

	bufA := append([]vk.BufferMemoryBarrier{}, a.BufferBarriers...)
	bufB := append([]vk.BufferMemoryBarrier{}, b.BufferBarriers...)
	imgA := append([]vk.ImageMemoryBarrier{}, a.ImageBarriers...)
	imgB := append([]vk.ImageMemoryBarrier{}, b.ImageBarriers...)

	matched := 0.0
	used := make([]bool, len(bufB))
	for _, ba := range bufA {
		for i, bb := range bufB {
			if !used[i] && ba == bb {
				used[i] = true
				matched++
				break
			}
		}
	}
	usedImg := make([]bool, len(imgB))
	for _, ia := range imgA {
		for i, ib := range imgB {
			if !usedImg[i] && ia == ib {
				usedImg[i] = true
				matched++
				break
			}
		}
	}

	entryTotal := float64(maxInt(len(bufA)+len(imgA), len(bufB)+len(imgB)))
	return stageScore + matched, 1 + entryTotal
}

// matchDraw requires exact primitive-count and pipeline-identity match;
// vertex/index buffer identity contributes sub-scores rather than gating
// the match entirely. Push constants are not compared: the draw's
// bound-state snapshot does not carry them.
func matchDraw(a, b *record.DrawData) (match, total float64) {
	if a.VertexCount != b.VertexCount || a.InstanceCount != b.InstanceCount ||
		a.FirstVertex != b.FirstVertex || a.FirstInstance != b.FirstInstance {
		return 0, -1
	}
	if a.Bound.GraphicsPipeline != b.Bound.GraphicsPipeline || a.Bound.ComputePipeline != b.Bound.ComputePipeline {
		return 0, -1
	}
	sm, st := scoreIndexBuffer(a.Bound.IndexBuffer, b.Bound.IndexBuffer)
	vm, vt := scoreVertexBuffers(a.Bound.VertexBuffers, b.Bound.VertexBuffers)
	return 1 + sm + vm, 1 + st + vt
}

func matchDrawIndexed(a, b *record.DrawIndexedData) (match, total float64) {
	if a.IndexCount != b.IndexCount || a.InstanceCount != b.InstanceCount ||
		a.FirstIndex != b.FirstIndex || a.VertexOffset != b.VertexOffset ||
		a.FirstInstance != b.FirstInstance {
		return 0, -1
	}
	if a.Bound.GraphicsPipeline != b.Bound.GraphicsPipeline || a.Bound.ComputePipeline != b.Bound.ComputePipeline {
		return 0, -1
	}
	sm, st := scoreIndexBuffer(a.Bound.IndexBuffer, b.Bound.IndexBuffer)
	vm, vt := scoreVertexBuffers(a.Bound.VertexBuffers, b.Bound.VertexBuffers)
	return 1 + sm + vm, 1 + st + vt
}

func matchDispatch(a, b *record.DispatchData) (match, total float64) {
	if a.GroupCountX != b.GroupCountX || a.GroupCountY != b.GroupCountY || a.GroupCountZ != b.GroupCountZ {
		return 0, -1
	}
	if a.Bound.GraphicsPipeline != b.Bound.GraphicsPipeline || a.Bound.ComputePipeline != b.Bound.ComputePipeline {
		return 0, -1
	}
	return 1, 1
}

// scoreIndexBuffer and scoreVertexBuffers score the identity/offset
// sub-dimensions spec.md §4.7 calls out for draws/dispatches.
// boundStateSnapshot's field types (boundIndexBuffer, boundVertexBuffer)
// are unexported in package record, so these stay generic over the
// inferred type rather than naming it.
func scoreIndexBuffer[T comparable](a, b *T) (match, total float64) {
	if a == nil && b == nil {
		return 1, 1
	}
	if a == nil || b == nil {
		return 0, 1
	}
	if *a == *b {
		return 1, 1
	}
	return 0, 1
}

func scoreVertexBuffers[T comparable](a, b map[uint32]T) (match, total float64) {
	total = float64(maxInt(len(a), len(b)))
	for idx, va := range a {
		if vb, ok := b[idx]; ok && va == vb {
			match++
		}
	}
	return match, total
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// matchRenderPassBegin requires structurally equal render-pass
// descriptions (compared by value, not by handle, to survive driver
// recreation) and compares attachments by identity except for a
// swapchain special case: two different swapchain images from the same
// swapchain are treated as equivalent attachments (spec.md §4.7).
func matchRenderPassBegin(a, b *record.Command) (match, total float64) {
	da := a.Data.(*record.BeginRenderPassData)
	db := b.Data.(*record.BeginRenderPassData)

	if !renderPassDescriptionsEqual(da.RenderPass, db.RenderPass) {
		return 0, -1
	}

	attA := attachmentsOf(da.Framebuffer)
	attB := attachmentsOf(db.Framebuffer)
	if len(attA) != len(attB) {
		return 0, -1
	}

	total = float64(len(attA)) + 1
	match = 1 // description match

	for i := range attA {
		if attachmentsMatch(attA[i], attB[i]) {
			match++
		}
	}

	selfMatch, selfTotal := match, total
	childA, childB := a.Children, b.Children
	cm, ct := alignChildren(childA, childB)
	return selfMatch + cm, selfTotal + ct
}

// matchSection combines a section node's own self-match (trivially 1/1
// for root and label/execute-commands sections, which carry no
// comparable payload beyond their kind and label text) with its
// children's alignment (spec.md §4.7: "section commands combine their
// own self-match with their children's alignment").
func matchSection(a, b *record.Command) (match, total float64) {
	self, selfTotal := 1.0, 1.0
	if a.Kind == record.KindBeginLabel {
		la := a.Data.(*record.LabelData)
		lb := b.Data.(*record.LabelData)
		if la.Name != lb.Name {
			self = 0
		}
	}
	cm, ct := alignChildren(a.Children, b.Children)
	return self + cm, selfTotal + ct
}

// alignChildren recursively matches two sections' children via the
// same search, folding the sub-alignment's score into the parent's.
func alignChildren(as, bs []*record.Command) (match, total float64) {
	if len(as) == 0 && len(bs) == 0 {
		return 0, 0
	}
	result := Sequences(as, bs)
	return result.Score, float64(maxInt(len(as), len(bs)))
}

func attachmentsOf(fb *objects.Framebuffer) []*objects.ImageView {
	if fb == nil {
		return nil
	}
	return fb.Attachments
}

func attachmentsMatch(a, b *objects.ImageView) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Image != nil && b.Image != nil && a.Image.Swapchain != nil && a.Image.Swapchain == b.Image.Swapchain {
		return true
	}
	return false
}

// renderPassDescriptionsEqual compares two render passes structurally
// rather than by handle, per spec.md §4.7, so a render pass recreated
// between frames with identical attachment/subpass descriptions still
// matches.
func renderPassDescriptionsEqual(a, b *objects.RenderPass) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.Data == nil || b.Data == nil {
		return false
	}
	return a.Data.DescriptionEqual(b.Data)
}

// dataEqual compares two Command.Data payloads for the leaf kinds that
// match on plain equality. Slice-bearing payloads are compared
// field-by-field rather than with == (which would panic on a
// non-comparable struct), following the same by-value comparison style
// core/track uses for its own usage-compatibility checks.
func dataEqual(a, b any) bool {
	switch av := a.(type) {
	case *record.BindPipelineData:
		bv, ok := b.(*record.BindPipelineData)
		return ok && av.BindPoint == bv.BindPoint && av.Graphics == bv.Graphics && av.Compute == bv.Compute
	case *record.BindDescriptorSetsData:
		bv, ok := b.(*record.BindDescriptorSetsData)
		if !ok || av.BindPoint != bv.BindPoint || av.Layout != bv.Layout || av.FirstSet != bv.FirstSet || len(av.Sets) != len(bv.Sets) {
			return false
		}
		for i := range av.Sets {
			if av.Sets[i] != bv.Sets[i] {
				return false
			}
		}
		return true
	case *record.PushConstantsData:
		bv, ok := b.(*record.PushConstantsData)
		return ok && av.Layout == bv.Layout && av.Stage == bv.Stage && av.Offset == bv.Offset && string(av.Data) == string(bv.Data)
	case struct {
		FirstBinding uint32
		Buffers      []*objects.Buffer
		Offsets      []uint64
	}:
		bv, ok := b.(struct {
			FirstBinding uint32
			Buffers      []*objects.Buffer
			Offsets      []uint64
		})
		if !ok || av.FirstBinding != bv.FirstBinding || len(av.Buffers) != len(bv.Buffers) || len(av.Offsets) != len(bv.Offsets) {
			return false
		}
		for i := range av.Buffers {
			if av.Buffers[i] != bv.Buffers[i] {
				return false
			}
		}
		for i := range av.Offsets {
			if av.Offsets[i] != bv.Offsets[i] {
				return false
			}
		}
		return true
	case struct {
		Buffer *objects.Buffer
		Offset uint64
		Type   vk.IndexType
	}:
		bv, ok := b.(struct {
			Buffer *objects.Buffer
			Offset uint64
			Type   vk.IndexType
		})
		return ok && av == bv
	case *record.CopyBufferData:
		bv, ok := b.(*record.CopyBufferData)
		return ok && *av == *bv
	case *record.FillBufferData:
		bv, ok := b.(*record.FillBufferData)
		return ok && *av == *bv
	case *record.UpdateBufferData:
		bv, ok := b.(*record.UpdateBufferData)
		return ok && av.Buffer == bv.Buffer && av.Offset == bv.Offset && string(av.Data) == string(bv.Data)
	case nil:
		return b == nil
	default:
		return false
	}
}
