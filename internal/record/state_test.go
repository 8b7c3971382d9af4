package record

import (
	"bytes"
	"testing"

	"github.com/vklens/vklens/internal/objects"
	"github.com/vklens/vklens/internal/vk"
)

func TestPushConstantState_MergeIdempotent(t *testing.T) {
	p := newPushConstantState()
	data := []byte{1, 2, 3, 4}

	p.merge(vk.ShaderStageFlags(1), 0, data)
	first := p.snapshot(vk.ShaderStageFlags(1))

	p.merge(vk.ShaderStageFlags(1), 0, data)
	second := p.snapshot(vk.ShaderStageFlags(1))

	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("want one coalesced range, got %d then %d", len(first), len(second))
	}
	if !bytes.Equal(first[0].bytes, second[0].bytes) {
		t.Fatalf("merge not idempotent: %v != %v", first[0].bytes, second[0].bytes)
	}
}

func TestPushConstantState_MergeCoalescesAdjacent(t *testing.T) {
	p := newPushConstantState()
	p.merge(vk.ShaderStageFlags(1), 0, []byte{1, 2})
	p.merge(vk.ShaderStageFlags(1), 2, []byte{3, 4})

	got := p.snapshot(vk.ShaderStageFlags(1))
	if len(got) != 1 {
		t.Fatalf("want one coalesced range after adjacent pushes, got %d", len(got))
	}
	if !bytes.Equal(got[0].bytes, []byte{1, 2, 3, 4}) {
		t.Fatalf("coalesced bytes = %v, want [1 2 3 4]", got[0].bytes)
	}
}

func TestPushConstantState_MergeOverwritesOverlap(t *testing.T) {
	p := newPushConstantState()
	p.merge(vk.ShaderStageFlags(1), 0, []byte{1, 2, 3, 4})
	p.merge(vk.ShaderStageFlags(1), 1, []byte{9, 9})

	got := p.snapshot(vk.ShaderStageFlags(1))
	var total []byte
	for _, r := range got {
		total = append(total, r.bytes...)
	}
	if !bytes.Equal(total, []byte{1, 9, 9, 4}) {
		t.Fatalf("total bytes = %v, want [1 9 9 4]", total)
	}
}

func TestPushConstantState_MergeInsideExistingRangeSplits(t *testing.T) {
	p := newPushConstantState()
	p.merge(vk.ShaderStageFlags(1), 0, []byte{1, 2, 3, 4, 5, 6})
	p.merge(vk.ShaderStageFlags(1), 2, []byte{9, 9})

	got := p.snapshot(vk.ShaderStageFlags(1))
	if len(got) != 3 {
		t.Fatalf("want head/new/tail split into 3 ranges, got %d: %+v", len(got), got)
	}
}

func TestBoundState_BindDescriptorSets_DisturbsIncompatiblePrefix(t *testing.T) {
	layoutA := &objects.PipelineLayout{Data: &objects.PipelineLayoutData{
		SetLayouts: []*objects.DescriptorSetLayout{{Raw: 1}, {Raw: 2}, {Raw: 3}},
	}}
	layoutB := &objects.PipelineLayout{Data: &objects.PipelineLayoutData{
		SetLayouts: []*objects.DescriptorSetLayout{{Raw: 9}, {Raw: 2}, {Raw: 3}},
	}}

	b := newBoundState()
	setAtA0 := &objects.DescriptorSet{Layout: layoutA.Data.SetLayouts[0]}
	setAtA1 := &objects.DescriptorSet{Layout: layoutA.Data.SetLayouts[1]}
	setAtA2 := &objects.DescriptorSet{Layout: layoutA.Data.SetLayouts[2]}

	b.bindDescriptorSets(layoutA, 0, []*objects.DescriptorSet{setAtA0, setAtA1, setAtA2})
	if len(b.boundSets) != 3 {
		t.Fatalf("after initial bind, boundSets = %v, want 3 entries", b.boundSets)
	}

	// Re-bind only set 2 against layoutB, whose set-0 layout differs
	// from what's currently bound at index 0: per the disturbing rule,
	// slots 0 and 1 (everything from the first incompatible index
	// upward) must be cleared even though only set 2 was touched.
	newSet2 := &objects.DescriptorSet{Layout: layoutB.Data.SetLayouts[2]}
	b.bindDescriptorSets(layoutB, 2, []*objects.DescriptorSet{newSet2})

	if _, ok := b.boundSets[0]; ok {
		t.Error("slot 0 should have been disturbed")
	}
	if _, ok := b.boundSets[1]; ok {
		t.Error("slot 1 should have been disturbed (cascades from slot 0)")
	}
	if got := b.boundSets[2]; got != newSet2 {
		t.Errorf("slot 2 = %v, want newly bound set", got)
	}
}

func TestBoundState_BindDescriptorSets_TruncatesTrailingSlots(t *testing.T) {
	layout := &objects.PipelineLayout{Data: &objects.PipelineLayoutData{
		SetLayouts: []*objects.DescriptorSetLayout{{}, {}, {}},
	}}
	b := newBoundState()
	s0 := &objects.DescriptorSet{Layout: layout.Data.SetLayouts[0]}
	s1 := &objects.DescriptorSet{Layout: layout.Data.SetLayouts[1]}
	s2 := &objects.DescriptorSet{Layout: layout.Data.SetLayouts[2]}
	b.bindDescriptorSets(layout, 0, []*objects.DescriptorSet{s0, s1, s2})

	// Re-bind only set 0; set 1 and 2 are not part of this call and
	// must be truncated.
	newS0 := &objects.DescriptorSet{Layout: layout.Data.SetLayouts[0]}
	b.bindDescriptorSets(layout, 0, []*objects.DescriptorSet{newS0})

	if len(b.boundSets) != 1 {
		t.Fatalf("boundSets = %v, want only slot 0", b.boundSets)
	}
	if b.boundSets[0] != newS0 {
		t.Errorf("slot 0 = %v, want newly bound set", b.boundSets[0])
	}
}

func TestBoundState_BindDescriptorSets_IncompatibleLayoutClearsPushConstants(t *testing.T) {
	layoutA := &objects.PipelineLayout{Data: &objects.PipelineLayoutData{}}
	layoutB := &objects.PipelineLayout{Data: &objects.PipelineLayoutData{}}

	b := newBoundState()
	b.push.merge(vk.ShaderStageFlags(1), 0, []byte{1, 2, 3})
	b.bindDescriptorSets(layoutA, 0, nil)
	if len(b.push.snapshot(vk.ShaderStageFlags(1))) == 0 {
		t.Fatal("push constants cleared on first bind with no prior layout set incorrectly")
	}

	b.bindDescriptorSets(layoutB, 0, nil)
	if got := b.push.snapshot(vk.ShaderStageFlags(1)); len(got) != 0 {
		t.Fatalf("push constants not cleared after incompatible layout bind: %v", got)
	}
}
