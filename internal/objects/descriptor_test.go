package objects

import "testing"

func TestDescriptorSet_WriteAndReadBack(t *testing.T) {
	ds := &DescriptorSet{}

	ds.Write(0, 0, DescriptorSlot{Kind: DescriptorSlotBuffer, BufferOffset: 16, BufferRange: 64})
	ds.Write(0, 2, DescriptorSlot{Kind: DescriptorSlotImage})

	got := ds.Slot(0, 0)
	if got.Kind != DescriptorSlotBuffer || got.BufferOffset != 16 {
		t.Fatalf("Slot(0,0) = %+v", got)
	}

	// Sparse write to index 2 must leave index 1 as an implicit empty slot.
	if got := ds.Slot(0, 1); got.Kind != DescriptorSlotEmpty {
		t.Fatalf("Slot(0,1) = %+v, want empty", got)
	}
	if got := ds.Slot(0, 2); got.Kind != DescriptorSlotImage {
		t.Fatalf("Slot(0,2) = %+v, want image", got)
	}

	// Unwritten binding returns the zero value.
	if got := ds.Slot(5, 0); got.Kind != DescriptorSlotEmpty {
		t.Fatalf("Slot(5,0) = %+v, want empty", got)
	}
}
