package objects

import "testing"

type namedOwner string

func (n namedOwner) Name() string { return string(n) }

func TestDeviceMemory_BindNonOverlapping(t *testing.T) {
	m := &DeviceMemory{Size: 1024}

	if err := m.Bind(0, 256, namedOwner("a")); err != nil {
		t.Fatalf("Bind(0,256) = %v", err)
	}
	if err := m.Bind(512, 256, namedOwner("b")); err != nil {
		t.Fatalf("Bind(512,256) = %v", err)
	}
	if err := m.Bind(256, 256, namedOwner("c")); err != nil {
		t.Fatalf("Bind(256,256) = %v", err)
	}

	got := m.Allocations()
	if len(got) != 3 {
		t.Fatalf("Allocations() len = %d, want 3", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Offset < got[i-1].Offset {
			t.Fatalf("Allocations() not sorted: %v", got)
		}
	}
}

func TestDeviceMemory_BindOverlapRejected(t *testing.T) {
	m := &DeviceMemory{Size: 1024}

	if err := m.Bind(0, 256, namedOwner("a")); err != nil {
		t.Fatalf("Bind(0,256) = %v", err)
	}
	if err := m.Bind(128, 64, namedOwner("b")); err == nil {
		t.Fatal("Bind overlapping range succeeded, want error")
	}
	if err := m.Bind(200, 100, namedOwner("c")); err == nil {
		t.Fatal("Bind overlapping end succeeded, want error")
	}
}

func TestDeviceMemory_BindExceedsSize(t *testing.T) {
	m := &DeviceMemory{Size: 100}
	if err := m.Bind(50, 100, namedOwner("a")); err == nil {
		t.Fatal("Bind exceeding memory size succeeded, want error")
	}
}

func TestDeviceMemory_Unbind(t *testing.T) {
	m := &DeviceMemory{Size: 1024}
	if err := m.Bind(0, 256, namedOwner("a")); err != nil {
		t.Fatalf("Bind = %v", err)
	}
	m.Unbind(namedOwner("a"))
	if got := m.Allocations(); len(got) != 0 {
		t.Fatalf("Allocations() after Unbind = %v, want empty", got)
	}

	// Freed range can be reused.
	if err := m.Bind(0, 256, namedOwner("b")); err != nil {
		t.Fatalf("Bind after Unbind = %v", err)
	}
}
