// Copyright 2025 The vklens Authors
// SPDX-License-Identifier: MIT

package main

import (
	"testing"
	"unsafe"

	"github.com/vklens/vklens/internal/objects"
	"github.com/vklens/vklens/internal/overlay"
	"github.com/vklens/vklens/internal/vk"
)

// fakeDispatchable allocates a machine word a fake dispatchable handle can
// point at, mirroring how a real loader-owned VkInstance/VkDevice points at
// its own dispatch table.
func fakeDispatchable(key uintptr) uintptr {
	cell := new(uintptr)
	*cell = key
	return uintptr(unsafe.Pointer(cell))
}

func TestInstanceRegistry_RoundTrips(t *testing.T) {
	handle := vk.Instance(fakeDispatchable(0xA11CE))
	st := &instanceState{shadow: &objects.Instance{}}

	registerInstance(handle, st)
	defer unregisterInstance(handle)

	if got := lookupInstance(handle); got != st {
		t.Fatalf("lookupInstance returned %v, want %v", got, st)
	}

	unregisterInstance(handle)
	if got := lookupInstance(handle); got != nil {
		t.Fatalf("expected nil after unregister, got %v", got)
	}
}

func TestDeviceRegistry_RoundTrips(t *testing.T) {
	handle := vk.Device(fakeDispatchable(0xB0B))
	st := &deviceState{shadow: &objects.Device{}}

	registerDevice(handle, st)
	if got := lookupDevice(handle); got != st {
		t.Fatalf("lookupDevice returned %v, want %v", got, st)
	}

	unregisterDevice(handle)
	if got := lookupDevice(handle); got != nil {
		t.Fatalf("expected nil after unregister, got %v", got)
	}
}

func TestOverlayRegistry_RoundTrips(t *testing.T) {
	o := overlay.New()
	defer o.Close()

	h := registerOverlay(o)
	if got := lookupOverlay(h); got != o {
		t.Fatalf("lookupOverlay returned %v, want %v", got, o)
	}

	removed := unregisterOverlay(h)
	if removed != o {
		t.Fatalf("unregisterOverlay returned %v, want %v", removed, o)
	}
	if got := lookupOverlay(h); got != nil {
		t.Fatalf("expected nil after unregister, got %v", got)
	}
}

func TestOverlayRegistry_HandlesAreDistinct(t *testing.T) {
	a, b := overlay.New(), overlay.New()
	defer a.Close()
	defer b.Close()

	ha := registerOverlay(a)
	hb := registerOverlay(b)
	defer unregisterOverlay(ha)
	defer unregisterOverlay(hb)

	if ha == hb {
		t.Fatalf("expected distinct handles, got %d and %d", ha, hb)
	}
}
