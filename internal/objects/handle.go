// Copyright 2025 The vklens Authors
// SPDX-License-Identifier: MIT

// Package objects holds the shadow object graph: one Go struct per
// intercepted Vulkan handle type, each embedding Handle. Shadows are
// built by copying creation parameters out of the application's
// create-info (never retaining the pointer) and are pinned in place —
// callers keep *T, never T, so a shadow's address is stable for its
// whole lifetime even while stored in a Table.
package objects

import "sync"

// Handle is the common header every shadow object embeds: a debug name
// set by vkSetDebugUtilsObjectNameEXT, an opaque tag map set by
// vkSetDebugUtilsObjectTagEXT, and a back-reference to the owning
// device. This mirrors the core/hal pointer pair the teacher's root
// wrapper types (Buffer, Texture, ...) embed, generalized from "core
// object plus optional hal object" to "debug metadata plus owning
// device" because the layer has no HAL split of its own — the driver is
// the only backend.
type Handle struct {
	mu     sync.Mutex
	name   string
	tags   map[uint64][]byte
	Device *Device
}

// SetName sets the object's debug name.
func (h *Handle) SetName(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.name = name
}

// Name returns the object's debug name, or "" if never set.
func (h *Handle) Name() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.name
}

// SetTag stores tag data under name, overwriting any previous value.
func (h *Handle) SetTag(name uint64, data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.tags == nil {
		h.tags = make(map[uint64][]byte)
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	h.tags[name] = cp
}

// Tag returns the tag data stored under name, or nil if none.
func (h *Handle) Tag(name uint64) []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.tags[name]
}
