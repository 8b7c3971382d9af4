// Copyright 2025 The vklens Authors
// SPDX-License-Identifier: MIT

package dispatch

import "sync"

// Key is the dispatch-key word every dispatchable Vulkan handle points at
// as its first member (spec.md §4.1): VkInstance, VkPhysicalDevice,
// VkDevice, VkQueue and VkCommandBuffer are all, from the loader's
// perspective, pointers to a struct whose first field is a pointer to a
// dispatch table. The layer borrows that same word as a process-wide
// lookup key instead of allocating its own ID space for dispatchable
// objects, because the loader already guarantees it is unique and stable
// for the object's lifetime.
type Key uintptr

// entry is the value stored for a bound Key: the shadow alone, with no
// type tag, so Find's caller asserts it to the concrete shadow type it
// expects and the table itself needs no knowledge of internal/objects.
type entry struct {
	shadow any
}

// Global is the single process-wide table binding dispatch keys to their
// shadow objects, generalizing core.Hub's per-category *Registry fields
// to one flat map: a dispatchable handle's category is never ambiguous
// given its key, so a single map replaces Hub's one-field-per-resource-
// kind layout.
type Global struct {
	mu    sync.RWMutex
	byKey map[Key]entry
}

var global = &Global{byKey: make(map[Key]entry)}

// Instance returns the process-wide dispatch table. There is exactly one
// per process, matching spec.md §9's "the process-wide dispatch-key table
// is a package-level singleton, lazily populated as instances and devices
// are created."
func Instance() *Global { return global }

// Bind registers shadow under key. Called once per dispatchable object,
// from CreateInstance/CreateDevice/GetDeviceQueue and from command buffer
// allocation; Bind takes only the table's own lock.
func (g *Global) Bind(key Key, shadow any) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.byKey[key] = entry{shadow: shadow}
}

// Find returns the shadow bound to key, or nil if key is unbound — the
// layer's every intercepted entry point starts by calling Find on its
// first dispatchable argument to recover the shadow before doing
// anything else (spec.md §4.1).
func (g *Global) Find(key Key) any {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.byKey[key].shadow
}

// Unbind removes key, called from DestroyInstance/DestroyDevice and
// command buffer freeing.
func (g *Global) Unbind(key Key) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.byKey, key)
}

// Len reports how many dispatchable handles are currently bound.
func (g *Global) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.byKey)
}
