// Copyright 2025 The vklens Authors
// SPDX-License-Identifier: MIT

package objects

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vklens/vklens/internal/vk"
)

// Allocation records one (offset, size, owner) range bound within a
// DeviceMemory, spec.md §3's allocation record.
type Allocation struct {
	Offset uint64
	Size   uint64
	Owner  Handle2
}

// Handle2 identifies the resource a memory allocation belongs to without
// requiring DeviceMemory to import a concrete Buffer/Image type back —
// only the debug name is needed for introspection, so the owner is kept
// as an interface rather than a pointer union.
type Handle2 interface {
	Name() string
}

// DeviceMemory shadows a VkDeviceMemory. Unlike
// hal/vulkan/memory.BuddyAllocator, the layer never sub-allocates GPU
// memory itself — it only shadows the application's own
// vkAllocateMemory call and tracks which resources the application has
// bound into which byte ranges, so a flat sorted allocation list
// (spec.md §3) replaces the buddy block tree: there is nothing here to
// split or merge, only to insert and remove.
type DeviceMemory struct {
	Handle

	Raw            vk.DeviceMemory
	Size           uint64
	MemoryTypeIdx  uint32

	mu          sync.Mutex
	allocations []Allocation
}

// Bind records that owner occupies [offset, offset+size) within this
// memory object. Returns an error if the range overlaps an existing
// allocation — vkBindBufferMemory/vkBindImageMemory with an overlapping
// range is a validation failure the driver itself would also reject, but
// the layer's own bookkeeping must not silently accept it.
func (m *DeviceMemory) Bind(offset, size uint64, owner Handle2) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	end := offset + size
	if end > m.Size {
		return fmt.Errorf("vklens: allocation [%d, %d) exceeds memory size %d", offset, end, m.Size)
	}

	idx := sort.Search(len(m.allocations), func(i int) bool {
		return m.allocations[i].Offset >= offset
	})
	if idx > 0 {
		prev := m.allocations[idx-1]
		if prev.Offset+prev.Size > offset {
			return fmt.Errorf("vklens: allocation [%d, %d) overlaps existing [%d, %d)", offset, end, prev.Offset, prev.Offset+prev.Size)
		}
	}
	if idx < len(m.allocations) && m.allocations[idx].Offset < end {
		next := m.allocations[idx]
		return fmt.Errorf("vklens: allocation [%d, %d) overlaps existing [%d, %d)", offset, end, next.Offset, next.Offset+next.Size)
	}

	inserted := Allocation{Offset: offset, Size: size, Owner: owner}
	m.allocations = append(m.allocations, Allocation{})
	copy(m.allocations[idx+1:], m.allocations[idx:])
	m.allocations[idx] = inserted
	return nil
}

// Unbind removes the allocation belonging to owner, called when owner is
// destroyed.
func (m *DeviceMemory) Unbind(owner Handle2) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, a := range m.allocations {
		if a.Owner == owner {
			m.allocations = append(m.allocations[:i], m.allocations[i+1:]...)
			return
		}
	}
}

// Allocations returns a snapshot of the current allocation list, ordered
// by offset.
func (m *DeviceMemory) Allocations() []Allocation {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Allocation, len(m.allocations))
	copy(out, m.allocations)
	return out
}
