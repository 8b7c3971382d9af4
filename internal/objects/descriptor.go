// Copyright 2025 The vklens Authors
// SPDX-License-Identifier: MIT

package objects

import (
	"sync"
	"sync/atomic"

	"github.com/vklens/vklens/internal/vk"
)

// DescriptorSetLayoutData is the shared, reference-counted body of a
// DescriptorSetLayout: pipelines created against a layout keep it alive
// after the application destroys the VkDescriptorSetLayout handle
// (spec.md §3), so the bindings live in their own refcounted block
// rather than directly on the shadow, following core/track.TrackingData's
// atomic.Int32 release idiom rather than a mutex-guarded counter.
type DescriptorSetLayoutData struct {
	refs    atomic.Int32
	Bindings []DescriptorSetLayoutBinding
}

// DescriptorSetLayoutBinding is a copied-in entry of
// VkDescriptorSetLayoutBinding.
type DescriptorSetLayoutBinding struct {
	Binding        uint32
	DescriptorType int32
	Count          uint32
	StageFlags     vk.ShaderStageFlags
}

// Retain increments the layout data's reference count. Called whenever a
// pipeline layout or pipeline is created against this layout.
func (d *DescriptorSetLayoutData) Retain() { d.refs.Add(1) }

// Release decrements the reference count and reports whether it reached
// zero, in which case the caller must free the data.
func (d *DescriptorSetLayoutData) Release() bool { return d.refs.Add(-1) == 0 }

// DescriptorSetLayout shadows a VkDescriptorSetLayout.
type DescriptorSetLayout struct {
	Handle

	Raw  vk.DescriptorSetLayout
	Data *DescriptorSetLayoutData
}

// DescriptorPool shadows a VkDescriptorPool.
type DescriptorPool struct {
	Handle

	Raw vk.DescriptorPool
}

// DescriptorSlot is one binding×array-element entry of a descriptor set:
// a tagged union of image+sampler+layout, buffer+offset+range,
// buffer-view, or empty (spec.md §3).
type DescriptorSlot struct {
	Kind DescriptorSlotKind

	Image       *Image
	ImageView   *ImageView
	Sampler     *Sampler
	ImageLayout vk.ImageLayout

	Buffer       *Buffer
	BufferOffset uint64
	BufferRange  uint64

	BufferView *BufferView
}

// DescriptorSlotKind tags which union member of a DescriptorSlot is live.
type DescriptorSlotKind int

const (
	DescriptorSlotEmpty DescriptorSlotKind = iota
	DescriptorSlotImage
	DescriptorSlotBuffer
	DescriptorSlotBufferView
)

// DescriptorSet shadows a VkDescriptorSet: one DescriptorSlot per
// binding × array element, indexed by binding number then array index.
type DescriptorSet struct {
	Handle

	Raw    vk.DescriptorSet
	Layout *DescriptorSetLayout

	mu    sync.Mutex
	slots map[uint32][]DescriptorSlot
}

// Write installs slot at (binding, arrayElement), growing the per-binding
// slice as needed — the shape vkUpdateDescriptorSets writes through.
func (s *DescriptorSet) Write(binding, arrayElement uint32, slot DescriptorSlot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.slots == nil {
		s.slots = make(map[uint32][]DescriptorSlot)
	}
	arr := s.slots[binding]
	for uint32(len(arr)) <= arrayElement {
		arr = append(arr, DescriptorSlot{Kind: DescriptorSlotEmpty})
	}
	arr[arrayElement] = slot
	s.slots[binding] = arr
}

// Slot returns the slot at (binding, arrayElement), or the zero (empty)
// slot if nothing was ever written there.
func (s *DescriptorSet) Slot(binding, arrayElement uint32) DescriptorSlot {
	s.mu.Lock()
	defer s.mu.Unlock()
	arr := s.slots[binding]
	if arrayElement >= uint32(len(arr)) {
		return DescriptorSlot{Kind: DescriptorSlotEmpty}
	}
	return arr[arrayElement]
}
