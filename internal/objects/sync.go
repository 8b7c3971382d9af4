// Copyright 2025 The vklens Authors
// SPDX-License-Identifier: MIT

package objects

import (
	"sync"

	"github.com/vklens/vklens/internal/vk"
)

// Fence shadows a VkFence. Submission is set while a PendingSubmission
// has borrowed this (application-owned) fence; it is stored as any for
// the same import-cycle reason Device.Pending is (internal/submit owns
// the concrete PendingSubmission type).
type Fence struct {
	Handle

	Raw vk.Fence

	mu         sync.Mutex
	Submission any
}

// SetSubmission records which submission currently owns this fence, or
// clears it with a nil argument on retirement.
func (f *Fence) SetSubmission(s any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Submission = s
}

// CurrentSubmission returns the submission currently using this fence,
// or nil.
func (f *Fence) CurrentSubmission() any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Submission
}

// Event shadows a VkEvent.
type Event struct {
	Handle

	Raw vk.Event
}

// Semaphore shadows a VkSemaphore.
type Semaphore struct {
	Handle

	Raw vk.Semaphore
}
