// Copyright 2025 The vklens Authors
// SPDX-License-Identifier: MIT

package objects

import (
	"sync"
	"sync/atomic"

	"github.com/vklens/vklens/internal/vk"
)

// CommandPool shadows a VkCommandPool.
type CommandPool struct {
	Handle

	Raw vk.CommandPool

	mu       sync.Mutex
	Buffers  []*CommandBuffer
}

// AddBuffer records cb as allocated from this pool.
func (p *CommandPool) AddBuffer(cb *CommandBuffer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Buffers = append(p.Buffers, cb)
}

// RemoveBuffer removes cb, called when it is freed individually or the
// pool itself is reset/destroyed.
func (p *CommandPool) RemoveBuffer(cb *CommandBuffer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, b := range p.Buffers {
		if b == cb {
			p.Buffers = append(p.Buffers[:i], p.Buffers[i+1:]...)
			return
		}
	}
}

// CommandBufferState is the four-state machine from spec.md §4.3,
// generalizing core.CommandEncoderStatus's enum shape with a fifth
// transition (Executable/Pending back to Initial on Reset).
type CommandBufferState int

const (
	CommandBufferInitial CommandBufferState = iota
	CommandBufferRecording
	CommandBufferExecutable
	CommandBufferPending
)

func (s CommandBufferState) String() string {
	switch s {
	case CommandBufferInitial:
		return "initial"
	case CommandBufferRecording:
		return "recording"
	case CommandBufferExecutable:
		return "executable"
	case CommandBufferPending:
		return "pending"
	default:
		return "unknown"
	}
}

// CommandBuffer shadows a VkCommandBuffer. It is dispatchable, so it is
// bound into the process-wide dispatch table (internal/dispatch) rather
// than a per-device Table like the non-dispatchable shadows.
//
// Record holds the command buffer's current *record.CommandRecord, and
// Pending holds the []*submit.PendingSubmission it currently
// participates in; both are kept as any to avoid internal/record and
// internal/submit importing back into internal/objects — the same
// dependency-inversion the teacher's core/hal split uses for
// Buffer.core/Buffer.hal, generalized here to a same-direction-only
// import graph across more packages.
type CommandBuffer struct {
	Handle

	Raw   vk.CommandBuffer
	Pool  *CommandPool
	Level int32

	mu         sync.Mutex
	State      CommandBufferState
	ResetCount atomic.Uint64

	Record  any
	Pending []any
}

// SetState transitions the command buffer to s.
func (cb *CommandBuffer) SetState(s CommandBufferState) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.State = s
}

// CurrentState returns the command buffer's state.
func (cb *CommandBuffer) CurrentState() CommandBufferState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.State
}

// AddPending appends a submission to the participation list.
func (cb *CommandBuffer) AddPending(s any) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.Pending = append(cb.Pending, s)
}

// RemovePending removes a submission from the participation list by
// identity, returning true if it was present.
func (cb *CommandBuffer) RemovePending(s any) bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	for i, p := range cb.Pending {
		if p == s {
			cb.Pending = append(cb.Pending[:i], cb.Pending[i+1:]...)
			return true
		}
	}
	return false
}
