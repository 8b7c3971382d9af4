// Copyright 2025 The vklens Authors
// SPDX-License-Identifier: MIT

// Package submit implements the submission tracker and layout tracker
// (spec.md §4.5/§4.6): the vkQueueSubmit algorithm, the device's fence
// and semaphore pools, and the pending-layout propagation that runs at
// submit and retire time.
package submit

import (
	"sync"
	"sync/atomic"

	"github.com/vklens/vklens/internal/dispatch"
	"github.com/vklens/vklens/internal/objects"
	"github.com/vklens/vklens/internal/record"
	"github.com/vklens/vklens/internal/vk"
)

// resolveCommandBuffer looks up the shadow for a raw command buffer
// handle off the process-wide dispatch table. vk.SubmitInfo carries raw
// handles (it is decoded straight off the application's C memory at the
// cgo boundary); PendingSubmission needs the shadow to track
// participation and layout transitions against.
func resolveCommandBuffer(raw vk.CommandBuffer) *objects.CommandBuffer {
	cb, _ := dispatch.Instance().Find(vk.DispatchKey(uintptr(raw))).(*objects.CommandBuffer)
	return cb
}

// PendingSubmission is one vkQueueSubmit call's worth of bookkeeping
// (spec.md §4.5): the batches it carried, the fence chosen for it
// (borrowed from the application or the device's pool), and the
// layer-owned semaphores it consumed, all released together on
// retirement.
type PendingSubmission struct {
	mu sync.Mutex

	Device *objects.Device
	Queue  *objects.Queue

	CommandBuffers []*objects.CommandBuffer

	// AppFence is the application-supplied fence this submission was
	// attached to, or nil if none was passed.
	AppFence *objects.Fence

	// PoolFence is the raw driver fence passed to vkQueueSubmit: either
	// AppFence.Raw, or one borrowed from Device.FreeFences, never both.
	PoolFence  vk.Fence
	fromPool   bool

	// LayerSemaphores are semaphores borrowed from the device's
	// semaphore pool to chain the layer's own work; they move to
	// Device.ResetSemaphores on retirement.
	LayerSemaphores []vk.Semaphore

	// HookState is a slot for hook state tied to this submission, kept as
	// any here for the same import-cycle reason other cross-package
	// fields in this tree are. Retirement clears it; no caller in this
	// tree sets it.
	HookState any

	retired atomic.Bool
}

// Retired reports whether check_locked has already retired this
// submission.
func (s *PendingSubmission) Retired() bool { return s.retired.Load() }

// ParticipatingIn returns the *PendingSubmission list currently recorded
// on cb's participation list, unwrapping the any elements
// CommandBuffer.Pending is forced to carry to avoid an import cycle with
// internal/objects.
func ParticipatingIn(cb *objects.CommandBuffer) []*PendingSubmission {
	var out []*PendingSubmission
	for _, p := range cb.Pending {
		if s, ok := p.(*PendingSubmission); ok {
			out = append(out, s)
		}
	}
	return out
}

// pendingOf returns dev.Pending already cast to []*PendingSubmission,
// skipping any stale/foreign entries defensively.
func pendingOf(dev *objects.Device) []*PendingSubmission {
	out := make([]*PendingSubmission, 0, len(dev.Pending))
	for _, p := range dev.Pending {
		if s, ok := p.(*PendingSubmission); ok {
			out = append(out, s)
		}
	}
	return out
}

// setPendingOf replaces dev.Pending's contents with list.
func setPendingOf(dev *objects.Device, list []*PendingSubmission) {
	out := make([]any, len(list))
	for i, s := range list {
		out[i] = s
	}
	dev.Pending = out
}

// Submit implements vkQueueSubmit's algorithm (spec.md §4.5): serialize
// on the device's queue-submit lock, build a PendingSubmission, push
// back-pointers and pending-layout updates, pick a fence, call the
// driver, then release the lock.
func Submit(dev *objects.Device, queue *objects.Queue, batches []vk.SubmitInfo, appFence *objects.Fence) (vk.Fence, error) {
	dev.QueueSubmit.Lock()
	defer dev.QueueSubmit.Unlock()

	pending := &PendingSubmission{Device: dev, Queue: queue, AppFence: appFence}

	for _, batch := range batches {
		for _, raw := range batch.CommandBuffers {
			if cb := resolveCommandBuffer(raw); cb != nil {
				pending.CommandBuffers = append(pending.CommandBuffers, cb)
			}
		}
	}

	dev.General.Lock()
	for _, cb := range pending.CommandBuffers {
		cb.AddPending(pending)
		if r := record.Of(cb); r != nil {
			for img, layout := range r.ImageLayoutTransitions() {
				img.SetPendingLayout(vk.ImageLayout(layout))
			}
		}
	}
	dev.General.Unlock()

	fence, fromPool, err := chooseFence(dev, appFence)
	if err != nil {
		for _, cb := range pending.CommandBuffers {
			cb.RemovePending(pending)
		}
		return 0, err
	}
	pending.PoolFence = fence
	pending.fromPool = fromPool
	if appFence != nil {
		appFence.SetSubmission(pending)
	}

	dev.General.Lock()
	dev.Pending = append(dev.Pending, pending)
	dev.General.Unlock()

	driverInfos := buildDriverSubmitInfos(batches)
	result := callQueueSubmit(dev.Commands, queue.Raw, driverInfos, fence)
	if !result.Succeeded() {
		dev.General.Lock()
		retireLocked(dev, pending)
		dev.General.Unlock()
		return 0, result
	}

	return fence, nil
}

// CheckLocked retires every submission on dev whose fence has signaled
// (spec.md §4.5's check_locked). Callers must not hold dev.General;
// CheckLocked takes it itself for the duration of each inspection.
func CheckLocked(dev *objects.Device) {
	dev.General.Lock()
	defer dev.General.Unlock()

	for _, s := range pendingOf(dev) {
		if s.Retired() {
			continue
		}
		if dev.Commands.GetFenceStatus(dev.Raw, s.PoolFence) == vk.Success {
			retireLocked(dev, s)
		}
	}
}

// retireLocked removes s from the device's pending list, clears its
// command buffers' back-pointers, returns its fence to the pool (or
// clears the application fence's submission pointer), and recycles its
// layer semaphores. Caller holds dev.General.
func retireLocked(dev *objects.Device, s *PendingSubmission) {
	if !s.retired.CompareAndSwap(false, true) {
		return
	}

	remaining := pendingOf(dev)
	out := remaining[:0]
	for _, p := range remaining {
		if p != s {
			out = append(out, p)
		}
	}
	setPendingOf(dev, out)

	for _, cb := range s.CommandBuffers {
		cb.RemovePending(s)
	}

	if s.AppFence != nil {
		s.AppFence.SetSubmission(nil)
	} else if s.fromPool {
		releaseFenceLocked(dev, s.PoolFence)
	}

	for _, sem := range s.LayerSemaphores {
		releaseSemaphoreLocked(dev, sem)
	}

	retireImageLayouts(dev, s)

	s.mu.Lock()
	s.HookState = nil
	s.mu.Unlock()
}
