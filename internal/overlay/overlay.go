// Copyright 2025 The vklens Authors
// SPDX-License-Identifier: MIT

// Package overlay implements the GUI-facing surface (spec.md §6,
// SPEC_FULL.md §4.9): the layer's optional window worker thread, the
// selection protocol the GUI uses to pick a command for the hook
// (internal/hook) to instrument, and the show/hide and input-forwarding
// entry points cmd/vklayer's public C API exposes to a host
// application. The Dear-ImGui-style renderer that actually draws the
// debug surface is an external collaborator reached through no
// interface this package defines — spec.md §1 lists it as deliberately
// out of scope.
package overlay

import (
	"sync"

	"github.com/vklens/vklens/internal/hook"
	"github.com/vklens/vklens/internal/objects"
)

// OverlayState is the snapshot internal/overlay publishes to the
// renderer and that CurrentState returns: current selection, the
// hook's state machine position, and the most recent completed capture
// (spec.md's Component I row: "expose selectors, state, and readback
// results to the renderer").
type OverlayState struct {
	Visible    bool
	Selected   hook.Path
	HookState  hook.State
	LastResult *hook.HookResult
}

// Overlay is the layer-owned window and GUI selection/readback state
// for one swapchain. One Overlay exists per created-then-shown overlay;
// cmd/vklayer's C API owns the lifetime (create/destroy).
type Overlay struct {
	win *window

	mu         sync.Mutex
	swapchain  *objects.Swapchain
	selected   hook.Path
	active     *hook.Hook
	results    *hook.ResultQueue
	lastResult *hook.HookResult
}

// New creates an overlay's window worker thread and selection state.
// It does not show the window; call Show once the host application
// wants it visible (spec.md §6's "show/hide").
func New() *Overlay {
	return &Overlay{
		win:     newWindow(),
		results: hook.NewResultQueue(),
	}
}

// Close stops the overlay's window worker thread. The overlay must not
// be used afterward.
func (o *Overlay) Close() {
	o.win.stop()
}

// BindSwapchain records sc as the surface the overlay draws against —
// "for the last-created swapchain", per spec.md §6's create-overlay
// entry point.
func (o *Overlay) BindSwapchain(sc *objects.Swapchain) {
	o.mu.Lock()
	o.swapchain = sc
	o.mu.Unlock()
}

// Swapchain returns the overlay's currently bound swapchain, or nil if
// none has been bound yet.
func (o *Overlay) Swapchain() *objects.Swapchain {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.swapchain
}

// Show/Hide/Visible control whether the overlay is drawn and whether
// its input forwarders report events as consumed.
func (o *Overlay) Show()         { o.win.show() }
func (o *Overlay) Hide()         { o.win.hide() }
func (o *Overlay) Visible() bool { return o.win.isVisible() }

// RequestResize/HasPendingResize/ConsumePendingResize double-buffer a
// surface resize between the thread that observes it (usually the
// application's window-message thread) and the overlay's own worker
// thread, the same shape as internal/thread.RenderLoop's resize
// handling.
func (o *Overlay) RequestResize(width, height uint32) { o.win.requestResize(width, height) }
func (o *Overlay) HasPendingResize() bool             { return o.win.hasPendingResize() }
func (o *Overlay) ConsumePendingResize() (width, height uint32, ok bool) {
	return o.win.consumePendingResize()
}

// RunOnWindowThread/RunOnWindowThreadVoid run f on the overlay's worker
// thread, for any GPU-affine work (hook readback, swapchain extent
// queries) the caller needs done off whichever application thread it
// is running on.
func (o *Overlay) RunOnWindowThread(f func() any) any { return o.win.runOnWindowThread(f) }
func (o *Overlay) RunOnWindowThreadVoid(f func())     { o.win.runOnWindowThreadVoid(f) }

// Select records path as the GUI's current command selection
// (spec.md §6's "Select(rel_id path)"). It does not arm a hook itself —
// the next submission touching the record path resolves against does
// that (internal/hook.Arm), since the record the path was captured
// against may already belong to a retired command buffer by the time
// Select returns.
func (o *Overlay) Select(path hook.Path) {
	o.mu.Lock()
	o.selected = path
	o.active = nil
	o.mu.Unlock()
}

// Selected returns the GUI's current selection.
func (o *Overlay) Selected() hook.Path {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.selected
}

// Arm attaches h as the hook now tracking the current selection — called
// by the submission path once it has resolved Selected() against a
// fresh record and called hook.Arm.
func (o *Overlay) Arm(h *hook.Hook) {
	o.mu.Lock()
	o.active = h
	o.mu.Unlock()
}

// ResultQueue returns the queue internal/hook.Retire pushes completed
// captures onto for this overlay's active hook.
func (o *Overlay) ResultQueue() *hook.ResultQueue {
	return o.results
}

// CurrentState drains any result the hook's retirement has pushed since
// the last call and returns a full snapshot for the renderer.
func (o *Overlay) CurrentState() OverlayState {
	o.mu.Lock()
	defer o.mu.Unlock()

	if r, ok := o.results.TryPop(); ok {
		o.lastResult = &r
	}

	state := hook.StateIdle
	if o.active != nil {
		state = o.active.State()
	}

	return OverlayState{
		Visible:    o.win.isVisible(),
		Selected:   o.selected,
		HookState:  state,
		LastResult: o.lastResult,
	}
}
