// Copyright 2025 The vklens Authors
// SPDX-License-Identifier: MIT

package overlay

import "sync/atomic"

// window owns the overlay's worker thread and the state a host
// application's window-event thread and the worker thread both touch:
// a pending resize (double-buffered so the resize request never blocks
// the caller) and the show/hide flag (spec.md §6's "show/hide"). All
// GPU-affine work the overlay needs to do — querying the bound
// swapchain's extent, reading back hook results — runs on this thread,
// never on whichever application thread happens to call into the
// layer, generalizing internal/thread.RenderLoop's UI/render-thread
// split to the overlay's own window.
type window struct {
	worker *workerThread

	pendingWidth  atomic.Uint32
	pendingHeight atomic.Uint32
	resizePending atomic.Bool

	visible atomic.Bool
}

func newWindow() *window {
	return &window{worker: newWorkerThread()}
}

func (w *window) stop() {
	w.worker.stop()
}

// requestResize queues a resize to be applied on the worker thread the
// next time it calls consumePendingResize.
func (w *window) requestResize(width, height uint32) {
	if width == 0 || height == 0 {
		return
	}
	w.pendingWidth.Store(width)
	w.pendingHeight.Store(height)
	w.resizePending.Store(true)
}

func (w *window) hasPendingResize() bool {
	return w.resizePending.Load()
}

func (w *window) consumePendingResize() (width, height uint32, ok bool) {
	if !w.resizePending.Swap(false) {
		return 0, 0, false
	}
	return w.pendingWidth.Load(), w.pendingHeight.Load(), true
}

// runOnWindowThread/runOnWindowThreadVoid execute f on the worker
// thread and wait for completion — used for anything that touches the
// overlay's GPU-side state (readback buffers, the bound swapchain)
// rather than risk running it concurrently with the worker's own draw
// loop.
func (w *window) runOnWindowThread(f func() any) any {
	return w.worker.call(f)
}

func (w *window) runOnWindowThreadVoid(f func()) {
	w.worker.callVoid(f)
}

func (w *window) show() { w.visible.Store(true) }
func (w *window) hide() { w.visible.Store(false) }

func (w *window) isVisible() bool {
	return w.visible.Load()
}
