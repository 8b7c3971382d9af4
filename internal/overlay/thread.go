// Copyright 2025 The vklens Authors
// SPDX-License-Identifier: MIT

package overlay

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// workerThread is a dedicated OS thread serializing every call made
// against it. The overlay's window and its GPU-affine readback work
// (spec.md §5: "the layer additionally spawns one worker thread for the
// layer-owned window") must run on one fixed thread throughout their
// lifetime, so the thread locks itself with runtime.LockOSThread rather
// than letting the Go scheduler move its goroutine around.
type workerThread struct {
	funcs   chan func()
	results chan any
	done    chan struct{}
	running atomic.Bool
}

// newWorkerThread starts the thread and blocks until it is ready to
// accept calls.
func newWorkerThread() *workerThread {
	t := &workerThread{
		funcs:   make(chan func(), 16),
		results: make(chan any, 1),
		done:    make(chan struct{}),
	}
	t.running.Store(true)

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		wg.Done()

		for {
			select {
			case f := <-t.funcs:
				f()
			case <-t.done:
				return
			}
		}
	}()

	wg.Wait()
	return t
}

// call runs f on the thread and waits for its result.
func (t *workerThread) call(f func() any) any {
	if !t.running.Load() {
		return nil
	}

	done := make(chan any, 1)
	t.funcs <- func() {
		done <- f()
	}
	return <-done
}

// callVoid runs f on the thread and waits for completion.
func (t *workerThread) callVoid(f func()) {
	if !t.running.Load() {
		return
	}

	done := make(chan struct{})
	t.funcs <- func() {
		f()
		close(done)
	}
	<-done
}

// callAsync runs f on the thread without waiting. If the queue is
// full, it falls back to callVoid rather than blocking the caller on an
// unbounded wait.
func (t *workerThread) callAsync(f func()) {
	if !t.running.Load() {
		return
	}

	select {
	case t.funcs <- f:
	default:
		t.callVoid(f)
	}
}

// stop shuts the thread down. Further calls are no-ops.
func (t *workerThread) stop() {
	if t.running.Swap(false) {
		close(t.done)
	}
}

func (t *workerThread) isRunning() bool {
	return t.running.Load()
}
