package overlay

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/vklens/vklens/internal/hook"
)

func TestWorkerThread_CallVoid(t *testing.T) {
	wt := newWorkerThread()
	defer wt.stop()

	var called atomic.Bool
	wt.callVoid(func() {
		called.Store(true)
	})

	if !called.Load() {
		t.Error("callVoid did not execute function")
	}
}

func TestWorkerThread_Call(t *testing.T) {
	wt := newWorkerThread()
	defer wt.stop()

	result := wt.call(func() any { return 42 })
	if result != 42 {
		t.Errorf("call returned %v, want 42", result)
	}
}

func TestWorkerThread_CallAsync(t *testing.T) {
	wt := newWorkerThread()
	defer wt.stop()

	var called atomic.Bool
	wt.callAsync(func() { called.Store(true) })

	time.Sleep(10 * time.Millisecond)

	if !called.Load() {
		t.Error("callAsync did not execute function")
	}
}

func TestWorkerThread_Stop(t *testing.T) {
	wt := newWorkerThread()

	if !wt.isRunning() {
		t.Error("thread should be running after newWorkerThread")
	}
	wt.stop()
	if wt.isRunning() {
		t.Error("thread should not be running after stop")
	}

	// Calls on a stopped thread must not panic.
	wt.callVoid(func() {})
	wt.call(func() any { return nil })
	wt.callAsync(func() {})
}

func TestWindow_PendingResize(t *testing.T) {
	w := newWindow()
	defer w.stop()

	if w.hasPendingResize() {
		t.Error("should not have pending resize initially")
	}

	w.requestResize(800, 600)
	if !w.hasPendingResize() {
		t.Error("should have pending resize after requestResize")
	}

	width, height, ok := w.consumePendingResize()
	if !ok || width != 800 || height != 600 {
		t.Fatalf("consumePendingResize = %d,%d,%v, want 800,600,true", width, height, ok)
	}

	if w.hasPendingResize() {
		t.Error("resize should be consumed")
	}
}

func TestOverlay_ShowHideGatesInputConsumption(t *testing.T) {
	o := New()
	defer o.Close()

	if o.MouseButtonEvent(MouseButtonLeft, true, 0) {
		t.Error("hidden overlay must not consume input")
	}

	o.Show()
	if !o.MouseButtonEvent(MouseButtonLeft, true, 0) {
		t.Error("visible overlay must consume input")
	}
	if !o.KeyEvent(0, true, ModShift) {
		t.Error("visible overlay must consume key events")
	}
	if !o.TextInput("a") {
		t.Error("visible overlay must consume text input")
	}

	o.Hide()
	if o.MouseButtonEvent(MouseButtonLeft, true, 0) {
		t.Error("hidden overlay must not consume input after Hide")
	}
}

func TestOverlay_SelectClearsActiveHook(t *testing.T) {
	o := New()
	defer o.Close()

	path := hook.Path{{Kind: 0, RelID: 2}}
	o.Select(path)

	state := o.CurrentState()
	if len(state.Selected) != len(path) || state.Selected[0] != path[0] {
		t.Fatalf("Selected = %v, want %v", state.Selected, path)
	}
	if state.HookState != hook.StateIdle {
		t.Fatalf("HookState = %v, want StateIdle (no hook armed yet)", state.HookState)
	}
}

func TestOverlay_CurrentStateDrainsResultQueue(t *testing.T) {
	o := New()
	defer o.Close()

	o.ResultQueue().Push(hook.HookResult{Kind: hook.InstrumentTimestamp, TimestampStartNs: 5})

	state := o.CurrentState()
	if state.LastResult == nil {
		t.Fatal("CurrentState did not pick up the pushed result")
	}
	if state.LastResult.TimestampStartNs != 5 {
		t.Fatalf("TimestampStartNs = %d, want 5", state.LastResult.TimestampStartNs)
	}

	// A second call with nothing new pushed keeps returning the last result.
	state2 := o.CurrentState()
	if state2.LastResult == nil || state2.LastResult.TimestampStartNs != 5 {
		t.Fatal("CurrentState should retain the last result until a newer one is pushed")
	}
}

func TestOverlay_RunOnWindowThread(t *testing.T) {
	o := New()
	defer o.Close()

	result := o.RunOnWindowThread(func() any { return "hello" })
	if result != "hello" {
		t.Errorf("RunOnWindowThread returned %v, want hello", result)
	}
}
