package submit

import (
	"testing"

	"github.com/vklens/vklens/internal/objects"
	"github.com/vklens/vklens/internal/record"
	"github.com/vklens/vklens/internal/vk"
)

func newTestDevice() *objects.Device {
	return objects.NewDevice(vk.Device(1), nil, nil, &vk.Commands{})
}

func TestChooseFence_AppFenceBypassesPool(t *testing.T) {
	dev := newTestDevice()
	appFence := &objects.Fence{Raw: vk.Fence(42)}

	fence, fromPool, err := chooseFence(dev, appFence)
	if err != nil {
		t.Fatalf("chooseFence: %v", err)
	}
	if fromPool {
		t.Error("an application-supplied fence must not be marked as pool-owned")
	}
	if fence != vk.Fence(42) {
		t.Errorf("fence = %v, want the application's own fence", fence)
	}
	if len(dev.FreeFences) != 0 {
		t.Error("choosing the application's fence must not touch the free-fence pool")
	}
}

func TestChooseFence_PopsFromPoolAndResets(t *testing.T) {
	dev := newTestDevice()
	dev.FreeFences = []vk.Fence{5}

	fence, fromPool, err := chooseFence(dev, nil)
	if err != nil {
		t.Fatalf("chooseFence: %v", err)
	}
	if !fromPool {
		t.Error("a fence popped from the pool must be marked pool-owned")
	}
	if fence != vk.Fence(5) {
		t.Errorf("fence = %v, want 5 from the pool", fence)
	}
	if len(dev.FreeFences) != 0 {
		t.Error("the popped fence should have been removed from the pool")
	}
}

func TestRetireLocked_RemovesFromPendingAndRecyclesFenceAndSemaphores(t *testing.T) {
	dev := newTestDevice()
	cb := &objects.CommandBuffer{}

	s := &PendingSubmission{
		Device:          dev,
		CommandBuffers:  []*objects.CommandBuffer{cb},
		PoolFence:       vk.Fence(7),
		fromPool:        true,
		LayerSemaphores: []vk.Semaphore{9},
	}
	cb.AddPending(s)
	dev.Pending = append(dev.Pending, s)
	dev.InUseSemaphores = []vk.Semaphore{9}

	dev.General.Lock()
	retireLocked(dev, s)
	dev.General.Unlock()

	if !s.Retired() {
		t.Fatal("submission should be marked retired")
	}
	if len(dev.Pending) != 0 {
		t.Errorf("Pending = %v, want empty after retirement", dev.Pending)
	}
	if len(cb.Pending) != 0 {
		t.Error("command buffer's back-pointer should be removed on retirement")
	}
	if len(dev.FreeFences) != 1 || dev.FreeFences[0] != vk.Fence(7) {
		t.Errorf("FreeFences = %v, want [7]", dev.FreeFences)
	}
	if len(dev.InUseSemaphores) != 0 {
		t.Errorf("InUseSemaphores = %v, want empty", dev.InUseSemaphores)
	}
	if len(dev.ResetSemaphores) != 1 || dev.ResetSemaphores[0] != vk.Semaphore(9) {
		t.Errorf("ResetSemaphores = %v, want [9]", dev.ResetSemaphores)
	}
}

func TestRetireLocked_AppFenceClearsSubmissionInsteadOfPool(t *testing.T) {
	dev := newTestDevice()
	appFence := &objects.Fence{Raw: vk.Fence(3)}
	s := &PendingSubmission{Device: dev, PoolFence: vk.Fence(3), AppFence: appFence}
	appFence.SetSubmission(s)
	dev.Pending = append(dev.Pending, s)

	dev.General.Lock()
	retireLocked(dev, s)
	dev.General.Unlock()

	if appFence.CurrentSubmission() != nil {
		t.Error("application fence's submission pointer should be cleared on retirement")
	}
	if len(dev.FreeFences) != 0 {
		t.Error("an application-owned fence must never be returned to the device's free pool")
	}
}

func TestRetireLocked_IsIdempotent(t *testing.T) {
	dev := newTestDevice()
	s := &PendingSubmission{Device: dev, PoolFence: vk.Fence(1), fromPool: true}
	dev.Pending = append(dev.Pending, s)

	dev.General.Lock()
	retireLocked(dev, s)
	retireLocked(dev, s)
	dev.General.Unlock()

	if len(dev.FreeFences) != 1 {
		t.Errorf("FreeFences = %v, want exactly one entry despite retiring twice", dev.FreeFences)
	}
}

func TestRetireImageLayouts_OnlyWhenNoSubmissionStillReferencesImage(t *testing.T) {
	dev := newTestDevice()
	img := &objects.Image{CurrentLayout: vk.ImageLayoutUndefined}
	img.SetPendingLayout(vk.ImageLayoutGeneral)

	cbA := &objects.CommandBuffer{}
	record.Begin(cbA)
	record.CmdPipelineBarrier(cbA, 0, 0, nil,
		[]vk.ImageMemoryBarrier{{Image: vk.Image(1), NewLayout: vk.ImageLayoutGeneral}},
		func(vk.Image) *objects.Image { return img },
		func(vk.Buffer) *objects.Buffer { return nil },
	)

	cbB := &objects.CommandBuffer{}
	record.Begin(cbB)
	record.CmdPipelineBarrier(cbB, 0, 0, nil,
		[]vk.ImageMemoryBarrier{{Image: vk.Image(1), NewLayout: vk.ImageLayoutGeneral}},
		func(vk.Image) *objects.Image { return img },
		func(vk.Buffer) *objects.Buffer { return nil },
	)

	sA := &PendingSubmission{Device: dev, CommandBuffers: []*objects.CommandBuffer{cbA}}
	sB := &PendingSubmission{Device: dev, CommandBuffers: []*objects.CommandBuffer{cbB}}
	cbA.AddPending(sA)
	cbB.AddPending(sB)
	dev.Pending = append(dev.Pending, sA, sB)

	dev.General.Lock()
	retireLocked(dev, sA)
	dev.General.Unlock()

	if cur, _ := img.Layouts(); cur != vk.ImageLayoutUndefined {
		t.Fatalf("current layout = %v, want unchanged while sB is still pending", cur)
	}

	dev.General.Lock()
	retireLocked(dev, sB)
	dev.General.Unlock()

	if cur, _ := img.Layouts(); cur != vk.ImageLayoutGeneral {
		t.Fatalf("current layout = %v, want it to catch up to pending once nothing references it", cur)
	}
}
