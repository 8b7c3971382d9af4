// Copyright 2025 The vklens Authors
// SPDX-License-Identifier: MIT

package submit

import (
	"github.com/vklens/vklens/internal/objects"
	"github.com/vklens/vklens/internal/vk"
)

// chooseFence implements the fence half of spec.md §4.5's submit
// algorithm: use the application's fence if it passed one, otherwise
// borrow from the device's free-fence pool, sweeping retirable
// submissions first to refill the pool if it is empty. The returned bool
// reports whether the fence came from the pool (and so must be returned
// to it, rather than left on the application's shadow) on retirement.
func chooseFence(dev *objects.Device, appFence *objects.Fence) (vk.Fence, bool, error) {
	if appFence != nil {
		return appFence.Raw, false, nil
	}

	fence, ok := popFreeFence(dev)
	if !ok {
		CheckLocked(dev)
		fence, ok = popFreeFence(dev)
	}
	if ok {
		if result := dev.Commands.ResetFences(dev.Raw, []vk.Fence{fence}); !result.Succeeded() {
			return 0, false, result
		}
		return fence, true, nil
	}

	var created vk.Fence
	info := vk.FenceCreateInfo{SType: vk.StructureTypeFenceCreateInfo}
	if result := dev.Commands.CreateFence(dev.Raw, &info, &created); !result.Succeeded() {
		return 0, false, result
	}
	return created, true, nil
}

func popFreeFence(dev *objects.Device) (vk.Fence, bool) {
	dev.General.Lock()
	defer dev.General.Unlock()
	n := len(dev.FreeFences)
	if n == 0 {
		return 0, false
	}
	f := dev.FreeFences[n-1]
	dev.FreeFences = dev.FreeFences[:n-1]
	return f, true
}

// releaseFenceLocked returns fence to the device's free pool. Caller
// holds dev.General.
func releaseFenceLocked(dev *objects.Device, fence vk.Fence) {
	dev.FreeFences = append(dev.FreeFences, fence)
}
