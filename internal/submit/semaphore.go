// Copyright 2025 The vklens Authors
// SPDX-License-Identifier: MIT

package submit

import (
	"github.com/vklens/vklens/internal/objects"
	"github.com/vklens/vklens/internal/vk"
)

// AcquireSemaphore takes a layer-owned semaphore from the device's
// awaiting-reset pool, or creates a fresh one if the pool is empty
// (spec.md §4.5's "two vectors for semaphores"). Callers append the
// returned semaphore to the PendingSubmission's LayerSemaphores so it is
// recycled on retirement instead of leaking.
func AcquireSemaphore(dev *objects.Device) (vk.Semaphore, error) {
	dev.General.Lock()
	if n := len(dev.ResetSemaphores); n > 0 {
		sem := dev.ResetSemaphores[n-1]
		dev.ResetSemaphores = dev.ResetSemaphores[:n-1]
		dev.InUseSemaphores = append(dev.InUseSemaphores, sem)
		dev.General.Unlock()
		return sem, nil
	}
	dev.General.Unlock()

	var created vk.Semaphore
	info := vk.SemaphoreCreateInfo{SType: vk.StructureTypeSemaphoreCreateInfo}
	if result := dev.Commands.CreateSemaphore(dev.Raw, &info, &created); !result.Succeeded() {
		return 0, result
	}
	dev.General.Lock()
	dev.InUseSemaphores = append(dev.InUseSemaphores, created)
	dev.General.Unlock()
	return created, nil
}

// releaseSemaphoreLocked moves sem from in-use to awaiting-reset. Caller
// holds dev.General.
func releaseSemaphoreLocked(dev *objects.Device, sem vk.Semaphore) {
	for i, s := range dev.InUseSemaphores {
		if s == sem {
			dev.InUseSemaphores = append(dev.InUseSemaphores[:i], dev.InUseSemaphores[i+1:]...)
			break
		}
	}
	dev.ResetSemaphores = append(dev.ResetSemaphores, sem)
}
