// Copyright 2025 The vklens Authors
// SPDX-License-Identifier: MIT

package submit

import (
	"github.com/vklens/vklens/internal/objects"
	"github.com/vklens/vklens/internal/record"
)

// retireImageLayouts brings current_layout up to pending_layout for every
// image s touched, but only for images no other still-pending submission
// references (spec.md §4.6: retirement itself never changes
// pending_layout, but current must catch up to it the moment nothing
// pending still depends on the old value). Caller holds dev.General and
// has already removed s from dev.Pending.
func retireImageLayouts(dev *objects.Device, s *PendingSubmission) {
	for _, cb := range s.CommandBuffers {
		r := record.Of(cb)
		if r == nil {
			continue
		}
		for img := range r.ImageLayoutTransitions() {
			if !imageStillPendingLocked(dev, img) {
				img.Retire()
			}
		}
	}
}

// imageStillPendingLocked reports whether any non-retired submission
// still on dev.Pending references img. Caller holds dev.General.
func imageStillPendingLocked(dev *objects.Device, img *objects.Image) bool {
	for _, p := range pendingOf(dev) {
		if p.Retired() {
			continue
		}
		for _, cb := range p.CommandBuffers {
			if r := record.Of(cb); r != nil && r.ReferencesImage(img) {
				return true
			}
		}
	}
	return false
}
