// Copyright 2025 The vklens Authors
// SPDX-License-Identifier: MIT

package objects

import (
	"reflect"
	"sync/atomic"

	"github.com/vklens/vklens/internal/vk"
)

// RenderPassData is the shared, reference-counted description of a
// render pass: framebuffers and pipelines created against a render pass
// must keep its attachment/subpass description alive after the
// application destroys the VkRenderPass handle, per Vulkan's
// render-pass-compatibility rules (spec.md §3).
type RenderPassData struct {
	refs         atomic.Int32
	Attachments  []vk.AttachmentDescription
	Subpasses    []vk.SubpassDescription
	Dependencies []vk.SubpassDependency
}

// Retain increments the description's reference count.
func (d *RenderPassData) Retain() { d.refs.Add(1) }

// Release decrements the reference count and reports whether it reached
// zero.
func (d *RenderPassData) Release() bool { return d.refs.Add(-1) == 0 }

// Splittable reports whether the render pass can be split immediately
// before subpass n so the command hook (spec.md §4.8) can insert work
// there: false if any subpass after n resolves into an attachment that
// subpass n reads or blends, because splitting would make that resolve
// overwrite data the application expected to keep (spec.md §4.6).
func (d *RenderPassData) Splittable(n int) bool {
	if n < 0 || n >= len(d.Subpasses) {
		return false
	}

	readOrBlend := make(map[uint32]bool)
	target := d.Subpasses[n]
	for _, ref := range target.InputAttachments {
		readOrBlend[ref.Attachment] = true
	}
	for _, ref := range target.ColorAttachments {
		readOrBlend[ref.Attachment] = true
	}
	if target.DepthStencilAttachment != nil {
		readOrBlend[target.DepthStencilAttachment.Attachment] = true
	}

	for i := n + 1; i < len(d.Subpasses); i++ {
		for _, ref := range d.Subpasses[i].ResolveAttachments {
			if readOrBlend[ref.Attachment] {
				return false
			}
		}
	}
	return true
}

// DescriptionEqual reports whether d and other describe the same
// attachments, subpasses, and dependencies by value rather than by
// handle, so internal/match's render-pass comparison still matches a
// render pass recreated between frames with an identical description
// (spec.md §4.7).
func (d *RenderPassData) DescriptionEqual(other *RenderPassData) bool {
	if d == other {
		return true
	}
	if d == nil || other == nil {
		return false
	}
	return reflect.DeepEqual(d.Attachments, other.Attachments) &&
		reflect.DeepEqual(d.Subpasses, other.Subpasses) &&
		reflect.DeepEqual(d.Dependencies, other.Dependencies)
}

// RenderPass shadows a VkRenderPass.
type RenderPass struct {
	Handle

	Raw  vk.RenderPass
	Data *RenderPassData
}

// Framebuffer shadows a VkFramebuffer.
type Framebuffer struct {
	Handle

	Raw         vk.Framebuffer
	RenderPass  *RenderPass
	Attachments []*ImageView
	Width       uint32
	Height      uint32
	Layers      uint32
}
