// Copyright 2025 The vklens Authors
// SPDX-License-Identifier: MIT

package objects

import (
	"sync"

	"github.com/vklens/vklens/internal/vk"
)

// Image shadows a VkImage. CurrentLayout is the layout the image
// actually has right now, as observed by retired submissions;
// PendingLayout is "what layout this image will have once every
// currently-pending submission that touches it has completed" (spec.md
// §4.6). The two are equal whenever no submission touching this image is
// still pending — that equality is the invariant every recording must
// assume for its initial layout.
type Image struct {
	Handle

	Raw    vk.Image
	Create vk.ImageCreateInfo

	mu            sync.Mutex
	CurrentLayout vk.ImageLayout
	PendingLayout vk.ImageLayout

	// Memory is the DeviceMemory this image is bound to, or nil before
	// vkBindImageMemory. MemoryOffset is the offset passed to that call.
	Memory       *DeviceMemory
	MemoryOffset uint64

	// Swapchain is set on the images returned by vkGetSwapchainImagesKHR,
	// nil for application-allocated images. internal/match's render-pass
	// comparison uses it to treat two different swapchain images as
	// equivalent attachments across frames (spec.md §4.7), since a
	// fresh image handle is acquired every frame.
	Swapchain *Swapchain
}

// SetPendingLayout records the layout a submission will leave this image
// in once it completes. Called from internal/submit at submit time, not
// at record time (spec.md §4.6).
func (i *Image) SetPendingLayout(l vk.ImageLayout) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.PendingLayout = l
}

// Layouts returns the current and pending layout under the image's own
// lock, a convenience for callers that need both without two calls
// racing against a concurrent SetPendingLayout/Retire.
func (i *Image) Layouts() (current, pending vk.ImageLayout) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.CurrentLayout, i.PendingLayout
}

// Retire brings CurrentLayout up to PendingLayout. Called by
// internal/submit once it determines no submission touching this image
// remains pending.
func (i *Image) Retire() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.CurrentLayout = i.PendingLayout
}

// ImageView shadows a VkImageView. Framebuffers lists every Framebuffer
// that currently references this view; destroying the view while that
// list is non-empty is a Vulkan usage violation. InUse reports whether
// the list is non-empty; the layer has no image-view destroy path that
// checks it.
type ImageView struct {
	Handle

	Raw    vk.ImageView
	Image  *Image
	Create vk.ImageCreateInfo

	mu           sync.Mutex
	Framebuffers []*Framebuffer
}

// AddFramebuffer records that fb now references this view.
func (v *ImageView) AddFramebuffer(fb *Framebuffer) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.Framebuffers = append(v.Framebuffers, fb)
}

// RemoveFramebuffer removes fb from the referencing list, called when fb
// is destroyed.
func (v *ImageView) RemoveFramebuffer(fb *Framebuffer) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i, f := range v.Framebuffers {
		if f == fb {
			v.Framebuffers = append(v.Framebuffers[:i], v.Framebuffers[i+1:]...)
			return
		}
	}
}

// InUse reports whether any framebuffer still references this view.
func (v *ImageView) InUse() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.Framebuffers) > 0
}
