// Copyright 2025 The vklens Authors
// SPDX-License-Identifier: MIT

package objects

import "github.com/vklens/vklens/internal/vk"

// Swapchain shadows a VkSwapchainKHR. It is the handle the overlay
// (internal/overlay) hooks onto for surface dimensions and present mode
// when it decides where to draw; the layer never presents anything of
// its own, it only observes the application's present calls.
type Swapchain struct {
	Handle

	Raw     vk.SwapchainKHR
	Create  vk.SwapchainCreateInfoKHR
	Images  []*Image
}
