// Copyright 2025 The vklens Authors
// SPDX-License-Identifier: MIT

package objects

import "github.com/vklens/vklens/internal/vk"

// Instance shadows a VkInstance. It is bound into the process-wide
// dispatch table (internal/dispatch) under the instance's dispatch key
// at CreateInstance time and unbound at DestroyInstance.
type Instance struct {
	Handle

	Raw             vk.Instance
	APIVersion      uint32
	EnabledLayers   []string
	EnabledExts     []string
	GetInstanceProc vk.GetInstanceProcAddrFunc
}

// PhysicalDevice shadows a VkPhysicalDevice. It is produced by
// vkEnumeratePhysicalDevices rather than created by the application and
// carries a loader-writable dispatch key, but it is not bound into the
// process-wide dispatch table.
type PhysicalDevice struct {
	Handle

	Raw      vk.PhysicalDevice
	Instance *Instance
}
