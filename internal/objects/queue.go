// Copyright 2025 The vklens Authors
// SPDX-License-Identifier: MIT

package objects

import "github.com/vklens/vklens/internal/vk"

// Queue shadows a VkQueue. It is dispatchable — vkGetDeviceQueue hands
// back a handle with the same dispatch-word convention as VkDevice — so
// it is bound into the process-wide dispatch table at retrieval time
// alongside being reachable from Device.Queues.
type Queue struct {
	Handle

	Raw        vk.Queue
	FamilyIdx  uint32
	QueueIdx   uint32
}
