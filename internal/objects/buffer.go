// Copyright 2025 The vklens Authors
// SPDX-License-Identifier: MIT

package objects

import "github.com/vklens/vklens/internal/vk"

// Buffer shadows a VkBuffer.
type Buffer struct {
	Handle

	Raw    vk.Buffer
	Create vk.BufferCreateInfo

	Memory       *DeviceMemory
	MemoryOffset uint64
}

// BufferView shadows a VkBufferView.
type BufferView struct {
	Handle

	Raw    vk.BufferView
	Buffer *Buffer
}
