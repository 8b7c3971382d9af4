// Copyright 2025 The vklens Authors
// SPDX-License-Identifier: MIT

package objects

import "github.com/vklens/vklens/internal/vk"

// QueryPool shadows a VkQueryPool. The command hook (spec.md §4.8) uses
// query pools of its own, created and owned the same way as application
// pools, to carry timestamp and pipeline-statistics queries inserted
// around the hooked command — grounded on hal/vulkan/query.go's
// vkCmdWriteTimestamp/vkCmdBeginQuery wrapping.
type QueryPool struct {
	Handle

	Raw       vk.QueryPool
	QueryType int32
	Count     uint32
}
