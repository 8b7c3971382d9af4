// Copyright 2025 The vklens Authors
// SPDX-License-Identifier: MIT

package objects

import (
	"sync/atomic"

	"github.com/vklens/vklens/internal/vk"
)

// PipelineLayoutData is the shared, reference-counted body of a
// PipelineLayout, mirroring DescriptorSetLayoutData: pipelines created
// from a layout outlive the application-visible handle (spec.md §3).
type PipelineLayoutData struct {
	refs          atomic.Int32
	SetLayouts    []*DescriptorSetLayout
	PushConstants []vk.PushConstantRange
}

// Retain increments the layout data's reference count.
func (d *PipelineLayoutData) Retain() { d.refs.Add(1) }

// Release decrements the reference count and reports whether it reached
// zero.
func (d *PipelineLayoutData) Release() bool { return d.refs.Add(-1) == 0 }

// PipelineLayout shadows a VkPipelineLayout.
type PipelineLayout struct {
	Handle

	Raw  vk.PipelineLayout
	Data *PipelineLayoutData
}

// GraphicsPipeline shadows a VkPipeline created with
// vkCreateGraphicsPipelines.
type GraphicsPipeline struct {
	Handle

	Raw        vk.Pipeline
	Layout     *PipelineLayout
	RenderPass *RenderPass
	Subpass    uint32
}

// ComputePipeline shadows a VkPipeline created with
// vkCreateComputePipelines.
type ComputePipeline struct {
	Handle

	Raw    vk.Pipeline
	Layout *PipelineLayout
}
