// Copyright 2025 The vklens Authors
// SPDX-License-Identifier: MIT

package objects

import (
	"sync"

	"github.com/vklens/vklens/internal/dispatch"
	"github.com/vklens/vklens/internal/vk"
)

// Device shadows a VkDevice. It owns the resolved dispatch table for the
// device, one dispatch.Table per non-dispatchable object category, the
// fence and semaphore pools, the list of currently pending submissions,
// and the two locks every entry point synchronizes on (spec.md §3/§5).
//
// General carries the RWMutex protecting the object tables and most
// mutable device state; QueueSubmit carries the plain Mutex serializing
// vkQueueSubmit calls across every queue owned by this device, grounded
// on gviegas-neo3/driver/vk.Driver's per-queue submission mutex,
// generalized to one mutex per device because spec.md §5 requires
// device-wide submission serialization rather than per-queue.
type Device struct {
	Handle

	Commands       *vk.Commands
	Raw            vk.Device
	PhysicalDevice *PhysicalDevice
	Instance       *Instance

	General     sync.RWMutex
	QueueSubmit sync.Mutex

	Images               *dispatch.Table[vk.Image, Image]
	Buffers              *dispatch.Table[vk.Buffer, Buffer]
	ImageViews           *dispatch.Table[vk.ImageView, ImageView]
	BufferViews          *dispatch.Table[vk.BufferView, BufferView]
	Samplers             *dispatch.Table[vk.Sampler, Sampler]
	DescriptorSets       *dispatch.Table[vk.DescriptorSet, DescriptorSet]
	DescriptorSetLayouts *dispatch.Table[vk.DescriptorSetLayout, DescriptorSetLayout]
	DescriptorPools      *dispatch.Table[vk.DescriptorPool, DescriptorPool]
	PipelineLayouts      *dispatch.Table[vk.PipelineLayout, PipelineLayout]
	RenderPasses         *dispatch.Table[vk.RenderPass, RenderPass]
	Framebuffers         *dispatch.Table[vk.Framebuffer, Framebuffer]
	GraphicsPipelines    *dispatch.Table[vk.Pipeline, GraphicsPipeline]
	ComputePipelines     *dispatch.Table[vk.Pipeline, ComputePipeline]
	ShaderModules        *dispatch.Table[vk.ShaderModule, ShaderModule]
	DeviceMemories       *dispatch.Table[vk.DeviceMemory, DeviceMemory]
	Fences               *dispatch.Table[vk.Fence, Fence]
	Events               *dispatch.Table[vk.Event, Event]
	Semaphores           *dispatch.Table[vk.Semaphore, Semaphore]
	QueryPools           *dispatch.Table[vk.QueryPool, QueryPool]
	CommandPools         *dispatch.Table[vk.CommandPool, CommandPool]
	Swapchains           *dispatch.Table[vk.SwapchainKHR, Swapchain]

	Queues []*Queue

	// FreeFences is the pool of currently unused, reusable fences
	// (spec.md §4.5), generalizing hal/vulkan/fence_pool.go's fencePool
	// from one monotonic value per fence to a plain recycling pool: the
	// layer does not need fencePool's active/value bookkeeping because
	// retirement here is driven by PendingSubmission, not a monotonic
	// counter.
	FreeFences []vk.Fence

	// InUseSemaphores and ResetSemaphores are the two pools described in
	// spec.md §4.5: semaphores currently chained into a submission, and
	// semaphores whose submission retired and that are awaiting reset
	// before reuse.
	InUseSemaphores  []vk.Semaphore
	ResetSemaphores  []vk.Semaphore

	// Pending holds every submission tracked against this device. The
	// element type is internal/submit.PendingSubmission; it is stored as
	// any here because internal/submit imports internal/objects for the
	// Device/Image/Buffer/CommandBuffer types it operates on, so a
	// direct reference in the other direction would be an import cycle.
	// internal/submit's unexported pendingOf provides the typed view.
	Pending []any

	// LastSwapchain is a weak "last created swapchain" slot used by the
	// overlay's create-on-present-surface convenience path (spec.md §3).
	// It does not keep the swapchain alive; the pointer is cleared by
	// DestroySwapchainKHR if it is the one pointed to.
	LastSwapchain *Swapchain
}

// NewDevice allocates an empty device shadow with every category table
// initialized.
func NewDevice(raw vk.Device, pd *PhysicalDevice, inst *Instance, cmds *vk.Commands) *Device {
	return &Device{
		Handle:               Handle{Device: nil},
		Commands:             cmds,
		Raw:                  raw,
		PhysicalDevice:       pd,
		Instance:             inst,
		Images:               dispatch.New[vk.Image, Image](),
		Buffers:              dispatch.New[vk.Buffer, Buffer](),
		ImageViews:           dispatch.New[vk.ImageView, ImageView](),
		BufferViews:          dispatch.New[vk.BufferView, BufferView](),
		Samplers:             dispatch.New[vk.Sampler, Sampler](),
		DescriptorSets:       dispatch.New[vk.DescriptorSet, DescriptorSet](),
		DescriptorSetLayouts: dispatch.New[vk.DescriptorSetLayout, DescriptorSetLayout](),
		DescriptorPools:      dispatch.New[vk.DescriptorPool, DescriptorPool](),
		PipelineLayouts:      dispatch.New[vk.PipelineLayout, PipelineLayout](),
		RenderPasses:         dispatch.New[vk.RenderPass, RenderPass](),
		Framebuffers:         dispatch.New[vk.Framebuffer, Framebuffer](),
		GraphicsPipelines:    dispatch.New[vk.Pipeline, GraphicsPipeline](),
		ComputePipelines:     dispatch.New[vk.Pipeline, ComputePipeline](),
		ShaderModules:        dispatch.New[vk.ShaderModule, ShaderModule](),
		DeviceMemories:       dispatch.New[vk.DeviceMemory, DeviceMemory](),
		Fences:               dispatch.New[vk.Fence, Fence](),
		Events:               dispatch.New[vk.Event, Event](),
		Semaphores:           dispatch.New[vk.Semaphore, Semaphore](),
		QueryPools:           dispatch.New[vk.QueryPool, QueryPool](),
		CommandPools:         dispatch.New[vk.CommandPool, CommandPool](),
		Swapchains:           dispatch.New[vk.SwapchainKHR, Swapchain](),
	}
}
