// Copyright 2025 The vklens Authors
// SPDX-License-Identifier: MIT

package vk

// Dispatchable handles carry a loader-writable dispatch key in their first
// machine word; the layer represents them as the machine word itself so
// that DispatchKey (dispatch.go) can read it directly.
type (
	Instance       uintptr
	PhysicalDevice uintptr
	Device         uintptr
	Queue          uintptr
	CommandBuffer  uintptr
)

// Non-dispatchable handles are opaque 64-bit values looked up by value in
// per-device hash tables; they carry no dispatch key.
type (
	Image               uint64
	Buffer              uint64
	ImageView           uint64
	BufferView          uint64
	Sampler             uint64
	DescriptorSet       uint64
	DescriptorSetLayout uint64
	DescriptorPool      uint64
	PipelineLayout      uint64
	RenderPass          uint64
	Framebuffer         uint64
	Pipeline            uint64
	ShaderModule        uint64
	DeviceMemory        uint64
	Fence               uint64
	Event               uint64
	Semaphore           uint64
	QueryPool           uint64
	CommandPool         uint64
	SwapchainKHR        uint64
	SurfaceKHR          uint64
)

// Result mirrors VkResult. Only the subset the layer reasons about (as
// opposed to merely passing through) is named.
type Result int32

const (
	Success                  Result = 0
	NotReady                 Result = 1
	Timeout                  Result = 2
	EventSet                 Result = 3
	EventReset               Result = 4
	Incomplete                Result = 5
	ErrorOutOfHostMemory      Result = -1
	ErrorOutOfDeviceMemory    Result = -2
	ErrorInitializationFailed Result = -3
	ErrorDeviceLost           Result = -4
	ErrorMemoryMapFailed      Result = -5
	ErrorLayerNotPresent      Result = -6
	ErrorExtensionNotPresent  Result = -7
	ErrorFeatureNotPresent    Result = -8
	ErrorIncompatibleDriver   Result = -9
	ErrorSurfaceLostKHR       Result = -1000000000
	ErrorOutOfDateKHR         Result = -1000001004
)

func (r Result) Succeeded() bool { return r >= 0 }

// Error satisfies the error interface so a failing Result can be
// returned directly from functions whose signature already commits to
// error, such as internal/submit.Submit.
func (r Result) Error() string { return r.String() }

func (r Result) String() string {
	switch r {
	case Success:
		return "VK_SUCCESS"
	case NotReady:
		return "VK_NOT_READY"
	case Timeout:
		return "VK_TIMEOUT"
	case EventSet:
		return "VK_EVENT_SET"
	case EventReset:
		return "VK_EVENT_RESET"
	case Incomplete:
		return "VK_INCOMPLETE"
	case ErrorOutOfHostMemory:
		return "VK_ERROR_OUT_OF_HOST_MEMORY"
	case ErrorOutOfDeviceMemory:
		return "VK_ERROR_OUT_OF_DEVICE_MEMORY"
	case ErrorInitializationFailed:
		return "VK_ERROR_INITIALIZATION_FAILED"
	case ErrorDeviceLost:
		return "VK_ERROR_DEVICE_LOST"
	case ErrorMemoryMapFailed:
		return "VK_ERROR_MEMORY_MAP_FAILED"
	case ErrorLayerNotPresent:
		return "VK_ERROR_LAYER_NOT_PRESENT"
	case ErrorExtensionNotPresent:
		return "VK_ERROR_EXTENSION_NOT_PRESENT"
	case ErrorFeatureNotPresent:
		return "VK_ERROR_FEATURE_NOT_PRESENT"
	case ErrorIncompatibleDriver:
		return "VK_ERROR_INCOMPATIBLE_DRIVER"
	case ErrorSurfaceLostKHR:
		return "VK_ERROR_SURFACE_LOST_KHR"
	case ErrorOutOfDateKHR:
		return "VK_ERROR_OUT_OF_DATE_KHR"
	default:
		return "VK_ERROR_UNKNOWN"
	}
}

// StructureType mirrors the handful of VkStructureType values the layer
// reads off application-supplied pCreateInfo/pNext chains.
type StructureType int32

const (
	StructureTypeApplicationInfo           StructureType = 0
	StructureTypeInstanceCreateInfo        StructureType = 1
	StructureTypeDeviceCreateInfo          StructureType = 3
	StructureTypeSubmitInfo                StructureType = 4
	StructureTypeMemoryAllocateInfo        StructureType = 5
	StructureTypeFenceCreateInfo           StructureType = 8
	StructureTypeSemaphoreCreateInfo       StructureType = 9
	StructureTypeEventCreateInfo           StructureType = 10
	StructureTypeQueryPoolCreateInfo       StructureType = 11
	StructureTypeBufferCreateInfo          StructureType = 12
	StructureTypeBufferViewCreateInfo      StructureType = 13
	StructureTypeImageCreateInfo           StructureType = 14
	StructureTypeImageViewCreateInfo       StructureType = 15
	StructureTypeShaderModuleCreateInfo    StructureType = 16
	StructureTypePipelineLayoutCreateInfo  StructureType = 17
	StructureTypeSamplerCreateInfo         StructureType = 18
	StructureTypeDescriptorSetLayoutCreateInfo StructureType = 19
	StructureTypeDescriptorPoolCreateInfo  StructureType = 20
	StructureTypeDescriptorSetAllocateInfo StructureType = 21
	StructureTypeGraphicsPipelineCreateInfo StructureType = 23
	StructureTypeComputePipelineCreateInfo StructureType = 29
	StructureTypeRenderPassCreateInfo      StructureType = 38
	StructureTypeCommandPoolCreateInfo     StructureType = 39
	StructureTypeCommandBufferAllocateInfo StructureType = 40
	StructureTypeCommandBufferBeginInfo    StructureType = 42
	StructureTypeRenderPassBeginInfo       StructureType = 43
	StructureTypeSwapchainCreateInfoKHR    StructureType = 1000001000
	StructureTypePresentInfoKHR            StructureType = 1000001001
	StructureTypeDebugUtilsObjectNameInfoEXT StructureType = 1000128000
	StructureTypeDebugUtilsLabelEXT        StructureType = 1000128002
)

// Format mirrors VkFormat for the subset the layer records on resources.
type Format int32

// ImageLayout mirrors VkImageLayout.
type ImageLayout int32

const (
	ImageLayoutUndefined ImageLayout = 0
	ImageLayoutGeneral    ImageLayout = 1
	ImageLayoutPresentSrcKHR ImageLayout = 1000001002
)

// PipelineStageFlags, AccessFlags, BufferUsageFlags, ImageUsageFlags mirror
// their Vulkan bitmask counterparts; the layer never interprets every bit,
// only enough to classify a command's effect on a resource (§4.4).
type (
	PipelineStageFlags uint32
	AccessFlags        uint32
	BufferUsageFlags   uint32
	ImageUsageFlags    uint32
	ShaderStageFlags   uint32
	CommandBufferUsageFlags uint32
	QueryResultFlags   uint32
	PipelineBindPoint  int32
	IndexType          int32
)

const (
	PipelineBindPointGraphics PipelineBindPoint = 0
	PipelineBindPointCompute  PipelineBindPoint = 1
)

// The two pipeline stages the command hook writes timestamps at (§4.8):
// immediately before and immediately after the replayed target.
const (
	PipelineStageTopOfPipe    PipelineStageFlags = 0x00000001
	PipelineStageBottomOfPipe PipelineStageFlags = 0x00002000
)

// QueryControlFlags mirrors VkQueryControlFlags; QueryControlPrecise
// requests exact (rather than boolean) occlusion/statistics results.
type QueryControlFlags uint32

const QueryControlPrecise QueryControlFlags = 0x00000001

// ApplicationInfo, InstanceCreateInfo, DeviceCreateInfo are copied (never
// retained by pointer) into the Instance/Device shadow at creation time.
type ApplicationInfo struct {
	SType         StructureType
	PApplicationName string
	ApplicationVersion uint32
	PEngineName   string
	EngineVersion uint32
	APIVersion    uint32
}

type InstanceCreateInfo struct {
	SType                   StructureType
	Flags                   uint32
	PApplicationInfo        *ApplicationInfo
	EnabledLayerNames       []string
	EnabledExtensionNames   []string
}

type DeviceQueueCreateInfo struct {
	SType            StructureType
	Flags            uint32
	QueueFamilyIndex uint32
	QueuePriorities  []float32
}

type DeviceCreateInfo struct {
	SType                 StructureType
	Flags                 uint32
	QueueCreateInfos      []DeviceQueueCreateInfo
	EnabledLayerNames     []string
	EnabledExtensionNames []string
}

type BufferCreateInfo struct {
	SType                 StructureType
	Flags                 uint32
	Size                  uint64
	Usage                 BufferUsageFlags
	SharingMode           int32
	QueueFamilyIndices    []uint32
}

type ImageCreateInfo struct {
	SType       StructureType
	Flags       uint32
	ImageType   int32
	Format      Format
	Width, Height, Depth uint32
	MipLevels   uint32
	ArrayLayers uint32
	Samples     int32
	Tiling      int32
	Usage       ImageUsageFlags
	SharingMode int32
	InitialLayout ImageLayout
}

type MemoryAllocateInfo struct {
	SType           StructureType
	AllocationSize  uint64
	MemoryTypeIndex uint32
}

type FenceCreateInfo struct {
	SType StructureType
	Flags uint32
}

type SemaphoreCreateInfo struct {
	SType StructureType
	Flags uint32
}

type CommandPoolCreateInfo struct {
	SType            StructureType
	Flags            uint32
	QueueFamilyIndex uint32
}

type CommandBufferAllocateInfo struct {
	SType              StructureType
	CommandPool        CommandPool
	Level              int32
	CommandBufferCount uint32
}

type CommandBufferBeginInfo struct {
	SType StructureType
	Flags CommandBufferUsageFlags
}

// QueryType mirrors VkQueryType; the hook only ever creates timestamp or
// pipeline-statistics pools (§4.8).
type QueryType int32

const (
	QueryTypeOcclusion          QueryType = 0
	QueryTypePipelineStatistics QueryType = 1
	QueryTypeTimestamp          QueryType = 2
)

// QueryPipelineStatisticFlags mirrors VkQueryPipelineStatisticFlags.
type QueryPipelineStatisticFlags uint32

type QueryPoolCreateInfo struct {
	SType              StructureType
	Flags              uint32
	QueryType          QueryType
	QueryCount         uint32
	PipelineStatistics QueryPipelineStatisticFlags
}

// RenderPassBeginInfo mirrors VkRenderPassBeginInfo; ClearValues is opaque
// bytes the layer never interprets, only copies through to the driver.
type RenderPassBeginInfo struct {
	SType       StructureType
	RenderPass  RenderPass
	Framebuffer Framebuffer
	RenderAreaX, RenderAreaY          int32
	RenderAreaW, RenderAreaH          uint32
	ClearValues []byte
}

// SubpassContents mirrors VkSubpassContents.
type SubpassContents int32

const (
	SubpassContentsInline                  SubpassContents = 0
	SubpassContentsSecondaryCommandBuffers SubpassContents = 1
)

// SubmitInfo is copied field-by-field into a Submission batch (§3).
type SubmitInfo struct {
	SType                StructureType
	WaitSemaphores       []Semaphore
	WaitDstStageMask     []PipelineStageFlags
	CommandBuffers       []CommandBuffer
	SignalSemaphores     []Semaphore
}

type PresentInfoKHR struct {
	SType          StructureType
	WaitSemaphores []Semaphore
	Swapchains     []SwapchainKHR
	ImageIndices   []uint32
	Results        []Result
}

type SwapchainCreateInfoKHR struct {
	SType           StructureType
	Flags           uint32
	Surface         SurfaceKHR
	MinImageCount   uint32
	ImageFormat     Format
	ImageExtentW    uint32
	ImageExtentH    uint32
	ImageArrayLayers uint32
	ImageUsage      ImageUsageFlags
	OldSwapchain    SwapchainKHR
}

// MemoryBarrier-family structs are copied into barrier command nodes
// (§4.3/§4.4) so the recorder can classify the access/layout transition.
type BufferMemoryBarrier struct {
	SrcAccessMask AccessFlags
	DstAccessMask AccessFlags
	Buffer        Buffer
	Offset, Size  uint64
}

type ImageMemoryBarrier struct {
	SrcAccessMask AccessFlags
	DstAccessMask AccessFlags
	OldLayout     ImageLayout
	NewLayout     ImageLayout
	Image         Image
}

// BufferCopy mirrors VkBufferCopy, the single-region shape
// internal/record.CmdCopyBuffer always produces (§4.3).
type BufferCopy struct {
	SrcOffset, DstOffset, Size uint64
}

type DebugUtilsObjectNameInfoEXT struct {
	SType      StructureType
	ObjectType int32
	ObjectHandle uint64
	ObjectName string
}

type DebugUtilsLabelEXT struct {
	SType     StructureType
	LabelName string
	Color     [4]float32
}

// AttachmentLoadOp/AttachmentStoreOp mirror the Vk*AttachmentLoadOp /
// Vk*AttachmentStoreOp enums; the layer's splittability checker (§4.6)
// only needs to distinguish Load/Clear/DontCare and Store/DontCare/None.
type AttachmentLoadOp int32

const (
	AttachmentLoadOpLoad     AttachmentLoadOp = 0
	AttachmentLoadOpClear    AttachmentLoadOp = 1
	AttachmentLoadOpDontCare AttachmentLoadOp = 2
)

type AttachmentStoreOp int32

const (
	AttachmentStoreOpStore    AttachmentStoreOp = 0
	AttachmentStoreOpDontCare AttachmentStoreOp = 1
	AttachmentStoreOpNone     AttachmentStoreOp = 2
)

// AttachmentDescription mirrors VkAttachmentDescription.
type AttachmentDescription struct {
	Format         Format
	LoadOp         AttachmentLoadOp
	StoreOp        AttachmentStoreOp
	StencilLoadOp  AttachmentLoadOp
	StencilStoreOp AttachmentStoreOp
	InitialLayout  ImageLayout
	FinalLayout    ImageLayout
}

// AttachmentReference mirrors VkAttachmentReference.
type AttachmentReference struct {
	Attachment uint32
	Layout     ImageLayout
}

// SubpassDescription mirrors VkSubpassDescription: the fields the
// splittability checker and the object graph need, not the full
// pNext-extensible struct.
type SubpassDescription struct {
	InputAttachments    []AttachmentReference
	ColorAttachments    []AttachmentReference
	ResolveAttachments  []AttachmentReference
	DepthStencilAttachment *AttachmentReference
	PreserveAttachments []uint32
}

// SubpassDependency mirrors VkSubpassDependency.
type SubpassDependency struct {
	SrcSubpass   uint32 // 0xFFFFFFFF for VK_SUBPASS_EXTERNAL
	DstSubpass   uint32
	SrcStageMask PipelineStageFlags
	DstStageMask PipelineStageFlags
	SrcAccessMask AccessFlags
	DstAccessMask AccessFlags
}

// RenderPassCreateInfo mirrors VkRenderPassCreateInfo.
type RenderPassCreateInfo struct {
	SType        StructureType
	Attachments  []AttachmentDescription
	Subpasses    []SubpassDescription
	Dependencies []SubpassDependency
}

// PushConstantRange mirrors VkPushConstantRange.
type PushConstantRange struct {
	StageFlags ShaderStageFlags
	Offset     uint32
	Size       uint32
}

// FramebufferCreateInfo mirrors VkFramebufferCreateInfo.
type FramebufferCreateInfo struct {
	SType      StructureType
	RenderPass RenderPass
	Attachments []ImageView
	Width, Height, Layers uint32
}
