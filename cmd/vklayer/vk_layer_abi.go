// Copyright 2025 The vklens Authors
// SPDX-License-Identifier: MIT

package main

/*
#include "layer.h"
*/
import "C"

import (
	"unsafe"

	"github.com/vklens/vklens/internal/vk"
)

const layerName = "VK_LAYER_VKLENS_capture"

// instanceProcTable maps a Vulkan entry point name to this layer's own
// implementation, for every name vkGetInstanceProcAddr intercepts.
// Anything not listed here is resolved by calling straight through to the
// instance's recorded next-link vkGetInstanceProcAddr (doc.go's "everything
// else... is passed straight through").
var instanceProcTable = map[string]unsafe.Pointer{
	"vkGetInstanceProcAddr": unsafe.Pointer(C.vklens_GetInstanceProcAddr),
	"vkGetDeviceProcAddr":   unsafe.Pointer(C.vklens_GetDeviceProcAddr),
	"vkCreateInstance":      unsafe.Pointer(C.vklens_CreateInstance),
	"vkDestroyInstance":     unsafe.Pointer(C.vklens_DestroyInstance),
	"vkCreateDevice":        unsafe.Pointer(C.vklens_CreateDevice),
	"vkEnumeratePhysicalDevices": unsafe.Pointer(C.vklens_EnumeratePhysicalDevices),
}

// deviceProcTable is the vkGetDeviceProcAddr equivalent: the bounded subset
// of device-level entry points this layer has bookkeeping for.
var deviceProcTable = map[string]unsafe.Pointer{
	"vkDestroyDevice":          unsafe.Pointer(C.vklens_DestroyDevice),
	"vkGetDeviceQueue":         unsafe.Pointer(C.vklens_GetDeviceQueue),
	"vkCreateBuffer":           unsafe.Pointer(C.vklens_CreateBuffer),
	"vkDestroyBuffer":          unsafe.Pointer(C.vklens_DestroyBuffer),
	"vkCreateFence":            unsafe.Pointer(C.vklens_CreateFence),
	"vkDestroyFence":           unsafe.Pointer(C.vklens_DestroyFence),
	"vkCreateSemaphore":        unsafe.Pointer(C.vklens_CreateSemaphore),
	"vkDestroySemaphore":       unsafe.Pointer(C.vklens_DestroySemaphore),
	"vkCreateCommandPool":      unsafe.Pointer(C.vklens_CreateCommandPool),
	"vkDestroyCommandPool":     unsafe.Pointer(C.vklens_DestroyCommandPool),
	"vkAllocateCommandBuffers": unsafe.Pointer(C.vklens_AllocateCommandBuffers),
	"vkFreeCommandBuffers":     unsafe.Pointer(C.vklens_FreeCommandBuffers),
	"vkBeginCommandBuffer":     unsafe.Pointer(C.vklens_BeginCommandBuffer),
	"vkEndCommandBuffer":       unsafe.Pointer(C.vklens_EndCommandBuffer),
	"vkResetCommandBuffer":     unsafe.Pointer(C.vklens_ResetCommandBuffer),
	"vkCmdBindPipeline":        unsafe.Pointer(C.vklens_CmdBindPipeline),
	"vkCmdBindVertexBuffers":   unsafe.Pointer(C.vklens_CmdBindVertexBuffers),
	"vkCmdBindIndexBuffer":     unsafe.Pointer(C.vklens_CmdBindIndexBuffer),
	"vkCmdDraw":                unsafe.Pointer(C.vklens_CmdDraw),
	"vkCmdDrawIndexed":         unsafe.Pointer(C.vklens_CmdDrawIndexed),
	"vkCmdBeginRenderPass":     unsafe.Pointer(C.vklens_CmdBeginRenderPass),
	"vkCmdNextSubpass":         unsafe.Pointer(C.vklens_CmdNextSubpass),
	"vkCmdEndRenderPass":       unsafe.Pointer(C.vklens_CmdEndRenderPass),
	"vkCmdExecuteCommands":     unsafe.Pointer(C.vklens_CmdExecuteCommands),
	"vkQueueSubmit":            unsafe.Pointer(C.vklens_QueueSubmit),
	"vkCreateSwapchainKHR":     unsafe.Pointer(C.vklens_CreateSwapchainKHR),
	"vkDestroySwapchainKHR":    unsafe.Pointer(C.vklens_DestroySwapchainKHR),
}

//export vklens_NegotiateLoaderLayerInterfaceVersion
func vklens_NegotiateLoaderLayerInterfaceVersion(pVersionStruct *C.VkNegotiateLayerInterface) C.VkResult {
	if pVersionStruct == nil {
		return C.VkResult(vk.ErrorInitializationFailed)
	}
	// This layer speaks interface version 2 (GetPhysicalDeviceProcAddr
	// support not needed, since every intercepted entry point below is an
	// instance- or device-level function). A newer loader negotiating a
	// higher version still gets 2; an older one negotiating 1 is rejected
	// since version 1 predates the GetDeviceProcAddr export this layer
	// relies on.
	const supportedVersion = 2
	if pVersionStruct.loaderLayerInterfaceVersion > supportedVersion {
		pVersionStruct.loaderLayerInterfaceVersion = supportedVersion
	}
	if pVersionStruct.loaderLayerInterfaceVersion < supportedVersion {
		return C.VkResult(vk.ErrorIncompatibleDriver)
	}
	pVersionStruct.pfnGetInstanceProcAddr = C.PFN_vkGetInstanceProcAddr(C.vklens_GetInstanceProcAddr)
	pVersionStruct.pfnGetDeviceProcAddr = C.PFN_vkGetDeviceProcAddr(C.vklens_GetDeviceProcAddr)
	return C.VkResult(vk.Success)
}

//export vklens_GetInstanceProcAddr
func vklens_GetInstanceProcAddr(instance C.VkInstance, pName *C.char) C.PFN_vkVoidFunction {
	name := C.GoString(pName)
	if p, ok := instanceProcTable[name]; ok {
		return C.PFN_vkVoidFunction(p)
	}
	if p, ok := deviceProcTable[name]; ok {
		// A handful of device-level entry points (this layer's own
		// intercepts) are also legal to resolve through
		// vkGetInstanceProcAddr per the spec's "instance-level trampoline"
		// allowance; the loader/ICD only requires vkGetDeviceProcAddr for
		// the fast path.
		return C.PFN_vkVoidFunction(p)
	}

	handle := vk.Instance(uintptr(unsafe.Pointer(instance)))
	st := lookupInstance(handle)
	if st == nil || st.nextGIPA == nil {
		return nil
	}
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return C.PFN_vkGetInstanceProcAddr(st.nextGIPA)(instance, cname)
}

//export vklens_GetDeviceProcAddr
func vklens_GetDeviceProcAddr(device C.VkDevice, pName *C.char) C.PFN_vkVoidFunction {
	name := C.GoString(pName)
	if p, ok := deviceProcTable[name]; ok {
		return C.PFN_vkVoidFunction(p)
	}

	handle := vk.Device(uintptr(unsafe.Pointer(device)))
	st := lookupDevice(handle)
	if st == nil || st.nextGDPA == nil {
		return nil
	}
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return C.PFN_vkGetDeviceProcAddr(st.nextGDPA)(device, cname)
}

//export vklens_EnumerateInstanceLayerProperties
func vklens_EnumerateInstanceLayerProperties(pPropertyCount *C.uint32_t, pProperties *C.VkLayerProperties) C.VkResult {
	return enumerateLayerProperties(pPropertyCount, pProperties)
}

//export vklens_EnumerateDeviceLayerProperties
func vklens_EnumerateDeviceLayerProperties(physicalDevice C.VkPhysicalDevice, pPropertyCount *C.uint32_t, pProperties *C.VkLayerProperties) C.VkResult {
	return enumerateLayerProperties(pPropertyCount, pProperties)
}

func enumerateLayerProperties(pPropertyCount *C.uint32_t, pProperties *C.VkLayerProperties) C.VkResult {
	if pProperties == nil {
		*pPropertyCount = 1
		return C.VkResult(vk.Success)
	}
	if *pPropertyCount < 1 {
		return C.VkResult(vk.Incomplete)
	}
	*pPropertyCount = 1

	nameBytes := []byte(layerName)
	for i := 0; i < len(pProperties.layerName) && i < len(nameBytes); i++ {
		pProperties.layerName[i] = C.char(nameBytes[i])
	}
	pProperties.specVersion = 1 << 22 // VK_API_VERSION_1_0, encoded the same way VK_MAKE_API_VERSION does for (0,1,0,0)
	pProperties.implementationVersion = 1

	desc := []byte("vklens command capture and introspection layer")
	for i := 0; i < len(pProperties.description) && i < len(desc); i++ {
		pProperties.description[i] = C.char(desc[i])
	}
	return C.VkResult(vk.Success)
}
