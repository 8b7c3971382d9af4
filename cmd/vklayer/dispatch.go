// Copyright 2025 The vklens Authors
// SPDX-License-Identifier: MIT

package main

/*
#include "layer.h"
*/
import "C"

import (
	"unsafe"

	"github.com/vklens/vklens/internal/objects"
	"github.com/vklens/vklens/internal/vk"
	"github.com/vklens/vklens/internal/vklog"
)

// wrapGetInstanceProcAddr/wrapGetDeviceProcAddr build the Go closures
// every resolved entry point below is called through. The
// loader hands this layer a raw C function pointer; internal/vk.Commands
// expects a Go func(string) vk.PFN, so each pNext walk result is wrapped
// once here.
func wrapGetInstanceProcAddr(fn unsafe.Pointer, instance vk.Instance) func(string) vk.PFN {
	return func(name string) vk.PFN {
		if fn == nil {
			return nil
		}
		cname := C.CString(name)
		defer C.free(unsafe.Pointer(cname))
		p := C.PFN_vkGetInstanceProcAddr(fn)(C.VkInstance(unsafe.Pointer(uintptr(instance))), cname)
		return vk.PFN(unsafe.Pointer(p))
	}
}

func wrapGetDeviceProcAddr(fn unsafe.Pointer, device vk.Device) func(string) vk.PFN {
	return func(name string) vk.PFN {
		if fn == nil {
			return nil
		}
		cname := C.CString(name)
		defer C.free(unsafe.Pointer(cname))
		p := C.PFN_vkGetDeviceProcAddr(fn)(C.VkDevice(unsafe.Pointer(uintptr(device))), cname)
		return vk.PFN(unsafe.Pointer(p))
	}
}

//export vklens_CreateInstance
func vklens_CreateInstance(pCreateInfo unsafe.Pointer, pAllocator unsafe.Pointer, pInstance *C.VkInstance) C.VkResult {
	header := (*chainHeader)(pCreateInfo)
	nextGIPA := nextInstanceProcAddr(header.pNext)
	if nextGIPA == nil {
		vklog.Error("vklens: vkCreateInstance found no VK_LAYER_LINK_INFO in pNext chain")
		return C.VkResult(vk.ErrorInitializationFailed)
	}

	createInstance := wrapGetInstanceProcAddr(nextGIPA, 0)("vkCreateInstance")
	if createInstance == nil {
		return C.VkResult(vk.ErrorIncompatibleDriver)
	}
	result := C.VkResult(callNextCreateInstance(createInstance, pCreateInfo, pAllocator, pInstance))
	if vk.Result(result) != vk.Success {
		return result
	}

	handle := vk.Instance(uintptr(unsafe.Pointer(*pInstance)))
	shadow := &objects.Instance{
		Raw:             handle,
		GetInstanceProc: wrapGetInstanceProcAddr(nextGIPA, handle),
	}
	registerInstance(handle, &instanceState{shadow: shadow, nextGIPA: nextGIPA})
	return result
}

//export vklens_DestroyInstance
func vklens_DestroyInstance(instance C.VkInstance, pAllocator unsafe.Pointer) {
	handle := vk.Instance(uintptr(unsafe.Pointer(instance)))
	st := lookupInstance(handle)
	if st == nil {
		return
	}
	destroyInstance := wrapGetInstanceProcAddr(st.nextGIPA, handle)("vkDestroyInstance")
	if destroyInstance != nil {
		callNextDestroyInstance(destroyInstance, instance, pAllocator)
	}
	unregisterInstance(handle)
}

//export vklens_CreateDevice
func vklens_CreateDevice(physicalDevice C.VkPhysicalDevice, pCreateInfo unsafe.Pointer, pAllocator unsafe.Pointer, pDevice *C.VkDevice) C.VkResult {
	pd := vk.PhysicalDevice(uintptr(unsafe.Pointer(physicalDevice)))
	instSt := physicalDeviceOwner(pd)
	if instSt == nil {
		vklog.Error("vklens: vkCreateDevice called with an unrecognized VkPhysicalDevice")
		return C.VkResult(vk.ErrorInitializationFailed)
	}

	header := (*chainHeader)(pCreateInfo)
	nextGIPA, nextGDPA := nextDeviceProcAddrs(header.pNext)
	if nextGIPA == nil {
		nextGIPA = instSt.nextGIPA
	}
	if nextGDPA == nil {
		vklog.Error("vklens: vkCreateDevice found no VK_LAYER_LINK_INFO in pNext chain")
		return C.VkResult(vk.ErrorInitializationFailed)
	}

	createDevice := wrapGetInstanceProcAddr(nextGIPA, 0)("vkCreateDevice")
	if createDevice == nil {
		return C.VkResult(vk.ErrorIncompatibleDriver)
	}
	result := C.VkResult(callNextCreateDevice(createDevice, physicalDevice, pCreateInfo, pAllocator, pDevice))
	if vk.Result(result) != vk.Success {
		return result
	}

	handle := vk.Device(uintptr(unsafe.Pointer(*pDevice)))
	getDeviceProc := wrapGetDeviceProcAddr(nextGDPA, handle)

	cmds := &vk.Commands{}
	if err := cmds.LoadDevice(func(name string) vk.PFN { return getDeviceProc(name) }); err != nil {
		vklog.Warn("vklens: not every device entry point resolved", "err", err.Error())
	}

	shadow := objects.NewDevice(handle, &objects.PhysicalDevice{Raw: pd, Instance: instSt.shadow}, instSt.shadow, cmds)
	registerDevice(handle, &deviceState{shadow: shadow, nextGDPA: nextGDPA})
	return result
}

//export vklens_DestroyDevice
func vklens_DestroyDevice(device C.VkDevice, pAllocator unsafe.Pointer) {
	handle := vk.Device(uintptr(unsafe.Pointer(device)))
	st := lookupDevice(handle)
	if st == nil {
		return
	}
	st.shadow.Commands.DestroyDevice(handle)
	unregisterDevice(handle)
}
