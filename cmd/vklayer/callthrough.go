// Copyright 2025 The vklens Authors
// SPDX-License-Identifier: MIT

package main

import (
	"sync"
	"unsafe"

	"github.com/go-webgpu/goffi/ffi"
	"github.com/go-webgpu/goffi/types"
	"github.com/vklens/vklens/internal/vk"
)

// The four entry points below are the ones this layer calls through to the
// next link itself rather than letting internal/vk.Commands do it (that
// package's Commands methods all assume a resolved *device*; vkCreateInstance
// and vkCreateDevice run before a Commands exists). The call shapes mirror
// internal/vk/signatures.go's sigResultPtrPtrPtr and sigResultHandlePtrPtrPtr
// exactly, since these are the same two create-style signatures that
// internal/vk already needed for CreateBuffer/CreateImage/etc.
var (
	sigResultPtrPtrPtr       types.CallInterface
	sigResultHandlePtrPtrPtr types.CallInterface
	sigResultHandlePtrPtr    types.CallInterface
	sigVoidHandlePtr         types.CallInterface

	ffiInitOnce sync.Once
	ffiInitErr  error
)

func prepareCallthroughSignatures() error {
	ffiInitOnce.Do(func() {
		ptr := types.PointerTypeDescriptor
		u64 := types.UInt64TypeDescriptor
		resultRet := types.SInt32TypeDescriptor
		voidRet := types.VoidTypeDescriptor

		if err := ffi.PrepareCallInterface(&sigResultPtrPtrPtr, types.DefaultCall, resultRet, []*types.TypeDescriptor{ptr, ptr, ptr}); err != nil {
			ffiInitErr = err
			return
		}
		if err := ffi.PrepareCallInterface(&sigResultHandlePtrPtrPtr, types.DefaultCall, resultRet, []*types.TypeDescriptor{u64, ptr, ptr, ptr}); err != nil {
			ffiInitErr = err
			return
		}
		if err := ffi.PrepareCallInterface(&sigVoidHandlePtr, types.DefaultCall, voidRet, []*types.TypeDescriptor{u64, ptr}); err != nil {
			ffiInitErr = err
			return
		}
		if err := ffi.PrepareCallInterface(&sigResultHandlePtrPtr, types.DefaultCall, resultRet, []*types.TypeDescriptor{u64, ptr, ptr}); err != nil {
			ffiInitErr = err
			return
		}
	})
	return ffiInitErr
}

func callNextCreateInstance(fn vk.PFN, pCreateInfo, pAllocator, pInstance unsafe.Pointer) vk.Result {
	if err := prepareCallthroughSignatures(); err != nil || fn == nil {
		return vk.ErrorIncompatibleDriver
	}
	var result int32
	args := [3]unsafe.Pointer{unsafe.Pointer(&pCreateInfo), unsafe.Pointer(&pAllocator), unsafe.Pointer(&pInstance)}
	_ = ffi.CallFunction(&sigResultPtrPtrPtr, unsafe.Pointer(fn), unsafe.Pointer(&result), args[:])
	return vk.Result(result)
}

func callNextDestroyInstance(fn vk.PFN, instance, pAllocator unsafe.Pointer) {
	if fn == nil {
		return
	}
	args := [2]unsafe.Pointer{unsafe.Pointer(&instance), unsafe.Pointer(&pAllocator)}
	_ = ffi.CallFunction(&sigVoidHandlePtr, unsafe.Pointer(fn), nil, args[:])
}

func callNextCreateDevice(fn vk.PFN, physicalDevice, pCreateInfo, pAllocator, pDevice unsafe.Pointer) vk.Result {
	if err := prepareCallthroughSignatures(); err != nil || fn == nil {
		return vk.ErrorIncompatibleDriver
	}
	var result int32
	args := [4]unsafe.Pointer{
		unsafe.Pointer(&physicalDevice), unsafe.Pointer(&pCreateInfo), unsafe.Pointer(&pAllocator), unsafe.Pointer(&pDevice),
	}
	_ = ffi.CallFunction(&sigResultHandlePtrPtrPtr, unsafe.Pointer(fn), unsafe.Pointer(&result), args[:])
	return vk.Result(result)
}

func callNextEnumeratePhysicalDevices(fn vk.PFN, instance, pCount, pPhysicalDevices unsafe.Pointer) vk.Result {
	if err := prepareCallthroughSignatures(); err != nil || fn == nil {
		return vk.ErrorIncompatibleDriver
	}
	var result int32
	args := [3]unsafe.Pointer{unsafe.Pointer(&instance), unsafe.Pointer(&pCount), unsafe.Pointer(&pPhysicalDevices)}
	_ = ffi.CallFunction(&sigResultHandlePtrPtr, unsafe.Pointer(fn), unsafe.Pointer(&result), args[:])
	return vk.Result(result)
}
