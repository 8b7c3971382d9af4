// Copyright 2025 The vklens Authors
// SPDX-License-Identifier: MIT

package vk

import (
	"unsafe"

	"github.com/vklens/vklens/internal/dispatch"
)

// DispatchKey reads the dispatch-table pointer a dispatchable handle
// carries in its first machine word (spec.md §4.1) and returns it as a
// dispatch.Key. handle is the raw pointer value the loader/driver
// handed the layer; Instance, PhysicalDevice, Device, Queue, and
// CommandBuffer are all represented as that same uintptr, per the doc
// comment on their declarations in types.go.
//
// A zero handle (VK_NULL_HANDLE, or the sentinel instance/device value
// passed to global-level entry points) has no dispatch table to read
// and yields the zero Key, which dispatch.Global.Find reports as
// unbound rather than this package dereferencing a null pointer.
func DispatchKey(handle uintptr) dispatch.Key {
	if handle == 0 {
		return 0
	}
	return dispatch.Key(*(*uintptr)(unsafe.Pointer(handle)))
}
