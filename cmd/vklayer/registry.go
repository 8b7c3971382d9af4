// Copyright 2025 The vklens Authors
// SPDX-License-Identifier: MIT

package main

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/vklens/vklens/internal/dispatch"
	"github.com/vklens/vklens/internal/objects"
	"github.com/vklens/vklens/internal/overlay"
	"github.com/vklens/vklens/internal/vk"
)

// instanceState is everything vkCreateInstance records that isn't already
// on the objects.Instance shadow itself: the next link's proc-addr
// function, needed by this layer's own vkGetInstanceProcAddr to pass
// through names it does not intercept.
type instanceState struct {
	shadow    *objects.Instance
	nextGIPA  unsafe.Pointer
}

// deviceState is the vkCreateDevice equivalent.
type deviceState struct {
	shadow   *objects.Device
	nextGDPA unsafe.Pointer
}

var (
	instancesMu sync.RWMutex
	instances   = make(map[dispatch.Key]*instanceState)
	// physDeviceOwner records which instance enumerated a given physical
	// device, populated by the thin vkEnumeratePhysicalDevices wrapper so
	// vkCreateDevice can recover the owning instance's proc-addr chain
	// without the layer maintaining a dedicated physical-device registry.
	physDeviceOwner = make(map[vk.PhysicalDevice]*instanceState)

	devicesMu sync.RWMutex
	devices   = make(map[dispatch.Key]*deviceState)
)

func recordPhysicalDeviceOwner(pd vk.PhysicalDevice, st *instanceState) {
	instancesMu.Lock()
	physDeviceOwner[pd] = st
	instancesMu.Unlock()
}

func physicalDeviceOwner(pd vk.PhysicalDevice) *instanceState {
	instancesMu.RLock()
	defer instancesMu.RUnlock()
	return physDeviceOwner[pd]
}

func registerInstance(handle vk.Instance, st *instanceState) {
	key := vk.DispatchKey(uintptr(handle))
	instancesMu.Lock()
	instances[key] = st
	instancesMu.Unlock()
	dispatch.Instance().Bind(key, st.shadow)
}

func lookupInstance(handle vk.Instance) *instanceState {
	key := vk.DispatchKey(uintptr(handle))
	instancesMu.RLock()
	defer instancesMu.RUnlock()
	return instances[key]
}

func unregisterInstance(handle vk.Instance) {
	key := vk.DispatchKey(uintptr(handle))
	instancesMu.Lock()
	st := instances[key]
	delete(instances, key)
	for pd, owner := range physDeviceOwner {
		if owner == st {
			delete(physDeviceOwner, pd)
		}
	}
	instancesMu.Unlock()
	dispatch.Instance().Unbind(key)
}

func registerDevice(handle vk.Device, st *deviceState) {
	key := vk.DispatchKey(uintptr(handle))
	devicesMu.Lock()
	devices[key] = st
	devicesMu.Unlock()
	dispatch.Instance().Bind(key, st.shadow)
}

func lookupDevice(handle vk.Device) *deviceState {
	key := vk.DispatchKey(uintptr(handle))
	devicesMu.RLock()
	defer devicesMu.RUnlock()
	return devices[key]
}

func unregisterDevice(handle vk.Device) {
	key := vk.DispatchKey(uintptr(handle))
	devicesMu.Lock()
	delete(devices, key)
	devicesMu.Unlock()
	dispatch.Instance().Unbind(key)
}

// overlayHandle is the opaque value cmd/vklayer's public C API (spec.md §6)
// hands the host application for an overlay it created. It is not a
// dispatch.Key: the overlay has no corresponding Vulkan handle of its own,
// so it gets its own monotonic counter instead of borrowing a dispatch
// word from an object it doesn't own.
type overlayHandle uint64

var (
	overlaysMu  sync.RWMutex
	overlays    = make(map[overlayHandle]*overlay.Overlay)
	nextOverlay atomic.Uint64
)

func registerOverlay(o *overlay.Overlay) overlayHandle {
	h := overlayHandle(nextOverlay.Add(1))
	overlaysMu.Lock()
	overlays[h] = o
	overlaysMu.Unlock()
	return h
}

func lookupOverlay(h overlayHandle) *overlay.Overlay {
	overlaysMu.RLock()
	defer overlaysMu.RUnlock()
	return overlays[h]
}

func unregisterOverlay(h overlayHandle) *overlay.Overlay {
	overlaysMu.Lock()
	defer overlaysMu.Unlock()
	o := overlays[h]
	delete(overlays, h)
	return o
}

// deviceOverlays maps a device shadow to the overlay the host application
// created for it, so vkQueueSubmit and vkCreateSwapchainKHR can find the
// overlay watching that device without threading it through every call.
var (
	deviceOverlaysMu sync.RWMutex
	deviceOverlays   = make(map[*objects.Device]*overlay.Overlay)
)

func bindDeviceOverlay(dev *objects.Device, o *overlay.Overlay) {
	deviceOverlaysMu.Lock()
	deviceOverlays[dev] = o
	deviceOverlaysMu.Unlock()
}

func deviceOverlay(dev *objects.Device) *overlay.Overlay {
	deviceOverlaysMu.RLock()
	defer deviceOverlaysMu.RUnlock()
	return deviceOverlays[dev]
}

func unbindDeviceOverlay(dev *objects.Device) {
	deviceOverlaysMu.Lock()
	delete(deviceOverlays, dev)
	deviceOverlaysMu.Unlock()
}
