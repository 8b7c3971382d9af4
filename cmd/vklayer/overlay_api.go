// Copyright 2025 The vklens Authors
// SPDX-License-Identifier: MIT

package main

/*
#include <stdint.h>
*/
import "C"

import (
	"unsafe"

	"github.com/vklens/vklens/internal/hook"
	"github.com/vklens/vklens/internal/overlay"
	"github.com/vklens/vklens/internal/record"
	"github.com/vklens/vklens/internal/vk"
	"github.com/vklens/vklens/internal/vklog"
)

// boolToC/cToBool convert between Go bool and the C int32_t this API
// uses for boolean parameters and return values — cgo does not let a
// //export'd function accept or return bool directly.
func boolToC(b bool) C.int32_t {
	if b {
		return 1
	}
	return 0
}

func cToBool(v C.int32_t) bool { return v != 0 }

//export vklens_CreateOverlay
func vklens_CreateOverlay(device C.uint64_t) C.uint64_t {
	st := lookupDevice(vk.Device(uintptr(device)))
	if st == nil {
		vklog.Error("vklens: vklens_CreateOverlay called with an unrecognized VkDevice")
		return 0
	}

	ov := overlay.New()
	bindDeviceOverlay(st.shadow, ov)
	if sc := st.shadow.LastSwapchain; sc != nil {
		ov.BindSwapchain(sc)
	}
	return C.uint64_t(registerOverlay(ov))
}

//export vklens_DestroyOverlay
func vklens_DestroyOverlay(handle C.uint64_t) {
	ov := unregisterOverlay(overlayHandle(handle))
	if ov == nil {
		return
	}
	deviceOverlaysMu.Lock()
	for dev, bound := range deviceOverlays {
		if bound == ov {
			delete(deviceOverlays, dev)
		}
	}
	deviceOverlaysMu.Unlock()
	ov.Close()
}

//export vklens_ShowOverlay
func vklens_ShowOverlay(handle C.uint64_t) {
	if ov := lookupOverlay(overlayHandle(handle)); ov != nil {
		ov.Show()
	}
}

//export vklens_HideOverlay
func vklens_HideOverlay(handle C.uint64_t) {
	if ov := lookupOverlay(overlayHandle(handle)); ov != nil {
		ov.Hide()
	}
}

//export vklens_OverlayVisible
func vklens_OverlayVisible(handle C.uint64_t) C.int32_t {
	ov := lookupOverlay(overlayHandle(handle))
	if ov == nil {
		return 0
	}
	return boolToC(ov.Visible())
}

//export vklens_OverlayRequestResize
func vklens_OverlayRequestResize(handle C.uint64_t, width, height C.uint32_t) {
	if ov := lookupOverlay(overlayHandle(handle)); ov != nil {
		ov.RequestResize(uint32(width), uint32(height))
	}
}

//export vklens_SelectCommand
func vklens_SelectCommand(handle C.uint64_t, kinds, relIDs *C.int32_t, count C.uint32_t) {
	ov := lookupOverlay(overlayHandle(handle))
	if ov == nil {
		return
	}
	n := int(count)
	if n == 0 {
		ov.Select(nil)
		return
	}
	kindSlice := unsafe.Slice(kinds, n)
	relSlice := unsafe.Slice(relIDs, n)
	path := make(hook.Path, n)
	for i := 0; i < n; i++ {
		path[i] = hook.PathStep{Kind: record.Kind(kindSlice[i]), RelID: int(relSlice[i])}
	}
	ov.Select(path)
}

//export vklens_OverlayPollState
func vklens_OverlayPollState(handle C.uint64_t, pVisible, pHookState, pHasResult *C.int32_t, pStartNs, pEndNs *C.uint64_t) {
	ov := lookupOverlay(overlayHandle(handle))
	if ov == nil {
		return
	}
	state := ov.CurrentState()
	*pVisible = boolToC(state.Visible)
	*pHookState = C.int32_t(state.HookState)
	if state.LastResult == nil {
		*pHasResult = 0
		return
	}
	*pHasResult = 1
	*pStartNs = C.uint64_t(state.LastResult.TimestampStartNs)
	*pEndNs = C.uint64_t(state.LastResult.TimestampEndNs)
}

//export vklens_OverlayMouseMove
func vklens_OverlayMouseMove(handle C.uint64_t, x, y C.float) C.int32_t {
	ov := lookupOverlay(overlayHandle(handle))
	if ov == nil {
		return 0
	}
	return boolToC(ov.MouseMove(float32(x), float32(y)))
}

//export vklens_OverlayMouseButton
func vklens_OverlayMouseButton(handle C.uint64_t, button C.int32_t, pressed C.int32_t, mods C.uint32_t) C.int32_t {
	ov := lookupOverlay(overlayHandle(handle))
	if ov == nil {
		return 0
	}
	return boolToC(ov.MouseButtonEvent(overlay.MouseButton(button), cToBool(pressed), overlay.Modifiers(mods)))
}

//export vklens_OverlayMouseWheel
func vklens_OverlayMouseWheel(handle C.uint64_t, deltaX, deltaY C.float) C.int32_t {
	ov := lookupOverlay(overlayHandle(handle))
	if ov == nil {
		return 0
	}
	return boolToC(ov.MouseWheel(float32(deltaX), float32(deltaY)))
}

//export vklens_OverlayKeyEvent
func vklens_OverlayKeyEvent(handle C.uint64_t, key C.uint32_t, pressed C.int32_t, mods C.uint32_t) C.int32_t {
	ov := lookupOverlay(overlayHandle(handle))
	if ov == nil {
		return 0
	}
	return boolToC(ov.KeyEvent(overlay.KeyCode(key), cToBool(pressed), overlay.Modifiers(mods)))
}

//export vklens_OverlayTextInput
func vklens_OverlayTextInput(handle C.uint64_t, text *C.char) C.int32_t {
	ov := lookupOverlay(overlayHandle(handle))
	if ov == nil {
		return 0
	}
	return boolToC(ov.TextInput(C.GoString(text)))
}
