// Copyright 2025 The vklens Authors
// SPDX-License-Identifier: MIT

package overlay

// MouseButton identifies which button a button event refers to.
type MouseButton int32

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

// Modifiers is a bitmask of keyboard modifier keys held during a key or
// mouse event, matching spec.md §6's "key down/up with modifier flags".
type Modifiers uint32

const (
	ModShift Modifiers = 1 << iota
	ModControl
	ModAlt
	ModSuper
)

// KeyCode is a platform-independent key identifier. cmd/vklayer's C API
// passes these through unchanged from the host's own key codes; this
// package never interprets the value itself, only whether the overlay
// is in a state to consume it.
type KeyCode uint32

// consumed reports whether the overlay is currently claiming input
// events at all. The renderer that would hit-test a specific event
// against the debug surface's widgets is out of scope for this
// package (spec.md §1); every forwarder below degrades to "the overlay
// claims everything while visible, nothing while hidden", which is
// exactly what spec.md's E6 scenario checks.
func (o *Overlay) consumed() bool {
	return o.win.isVisible()
}

// MouseMove forwards a cursor-position update. x/y are in the overlay's
// own window coordinate space.
func (o *Overlay) MouseMove(x, y float32) bool {
	return o.consumed()
}

// MouseButtonEvent forwards a button press or release.
func (o *Overlay) MouseButtonEvent(button MouseButton, pressed bool, mods Modifiers) bool {
	return o.consumed()
}

// MouseWheel forwards a scroll-wheel delta.
func (o *Overlay) MouseWheel(deltaX, deltaY float32) bool {
	return o.consumed()
}

// KeyEvent forwards a key press or release.
func (o *Overlay) KeyEvent(key KeyCode, pressed bool, mods Modifiers) bool {
	return o.consumed()
}

// TextInput forwards a UTF-8 text-input event (composed characters,
// IME output — distinct from KeyEvent's raw key codes).
func (o *Overlay) TextInput(text string) bool {
	return o.consumed()
}
