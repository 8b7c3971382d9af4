// Copyright 2025 The vklens Authors
// SPDX-License-Identifier: MIT

//go:build vklens_debug

package vklog

// trap panics in debug builds so an invariant violation is caught at the
// point it happens rather than degrading a GUI view silently.
func trap(msg string) {
	panic(msg)
}
