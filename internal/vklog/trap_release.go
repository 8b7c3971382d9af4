// Copyright 2025 The vklens Authors
// SPDX-License-Identifier: MIT

//go:build !vklens_debug

package vklog

// trap is a no-op in release builds: per spec.md §4.8, an invariant
// violation is tolerated and the affected GUI view degrades instead of
// crashing the host application.
func trap(string) {}
