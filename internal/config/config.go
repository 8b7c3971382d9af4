// Copyright 2025 The vklens Authors
// SPDX-License-Identifier: MIT

// Package config reads the layer's two environment-variable switches
// (spec.md §6). There is no CLI and no persisted state: the layer has no
// main() of its own, so configuration is read once, lazily, on the first
// call to Get (internal/vklog.Bug makes that call when it reports an
// invariant violation).
package config

import (
	"os"
	"strconv"
	"sync"
)

// Config is the layer's entire external configuration surface.
type Config struct {
	// TrapWarnings enables dlg-style trapping of warnings and errors:
	// invariant violations that are normally logged and tolerated
	// instead abort the process, for use under a debugger.
	TrapWarnings bool

	// NoTimelineSemaphores disables the layer's own use of timeline
	// semaphores, working around buggy validation layers that mishandle
	// them (spec.md §6).
	NoTimelineSemaphores bool
}

const (
	envTrapWarnings         = "VKLENS_TRAP_WARNINGS"
	envNoTimelineSemaphores = "VKLENS_NO_TIMELINE_SEMAPHORES"
)

var (
	once   sync.Once
	active Config
)

// Get returns the process-wide configuration, reading the environment on
// first call and caching the result.
func Get() Config {
	once.Do(func() {
		active = Config{
			TrapWarnings:         boolEnv(envTrapWarnings),
			NoTimelineSemaphores: boolEnv(envNoTimelineSemaphores),
		}
	})
	return active
}

func boolEnv(name string) bool {
	v, ok := os.LookupEnv(name)
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return v != ""
	}
	return b
}
