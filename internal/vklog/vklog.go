// Copyright 2025 The vklens Authors
// SPDX-License-Identifier: MIT

// Package vklog is the layer's ambient logging surface: a context-free
// wrapper around log/slog with a no-op default, generalizing
// hal/logger.go's atomic-pointer pattern from a single HAL to the whole
// layer so that disabled logging costs nothing in the application's hot
// path.
package vklog

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/vklens/vklens/internal/config"
)

// nopHandler discards every record without formatting it, so a disabled
// logger costs a single atomic load and an Enabled() check.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger configures the logger used by every vklens package. The layer
// produces no output by default since it shares the host application's
// process and standard streams; a host that wants diagnostics calls this
// once during startup. Pass nil to restore the silent default.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the currently configured logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

func Debug(msg string, args ...any) { Logger().Debug(msg, args...) }
func Info(msg string, args ...any)  { Logger().Info(msg, args...) }
func Warn(msg string, args ...any)  { Logger().Warn(msg, args...) }
func Error(msg string, args ...any) { Logger().Error(msg, args...) }

// Bug reports an internal invariant violation (spec.md §4.8/§7): it is
// always logged at Error severity; built with the vklens_debug tag, or
// run with VKLENS_TRAP_WARNINGS set (config.Config.TrapWarnings), it
// additionally panics so the violation is caught during development
// instead of silently degrading a GUI view in production.
func Bug(msg string) {
	Logger().Error(msg)
	if config.Get().TrapWarnings {
		panic(msg)
	}
	trap(msg)
}
