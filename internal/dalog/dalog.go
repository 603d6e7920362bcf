// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dalog provides the structured logging used by the archive
// directory-walking operations (ExtractTo, Compile, FromDirectory) and the
// cmd/ binaries. Library code never logs on its own; a *Logger is only
// consulted when a caller opts in via a WithLogger option.
package dalog

import (
	"io"
	"log/slog"
)

// Logger wraps slog.Logger with a module-tagging convenience, matching the
// per-subsystem child-logger idiom used elsewhere in the corpus.
type Logger struct {
	inner *slog.Logger
}

// New creates a Logger that writes JSON to w at the given level.
func New(w io.Writer, level slog.Level) *Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return &Logger{inner: slog.New(h)}
}

// NewWithHandler creates a Logger backed by the supplied slog.Handler.
func NewWithHandler(h slog.Handler) *Logger {
	return &Logger{inner: slog.New(h)}
}

// Module returns a child logger tagged with the given subsystem name.
func (l *Logger) Module(name string) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{inner: l.inner.With("module", name)}
}

// Debug logs at LevelDebug. A nil *Logger discards the message, so callers
// can pass a possibly-nil logger without guarding every call site.
func (l *Logger) Debug(msg string, args ...any) {
	if l == nil {
		return
	}
	l.inner.Debug(msg, args...)
}

// Info logs at LevelInfo.
func (l *Logger) Info(msg string, args ...any) {
	if l == nil {
		return
	}
	l.inner.Info(msg, args...)
}

// Warn logs at LevelWarn.
func (l *Logger) Warn(msg string, args ...any) {
	if l == nil {
		return
	}
	l.inner.Warn(msg, args...)
}

// Error logs at LevelError.
func (l *Logger) Error(msg string, args ...any) {
	if l == nil {
		return
	}
	l.inner.Error(msg, args...)
}
