// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package logger provides a thin wrapper around log/slog for the tripfare service.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Logger is a type wrapper around the stdlib slog.Logger.
type Logger struct {
	*slog.Logger
}

// New returns a new Logger that writes to STDERR with the given log level.
func New(level slog.Level) *Logger {
	return NewLogger(level, os.Stderr)
}

// NewLogger returns a new Logger for the given log level. If no writer is provided,
// log output goes to STDERR.
func NewLogger(level slog.Level, writer ...io.Writer) *Logger {
	var out io.Writer = os.Stderr
	if len(writer) > 0 && writer[0] != nil {
		out = writer[0]
	}
	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})
	return &Logger{slog.New(handler)}
}

// Err returns a slog.Attr for the given error, so errors are logged in a
// uniform "error" attribute.
func Err(err error) slog.Attr {
	return slog.Any("error", err)
}
