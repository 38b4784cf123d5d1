/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package logger provides leveled diagnostics for the CLI. Output can be
// silenced for the MCP server, whose stdout carries the protocol.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

var (
	mu      sync.Mutex
	output  io.Writer = os.Stderr
	logger            = log.New(output, "", 0)
	verbose bool
	color   = true
)

// SetOutput configures the logger output destination.
// Use io.Discard to silence all logging.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	logger = log.New(output, "", 0)
}

// SetVerbose enables Debug messages.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// SetColor enables or disables terminal styling.
func SetColor(c bool) {
	mu.Lock()
	defer mu.Unlock()
	color = c
}

// ColorEnabled reports whether terminal styling is on.
func ColorEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return color
}

func printf(prefix string, style styleFunc, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	msg := fmt.Sprintf(format, args...)
	if prefix != "" {
		p := prefix
		if color {
			p = style(prefix)
		}
		msg = p + " " + msg
	}
	logger.Print(msg)
}

// Error logs an error message.
func Error(format string, args ...any) {
	printf("error:", StyleError.Render, format, args...)
}

// Warn logs a warning message.
func Warn(format string, args ...any) {
	printf("warning:", StyleWarn.Render, format, args...)
}

// Info logs an informational message.
func Info(format string, args ...any) {
	printf("", nil, format, args...)
}

// Debug logs a message only in verbose mode.
func Debug(format string, args ...any) {
	mu.Lock()
	v := verbose
	mu.Unlock()
	if v {
		printf("debug:", StyleMuted.Render, format, args...)
	}
}
