/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package logger_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"bennypowers.dev/gavanim/internal/logger"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	logger.SetColor(false)
	t.Cleanup(func() {
		logger.SetOutput(os.Stderr)
		logger.SetColor(true)
		logger.SetVerbose(false)
	})

	logger.Info("built %d themes", 4)
	logger.Warn("reference {%s} has no separator", "x")
	logger.Error("theme %s failed", "apple/dark")
	logger.Debug("hidden")
	logger.SetVerbose(true)
	logger.Debug("shown")

	assert.Equal(t, "built 4 themes\n"+
		"warning: reference {x} has no separator\n"+
		"error: theme apple/dark failed\n"+
		"debug: shown\n", buf.String())
}

func TestRender_NoColor(t *testing.T) {
	logger.SetColor(false)
	t.Cleanup(func() { logger.SetColor(true) })
	assert.Equal(t, "ok", logger.Render(logger.StyleSuccess, "ok"))
}
