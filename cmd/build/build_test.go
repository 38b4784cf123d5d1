/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package build

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	buildlib "bennypowers.dev/gavanim/build"
	"bennypowers.dev/gavanim/config"
	"bennypowers.dev/gavanim/internal/logger"
	"bennypowers.dev/gavanim/schema"
	"bennypowers.dev/gavanim/testutil"
)

func noColor(t *testing.T) {
	t.Helper()
	logger.SetColor(false)
	t.Cleanup(func() { logger.SetColor(true) })
}

func TestWriteSummary(t *testing.T) {
	noColor(t)
	mfs := testutil.NewMemFS(t, map[string]string{
		"/project/tokens/selected-tokens.json": string(testutil.LoadFixtureFile(t, "fixtures/brands/tokens.json")),
	})
	cfg := config.Default()
	cfg.DefaultBrand = "banana"

	report, err := buildlib.Run(t.Context(), buildlib.Options{Root: "/project", FS: mfs, Config: cfg})
	require.NoError(t, err)

	var buf bytes.Buffer
	WriteSummary(&buf, "/project", report, 1500*time.Microsecond)
	out := buf.String()

	assert.Contains(t, out, "Sources\n  tokens/selected-tokens.json\n")
	assert.Contains(t, out, "Tokens\n  Global     1\n  Total      1\n")
	assert.Contains(t, out, "Themes 2 brands x 2 modes\n")
	assert.Contains(t, out, "  ok Banana/light\n  ok Banana/dark\n  ok Apple/light\n  ok Apple/dark\n")
	assert.Contains(t, out, "Warnings (2)\n")
	assert.Contains(t, out, `Brands: expected top-level section "Brands" is missing`)
	assert.Contains(t, out, "Built 11 files in dist/tokens (2ms)\n")
}

func TestWriteSummary_Failures(t *testing.T) {
	noColor(t)
	mfs := testutil.NewMemFS(t, map[string]string{
		"/project/tokens/selected-tokens.json": `{"Global": {"color": {
  "a": {"value": "#000", "$extensions": {"mode": {"dark": "{color.b}"}}},
  "b": {"value": "{color.a}"},
  "c": {"value": "{color.gone}"}
}}}`,
	})

	report, err := buildlib.Run(t.Context(), buildlib.Options{Root: "/project", FS: mfs})
	require.ErrorIs(t, err, schema.ErrSerialization)

	var buf bytes.Buffer
	WriteSummary(&buf, "/project", report, time.Second)
	out := buf.String()

	assert.Contains(t, out, "  ok Default/light (1 unresolved)\n")
	assert.Contains(t, out, "  x Default/dark: theme default/dark: circular reference detected")
	assert.Contains(t, out, "Built with 1 failed themes: 5 files in dist/tokens (1s)\n")
}

func TestRun_WritesToDisk(t *testing.T) {
	noColor(t)
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "tokens"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "tokens", "selected-tokens.json"),
		testutil.LoadFixtureFile(t, "fixtures/selected/tokens.json"),
		0o644,
	))

	viper.Set("root", dir)
	viper.Set("out", "public")
	t.Cleanup(viper.Reset)

	var buf bytes.Buffer
	Cmd.SetOut(&buf)
	Cmd.SetContext(t.Context())
	t.Cleanup(func() { Cmd.SetOut(nil) })

	require.NoError(t, run(Cmd, nil))

	css, err := os.ReadFile(filepath.Join(dir, "public", "banana", "css", "dark.css"))
	require.NoError(t, err)
	assert.Contains(t, string(css), `[data-brand="banana"][data-mode="dark"] {`)
	assert.FileExists(t, filepath.Join(dir, "public", "index.json"))
	assert.Contains(t, buf.String(), "in public")
}

func TestRun_MissingSource(t *testing.T) {
	noColor(t)
	dir := t.TempDir()
	viper.Set("root", dir)
	t.Cleanup(viper.Reset)

	var buf bytes.Buffer
	Cmd.SetOut(&buf)
	Cmd.SetContext(t.Context())
	t.Cleanup(func() { Cmd.SetOut(nil) })

	err := run(Cmd, nil)
	require.ErrorIs(t, err, schema.ErrSourceMissing)
	assert.Empty(t, buf.String())
	assert.NoDirExists(t, filepath.Join(dir, "dist"))
}
