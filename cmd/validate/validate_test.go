/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package validate

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/gavanim/internal/logger"
	"bennypowers.dev/gavanim/schema"
)

func project(t *testing.T, content string) string {
	t.Helper()
	logger.SetColor(false)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tokens.json"), []byte(content), 0o644))
	viper.Set("root", dir)
	t.Cleanup(func() {
		viper.Reset()
		logger.SetColor(true)
		for _, name := range []string{"strict", "quiet", "format"} {
			f := Cmd.Flags().Lookup(name)
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
	})
	return dir
}

func execute(t *testing.T, args []string, flags map[string]string) (string, error) {
	t.Helper()
	for k, v := range flags {
		require.NoError(t, Cmd.Flags().Set(k, v))
	}
	var buf bytes.Buffer
	Cmd.SetOut(&buf)
	Cmd.SetContext(t.Context())
	t.Cleanup(func() { Cmd.SetOut(nil) })
	err := run(Cmd, args)
	return buf.String(), err
}

const clean = `{
  "Global": {"color": {"black": {"value": "#000"}}},
  "Brands": {"color": {"brand": {"value": "{color.black}"}}},
  "Semantics": {"color": {"text": {"value": "{color.brand}"}}}
}`

const warned = `{
  "Global": {"color": {"black": {"value": "#000"}}},
  "Brands": {"color": {"brand": {"value": "{black}"}}},
  "Semantics": {"color": {"text": {"value": "{color.brand}"}}}
}`

func TestValidate_Clean(t *testing.T) {
	project(t, clean)
	out, err := execute(t, []string{"tokens.json"}, nil)
	require.NoError(t, err)
	assert.Contains(t, out, "  Global: 1 tokens\n")
	assert.Contains(t, out, "Valid: 3 tokens in 1 files\n")
	assert.NotContains(t, out, "warning:")
}

func TestValidate_Warnings(t *testing.T) {
	project(t, warned)

	out, err := execute(t, []string{"tokens.json"}, nil)
	require.NoError(t, err)
	assert.Contains(t, out, "warning: ")
	assert.Contains(t, out, "Brands.color.brand: value references {black}, which has no path separator")

	_, err = execute(t, []string{"tokens.json"}, map[string]string{"strict": "true"})
	assert.ErrorIs(t, err, ErrFailed)
}

func TestValidate_Cycle(t *testing.T) {
	project(t, `{"Global": {"color": {
  "a": {"value": "{color.b}"},
  "b": {"value": "{color.a}"}
}}}`)

	out, err := execute(t, []string{"tokens.json"}, map[string]string{"quiet": "true"})
	require.ErrorIs(t, err, ErrFailed)
	assert.Contains(t, out, "error: ")
	assert.Contains(t, out, "circular reference in theme default/light")
	assert.NotContains(t, out, "Valid:")
}

func TestValidate_JSON(t *testing.T) {
	project(t, warned)

	out, err := execute(t, []string{"tokens.json"}, map[string]string{"format": "json"})
	require.NoError(t, err)

	var got struct {
		OK       bool `json:"ok"`
		Warnings []struct {
			Path    string `json:"path"`
			Line    int    `json:"line"`
			Message string `json:"message"`
		} `json:"warnings"`
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.True(t, got.OK)
	assert.Equal(t, 3, got.Total)
	require.NotEmpty(t, got.Warnings)
	assert.Equal(t, "Brands.color.brand", got.Warnings[0].Path)
	assert.Equal(t, 3, got.Warnings[0].Line)
}

func TestValidate_SourceMissing(t *testing.T) {
	project(t, clean)
	_, err := execute(t, []string{"nope.json"}, nil)
	assert.ErrorIs(t, err, schema.ErrSourceMissing)
}

func TestValidate_UnknownFormat(t *testing.T) {
	project(t, clean)
	_, err := execute(t, []string{"tokens.json"}, map[string]string{"format": "xml"})
	assert.ErrorContains(t, err, `unknown format "xml"`)
}
