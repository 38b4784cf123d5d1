/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package build_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/gavanim/build"
	"bennypowers.dev/gavanim/config"
	"bennypowers.dev/gavanim/convert/formatter/flatjson"
	"bennypowers.dev/gavanim/internal/mapfs"
	"bennypowers.dev/gavanim/schema"
	"bennypowers.dev/gavanim/testutil"
	"bennypowers.dev/gavanim/theme"
)

var buildTime = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func fixed() time.Time { return buildTime }

func project(t *testing.T, fixture string) *mapfs.MapFileSystem {
	t.Helper()
	return testutil.NewMemFS(t, map[string]string{
		"/project/tokens/selected-tokens.json": string(testutil.LoadFixtureFile(t, fixture)),
	})
}

func TestRun_BrandOverrideAndModeOverride(t *testing.T) {
	mfs := project(t, "fixtures/brands/tokens.json")
	cfg := config.Default()
	cfg.DefaultBrand = "banana"

	report, err := build.Run(t.Context(), build.Options{Root: "/project", FS: mfs, Config: cfg, Now: fixed})
	require.NoError(t, err)

	assert.Equal(t, []string{"banana", "apple"}, report.Set.Brands)
	assert.Equal(t, []string{"light", "dark"}, report.Set.Modes)

	files := mfs.Files()
	assert.Equal(t, `[data-brand="apple"][data-mode="dark"] {
  --color_primary: #111111;
}
`, files["/project/dist/tokens/apple/css/dark.css"])
	assert.Equal(t, `:root:not([data-brand])[data-mode="dark"], [data-brand="banana"][data-mode="dark"] {
  --color_primary: #ffffff;
}
`, files["/project/dist/tokens/banana/css/dark.css"])
	assert.Equal(t, `:root:not([data-brand]), [data-brand="banana"] {
  --color_primary: #000000;
}
`, files["/project/dist/tokens/banana/css/light.css"])

	assert.Equal(t, `{
  "meta": {
    "brand": "banana",
    "mode": "dark",
    "generatedAt": "2026-01-02T03:04:05Z"
  },
  "tokens": {
    "color-primary": "#ffffff"
  }
}
`, files["/project/dist/tokens/banana/json/dark.json"])

	doc, err := flatjson.Decode([]byte(files["/project/dist/tokens/apple/json/dark.json"]))
	require.NoError(t, err)
	assert.Equal(t, "#111111", doc.Tokens["color-primary"])

	assert.Equal(t, []string{
		"/project/dist/tokens/apple/css/dark.css",
		"/project/dist/tokens/apple/css/light.css",
		"/project/dist/tokens/apple/json/dark.json",
		"/project/dist/tokens/apple/json/light.json",
		"/project/dist/tokens/banana/css/dark.css",
		"/project/dist/tokens/banana/css/light.css",
		"/project/dist/tokens/banana/json/dark.json",
		"/project/dist/tokens/banana/json/light.json",
		"/project/dist/tokens/index.json",
		"/project/dist/tokens/primitives.css",
		"/project/dist/tokens/primitives.json",
		"/project/tokens/selected-tokens.json",
	}, mfs.Paths())
	assert.Equal(t, 11, report.FilesWritten())
	assert.Empty(t, report.Failed())
}

func TestRun_Golden(t *testing.T) {
	mfs := project(t, "fixtures/brands/tokens.json")
	cfg := config.Default()
	cfg.DefaultBrand = "banana"

	_, err := build.Run(t.Context(), build.Options{Root: "/project", FS: mfs, Config: cfg, Now: fixed})
	require.NoError(t, err)

	files := mfs.Files()
	for _, rel := range []string{
		"apple/css/dark.css",
		"banana/css/dark.css",
		"banana/json/dark.json",
	} {
		t.Run(rel, func(t *testing.T) {
			testutil.Golden(t, "golden/brands/"+rel, []byte(files["/project/dist/tokens/"+rel]))
		})
	}
}

func TestRun_Index(t *testing.T) {
	mfs := project(t, "fixtures/selected/tokens.json")
	cfg := config.Default()
	cfg.Description = "Selected tokens"

	report, err := build.Run(t.Context(), build.Options{Root: "/project", FS: mfs, Config: cfg, Now: fixed})
	require.NoError(t, err)
	require.NotNil(t, report.Index)

	var idx build.Index
	require.NoError(t, json.Unmarshal([]byte(mfs.Files()["/project/dist/tokens/index.json"]), &idx))
	assert.Equal(t, *report.Index, idx)

	assert.Equal(t, "2026-01-02T03:04:05Z", idx.Meta.GeneratedAt)
	assert.Equal(t, "Selected tokens", idx.Meta.Description)
	assert.Equal(t, "apple", idx.Meta.DefaultBrand)
	assert.Equal(t, build.Summary{
		TotalBrands: 2,
		TotalModes:  2,
		TotalFiles:  8,
		TotalTokens: 10,
	}, idx.Summary)

	entry := idx.Brands["banana"].Modes["dark"]
	assert.Equal(t, "banana/css/dark.css", entry.CSS.Path)
	assert.True(t, entry.CSS.Exists)
	assert.Equal(t, int64(len(mfs.Files()["/project/dist/tokens/banana/css/dark.css"])), entry.CSS.Size)
	assert.Equal(t, "banana/json/dark.json", entry.JSON.Path)
	assert.True(t, entry.JSON.Exists)
}

func TestRun_ThemeFailureIsIsolated(t *testing.T) {
	mfs := project(t, "fixtures/selected/tokens.json")
	mfs.FailWrites("/project/dist/tokens/apple/json/dark.json", errors.New("disk full"))

	report, err := build.Run(t.Context(), build.Options{Root: "/project", FS: mfs, Now: fixed})
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrSerialization)
	assert.Contains(t, err.Error(), "1 of 4 themes failed (apple/dark)")
	assert.Contains(t, err.Error(), "disk full")

	require.Len(t, report.Failed(), 1)
	assert.Equal(t, theme.Theme{Brand: "apple", Mode: "dark"}, report.Failed()[0].Theme)

	files := mfs.Files()
	assert.Contains(t, files, "/project/dist/tokens/banana/css/dark.css")
	assert.Contains(t, files, "/project/dist/tokens/apple/json/light.json")
	assert.NotContains(t, files, "/project/dist/tokens/apple/json/dark.json")
	assert.Contains(t, files, "/project/dist/tokens/index.json")

	entry := report.Index.Brands["apple"].Modes["dark"]
	assert.False(t, entry.JSON.Exists)
	assert.False(t, entry.CSS.Exists, "a failed theme is reported as missing")
	assert.Equal(t, 1, report.Index.Summary.FailedThemes)
	assert.Equal(t, 6, report.Index.Summary.TotalFiles)
}

func TestRun_CycleFailsOnlyAffectedTheme(t *testing.T) {
	mfs := testutil.NewMemFS(t, map[string]string{
		"/project/tokens/selected-tokens.json": `{
  "Global": {
    "color": {
      "a": {"value": "#000000", "$extensions": {"mode": {"dark": "{color.b}"}}},
      "b": {"value": "{color.a}"}
    }
  }
}`,
	})

	report, err := build.Run(t.Context(), build.Options{Root: "/project", FS: mfs, Now: fixed})
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrSerialization)
	assert.ErrorIs(t, err, schema.ErrCircularReference)

	failed := report.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, "default/dark", failed[0].Theme.String())

	files := mfs.Files()
	assert.Equal(t, `:root:not([data-brand]), [data-brand="default"] {
  --color_a: #000000;
  --color_b: #000000;
}
`, files["/project/dist/tokens/default/css/light.css"])
	assert.NotContains(t, files, "/project/dist/tokens/default/css/dark.css")
}

func TestRun_NothingWrittenOnInputFailure(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		wantErr error
	}{
		{
			name:    "missing source",
			files:   map[string]string{"/project/readme.md": "# tokens"},
			wantErr: schema.ErrSourceMissing,
		},
		{
			name:    "invalid json",
			files:   map[string]string{"/project/tokens/selected-tokens.json": `{"Global": {"color": `},
			wantErr: schema.ErrParse,
		},
		{
			name:    "depth exceeded",
			files:   map[string]string{"/project/tokens/selected-tokens.json": `{"a": {"b": {"c": {"value": 1}}}}`},
			wantErr: schema.ErrDepthExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mfs := testutil.NewMemFS(t, tt.files)
			cfg := config.Default()
			cfg.MaxDepth = 2

			report, err := build.Run(t.Context(), build.Options{Root: "/project", FS: mfs, Config: cfg})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, report)

			for _, p := range mfs.Paths() {
				assert.NotContains(t, p, "/dist/")
			}
		})
	}
}

func TestRun_BundleAndOverrides(t *testing.T) {
	mfs := project(t, "fixtures/selected/tokens.json")
	cfg := config.Default()
	cfg.Bundle = true
	cfg.Primitives = ""

	report, err := build.Run(t.Context(), build.Options{
		Root:   "/project",
		FS:     mfs,
		Config: cfg,
		OutDir: "public",
		Jobs:   1,
		Now:    fixed,
	})
	require.NoError(t, err)
	assert.Equal(t, "/project/public", report.OutDir)

	files := mfs.Files()
	bundle := files["/project/public/tokens-themed.css"]
	require.NotEmpty(t, bundle)
	assert.Contains(t, bundle, "/* apple/light */")
	assert.Contains(t, bundle, `[data-brand="banana"][data-mode="dark"] {`)
	assert.Contains(t, files, "/project/public/tokens-themed.json")
	assert.NotContains(t, files, "/project/public/primitives.css")
	assert.Len(t, report.Extra, 2)
}

func TestRun_ConcurrencyDoesNotChangeOutput(t *testing.T) {
	run := func(jobs int) map[string]string {
		mfs := project(t, "fixtures/selected/tokens.json")
		_, err := build.Run(t.Context(), build.Options{Root: "/project", FS: mfs, Jobs: jobs, Now: fixed})
		require.NoError(t, err)
		return mfs.Files()
	}
	assert.Equal(t, run(1), run(8))
}

func TestRun_Warnings(t *testing.T) {
	mfs := testutil.NewMemFS(t, map[string]string{
		"/project/tokens/selected-tokens.json": `{
  "Global": {"color": {"a": {"value": "#000"}}},
  "Brands": {"color": {"a": {"value": "#111"}}},
  "Semantics": {"color": {"b": {"value": "{missing}"}, "c": {"value": "{color.gone}"}}}
}`,
	})

	report, err := build.Run(t.Context(), build.Options{Root: "/project", FS: mfs, Now: fixed})
	require.NoError(t, err)

	var messages []string
	for _, w := range report.AllWarnings() {
		messages = append(messages, w.Message)
	}
	assert.Contains(t, messages, `value references {missing}, which has no path separator`)
	assert.Contains(t, messages, `value references {color.gone}, which matches no token`)
	assert.Contains(t, messages, `several tokens are named "color_a"; the last one wins`)
	assert.Contains(t, messages, `several tokens are named "color-a"; the last one wins`)

	assert.Equal(t, "default/light", report.Themes[0].Theme.String())
	assert.Equal(t, []string{"missing", "color.gone"}, report.Themes[0].Unresolved)
	assert.Equal(t, "--color_c: color.gone;", lineWith(mfs.Files()["/project/dist/tokens/default/css/light.css"], "--color_c"))
}

func lineWith(content, needle string) string {
	for line := range strings.Lines(content) {
		if _, after, ok := strings.Cut(line, needle); ok {
			return strings.TrimSpace(needle + after)
		}
	}
	return ""
}
