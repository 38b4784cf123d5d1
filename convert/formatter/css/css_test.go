/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package css_test

import (
	"testing"

	"bennypowers.dev/gavanim/convert/formatter"
	"bennypowers.dev/gavanim/convert/formatter/css"
	"bennypowers.dev/gavanim/parser"
	"bennypowers.dev/gavanim/resolver"
	"bennypowers.dev/gavanim/schema"
	"bennypowers.dev/gavanim/testutil"
	"bennypowers.dev/gavanim/theme"
	"bennypowers.dev/gavanim/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolveFixture(t *testing.T, fixture string, th theme.Theme) ([]token.Resolved, theme.Set) {
	t.Helper()
	mfs := testutil.NewFixtureFS(t, fixture, "/test")
	doc, err := parser.ParseFile(mfs, "/test/tokens.json", parser.Options{})
	require.NoError(t, err)
	resolved, err := resolver.ResolveTheme(doc, th, resolver.Options{})
	require.NoError(t, err)
	return resolved, theme.Enumerate(doc, theme.Options{})
}

func TestFormat_BrandOverrideWins(t *testing.T) {
	th := theme.Theme{Brand: "apple", Mode: "dark"}
	tokens, set := resolveFixture(t, "fixtures/brands", th)

	out, err := css.New(css.Options{Set: set}).Format(tokens, formatter.Options{
		Naming: formatter.CSSNaming(),
		Theme:  th,
	})
	require.NoError(t, err)
	assert.Equal(t, `:root:not([data-brand])[data-mode="dark"], [data-brand="apple"][data-mode="dark"] {
  --color_primary: #111111;
}
`, string(out))
}

func TestFormat_ModeOverrideOnly(t *testing.T) {
	th := theme.Theme{Brand: "banana", Mode: "dark"}
	tokens, set := resolveFixture(t, "fixtures/brands", th)

	out, err := css.New(css.Options{Set: set}).Format(tokens, formatter.Options{
		Naming: formatter.CSSNaming(),
		Theme:  th,
	})
	require.NoError(t, err)
	assert.Equal(t, "[data-brand=\"banana\"][data-mode=\"dark\"] {\n  --color_primary: #ffffff;\n}\n", string(out))
}

func TestFormat_ModeBlocksKeepOnlyColor(t *testing.T) {
	tests := []struct {
		name     string
		theme    theme.Theme
		opts     css.Options
		contains []string
		excludes []string
	}{
		{
			name:     "base mode keeps everything",
			theme:    theme.Theme{Brand: "apple", Mode: "light"},
			contains: []string{"--color_text: #000000;", "--spacing_sm: 4;", "--font_family: Inter, sans-serif;", "--spacing_inset: calc(4 * 2);"},
		},
		{
			name:     "dark keeps color only",
			theme:    theme.Theme{Brand: "apple", Mode: "dark"},
			contains: []string{"--color_text: #ffffff;", "--color_brand: #aa0000;"},
			excludes: []string{"--spacing_sm", "--font_family"},
		},
		{
			name:     "all categories",
			theme:    theme.Theme{Brand: "apple", Mode: "dark"},
			opts:     css.Options{ModeCategories: []string{css.AllCategories}},
			contains: []string{"--color_text: #ffffff;", "--spacing_sm: 4;"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, set := resolveFixture(t, "fixtures/selected", tt.theme)
			tt.opts.Set = set
			out, err := css.New(tt.opts).Format(tokens, formatter.Options{
				Naming: formatter.CSSNaming(),
				Theme:  tt.theme,
			})
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, string(out), s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, string(out), s)
			}
		})
	}
}

func TestSelector(t *testing.T) {
	set := theme.Set{Brands: []string{"apple", "banana"}, Modes: []string{"light", "dark"}, DefaultBrand: "apple", BaseMode: "light"}

	tests := []struct {
		theme theme.Theme
		opts  css.Options
		want  string
	}{
		{theme.Theme{Brand: "apple", Mode: "light"}, css.Options{}, `:root:not([data-brand]), [data-brand="apple"]`},
		{theme.Theme{Brand: "banana", Mode: "light"}, css.Options{}, `[data-brand="banana"]`},
		{theme.Theme{Brand: "banana", Mode: "dark"}, css.Options{}, `[data-brand="banana"][data-mode="dark"]`},
		{theme.Theme{Brand: "apple", Mode: "light"}, css.Options{BrandAttribute: "data-theme"}, `:root:not([data-theme]), [data-theme="apple"]`},
		{theme.Theme{Brand: "banana", Mode: "dark"}, css.Options{ModeAttribute: "data-scheme"}, `[data-brand="banana"][data-scheme="dark"]`},
	}

	for _, tt := range tests {
		t.Run(tt.theme.String(), func(t *testing.T) {
			tt.opts.Set = set
			assert.Equal(t, tt.want, css.New(tt.opts).Selector(tt.theme))
		})
	}
}

func TestFormat_EntryOrderAndHeader(t *testing.T) {
	tokens := []token.Resolved{
		{Path: token.Path{"z"}, Value: token.StringValue("1")},
		{Path: token.Path{"a"}, Value: token.StringValue("2")},
	}
	set := theme.Set{DefaultBrand: "x", BaseMode: "light"}
	out, err := css.New(css.Options{Set: set}).Format(tokens, formatter.Options{
		Naming: formatter.Naming{Separator: "_", Prefix: "ds"},
		Theme:  theme.Theme{Brand: "y", Mode: "light"},
		Header: "Generated file",
	})
	require.NoError(t, err)
	assert.Equal(t, "/* Generated file */\n\n[data-brand=\"y\"] {\n  --ds_z: 1;\n  --ds_a: 2;\n}\n", string(out))
}

func TestFormat_BrokenValueIsSerializationError(t *testing.T) {
	tokens := []token.Resolved{
		{Path: token.Path{"color", "bad"}, Value: token.StringValue("red; } body { color: blue")},
	}
	set := theme.Set{DefaultBrand: "x", BaseMode: "light"}
	_, err := css.New(css.Options{Set: set}).Format(tokens, formatter.Options{
		Naming: formatter.CSSNaming(),
		Theme:  theme.Theme{Brand: "x", Mode: "light"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrSerialization)
	assert.Contains(t, err.Error(), "x/light")
}

func TestPrimitives(t *testing.T) {
	tokens := []token.Resolved{
		{Path: token.Path{"color", "black"}, Value: token.StringValue("#000")},
		{Path: token.Path{"spacing", "sm"}, Value: token.NumberValue("4")},
		{Path: token.Path{"color", "white"}, Value: token.StringValue("#fff")},
	}
	out := css.Primitives("Primitives", tokens, formatter.JSONNaming())
	assert.Equal(t, `/* Primitives */

/* color */
:root {
  --color-black: #000;
  --color-white: #fff;
}

/* spacing */
:root {
  --spacing-sm: 4;
}
`, string(out))
	assert.NoError(t, css.Verify(out, 2, 3))
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name    string
		css     string
		blocks  int
		decls   int
		wantErr bool
	}{
		{"valid", ":root {\n  --a: 1;\n  --b: calc(1px + 2px);\n}\n", 1, 2, false},
		{"unclosed", ":root {\n  --a: 1;\n", 1, 1, true},
		{"extra close", ":root {\n  --a: 1;\n}\n}\n", 1, 1, true},
		{"injected block", ":root {\n  --a: red; } body { color: blue;\n}\n", 1, 1, true},
		{"count mismatch", ":root {\n  --a: 1;\n}\n", 1, 2, true},
		{"bad string", ":root {\n  --a: \"oops\n}\n", 1, 1, true},
		{"empty block", "[data-brand=\"x\"] {\n}\n", 1, 0, false},
		{"snake case name", ":root {\n  --color_primary: #000000;\n}\n", 1, 1, false},
		{"two blocks", ":root {\n  --color_primary: #000000;\n}\n[data-mode=\"dark\"] {\n  --color_primary: #ffffff;\n}\n", 2, 2, false},
		{"value is not a declaration", ":root {\n  --a: var(--b);\n}\n", 1, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := css.Verify([]byte(tt.css), tt.blocks, tt.decls)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
