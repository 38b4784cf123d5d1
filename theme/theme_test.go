/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package theme_test

import (
	"testing"

	"bennypowers.dev/gavanim/parser"
	"bennypowers.dev/gavanim/theme"
	"bennypowers.dev/gavanim/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumerate(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		opts         theme.Options
		wantBrands   []string
		wantModes    []string
		wantDefault  string
		wantBaseMode string
	}{
		{
			name:         "mixed mode map",
			input:        `{"Global":{"color":{"primary":{"value":"#000000","$extensions":{"mode":{"dark":"#ffffff","apple":"#111111"}}}}}}`,
			wantBrands:   []string{"apple"},
			wantModes:    []string{"light", "dark"},
			wantDefault:  "apple",
			wantBaseMode: "light",
		},
		{
			name:         "configured default brand listed first",
			input:        `{"a":{"value":"x","$extensions":{"mode":{"apple":"1","Banana":"2"}}}}`,
			opts:         theme.Options{DefaultBrand: "banana"},
			wantBrands:   []string{"banana", "apple"},
			wantModes:    []string{"light"},
			wantDefault:  "banana",
			wantBaseMode: "light",
		},
		{
			name:         "no overrides",
			input:        `{"a":{"value":"x"}}`,
			wantBrands:   []string{"default"},
			wantModes:    []string{"light"},
			wantDefault:  "default",
			wantBaseMode: "light",
		},
		{
			name:         "base mode not duplicated",
			input:        `{"a":{"value":"x","$extensions":{"mode":{"light":"1","contrast":"2"}}}}`,
			wantBrands:   []string{"default"},
			wantModes:    []string{"light", "contrast"},
			wantDefault:  "default",
			wantBaseMode: "light",
		},
		{
			name:         "custom base mode",
			input:        `{"a":{"value":"x","$extensions":{"mode":{"dark":"1"}}}}`,
			opts:         theme.Options{BaseMode: "Day"},
			wantBrands:   []string{"default"},
			wantModes:    []string{"day", "dark"},
			wantDefault:  "default",
			wantBaseMode: "day",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := parser.Parse([]byte(tt.input), parser.Options{})
			require.NoError(t, err)

			set := theme.Enumerate(doc, tt.opts)
			assert.Equal(t, tt.wantBrands, set.Brands)
			assert.Equal(t, tt.wantModes, set.Modes)
			assert.Equal(t, tt.wantDefault, set.DefaultBrand)
			assert.Equal(t, tt.wantBaseMode, set.BaseMode)
		})
	}
}

func TestEnumerate_Fixture(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "fixtures/selected", "/test")
	doc, err := parser.ParseFile(mfs, "/test/tokens.json", parser.Options{})
	require.NoError(t, err)

	set := theme.Enumerate(doc, theme.Options{})
	assert.Equal(t, []string{"apple", "banana"}, set.Brands)
	assert.Equal(t, []string{"light", "dark"}, set.Modes)

	themes := set.Themes()
	require.Len(t, themes, 4)
	assert.Equal(t, theme.Theme{Brand: "apple", Mode: "light"}, themes[0])
	assert.Equal(t, theme.Theme{Brand: "banana", Mode: "dark"}, themes[3])
	assert.Equal(t, "banana/dark", themes[3].String())

	assert.True(t, set.IsDefaultBrand("Apple"))
	assert.True(t, set.IsBaseMode("light"))
	assert.False(t, set.IsBaseMode("dark"))
	assert.True(t, set.HasBrand("BANANA"))
	assert.False(t, set.HasMode("contrast"))
}

func TestSet_Select(t *testing.T) {
	set := theme.Set{Brands: []string{"apple", "banana"}, Modes: []string{"light", "dark"}, DefaultBrand: "apple", BaseMode: "light"}

	got, err := set.Select("", "")
	require.NoError(t, err)
	assert.Equal(t, theme.Theme{Brand: "apple", Mode: "light"}, got)

	got, err = set.Select("BANANA", "Dark")
	require.NoError(t, err)
	assert.Equal(t, theme.Theme{Brand: "banana", Mode: "dark"}, got)

	_, err = set.Select("cherry", "")
	assert.EqualError(t, err, `unknown brand "cherry": expected one of apple, banana`)

	_, err = set.Select("", "sepia")
	assert.EqualError(t, err, `unknown mode "sepia": expected one of light, dark`)
}

func TestVocabulary(t *testing.T) {
	v := theme.DefaultVocabulary()
	assert.True(t, v.IsMode("dark"))
	assert.True(t, v.IsMode("Contrast"))
	assert.False(t, v.IsMode("apple"))
	assert.Equal(t, []string{"light", "dark", "contrast"}, v.Modes())

	custom := theme.NewVocabulary(" Dim ", "dim", "")
	assert.Equal(t, []string{"dim"}, custom.Modes())
}

func TestParsePrecedence(t *testing.T) {
	p, err := theme.ParsePrecedence("")
	require.NoError(t, err)
	assert.Equal(t, theme.BrandWins, p)

	p, err = theme.ParsePrecedence("Mode")
	require.NoError(t, err)
	assert.Equal(t, theme.ModeWins, p)
	assert.Equal(t, "mode", p.String())

	_, err = theme.ParsePrecedence("both")
	assert.Error(t, err)
}
