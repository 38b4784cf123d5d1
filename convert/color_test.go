/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package convert_test

import (
	"testing"

	"bennypowers.dev/gavanim/convert"
	"bennypowers.dev/gavanim/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeColor(t *testing.T) {
	tests := []struct {
		value  string
		format convert.ColorFormat
		want   string
	}{
		{"#FF0000", convert.ColorKeep, "#FF0000"},
		{"#FF0000", convert.ColorHex, "#ff0000"},
		{"red", convert.ColorHex, "#ff0000"},
		{"rgb(0 128 255)", convert.ColorHex, "#0080ff"},
		{"#ff000080", convert.ColorHex, "#ff000080"},
		{"#ff0000", convert.ColorRGB, "rgb(255 0 0)"},
		{"rgba(255, 0, 0, 0.5)", convert.ColorRGB, "rgb(255 0 0 / 0.5)"},
		{"#ff0000", convert.ColorHSL, "hsl(0 100% 50%)"},
		{"#ffffff", convert.ColorHSL, "hsl(0 0% 100%)"},
		{"not-a-color", convert.ColorHex, "not-a-color"},
		{"calc(4 * 2)", convert.ColorRGB, "calc(4 * 2)"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format)+"/"+tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, convert.NormalizeColor(tt.value, tt.format))
		})
	}
}

func TestParseColorFormat(t *testing.T) {
	f, err := convert.ParseColorFormat("")
	require.NoError(t, err)
	assert.Equal(t, convert.ColorKeep, f)

	f, err = convert.ParseColorFormat("HSL")
	require.NoError(t, err)
	assert.Equal(t, convert.ColorHSL, f)

	_, err = convert.ParseColorFormat("cmyk")
	assert.Error(t, err)
}

func TestIsColorToken(t *testing.T) {
	assert.True(t, convert.IsColorToken(token.Resolved{Type: "color"}, "brand"))
	assert.True(t, convert.IsColorToken(token.Resolved{}, "color"))
	assert.False(t, convert.IsColorToken(token.Resolved{Type: "dimension"}, "spacing"))
}
