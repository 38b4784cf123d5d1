/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package convert

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"

	"bennypowers.dev/gavanim/token"
)

// ColorFormat selects how color values are written.
type ColorFormat string

const (
	// ColorKeep writes colors as they appear in the source.
	ColorKeep ColorFormat = "keep"

	// ColorHex writes #rrggbb, or #rrggbbaa when translucent.
	ColorHex ColorFormat = "hex"

	// ColorRGB writes rgb(r g b) or rgb(r g b / a).
	ColorRGB ColorFormat = "rgb"

	// ColorHSL writes hsl(h s% l%) or hsl(h s% l% / a).
	ColorHSL ColorFormat = "hsl"
)

// ParseColorFormat converts a string to a ColorFormat. Empty means ColorKeep.
func ParseColorFormat(s string) (ColorFormat, error) {
	switch f := ColorFormat(strings.ToLower(s)); f {
	case "":
		return ColorKeep, nil
	case ColorKeep, ColorHex, ColorRGB, ColorHSL:
		return f, nil
	default:
		return ColorKeep, fmt.Errorf("unknown color format %q (valid: keep, hex, rgb, hsl)", s)
	}
}

// IsColorToken reports whether a resolved token holds a color, by type tag
// or by category.
func IsColorToken(t token.Resolved, category string) bool {
	return strings.EqualFold(t.Type, "color") || strings.EqualFold(category, "color")
}

// ParseColor parses any CSS color value.
func ParseColor(value string) (colorful.Color, float64, bool) {
	c, err := csscolorparser.Parse(strings.TrimSpace(value))
	if err != nil {
		return colorful.Color{}, 0, false
	}
	return colorful.Color{R: c.R, G: c.G, B: c.B}, c.A, true
}

// NormalizeColor rewrites a CSS color in the given format. Values that do
// not parse as colors are returned unchanged.
func NormalizeColor(value string, format ColorFormat) string {
	if format == ColorKeep || format == "" {
		return value
	}
	c, alpha, ok := ParseColor(value)
	if !ok {
		return value
	}
	c = c.Clamped()

	switch format {
	case ColorHex:
		hex := c.Hex()
		if alpha < 1 {
			hex += fmt.Sprintf("%02x", uint8(math.Round(alpha*255)))
		}
		return hex
	case ColorRGB:
		r, g, b := c.RGB255()
		return fmt.Sprintf("rgb(%d %d %d%s)", r, g, b, alphaSuffix(alpha))
	case ColorHSL:
		h, s, l := c.Hsl()
		if math.IsNaN(h) {
			h = 0
		}
		return fmt.Sprintf("hsl(%s %s%% %s%%%s)", trimFloat(h), trimFloat(s*100), trimFloat(l*100), alphaSuffix(alpha))
	default:
		return value
	}
}

func alphaSuffix(alpha float64) string {
	if alpha >= 1 {
		return ""
	}
	return " / " + trimFloat(alpha)
}

func trimFloat(f float64) string {
	s := fmt.Sprintf("%.2f", f)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
