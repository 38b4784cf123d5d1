/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package convert

import (
	"fmt"
	"strings"

	"bennypowers.dev/gavanim/convert/formatter"
	"bennypowers.dev/gavanim/convert/formatter/css"
	"bennypowers.dev/gavanim/convert/formatter/flatjson"
	"bennypowers.dev/gavanim/convert/formatter/grouped"
	"bennypowers.dev/gavanim/theme"
	"bennypowers.dev/gavanim/token"
)

// Format represents an output format.
type Format string

const (
	// FormatCSS outputs CSS custom properties scoped to a theme selector.
	FormatCSS Format = "css"

	// FormatJSON outputs flat key-value JSON with a metadata envelope.
	FormatJSON Format = "json"

	// FormatGrouped outputs JSON grouped by category with camelCase keys.
	FormatGrouped Format = "grouped"
)

// ValidFormats returns all valid format strings.
func ValidFormats() []string {
	return []string{
		string(FormatCSS),
		string(FormatJSON),
		string(FormatGrouped),
	}
}

// ParseFormat converts a string to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "css":
		return FormatCSS, nil
	case "json", "flat", "flat-json":
		return FormatJSON, nil
	case "grouped", "nested":
		return FormatGrouped, nil
	default:
		return "", fmt.Errorf("unknown format: %s (valid: %s)", s, strings.Join(ValidFormats(), ", "))
	}
}

// Extension returns the file extension for the format.
func (f Format) Extension() string {
	if f == FormatCSS {
		return ".css"
	}
	return ".json"
}

// FormatTokens converts tokens resolved for theme t to the given format.
func FormatTokens(tokens []token.Resolved, format Format, t theme.Theme, set theme.Set, opts Options) ([]byte, error) {
	fmtOpts := formatter.Options{
		Theme:       t,
		GeneratedAt: opts.GeneratedAt,
	}

	var f formatter.Formatter
	switch format {
	case FormatCSS:
		cssOpts := opts.CSS
		cssOpts.Set = set
		f = css.New(cssOpts)
		fmtOpts.Naming = opts.CSSNaming
		fmtOpts.Header = opts.Header
	case FormatJSON:
		f = flatjson.New()
		fmtOpts.Naming = opts.JSONNaming
	case FormatGrouped:
		f = grouped.New()
		fmtOpts.Naming = opts.JSONNaming
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	return f.Format(tokens, fmtOpts)
}
