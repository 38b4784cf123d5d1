/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package grouped provides two-level JSON formatting: category, then a
// camelCase token name.
package grouped

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"bennypowers.dev/gavanim/convert/formatter"
	"bennypowers.dev/gavanim/schema"
	"bennypowers.dev/gavanim/token"
)

// Group maps category to camelCase name to value.
type Group map[string]map[string]any

// Bundle maps brand to mode to group.
type Bundle map[string]map[string]Group

// Formatter outputs grouped JSON.
type Formatter struct{}

// New creates a new grouped JSON formatter.
func New() *Formatter {
	return &Formatter{}
}

// Format converts tokens to grouped JSON.
func (f *Formatter) Format(tokens []token.Resolved, opts formatter.Options) ([]byte, error) {
	out, err := Encode(Build(tokens, opts.Naming))
	if err != nil {
		return nil, fmt.Errorf("%w: grouped json: %v", schema.ErrSerialization, err)
	}
	return out, nil
}

// Build groups tokens by category. Within a category the remaining
// segments are joined in camelCase: color.brand.primary becomes
// {"color": {"brandPrimary": ...}}. A token with a single segment is keyed
// by that segment under its own category.
func Build(tokens []token.Resolved, naming formatter.Naming) Group {
	g := make(Group)
	for _, t := range tokens {
		segs := naming.Segments(t.Path)
		if len(segs) == 0 {
			continue
		}
		category := segs[0]
		rest := segs[1:]
		if len(rest) == 0 {
			rest = segs
		}
		if g[category] == nil {
			g[category] = make(map[string]any)
		}
		g[category][formatter.ToCamelCase(strings.Join(rest, "-"))] = t.Value.JSON()
	}
	return g
}

// Encode writes v with two-space indentation and sorted keys.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode parses grouped JSON, keeping numbers as json.Number.
func Decode(data []byte) (Group, error) {
	var g Group
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&g); err != nil {
		return nil, fmt.Errorf("%w: %v", schema.ErrParse, err)
	}
	return g, nil
}
