/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package token provides the typed design token tree.
//
// A token document is parsed once into a Document: an arena of nodes where
// every node is exactly one of a Group or a Leaf. Downstream code switches on
// Node.Kind instead of re-checking the raw document for a value key.
package token

import (
	"encoding/json"
	"slices"
	"strings"
)

// ValueKind tags the scalar type of a token value.
type ValueKind uint8

const (
	// String values are emitted verbatim in CSS and quoted in JSON.
	String ValueKind = iota

	// Number values keep their source text and are emitted as JSON numbers.
	Number

	// Bool values are emitted as JSON booleans.
	Bool
)

// Value is a scalar token value. Text always holds the value as written in
// the source document, so numbers round-trip without float formatting.
type Value struct {
	Kind ValueKind
	Text string
}

// StringValue returns a string Value.
func StringValue(s string) Value {
	return Value{Kind: String, Text: s}
}

// NumberValue returns a Number Value from its literal text.
func NumberValue(text string) Value {
	return Value{Kind: Number, Text: text}
}

// String returns the source text of the value.
func (v Value) String() string {
	return v.Text
}

// JSON returns the value as it should be marshaled into JSON output.
func (v Value) JSON() any {
	switch v.Kind {
	case Number:
		return json.Number(v.Text)
	case Bool:
		return v.Text == "true"
	default:
		return v.Text
	}
}

// Path is the ordered sequence of keys from the document root to a node.
type Path []string

// DotPath returns the dot-separated form used by {references}.
func (p Path) DotPath() string {
	return strings.Join(p, ".")
}

// Extend returns a new path with key appended. The receiver is never mutated.
func (p Path) Extend(key string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, key)
}

// Category returns the first path segment, or "" for an empty path.
func (p Path) Category() string {
	if len(p) == 0 {
		return ""
	}
	return p[0]
}

// TrimRoots strips leading segments found in roots, repeatedly, but never
// below one segment. The receiver is never mutated.
func (p Path) TrimRoots(roots []string) Path {
	out := p
	for len(out) > 1 && slices.Contains(roots, out[0]) {
		out = out[1:]
	}
	return slices.Clone(out)
}

// DefaultStructuralRoots are the organizational top-level keys that do not
// contribute to output names.
var DefaultStructuralRoots = []string{"Global", "Brands", "Semantics"}

// Leaf is a terminal token: a scalar value plus optional metadata.
type Leaf struct {
	// Value is the base value, used when no override applies.
	Value Value

	// Type is the optional type tag (color, dimension, ...).
	Type string

	// Description is optional documentation for the token.
	Description string

	// Overrides holds per-mode and per-brand substitutions.
	Overrides Overrides

	// Line is the 1-based source line of the token's key.
	Line int

	// Column is the 1-based source column of the token's key.
	Column int
}

// Overrides holds the per-theme value substitutions of a leaf.
// Keys are lower-cased brand and mode identifiers.
type Overrides struct {
	// ByMode maps a mode name (light, dark, ...) to its value.
	ByMode map[string]Value

	// ByBrand maps a brand identifier to its value.
	ByBrand map[string]Value

	// Keys lists every override key in source order, for diagnostics.
	Keys []string
}

// Empty reports whether the leaf has no overrides at all.
func (o Overrides) Empty() bool {
	return len(o.ByMode) == 0 && len(o.ByBrand) == 0
}

// SetMode records a mode override.
func (o *Overrides) SetMode(mode string, v Value) {
	if o.ByMode == nil {
		o.ByMode = make(map[string]Value)
	}
	mode = strings.ToLower(mode)
	if !o.has(mode) {
		o.Keys = append(o.Keys, mode)
	}
	o.ByMode[mode] = v
}

// SetBrand records a brand override.
func (o *Overrides) SetBrand(brand string, v Value) {
	if o.ByBrand == nil {
		o.ByBrand = make(map[string]Value)
	}
	brand = strings.ToLower(brand)
	if !o.has(brand) {
		o.Keys = append(o.Keys, brand)
	}
	o.ByBrand[brand] = v
}

func (o Overrides) has(key string) bool {
	_, inMode := o.ByMode[key]
	_, inBrand := o.ByBrand[key]
	return inMode || inBrand
}

// Values returns every override value in key order.
func (o Overrides) Values() []Value {
	out := make([]Value, 0, len(o.Keys))
	for _, k := range o.Keys {
		if v, ok := o.ByMode[k]; ok {
			out = append(out, v)
		}
		if v, ok := o.ByBrand[k]; ok {
			out = append(out, v)
		}
	}
	return out
}

// Resolved is a leaf's effective value for one brand and mode.
type Resolved struct {
	// Path is the full path of the leaf in the document.
	Path Path

	// Type is the leaf's type tag.
	Type string

	// Value is the effective value with references substituted.
	Value Value

	// Unresolved lists references that did not match any token.
	Unresolved []string
}

// Clone returns a copy of r that shares no slices with it.
func (r Resolved) Clone() Resolved {
	r.Path = slices.Clone(r.Path)
	r.Unresolved = slices.Clone(r.Unresolved)
	return r
}
