/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package flatjson provides flat key-value JSON formatting for design tokens.
package flatjson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"bennypowers.dev/gavanim/convert/formatter"
	"bennypowers.dev/gavanim/schema"
	"bennypowers.dev/gavanim/token"
)

// Meta is the envelope describing which theme a file holds.
type Meta struct {
	Brand       string `json:"brand"`
	Mode        string `json:"mode"`
	GeneratedAt string `json:"generatedAt,omitempty"`
}

// Document is the flat JSON output: metadata plus name to value pairs.
type Document struct {
	Meta   Meta           `json:"meta"`
	Tokens map[string]any `json:"tokens"`
}

// Formatter outputs flat key-value JSON.
type Formatter struct{}

// New creates a new flat JSON formatter.
func New() *Formatter {
	return &Formatter{}
}

// Format converts tokens to flat key-value JSON. When two tokens share a
// name, the later one in document order wins.
func (f *Formatter) Format(tokens []token.Resolved, opts formatter.Options) ([]byte, error) {
	doc := Document{
		Meta: Meta{
			Brand: opts.Theme.Brand,
			Mode:  opts.Theme.Mode,
		},
		Tokens: make(map[string]any, len(tokens)),
	}
	if !opts.GeneratedAt.IsZero() {
		doc.Meta.GeneratedAt = opts.GeneratedAt.UTC().Format(time.RFC3339)
	}
	for _, e := range formatter.Entries(tokens, opts.Naming) {
		doc.Tokens[e.Name] = e.Token.Value.JSON()
	}

	out, err := Encode(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: json for %s: %v", schema.ErrSerialization, opts.Theme, err)
	}
	return out, nil
}

// Encode writes doc with two-space indentation and sorted token names.
func Encode(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode parses flat JSON output. Numbers are kept as json.Number so that
// Encode reproduces them exactly.
func Decode(data []byte) (Document, error) {
	var doc Document
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("%w: %v", schema.ErrParse, err)
	}
	if doc.Tokens == nil {
		doc.Tokens = map[string]any{}
	}
	return doc, nil
}
