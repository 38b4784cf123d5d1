/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package parser reads JSON, JSONC and YAML token documents into a
// token.Document.
package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	iofs "io/fs"

	"bennypowers.dev/gavanim/fs"
	"bennypowers.dev/gavanim/schema"
	"bennypowers.dev/gavanim/theme"
	"bennypowers.dev/gavanim/token"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// DefaultMaxDepth is the nesting limit applied when Options.MaxDepth is zero.
const DefaultMaxDepth = 64

// Warning describes input the parser accepted but ignored.
type Warning struct {
	Path    token.Path
	Line    int
	Message string
}

// Options configures token parsing.
type Options struct {
	// Vocabulary classifies the keys of a $extensions.mode map.
	// The zero value means theme.DefaultVocabulary.
	Vocabulary theme.Vocabulary

	// MaxDepth limits group nesting. Zero means DefaultMaxDepth.
	MaxDepth int

	// Dialect overrides detection when not schema.Unknown.
	Dialect schema.Dialect

	// Warn, when set, receives ignored input.
	Warn func(Warning)
}

func (o Options) vocabulary() theme.Vocabulary {
	if len(o.Vocabulary.Modes()) == 0 {
		return theme.DefaultVocabulary()
	}
	return o.Vocabulary
}

func (o Options) maxDepth() int {
	if o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

func (o Options) warn(path token.Path, line int, format string, args ...any) {
	if o.Warn != nil {
		o.Warn(Warning{Path: path, Line: line, Message: fmt.Sprintf(format, args...)})
	}
}

// Decode parses JSON, JSONC or YAML data and returns the root mapping node.
func Decode(data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if isLikelyJSON(data) {
		clean := jsonc.ToJSON(data)
		if !json.Valid(clean) {
			var probe any
			err := json.Unmarshal(clean, &probe)
			return nil, fmt.Errorf("%w: invalid JSON: %v", schema.ErrParse, err)
		}
		data = clean
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", schema.ErrParse, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("%w: document is empty", schema.ErrParse)
	}
	root := deref(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: document root must be an object", schema.ErrParse)
	}
	return root, nil
}

// Parse parses token data into a document.
func Parse(data []byte, opts Options) (*token.Document, error) {
	root, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return Build(root, opts)
}

// ParseFile reads and parses one token file.
func ParseFile(filesystem fs.FileSystem, path string, opts Options) (*token.Document, error) {
	doc, err := ParseFiles(filesystem, []string{path}, opts)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// ParseFiles reads several token files and merges them into one document.
// Groups present in more than one file are merged; a token defined twice is
// an error.
func ParseFiles(filesystem fs.FileSystem, paths []string, opts Options) (*token.Document, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no source files", schema.ErrSourceMissing)
	}

	var merged *yaml.Node
	for _, path := range paths {
		data, err := filesystem.ReadFile(path)
		if err != nil {
			if errors.Is(err, iofs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", schema.ErrSourceMissing, path)
			}
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		root, err := Decode(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if merged == nil {
			merged = root
			continue
		}
		if err := Merge(merged, root, opts.maxDepth()); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	doc, err := Build(merged, opts)
	if err != nil {
		if len(paths) == 1 {
			return nil, fmt.Errorf("%s: %w", paths[0], err)
		}
		return nil, err
	}
	doc.Source = paths[0]
	if len(paths) > 1 {
		doc.Source = fmt.Sprintf("%s (+%d more)", paths[0], len(paths)-1)
	}
	return doc, nil
}

// isLikelyJSON checks if data appears to be JSON rather than YAML.
// JSON typically starts with '{' (optionally preceded by whitespace/BOM).
func isLikelyJSON(data []byte) bool {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case 0xEF, 0xBB, 0xBF: // UTF-8 BOM
			continue
		case '{', '[':
			return true
		case '/':
			// JSONC comment before the opening brace
			return true
		default:
			return false
		}
	}
	return false
}

func deref(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}
