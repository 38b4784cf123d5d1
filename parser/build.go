/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package parser

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"bennypowers.dev/gavanim/schema"
	"bennypowers.dev/gavanim/theme"
	"bennypowers.dev/gavanim/token"
	"gopkg.in/yaml.v3"
)

// Extension keys read from a leaf's $extensions object.
const (
	ExtensionsKey     = "$extensions"
	ModeKey           = "mode"
	ModeOverridesKey  = "modeOverrides"
	BrandOverridesKey = "brandOverrides"
)

type pair struct {
	key   *yaml.Node
	value *yaml.Node
}

// pairs returns the entries of a mapping node. A repeated key keeps the
// position of its first occurrence and the value of its last.
func pairs(n *yaml.Node) []pair {
	out := make([]pair, 0, len(n.Content)/2)
	index := make(map[string]int, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], deref(n.Content[i+1])
		if at, ok := index[k.Value]; ok {
			out[at].value = v
			continue
		}
		index[k.Value] = len(out)
		out = append(out, pair{key: k, value: v})
	}
	return out
}

func lookup(n *yaml.Node, key string) (*yaml.Node, bool) {
	var found *yaml.Node
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			found = deref(n.Content[i+1])
		}
	}
	return found, found != nil
}

// Build converts a decoded root mapping into a document.
// A mapping holding the dialect's value key becomes a leaf; any other mapping
// becomes a group. Scalars and sequences outside leaves are skipped.
func Build(root *yaml.Node, opts Options) (*token.Document, error) {
	dialect, err := schema.Detect(root)
	if err != nil {
		return nil, err
	}
	if opts.Dialect != schema.Unknown {
		dialect = opts.Dialect
	}

	doc := token.NewDocument()
	doc.Dialect = dialect
	vocab := opts.vocabulary()
	maxDepth := opts.maxDepth()

	type frame struct {
		node     *yaml.Node
		id       token.NodeID
		path     token.Path
		inherits string
	}

	stack := []frame{{node: root, id: token.Root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		inherits := f.inherits
		if t, ok := lookup(f.node, dialect.TypeKey()); ok && t.Kind == yaml.ScalarNode {
			inherits = t.Value
		}

		var children []frame
		for _, p := range pairs(f.node) {
			key := p.key.Value
			if strings.HasPrefix(key, "$") {
				continue
			}
			path := f.path.Extend(key)
			if p.value.Kind != yaml.MappingNode {
				if f.id != token.Root || p.value.Kind != yaml.ScalarNode {
					opts.warn(path, p.key.Line, "non-object entry ignored")
				}
				continue
			}
			if len(path) > maxDepth {
				return nil, fmt.Errorf("%w: %s is nested deeper than %d levels (line %d)",
					schema.ErrDepthExceeded, path.DotPath(), maxDepth, p.key.Line)
			}

			if _, ok := lookup(p.value, dialect.ValueKey()); ok {
				leaf, err := buildLeaf(p.key, p.value, path, dialect, vocab, inherits, opts)
				if err != nil {
					return nil, err
				}
				doc.AddLeaf(f.id, key, leaf)
				continue
			}

			id := doc.AddGroup(f.id, key, p.key.Line)
			children = append(children, frame{node: p.value, id: id, path: path, inherits: inherits})
		}
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	return doc, nil
}

func buildLeaf(keyNode, n *yaml.Node, path token.Path, dialect schema.Dialect, vocab theme.Vocabulary, inherits string, opts Options) (*token.Leaf, error) {
	raw, _ := lookup(n, dialect.ValueKey())
	value, err := scalar(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s (line %d): %s", schema.ErrInvalidToken, path.DotPath(), raw.Line, err)
	}

	leaf := &token.Leaf{
		Value:  value,
		Type:   inherits,
		Line:   keyNode.Line,
		Column: keyNode.Column,
	}
	if t, ok := lookup(n, dialect.TypeKey()); ok && t.Kind == yaml.ScalarNode {
		leaf.Type = t.Value
	}
	if d, ok := lookup(n, dialect.DescriptionKey()); ok && d.Kind == yaml.ScalarNode {
		leaf.Description = d.Value
	}

	for _, p := range pairs(n) {
		key := p.key.Value
		if strings.HasPrefix(key, "$") || key == dialect.ValueKey() ||
			key == dialect.TypeKey() || key == dialect.DescriptionKey() {
			continue
		}
		if p.value.Kind == yaml.MappingNode {
			opts.warn(path.Extend(key), p.key.Line, "group nested inside token %s ignored", path.DotPath())
		}
	}

	ext, ok := lookup(n, ExtensionsKey)
	if !ok || ext.Kind != yaml.MappingNode {
		return leaf, nil
	}

	tables := []struct {
		key string
		set func(k string, v token.Value)
	}{
		{ModeKey, func(k string, v token.Value) {
			if vocab.IsMode(k) {
				leaf.Overrides.SetMode(k, v)
			} else {
				leaf.Overrides.SetBrand(k, v)
			}
		}},
		{ModeOverridesKey, leaf.Overrides.SetMode},
		{BrandOverridesKey, leaf.Overrides.SetBrand},
	}
	for _, table := range tables {
		m, ok := lookup(ext, table.key)
		if !ok {
			continue
		}
		if m.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("%w: %s (line %d): %s.%s must be an object",
				schema.ErrInvalidToken, path.DotPath(), m.Line, ExtensionsKey, table.key)
		}
		for _, p := range pairs(m) {
			if strings.TrimSpace(p.key.Value) == "" {
				continue
			}
			v, err := scalar(p.value)
			if err != nil {
				return nil, fmt.Errorf("%w: %s (line %d): override %q: %s",
					schema.ErrInvalidToken, path.DotPath(), p.key.Line, p.key.Value, err)
			}
			table.set(p.key.Value, v)
		}
	}
	return leaf, nil
}

// scalar converts a YAML scalar into a token value. Numbers keep their
// literal text when it is already valid JSON.
func scalar(n *yaml.Node) (token.Value, error) {
	if n == nil || n.Kind != yaml.ScalarNode {
		return token.Value{}, fmt.Errorf("value must be a string, number or boolean")
	}
	switch n.ShortTag() {
	case "!!null":
		return token.Value{}, fmt.Errorf("value must not be null")
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return token.Value{}, err
		}
		return token.Value{Kind: token.Bool, Text: strconv.FormatBool(b)}, nil
	case "!!int", "!!float":
		if json.Valid([]byte(n.Value)) {
			return token.NumberValue(n.Value), nil
		}
		var f float64
		if err := n.Decode(&f); err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return token.StringValue(n.Value), nil
		}
		return token.NumberValue(strconv.FormatFloat(f, 'g', -1, 64)), nil
	default:
		return token.StringValue(n.Value), nil
	}
}
