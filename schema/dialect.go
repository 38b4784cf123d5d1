/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package schema provides token document dialects and error kinds.
package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Dialect identifies which reserved key names a token document uses.
type Dialect int

const (
	// Unknown means no leaf has been seen yet.
	Unknown Dialect = iota

	// Legacy documents mark leaves with "value", "type" and "description".
	Legacy

	// DTCG documents mark leaves with "$value", "$type" and "$description".
	DTCG
)

// String returns the string representation of the dialect.
func (d Dialect) String() string {
	switch d {
	case Legacy:
		return "legacy"
	case DTCG:
		return "dtcg"
	default:
		return "unknown"
	}
}

// ValueKey returns the key that marks a node as a leaf.
func (d Dialect) ValueKey() string {
	if d == DTCG {
		return "$value"
	}
	return "value"
}

// TypeKey returns the key holding a leaf's type tag.
func (d Dialect) TypeKey() string {
	if d == DTCG {
		return "$type"
	}
	return "type"
}

// DescriptionKey returns the key holding a leaf's description.
func (d Dialect) DescriptionKey() string {
	if d == DTCG {
		return "$description"
	}
	return "description"
}

// FromString parses a dialect name, as used in configuration files.
func FromString(s string) (Dialect, error) {
	switch s {
	case "", "auto":
		return Unknown, nil
	case "legacy", "style-dictionary":
		return Legacy, nil
	case "dtcg", "$value":
		return DTCG, nil
	default:
		return Unknown, fmt.Errorf("unrecognized dialect: %s", s)
	}
}

// Detect walks a parsed document and reports which dialect its leaves use.
// Documents without any leaf are reported as Legacy.
func Detect(root *yaml.Node) (Dialect, error) {
	if root != nil && root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root == nil {
		return Legacy, nil
	}

	found := Unknown
	stack := []*yaml.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.Kind != yaml.MappingNode {
			continue
		}

		leaf := Unknown
		for i := 0; i+1 < len(n.Content); i += 2 {
			switch n.Content[i].Value {
			case "value":
				leaf = Legacy
			case "$value":
				leaf = DTCG
			}
			if leaf != Unknown {
				if found != Unknown && found != leaf {
					return Unknown, fmt.Errorf("%w: line %d uses %q", ErrMixedDialects, n.Content[i].Line, n.Content[i].Value)
				}
				found = leaf
				break
			}
		}
		// a leaf's remaining keys are metadata, not children
		if leaf != Unknown {
			continue
		}
		for i := len(n.Content) - 1; i > 0; i -= 2 {
			stack = append(stack, n.Content[i])
		}
	}

	if found == Unknown {
		return Legacy, nil
	}
	return found, nil
}
