/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package parser

import (
	"fmt"
	"strings"

	"bennypowers.dev/gavanim/schema"
	"gopkg.in/yaml.v3"
)

// Merge copies the entries of src into dst. Groups present in both are
// merged key by key; a token present in both, or a token colliding with a
// group, is reported as schema.ErrDuplicateDefinition.
func Merge(dst, src *yaml.Node, maxDepth int) error {
	return merge(dst, src, nil, maxDepth)
}

func merge(dst, src *yaml.Node, path []string, maxDepth int) error {
	if len(path) > maxDepth {
		return fmt.Errorf("%w: %s", schema.ErrDepthExceeded, strings.Join(path, "."))
	}
	for _, p := range pairs(src) {
		key := p.key.Value
		existing, ok := lookup(dst, key)
		if !ok {
			dst.Content = append(dst.Content, p.key, p.value)
			continue
		}
		here := append(path[:len(path):len(path)], key)
		if existing.Kind != yaml.MappingNode || p.value.Kind != yaml.MappingNode {
			if strings.HasPrefix(key, "$") {
				continue
			}
			return fmt.Errorf("%w: %s (line %d)", schema.ErrDuplicateDefinition, strings.Join(here, "."), p.key.Line)
		}
		if isLeaf(existing) || isLeaf(p.value) {
			return fmt.Errorf("%w: token %s (line %d)", schema.ErrDuplicateDefinition, strings.Join(here, "."), p.key.Line)
		}
		if err := merge(existing, p.value, here, maxDepth); err != nil {
			return err
		}
	}
	return nil
}

func isLeaf(n *yaml.Node) bool {
	_, legacy := lookup(n, schema.Legacy.ValueKey())
	_, dtcg := lookup(n, schema.DTCG.ValueKey())
	return legacy || dtcg
}
