/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import "bennypowers.dev/gavanim/token"

// Index maps reference paths to canonical leaf paths.
// A leaf is reachable by its full dot path and by the path with structural
// roots stripped, so {color.primary} finds Global.color.primary.
type Index struct {
	full    map[string]bool
	aliases map[string]string
	// Ambiguous lists aliases claimed by more than one leaf; the first leaf
	// in document order keeps the alias.
	Ambiguous []string
}

// NewIndex indexes every leaf of doc.
func NewIndex(doc *token.Document, roots []string) *Index {
	idx := &Index{
		full:    make(map[string]bool),
		aliases: make(map[string]string),
	}
	claimed := make(map[string]bool)
	_ = doc.Walk(func(path token.Path, _ *token.Leaf) error {
		name := path.DotPath()
		idx.full[name] = true
		alias := path.TrimRoots(roots).DotPath()
		if alias == name {
			return nil
		}
		if _, ok := idx.aliases[alias]; ok {
			if !claimed[alias] {
				claimed[alias] = true
				idx.Ambiguous = append(idx.Ambiguous, alias)
			}
			return nil
		}
		idx.aliases[alias] = name
		return nil
	})
	return idx
}

// Resolve returns the canonical path a reference points to. Full paths win
// over aliases.
func (idx *Index) Resolve(ref string) (string, bool) {
	ref = token.SplitRef(ref).DotPath()
	if idx.full[ref] {
		return ref, true
	}
	if target, ok := idx.aliases[ref]; ok {
		return target, true
	}
	return "", false
}

// Len returns the number of indexed leaves.
func (idx *Index) Len() int {
	return len(idx.full)
}
