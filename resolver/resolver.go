/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import (
	"fmt"

	"bennypowers.dev/gavanim/theme"
	"bennypowers.dev/gavanim/token"
)

// Override returns the value a leaf takes in theme t.
// Without overrides the base value applies. When both a mode and a brand
// override exist, precedence decides which one wins.
func Override(leaf *token.Leaf, t theme.Theme, precedence theme.Precedence) token.Value {
	if leaf.Overrides.Empty() {
		return leaf.Value
	}
	modeValue, hasMode := leaf.Overrides.ByMode[t.Mode]
	brandValue, hasBrand := leaf.Overrides.ByBrand[t.Brand]

	switch {
	case hasMode && hasBrand:
		if precedence == theme.ModeWins {
			return modeValue
		}
		return brandValue
	case hasBrand:
		return brandValue
	case hasMode:
		return modeValue
	default:
		return leaf.Value
	}
}

// Options configures resolution.
type Options struct {
	// Precedence decides between a mode and a brand override.
	Precedence theme.Precedence

	// StructuralRoots are stripped to form reference aliases.
	// Nil means token.DefaultStructuralRoots.
	StructuralRoots []string
}

// Resolver resolves a document for any number of themes.
// It holds no per-theme state, so concurrent calls to Theme are safe.
type Resolver struct {
	doc   *token.Document
	index *Index
	opts  Options
}

// New indexes doc for resolution.
func New(doc *token.Document, opts Options) *Resolver {
	if opts.StructuralRoots == nil {
		opts.StructuralRoots = token.DefaultStructuralRoots
	}
	return &Resolver{doc: doc, index: NewIndex(doc, opts.StructuralRoots), opts: opts}
}

// Index returns the reference index.
func (r *Resolver) Index() *Index {
	return r.index
}

// Entries returns each leaf's raw value for theme t, in document order.
func (r *Resolver) Entries(t theme.Theme) ([]Entry, error) {
	return r.entries(func(leaf *token.Leaf) token.Value {
		return Override(leaf, t, r.opts.Precedence)
	})
}

// BaseEntries returns each leaf's base value with overrides ignored, in
// document order.
func (r *Resolver) BaseEntries() ([]Entry, error) {
	return r.entries(func(leaf *token.Leaf) token.Value {
		return leaf.Value
	})
}

func (r *Resolver) entries(value func(*token.Leaf) token.Value) ([]Entry, error) {
	var entries []Entry
	err := r.doc.Walk(func(path token.Path, leaf *token.Leaf) error {
		entries = append(entries, Entry{
			Path:  path,
			Type:  leaf.Type,
			Value: value(leaf),
		})
		return nil
	})
	return entries, err
}

// Theme returns every leaf's effective value for theme t, in document order.
// References are resolved transitively. A reference cycle fails with
// schema.ErrCircularReference. A reference to a missing token has its braces
// stripped and is listed in Resolved.Unresolved.
func (r *Resolver) Theme(t theme.Theme) ([]token.Resolved, error) {
	entries, err := r.Entries(t)
	if err != nil {
		return nil, err
	}
	out, err := r.resolve(entries)
	if err != nil {
		return nil, fmt.Errorf("theme %s: %w", t, err)
	}
	return out, nil
}

// Base returns every leaf's base value with references resolved against
// base values only. No mode or brand override applies.
func (r *Resolver) Base() ([]token.Resolved, error) {
	entries, err := r.BaseEntries()
	if err != nil {
		return nil, err
	}
	out, err := r.resolve(entries)
	if err != nil {
		return nil, fmt.Errorf("base values: %w", err)
	}
	return out, nil
}

func (r *Resolver) resolve(entries []Entry) ([]token.Resolved, error) {
	graph := BuildDependencyGraph(entries, r.index)
	order, err := graph.TopologicalSort()
	if err != nil {
		return nil, err
	}

	byName := make(map[string]Entry, len(entries))
	for _, e := range entries {
		byName[e.Path.DotPath()] = e
	}

	done := make(map[string]token.Resolved, len(entries))
	for _, name := range order {
		done[name] = r.substitute(byName[name], done)
	}

	out := make([]token.Resolved, 0, len(entries))
	for _, e := range entries {
		out = append(out, done[e.Path.DotPath()])
	}
	return out, nil
}

// substitute resolves the references of e. Every dependency of e is
// already in done.
func (r *Resolver) substitute(e Entry, done map[string]token.Resolved) token.Resolved {
	res := token.Resolved{Path: e.Path, Type: e.Type, Value: e.Value}
	if e.Value.Kind != token.String || !token.IsCurlyBraceRef(e.Value.Text) {
		return res
	}

	if ref, ok := token.ParseCurlyBraceRef(e.Value.Text); ok {
		if target, ok := r.index.Resolve(ref); ok {
			dep := done[target]
			res.Value = dep.Value
			res.Unresolved = append(res.Unresolved, dep.Unresolved...)
			if res.Type == "" {
				res.Type = dep.Type
			}
			return res
		}
	}

	text := token.CurlyBracePattern.ReplaceAllStringFunc(e.Value.Text, func(m string) string {
		ref := m[1 : len(m)-1]
		target, ok := r.index.Resolve(ref)
		if !ok {
			res.Unresolved = append(res.Unresolved, ref)
			return ref
		}
		dep := done[target]
		res.Unresolved = append(res.Unresolved, dep.Unresolved...)
		return dep.Value.Text
	})
	res.Value = token.StringValue(text)
	return res
}

// ResolveTheme resolves doc for a single theme.
func ResolveTheme(doc *token.Document, t theme.Theme, opts Options) ([]token.Resolved, error) {
	return New(doc, opts).Theme(t)
}
