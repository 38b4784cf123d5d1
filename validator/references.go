/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package validator

import (
	"fmt"
	"strings"

	"bennypowers.dev/gavanim/resolver"
	"bennypowers.dev/gavanim/theme"
	"bennypowers.dev/gavanim/token"
)

// scalarSource is one string a leaf may resolve to: its base value or one
// of its overrides.
type scalarSource struct {
	label string
	value token.Value
}

func sources(leaf *token.Leaf) []scalarSource {
	out := []scalarSource{{label: "value", value: leaf.Value}}
	for _, k := range leaf.Overrides.Keys {
		if v, ok := leaf.Overrides.ByMode[k]; ok {
			out = append(out, scalarSource{label: "mode override " + k, value: v})
		}
		if v, ok := leaf.Overrides.ByBrand[k]; ok {
			out = append(out, scalarSource{label: "brand override " + k, value: v})
		}
	}
	return out
}

// eachRef calls fn for every reference in every value of every leaf.
func eachRef(doc *token.Document, fn func(path token.Path, leaf *token.Leaf, label, ref string)) {
	_ = doc.Walk(func(path token.Path, leaf *token.Leaf) error {
		for _, src := range sources(leaf) {
			if src.value.Kind != token.String {
				continue
			}
			for _, ref := range token.ExtractAllRefs(src.value.Text) {
				fn(path, leaf, src.label, ref)
			}
		}
		return nil
	})
}

// ReferenceSyntax warns about {x} references that have no path separator.
// They are almost always a typo for a dotted path.
func ReferenceSyntax(doc *token.Document, file string) []ValidationError {
	var out []ValidationError
	eachRef(doc, func(path token.Path, leaf *token.Leaf, label, ref string) {
		if strings.Contains(ref, ".") {
			return
		}
		out = append(out, ValidationError{
			FilePath:   file,
			Path:       path.DotPath(),
			Line:       leaf.Line,
			Message:    fmt.Sprintf("%s references {%s}, which has no path separator", label, ref),
			Suggestion: "use a dotted path such as {color.primary}",
		})
	})
	return out
}

// ReferenceTargets warns about aliases claimed by several tokens and about
// dotted references that match no token.
func ReferenceTargets(doc *token.Document, opts resolver.Options, file string) []ValidationError {
	idx := resolver.New(doc, opts).Index()

	var out []ValidationError
	for _, alias := range idx.Ambiguous {
		out = append(out, ValidationError{
			FilePath:   file,
			Path:       alias,
			Message:    fmt.Sprintf("reference alias {%s} matches more than one token; the first one is used", alias),
			Suggestion: "reference the full path instead",
		})
	}

	eachRef(doc, func(path token.Path, leaf *token.Leaf, label, ref string) {
		if !strings.Contains(ref, ".") {
			return
		}
		if _, ok := idx.Resolve(ref); ok {
			return
		}
		out = append(out, ValidationError{
			FilePath:   file,
			Path:       path.DotPath(),
			Line:       leaf.Line,
			Message:    fmt.Sprintf("%s references {%s}, which matches no token", label, ref),
			Suggestion: "the braces will be stripped in the output",
		})
	})
	return out
}

// Cycles resolves every theme of doc and returns one finding per distinct
// reference cycle.
func Cycles(doc *token.Document, ropts resolver.Options, topts theme.Options, file string) []ValidationError {
	r := resolver.New(doc, ropts)

	var out []ValidationError
	seen := make(map[string]bool)
	for _, t := range theme.Enumerate(doc, topts).Themes() {
		entries, err := r.Entries(t)
		if err != nil {
			return append(out, ValidationError{FilePath: file, Message: err.Error()})
		}
		cycle := resolver.BuildDependencyGraph(entries, r.Index()).FindCycle()
		if cycle == nil {
			continue
		}
		chain := strings.Join(cycle, " -> ")
		if seen[chain] {
			continue
		}
		seen[chain] = true
		out = append(out, ValidationError{
			FilePath:   file,
			Path:       cycle[0],
			Message:    fmt.Sprintf("circular reference in theme %s: %s", t, chain),
			Suggestion: "break the chain by giving one token a literal value",
		})
	}
	return out
}
