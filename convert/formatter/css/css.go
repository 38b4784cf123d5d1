/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package css provides CSS custom property formatting for design tokens.
package css

import (
	"fmt"
	"slices"
	"strings"

	"bennypowers.dev/gavanim/convert/formatter"
	"bennypowers.dev/gavanim/schema"
	"bennypowers.dev/gavanim/theme"
	"bennypowers.dev/gavanim/token"
)

// Default attribute names used in selectors.
const (
	DefaultBrandAttribute = "data-brand"
	DefaultModeAttribute  = "data-mode"
)

// AllCategories in ModeCategories keeps every category in mode blocks.
const AllCategories = "*"

// Options configures the CSS formatter.
type Options struct {
	// Set supplies the default brand and base mode for selectors.
	Set theme.Set

	// BrandAttribute defaults to DefaultBrandAttribute.
	BrandAttribute string

	// ModeAttribute defaults to DefaultModeAttribute.
	ModeAttribute string

	// ModeCategories are the categories emitted in non-base mode blocks.
	// Nil means only "color".
	ModeCategories []string
}

// Formatter outputs one CSS rule block per theme.
type Formatter struct {
	opts Options
}

// New creates a new CSS formatter.
func New(opts Options) *Formatter {
	if opts.BrandAttribute == "" {
		opts.BrandAttribute = DefaultBrandAttribute
	}
	if opts.ModeAttribute == "" {
		opts.ModeAttribute = DefaultModeAttribute
	}
	if opts.ModeCategories == nil {
		opts.ModeCategories = []string{"color"}
	}
	return &Formatter{opts: opts}
}

// Block is one rule: a selector and its custom properties.
type Block struct {
	Comment  string
	Selector string
	Entries  []formatter.Entry
}

// Format converts resolved tokens to a CSS rule block for opts.Theme.
func (f *Formatter) Format(tokens []token.Resolved, opts formatter.Options) ([]byte, error) {
	block := f.Block(tokens, opts)
	block.Comment = ""
	out := Render(opts.Header, []Block{block})
	if err := Verify(out, 1, len(block.Entries)); err != nil {
		return nil, fmt.Errorf("%w: css for %s: %v", schema.ErrSerialization, opts.Theme, err)
	}
	return out, nil
}

// Block builds the rule block for opts.Theme. Blocks for a non-base mode
// keep only the mode categories.
func (f *Formatter) Block(tokens []token.Resolved, opts formatter.Options) Block {
	entries := formatter.Entries(tokens, opts.Naming)
	if !f.opts.Set.IsBaseMode(opts.Theme.Mode) && !slices.Contains(f.opts.ModeCategories, AllCategories) {
		entries = slices.DeleteFunc(entries, func(e formatter.Entry) bool {
			return !slices.Contains(f.opts.ModeCategories, e.Category)
		})
	}
	return Block{
		Comment:  opts.Theme.String(),
		Selector: f.Selector(opts.Theme),
		Entries:  entries,
	}
}

// Selector returns the selector scoping a theme.
// The default brand in the base mode also matches elements without any
// brand attribute. Non-base modes add the mode attribute to every part.
func (f *Formatter) Selector(t theme.Theme) string {
	brand := fmt.Sprintf("[%s=%q]", f.opts.BrandAttribute, t.Brand)
	parts := []string{brand}
	if f.opts.Set.IsDefaultBrand(t.Brand) {
		parts = []string{fmt.Sprintf(":root:not([%s])", f.opts.BrandAttribute), brand}
	}
	if !f.opts.Set.IsBaseMode(t.Mode) {
		mode := fmt.Sprintf("[%s=%q]", f.opts.ModeAttribute, t.Mode)
		for i := range parts {
			parts[i] += mode
		}
	}
	return strings.Join(parts, ", ")
}

// Render writes blocks as CSS text.
func Render(header string, blocks []Block) []byte {
	var b strings.Builder
	b.WriteString(formatter.FormatHeader(header, formatter.CStyleComments))
	for i, block := range blocks {
		if i > 0 {
			b.WriteString("\n")
		}
		if block.Comment != "" {
			fmt.Fprintf(&b, "/* %s */\n", block.Comment)
		}
		b.WriteString(block.Selector)
		b.WriteString(" {\n")
		for _, e := range block.Entries {
			fmt.Fprintf(&b, "  --%s: %s;\n", e.Name, e.Token.Value.Text)
		}
		b.WriteString("}\n")
	}
	return []byte(b.String())
}

// Primitives renders one :root block per category, in category order.
func Primitives(header string, tokens []token.Resolved, naming formatter.Naming) []byte {
	order, groups := formatter.GroupByCategory(formatter.Entries(tokens, naming))
	blocks := make([]Block, 0, len(order))
	for _, category := range order {
		blocks = append(blocks, Block{Comment: category, Selector: ":root", Entries: groups[category]})
	}
	return Render(header, blocks)
}
