/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package convert turns a parsed token document into output files for
// every theme.
package convert

import (
	"fmt"
	"path"
	"time"

	"bennypowers.dev/gavanim/convert/formatter"
	"bennypowers.dev/gavanim/convert/formatter/css"
	"bennypowers.dev/gavanim/convert/formatter/grouped"
	"bennypowers.dev/gavanim/resolver"
	"bennypowers.dev/gavanim/schema"
	"bennypowers.dev/gavanim/theme"
	"bennypowers.dev/gavanim/token"
)

// Bundle and primitives file names.
const (
	BundleCSS      = "tokens-themed.css"
	BundleJSON     = "tokens-themed.json"
	PrimitivesCSS  = "primitives.css"
	PrimitivesJSON = "primitives.json"
)

// Output is one generated file, named relative to the output directory.
type Output struct {
	Format   Format `json:"format"`
	Filename string `json:"filename"`
	Content  []byte `json:"-"`
}

// Options configures token serialization behavior.
type Options struct {
	// CSSNaming names CSS custom properties.
	CSSNaming formatter.Naming

	// JSONNaming names flat and grouped JSON keys.
	JSONNaming formatter.Naming

	// CSS configures selectors and mode filtering. Its Set is ignored.
	CSS css.Options

	// Resolver configures override precedence and reference lookup.
	Resolver resolver.Options

	// ColorFormat rewrites color values. Empty keeps them as written.
	ColorFormat ColorFormat

	// Header is emitted as a comment at the top of CSS files.
	Header string

	// GeneratedAt is recorded in JSON metadata.
	GeneratedAt time.Time

	// PrimitivesSection is the top-level section emitted as primitives.
	PrimitivesSection string
}

// DefaultOptions returns options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		CSSNaming:         formatter.CSSNaming(),
		JSONNaming:        formatter.JSONNaming(),
		ColorFormat:       ColorKeep,
		PrimitivesSection: "Global",
	}
}

// Pipeline produces outputs for the themes of one document.
// It is immutable after construction and safe for concurrent use.
type Pipeline struct {
	doc      *token.Document
	set      theme.Set
	resolver *resolver.Resolver
	opts     Options
}

// NewPipeline prepares doc for serialization.
func NewPipeline(doc *token.Document, set theme.Set, opts Options) *Pipeline {
	if opts.CSSNaming.Separator == "" {
		opts.CSSNaming.Separator = "_"
	}
	if opts.JSONNaming.Separator == "" {
		opts.JSONNaming.Separator = "-"
	}
	return &Pipeline{
		doc:      doc,
		set:      set,
		resolver: resolver.New(doc, opts.Resolver),
		opts:     opts,
	}
}

// Set returns the brands and modes the pipeline builds.
func (p *Pipeline) Set() theme.Set {
	return p.set
}

// Document returns the parsed document.
func (p *Pipeline) Document() *token.Document {
	return p.doc
}

// Resolver returns the pipeline's resolver.
func (p *Pipeline) Resolver() *resolver.Resolver {
	return p.resolver
}

// Resolve returns every token's effective value for t, with color values
// normalized.
func (p *Pipeline) Resolve(t theme.Theme) ([]token.Resolved, error) {
	resolved, err := p.resolver.Theme(t)
	if err != nil {
		return nil, err
	}
	return p.normalize(resolved), nil
}

// ResolveBase returns every token's base value with overrides ignored, with
// color values normalized.
func (p *Pipeline) ResolveBase() ([]token.Resolved, error) {
	resolved, err := p.resolver.Base()
	if err != nil {
		return nil, err
	}
	return p.normalize(resolved), nil
}

func (p *Pipeline) normalize(resolved []token.Resolved) []token.Resolved {
	if p.opts.ColorFormat == ColorKeep || p.opts.ColorFormat == "" {
		return resolved
	}
	for i, r := range resolved {
		if r.Value.Kind != token.String || !IsColorToken(r, p.opts.CSSNaming.Category(r.Path)) {
			continue
		}
		resolved[i].Value = token.StringValue(NormalizeColor(r.Value.Text, p.opts.ColorFormat))
	}
	return resolved
}

// ThemePaths returns the CSS and JSON file names for t.
func ThemePaths(t theme.Theme) (cssPath, jsonPath string) {
	return path.Join(t.Brand, "css", t.Mode+".css"), path.Join(t.Brand, "json", t.Mode+".json")
}

// Theme produces the CSS and flat JSON outputs for t.
func (p *Pipeline) Theme(t theme.Theme) ([]Output, error) {
	resolved, err := p.Resolve(t)
	if err != nil {
		return nil, err
	}
	return p.ThemeFrom(t, resolved)
}

// ThemeFrom serializes tokens already resolved for t.
func (p *Pipeline) ThemeFrom(t theme.Theme, resolved []token.Resolved) ([]Output, error) {
	cssPath, jsonPath := ThemePaths(t)

	cssOut, err := FormatTokens(resolved, FormatCSS, t, p.set, p.opts)
	if err != nil {
		return nil, err
	}
	jsonOut, err := FormatTokens(resolved, FormatJSON, t, p.set, p.opts)
	if err != nil {
		return nil, err
	}
	return []Output{
		{Format: FormatCSS, Filename: cssPath, Content: cssOut},
		{Format: FormatJSON, Filename: jsonPath, Content: jsonOut},
	}, nil
}

// Bundle produces one CSS file holding every theme's block and one grouped
// JSON file keyed by brand then mode.
func (p *Pipeline) Bundle(themes []theme.Theme) ([]Output, error) {
	cssOpts := p.opts.CSS
	cssOpts.Set = p.set
	cf := css.New(cssOpts)

	blocks := make([]css.Block, 0, len(themes))
	declarations := 0
	bundle := make(grouped.Bundle)
	for _, t := range themes {
		resolved, err := p.Resolve(t)
		if err != nil {
			return nil, err
		}
		block := cf.Block(resolved, formatter.Options{Naming: p.opts.CSSNaming, Theme: t})
		blocks = append(blocks, block)
		declarations += len(block.Entries)

		if bundle[t.Brand] == nil {
			bundle[t.Brand] = make(map[string]grouped.Group)
		}
		bundle[t.Brand][t.Mode] = grouped.Build(resolved, p.opts.JSONNaming)
	}

	cssOut := css.Render(p.opts.Header, blocks)
	if err := css.Verify(cssOut, len(blocks), declarations); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", schema.ErrSerialization, BundleCSS, err)
	}
	jsonOut, err := grouped.Encode(bundle)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", schema.ErrSerialization, BundleJSON, err)
	}
	return []Output{
		{Format: FormatCSS, Filename: BundleCSS, Content: cssOut},
		{Format: FormatGrouped, Filename: BundleJSON, Content: jsonOut},
	}, nil
}

// Primitives produces primitives.css, one :root block per category, and
// primitives.json grouped by category. Values are the primitives section's
// base values with references resolved against base values. No brand or
// mode override applies. Returns nil when the document has no such section.
func (p *Pipeline) Primitives() ([]Output, error) {
	section := p.opts.PrimitivesSection
	if section == "" {
		return nil, nil
	}
	if _, ok := p.doc.Lookup(token.Path{section}); !ok {
		return nil, nil
	}

	resolved, err := p.ResolveBase()
	if err != nil {
		return nil, err
	}
	var primitives []token.Resolved
	for _, r := range resolved {
		if r.Path.Category() == section {
			primitives = append(primitives, r)
		}
	}

	naming := p.opts.JSONNaming
	cssOut := css.Primitives(p.opts.Header, primitives, naming)
	order, _ := formatter.GroupByCategory(formatter.Entries(primitives, naming))
	if err := css.Verify(cssOut, len(order), len(primitives)); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", schema.ErrSerialization, PrimitivesCSS, err)
	}
	jsonOut, err := grouped.Encode(grouped.Build(primitives, naming))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", schema.ErrSerialization, PrimitivesJSON, err)
	}
	return []Output{
		{Format: FormatCSS, Filename: PrimitivesCSS, Content: cssOut},
		{Format: FormatGrouped, Filename: PrimitivesJSON, Content: jsonOut},
	}, nil
}
