/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package config provides configuration loading for the token build.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"bennypowers.dev/gavanim/convert"
	"bennypowers.dev/gavanim/convert/formatter"
	"bennypowers.dev/gavanim/convert/formatter/css"
	"bennypowers.dev/gavanim/parser"
	"bennypowers.dev/gavanim/resolver"
	"bennypowers.dev/gavanim/schema"
	"bennypowers.dev/gavanim/theme"
	"bennypowers.dev/gavanim/token"
)

// Default locations, relative to the project root.
const (
	DefaultSource = "tokens/selected-tokens.json"
	DefaultOutDir = "dist/tokens"
)

// Config represents the token build configuration.
type Config struct {
	// Source lists token documents to read. Globs are allowed.
	Source StringList `yaml:"source" json:"source" toml:"source"`

	// OutDir is the output directory.
	OutDir string `yaml:"outDir" json:"outDir" toml:"outDir"`

	// Prefix is prepended to every output name.
	Prefix string `yaml:"prefix" json:"prefix" toml:"prefix"`

	// Header is written as a comment at the top of CSS files.
	Header string `yaml:"header" json:"header" toml:"header"`

	// Description is recorded in the index manifest.
	Description string `yaml:"description" json:"description" toml:"description"`

	// DefaultBrand is built first and matches elements without a brand
	// attribute. Empty means the first brand found in the document.
	DefaultBrand string `yaml:"defaultBrand" json:"defaultBrand" toml:"defaultBrand"`

	// BaseMode is the mode whose block carries every category.
	BaseMode string `yaml:"baseMode" json:"baseMode" toml:"baseMode"`

	// Modes are the override keys treated as modes rather than brands.
	Modes []string `yaml:"modes" json:"modes" toml:"modes"`

	// StructuralRoots are top-level keys left out of output names.
	StructuralRoots []string `yaml:"structuralRoots" json:"structuralRoots" toml:"structuralRoots"`

	// Sections are the top-level keys validation expects.
	Sections []string `yaml:"sections" json:"sections" toml:"sections"`

	// Precedence is "brand" or "mode": which override wins when both apply.
	Precedence string `yaml:"precedence" json:"precedence" toml:"precedence"`

	// ModeCategories are the categories kept in non-base mode blocks.
	// "*" keeps every category.
	ModeCategories []string `yaml:"modeCategories" json:"modeCategories" toml:"modeCategories"`

	// CSS configures CSS output.
	CSS CSSConfig `yaml:"css" json:"css" toml:"css"`

	// JSON configures flat and grouped JSON output.
	JSON JSONConfig `yaml:"json" json:"json" toml:"json"`

	// ColorFormat is keep, hex, rgb or hsl.
	ColorFormat string `yaml:"colorFormat" json:"colorFormat" toml:"colorFormat"`

	// Dialect forces "legacy" or "dtcg" key names. Empty detects them.
	Dialect string `yaml:"dialect" json:"dialect" toml:"dialect"`

	// Bundle additionally writes every theme into one CSS and one JSON file.
	Bundle bool `yaml:"bundle" json:"bundle" toml:"bundle"`

	// Primitives names the section written as primitives.css and
	// primitives.json. Empty disables primitives output.
	Primitives string `yaml:"primitives" json:"primitives" toml:"primitives"`

	// MaxDepth limits group nesting.
	MaxDepth int `yaml:"maxDepth" json:"maxDepth" toml:"maxDepth"`

	// Jobs limits how many themes are built at once. Zero means one per CPU.
	Jobs int `yaml:"jobs" json:"jobs" toml:"jobs"`
}

// CSSConfig configures CSS output.
type CSSConfig struct {
	Separator      string `yaml:"separator" json:"separator" toml:"separator"`
	BrandAttribute string `yaml:"brandAttribute" json:"brandAttribute" toml:"brandAttribute"`
	ModeAttribute  string `yaml:"modeAttribute" json:"modeAttribute" toml:"modeAttribute"`
}

// JSONConfig configures JSON output.
type JSONConfig struct {
	Separator string `yaml:"separator" json:"separator" toml:"separator"`
	// Case is "keep" or "camel" for flat JSON keys.
	Case string `yaml:"case" json:"case" toml:"case"`
}

// StringList is a list that may be written as a single string.
type StringList []string

// UnmarshalYAML handles both string and list forms.
func (l *StringList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*l = StringList{node.Value}
		return nil
	}
	var list []string
	if err := node.Decode(&list); err != nil {
		return err
	}
	*l = list
	return nil
}

// UnmarshalJSON handles both string and list forms.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = StringList{s}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*l = list
	return nil
}

// UnmarshalTOML handles both string and array forms.
func (l *StringList) UnmarshalTOML(v any) error {
	switch v := v.(type) {
	case string:
		*l = StringList{v}
	case []any:
		list := make(StringList, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("source entries must be strings, got %T", item)
			}
			list = append(list, s)
		}
		*l = list
	default:
		return fmt.Errorf("source must be a string or an array, got %T", v)
	}
	return nil
}

// Default returns a config with default values.
func Default() *Config {
	return &Config{
		Source:          StringList{DefaultSource},
		OutDir:          DefaultOutDir,
		BaseMode:        theme.DefaultBaseMode,
		Modes:           theme.DefaultVocabulary().Modes(),
		StructuralRoots: slices.Clone(token.DefaultStructuralRoots),
		Precedence:      theme.BrandWins.String(),
		ModeCategories:  []string{"color"},
		CSS: CSSConfig{
			Separator:      "_",
			BrandAttribute: css.DefaultBrandAttribute,
			ModeAttribute:  css.DefaultModeAttribute,
		},
		JSON: JSONConfig{
			Separator: "-",
			Case:      "keep",
		},
		ColorFormat: string(convert.ColorKeep),
		Primitives:  "Global",
		MaxDepth:    parser.DefaultMaxDepth,
	}
}

// Validate reports every invalid enumerated field.
func (c *Config) Validate() error {
	var errs []error
	if len(c.Source) == 0 {
		errs = append(errs, errors.New("source: at least one token file is required"))
	}
	if c.OutDir == "" {
		errs = append(errs, errors.New("outDir: must not be empty"))
	}
	if _, err := theme.ParsePrecedence(c.Precedence); err != nil {
		errs = append(errs, fmt.Errorf("precedence: %w", err))
	}
	if _, err := formatter.ParseCase(c.JSON.Case); err != nil {
		errs = append(errs, fmt.Errorf("json.case: %w", err))
	}
	if _, err := convert.ParseColorFormat(c.ColorFormat); err != nil {
		errs = append(errs, fmt.Errorf("colorFormat: %w", err))
	}
	if _, err := schema.FromString(c.Dialect); err != nil {
		errs = append(errs, fmt.Errorf("dialect: %w", err))
	}
	if c.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("maxDepth: must not be negative, got %d", c.MaxDepth))
	}
	if c.Jobs < 0 {
		errs = append(errs, fmt.Errorf("jobs: must not be negative, got %d", c.Jobs))
	}
	return errors.Join(errs...)
}

// ParserOptions returns the parser options the config describes.
// Enumerated fields are assumed valid; see Validate.
func (c *Config) ParserOptions() parser.Options {
	dialect, _ := schema.FromString(c.Dialect)
	opts := parser.Options{
		MaxDepth: c.MaxDepth,
		Dialect:  dialect,
	}
	if len(c.Modes) > 0 {
		opts.Vocabulary = theme.NewVocabulary(c.Modes...)
	}
	return opts
}

// ThemeOptions returns the theme enumeration options.
func (c *Config) ThemeOptions() theme.Options {
	return theme.Options{
		DefaultBrand: c.DefaultBrand,
		BaseMode:     c.BaseMode,
	}
}

// ResolverOptions returns the reference resolution options.
func (c *Config) ResolverOptions() resolver.Options {
	precedence, _ := theme.ParsePrecedence(c.Precedence)
	return resolver.Options{
		Precedence:      precedence,
		StructuralRoots: c.StructuralRoots,
	}
}

// ConvertOptions returns the serialization options.
func (c *Config) ConvertOptions() convert.Options {
	opts := convert.DefaultOptions()
	jsonCase, _ := formatter.ParseCase(c.JSON.Case)
	colorFormat, _ := convert.ParseColorFormat(c.ColorFormat)

	opts.CSSNaming = formatter.Naming{
		StructuralRoots: c.StructuralRoots,
		Separator:       c.CSS.Separator,
		Prefix:          c.Prefix,
	}
	opts.JSONNaming = formatter.Naming{
		StructuralRoots: c.StructuralRoots,
		Separator:       c.JSON.Separator,
		Case:            jsonCase,
		Prefix:          c.Prefix,
	}
	opts.CSS = css.Options{
		BrandAttribute: c.CSS.BrandAttribute,
		ModeAttribute:  c.CSS.ModeAttribute,
		ModeCategories: c.ModeCategories,
	}
	opts.Resolver = c.ResolverOptions()
	opts.ColorFormat = colorFormat
	opts.Header = c.Header
	opts.PrimitivesSection = c.Primitives
	return opts
}
