/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package theme discovers the brands and modes a token document defines.
package theme

import (
	"fmt"
	"slices"
	"strings"

	"bennypowers.dev/gavanim/token"
)

// Theme is one brand and mode combination.
type Theme struct {
	Brand string
	Mode  string
}

// String returns "brand/mode".
func (t Theme) String() string {
	return t.Brand + "/" + t.Mode
}

// DefaultBaseMode is the mode built from base values.
const DefaultBaseMode = "light"

// FallbackBrand names the only brand of a document without brand overrides.
const FallbackBrand = "default"

// Vocabulary is the set of keys treated as modes in an ambiguous override map.
// Every other key is a brand. A brand whose name collides with a mode keyword
// is misclassified; documents that need such names should use the explicit
// modeOverrides/brandOverrides tables instead.
type Vocabulary struct {
	modes []string
}

// NewVocabulary returns a vocabulary of the given mode keywords.
func NewVocabulary(modes ...string) Vocabulary {
	v := Vocabulary{}
	for _, m := range modes {
		m = strings.ToLower(strings.TrimSpace(m))
		if m != "" && !slices.Contains(v.modes, m) {
			v.modes = append(v.modes, m)
		}
	}
	return v
}

// DefaultVocabulary returns the light, dark and contrast keywords.
func DefaultVocabulary() Vocabulary {
	return NewVocabulary("light", "dark", "contrast")
}

// IsMode reports whether key is a mode keyword. Matching ignores case.
func (v Vocabulary) IsMode(key string) bool {
	return slices.Contains(v.modes, strings.ToLower(key))
}

// Modes returns the keywords in declaration order.
func (v Vocabulary) Modes() []string {
	return slices.Clone(v.modes)
}

// Precedence decides which override wins when a leaf has both a mode and a
// brand override for the theme being built.
type Precedence int

const (
	// BrandWins applies the brand override over the mode override.
	BrandWins Precedence = iota

	// ModeWins applies the mode override over the brand override.
	ModeWins
)

// String returns the configuration name of the precedence.
func (p Precedence) String() string {
	if p == ModeWins {
		return "mode"
	}
	return "brand"
}

// ParsePrecedence parses "brand" or "mode". Empty means BrandWins.
func ParsePrecedence(s string) (Precedence, error) {
	switch strings.ToLower(s) {
	case "", "brand":
		return BrandWins, nil
	case "mode":
		return ModeWins, nil
	default:
		return BrandWins, fmt.Errorf("unknown precedence %q (valid: brand, mode)", s)
	}
}

// Set is the brands and modes found in a document.
type Set struct {
	Brands       []string
	Modes        []string
	DefaultBrand string
	BaseMode     string
}

// Themes returns every brand and mode pair, brands outermost.
func (s Set) Themes() []Theme {
	out := make([]Theme, 0, len(s.Brands)*len(s.Modes))
	for _, b := range s.Brands {
		for _, m := range s.Modes {
			out = append(out, Theme{Brand: b, Mode: m})
		}
	}
	return out
}

// IsDefaultBrand reports whether brand is the default brand.
func (s Set) IsDefaultBrand(brand string) bool {
	return strings.EqualFold(brand, s.DefaultBrand)
}

// IsBaseMode reports whether mode is the base mode.
func (s Set) IsBaseMode(mode string) bool {
	return strings.EqualFold(mode, s.BaseMode)
}

// HasBrand reports whether brand belongs to the set.
func (s Set) HasBrand(brand string) bool {
	return slices.Contains(s.Brands, strings.ToLower(brand))
}

// HasMode reports whether mode belongs to the set.
func (s Set) HasMode(mode string) bool {
	return slices.Contains(s.Modes, strings.ToLower(mode))
}

// Select returns the theme for brand and mode. Empty arguments select the
// default brand and the base mode. Unknown names are an error.
func (s Set) Select(brand, mode string) (Theme, error) {
	t := Theme{Brand: s.DefaultBrand, Mode: s.BaseMode}
	if brand != "" {
		if !s.HasBrand(brand) {
			return t, fmt.Errorf("unknown brand %q: expected one of %s", brand, strings.Join(s.Brands, ", "))
		}
		t.Brand = strings.ToLower(brand)
	}
	if mode != "" {
		if !s.HasMode(mode) {
			return t, fmt.Errorf("unknown mode %q: expected one of %s", mode, strings.Join(s.Modes, ", "))
		}
		t.Mode = strings.ToLower(mode)
	}
	return t, nil
}

// Options configures enumeration.
type Options struct {
	// DefaultBrand is listed first and always built, even without overrides.
	// When empty, the first discovered brand is the default.
	DefaultBrand string

	// BaseMode is listed first and always built. Defaults to "light".
	BaseMode string
}

// Enumerate scans every leaf's overrides and returns the brands and modes
// in discovery order.
func Enumerate(doc *token.Document, opts Options) Set {
	base := strings.ToLower(opts.BaseMode)
	if base == "" {
		base = DefaultBaseMode
	}
	set := Set{BaseMode: base, Modes: []string{base}}

	if opts.DefaultBrand != "" {
		set.DefaultBrand = strings.ToLower(opts.DefaultBrand)
		set.Brands = append(set.Brands, set.DefaultBrand)
	}

	_ = doc.Walk(func(_ token.Path, leaf *token.Leaf) error {
		for _, key := range leaf.Overrides.Keys {
			if _, ok := leaf.Overrides.ByMode[key]; ok && !slices.Contains(set.Modes, key) {
				set.Modes = append(set.Modes, key)
			}
			if _, ok := leaf.Overrides.ByBrand[key]; ok && !slices.Contains(set.Brands, key) {
				set.Brands = append(set.Brands, key)
			}
		}
		return nil
	})

	if len(set.Brands) == 0 {
		set.Brands = []string{FallbackBrand}
	}
	if set.DefaultBrand == "" {
		set.DefaultBrand = set.Brands[0]
	}
	return set
}
