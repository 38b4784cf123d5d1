/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package formatter

import (
	"fmt"
	"strings"

	"bennypowers.dev/gavanim/token"
)

// Case selects how joined names are cased.
type Case int

const (
	// KeepCase joins segments as written.
	KeepCase Case = iota

	// CamelCase produces language-identifier-safe keys: color-primary becomes colorPrimary.
	CamelCase
)

// ParseCase parses "", "keep", "kebab" or "camel".
func ParseCase(s string) (Case, error) {
	switch strings.ToLower(s) {
	case "", "keep", "kebab":
		return KeepCase, nil
	case "camel":
		return CamelCase, nil
	default:
		return KeepCase, fmt.Errorf("unknown case %q (valid: keep, camel)", s)
	}
}

// Naming turns token paths into flat output names.
// Without a prefix, Name is idempotent: splitting a name on Separator and
// naming the parts again yields the same name.
type Naming struct {
	// StructuralRoots are leading segments dropped from names.
	// Nil means token.DefaultStructuralRoots.
	StructuralRoots []string

	// Separator joins segments.
	Separator string

	// Case is applied after joining.
	Case Case

	// Prefix is prepended with Separator.
	Prefix string
}

// CSSNaming is the default naming for CSS custom properties.
func CSSNaming() Naming {
	return Naming{Separator: "_"}
}

// JSONNaming is the default naming for flat JSON keys.
func JSONNaming() Naming {
	return Naming{Separator: "-"}
}

// Segments returns the sanitized name segments of path, without structural
// roots. Characters outside [A-Za-z0-9_-] become '-'. Segments containing
// the separator are split, and empty segments are dropped.
func (n Naming) Segments(path token.Path) []string {
	var segs token.Path
	for _, key := range path {
		key = sanitize(key)
		if n.Separator == "" {
			segs = append(segs, key)
			continue
		}
		for part := range strings.SplitSeq(key, n.Separator) {
			if part != "" {
				segs = append(segs, part)
			}
		}
	}
	roots := n.StructuralRoots
	if roots == nil {
		roots = token.DefaultStructuralRoots
	}
	return segs.TrimRoots(roots)
}

// Name returns the flat output name of path.
func (n Naming) Name(path token.Path) string {
	segs := n.Segments(path)
	if n.Case == CamelCase {
		return ApplyPrefixCamel(ToCamelCase(strings.Join(segs, "-")), n.Prefix)
	}
	return ApplyPrefix(strings.Join(segs, n.Separator), n.Prefix, n.Separator)
}

// Split breaks a name produced by Name back into segments.
func (n Naming) Split(name string) token.Path {
	if n.Separator == "" {
		return token.Path{name}
	}
	return strings.Split(name, n.Separator)
}

// Category returns the first segment after structural roots are dropped.
func (n Naming) Category(path token.Path) string {
	segs := n.Segments(path)
	if len(segs) == 0 {
		return ""
	}
	return segs[0]
}

// ApplyPrefixCamel applies a prefix in camelCase style.
func ApplyPrefixCamel(name, prefix string) string {
	if prefix == "" {
		return name
	}
	if name == "" {
		return ToCamelCase(prefix)
	}
	return ToCamelCase(prefix) + strings.ToUpper(name[:1]) + name[1:]
}

func sanitize(key string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		default:
			return '-'
		}
	}, key)
}
