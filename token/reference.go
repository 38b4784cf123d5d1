/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package token

import (
	"regexp"
	"strings"
)

// CurlyBracePattern matches {token.path} references.
var CurlyBracePattern = regexp.MustCompile(`\{([^{}]+)\}`)

// ParseCurlyBraceRef extracts the token path from a value that consists of
// exactly one reference. Returns the path and true if valid.
func ParseCurlyBraceRef(value string) (string, bool) {
	value = strings.TrimSpace(value)
	m := CurlyBracePattern.FindStringSubmatchIndex(value)
	if m == nil || m[0] != 0 || m[1] != len(value) {
		return "", false
	}
	return value[m[2]:m[3]], true
}

// IsCurlyBraceRef returns true if the value contains a curly brace reference.
func IsCurlyBraceRef(value string) bool {
	return CurlyBracePattern.MatchString(value)
}

// ExtractAllRefs extracts all curly brace references from a string.
func ExtractAllRefs(value string) []string {
	matches := CurlyBracePattern.FindAllStringSubmatch(value, -1)
	refs := make([]string, 0, len(matches))
	for _, m := range matches {
		if len(m) >= 2 {
			refs = append(refs, m[1])
		}
	}
	return refs
}

// StripBraces removes reference braces, leaving the dotted paths in place.
// "{color.base}" becomes "color.base".
func StripBraces(value string) string {
	return CurlyBracePattern.ReplaceAllString(value, "$1")
}

// SplitRef splits a dotted reference into path segments.
func SplitRef(ref string) Path {
	parts := strings.Split(strings.TrimSpace(ref), ".")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
