/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package formatter provides the interface and common utilities for token formatters.
package formatter

import (
	"strings"
	"time"
	"unicode"

	"bennypowers.dev/gavanim/theme"
	"bennypowers.dev/gavanim/token"
)

// Formatter defines the interface for output formatters.
type Formatter interface {
	// Format converts resolved tokens to the target format.
	Format(tokens []token.Resolved, opts Options) ([]byte, error)
}

// Options configures formatter behavior.
type Options struct {
	// Naming turns token paths into output names.
	Naming Naming

	// Theme is the brand and mode the tokens were resolved for.
	Theme theme.Theme

	// GeneratedAt is recorded by formats that carry metadata.
	GeneratedAt time.Time

	// Header is an optional comment emitted before the output.
	Header string
}

// Entry is one named output value.
type Entry struct {
	Name     string
	Category string
	Token    token.Resolved
}

// Entries names every token, keeping input order.
func Entries(tokens []token.Resolved, naming Naming) []Entry {
	out := make([]Entry, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, Entry{
			Name:     naming.Name(t.Path),
			Category: naming.Category(t.Path),
			Token:    t,
		})
	}
	return out
}

// Duplicates returns names produced by more than one token, in first-seen order.
func Duplicates(entries []Entry) []string {
	seen := make(map[string]int, len(entries))
	var dups []string
	for _, e := range entries {
		seen[e.Name]++
		if seen[e.Name] == 2 {
			dups = append(dups, e.Name)
		}
	}
	return dups
}

// GroupByCategory groups entries by category, keeping first-seen category order.
func GroupByCategory(entries []Entry) ([]string, map[string][]Entry) {
	var order []string
	groups := make(map[string][]Entry)
	for _, e := range entries {
		if _, ok := groups[e.Category]; !ok {
			order = append(order, e.Category)
		}
		groups[e.Category] = append(groups[e.Category], e)
	}
	return order, groups
}

// CommentStyle defines how to format comments for different output formats.
type CommentStyle int

const (
	// CStyleComments uses /* */ block comments (CSS).
	CStyleComments CommentStyle = iota

	// LineComments uses // line comments.
	LineComments
)

// FormatHeader formats header text as a comment block, followed by a blank line.
func FormatHeader(header string, style CommentStyle) string {
	header = strings.TrimRight(header, "\n")
	if header == "" {
		return ""
	}
	lines := strings.Split(header, "\n")

	var b strings.Builder
	switch style {
	case LineComments:
		for _, line := range lines {
			b.WriteString(strings.TrimRight("// "+line, " ") + "\n")
		}
	default:
		if len(lines) == 1 {
			b.WriteString("/* " + lines[0] + " */\n")
			break
		}
		b.WriteString("/*\n")
		for _, line := range lines {
			b.WriteString(strings.TrimRight(" * "+line, " ") + "\n")
		}
		b.WriteString(" */\n")
	}
	b.WriteString("\n")
	return b.String()
}

// ApplyPrefix adds a prefix to a name with the given delimiter.
func ApplyPrefix(name, prefix, delimiter string) string {
	if prefix == "" {
		return name
	}
	return prefix + delimiter + name
}

// ToCamelCase converts a string to camelCase.
func ToCamelCase(s string) string {
	words := SplitIntoWords(s)
	if len(words) == 0 {
		return ""
	}

	result := strings.ToLower(words[0])
	for i := 1; i < len(words); i++ {
		if len(words[i]) > 0 {
			result += strings.ToUpper(words[i][:1]) + strings.ToLower(words[i][1:])
		}
	}
	return result
}

// ToKebabCase converts a string to kebab-case.
func ToKebabCase(s string) string {
	words := SplitIntoWords(s)
	return strings.ToLower(strings.Join(words, "-"))
}

// ToTitleCase converts a string to Title Case.
func ToTitleCase(s string) string {
	words := SplitIntoWords(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}
	return strings.Join(words, " ")
}

// SplitIntoWords splits a string on hyphens, underscores, dots, and camelCase boundaries.
func SplitIntoWords(s string) []string {
	var words []string
	var current strings.Builder

	for i, r := range s {
		if r == '-' || r == '_' || r == '.' || r == ' ' {
			if current.Len() > 0 {
				words = append(words, current.String())
				current.Reset()
			}
		} else if unicode.IsUpper(r) && i > 0 {
			if current.Len() > 0 {
				words = append(words, current.String())
				current.Reset()
			}
			current.WriteRune(r)
		} else {
			current.WriteRune(r)
		}
	}

	if current.Len() > 0 {
		words = append(words, current.String())
	}

	return words
}
