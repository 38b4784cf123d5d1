/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package render provides shared rendering functions for CLI output.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode"

	"github.com/mazznoer/csscolorparser"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"bennypowers.dev/gavanim/convert"
	"bennypowers.dev/gavanim/convert/formatter"
	"bennypowers.dev/gavanim/token"
)

// Row holds computed display values for a single token.
type Row struct {
	Name        string   `json:"name"`                 // Output name, e.g. color_primary
	Path        string   `json:"path"`                 // Dot path in the source document
	Category    string   `json:"category"`             // First segment after structural roots
	Type        string   `json:"type,omitempty"`       // Token type tag
	Value       string   `json:"value"`                // Effective value for the theme
	Description string   `json:"description,omitempty"`
	Unresolved  []string `json:"unresolved,omitempty"` // References that matched no token
	IsColor     bool     `json:"-"`                    // Whether Value parses as a CSS color
}

// ComputeRows transforms resolved tokens into display rows. Descriptions
// are looked up in doc, which may be nil.
func ComputeRows(doc *token.Document, tokens []token.Resolved, naming formatter.Naming) []Row {
	rows := make([]Row, 0, len(tokens))
	for _, e := range formatter.Entries(tokens, naming) {
		row := Row{
			Name:       e.Name,
			Path:       e.Token.Path.DotPath(),
			Category:   e.Category,
			Type:       e.Token.Type,
			Value:      e.Token.Value.String(),
			Unresolved: e.Token.Unresolved,
		}
		if doc != nil {
			if id, ok := doc.Lookup(e.Token.Path); ok {
				if leaf := doc.Node(id).Leaf; leaf != nil {
					row.Description = leaf.Description
				}
			}
		}
		if convert.IsColorToken(e.Token, e.Category) && !strings.Contains(row.Value, "{") {
			if _, err := csscolorparser.Parse(row.Value); err == nil {
				row.IsColor = true
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// Filter keeps rows in category whose name or path matches pattern.
// Empty arguments match everything.
func Filter(rows []Row, category string, pattern *regexp.Regexp) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if category != "" && !strings.EqualFold(r.Category, category) {
			continue
		}
		if pattern != nil && !pattern.MatchString(r.Name) && !pattern.MatchString(r.Path) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// ColumnWidths calculates the max width needed for each column.
func ColumnWidths(rows []Row) (name, typ, val int) {
	name, typ, val = 4, 4, 5 // minimums for headers
	for _, r := range rows {
		name = max(name, len(r.Name))
		typ = max(typ, len(displayType(r)))
		val = max(val, len(r.Value))
	}
	return
}

// ColorSwatch returns a 24-bit ANSI color block for the given color value.
func ColorSwatch(value string) string {
	c, err := csscolorparser.Parse(value)
	if err != nil {
		return ""
	}
	r, g, b, _ := c.RGBA255()
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m ", r, g, b)
}

// Table renders rows as aligned columns. Color values get a swatch when
// swatches is true.
func Table(w io.Writer, rows []Row, swatches bool) error {
	nameW, typeW, _ := ColumnWidths(rows)
	for _, r := range rows {
		swatch := ""
		if swatches && r.IsColor {
			swatch = ColorSwatch(r.Value)
		}
		unresolved := ""
		if len(r.Unresolved) > 0 {
			unresolved = " (unresolved: " + strings.Join(r.Unresolved, ", ") + ")"
		}
		if _, err := fmt.Fprintf(w, "%-*s  %-*s  %s%s%s\n", nameW, r.Name, typeW, displayType(r), swatch, r.Value, unresolved); err != nil {
			return err
		}
	}
	return nil
}

// Markdown renders rows as one table per category under a title heading.
func Markdown(w io.Writer, title string, rows []Row) error {
	var b strings.Builder
	if title != "" {
		fmt.Fprintf(&b, "# %s\n\n", title)
	}

	order := make([]string, 0)
	byCategory := make(map[string][]Row)
	for _, r := range rows {
		if _, ok := byCategory[r.Category]; !ok {
			order = append(order, r.Category)
		}
		byCategory[r.Category] = append(byCategory[r.Category], r)
	}

	for i, category := range order {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "## %s {#%s}\n\n", toTitleCase(category), slugify(category))
		renderTokenTable(&b, byCategory[category])
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func renderTokenTable(b *strings.Builder, rows []Row) {
	nameW, valW, descW := 4, 5, 0
	for _, r := range rows {
		nameW = max(nameW, len(r.Name))
		valW = max(valW, len(r.Value))
		descW = max(descW, len(r.Description))
	}
	if descW == 0 {
		fmt.Fprintf(b, "| %-*s | %-*s |\n", nameW, "Name", valW, "Value")
		fmt.Fprintf(b, "|-%s-|-%s-|\n", strings.Repeat("-", nameW), strings.Repeat("-", valW))
		for _, r := range rows {
			fmt.Fprintf(b, "| %-*s | %-*s |\n", nameW, r.Name, valW, r.Value)
		}
		return
	}
	descW = max(descW, 11) // "Description"
	fmt.Fprintf(b, "| %-*s | %-*s | %-*s |\n", nameW, "Name", valW, "Value", descW, "Description")
	fmt.Fprintf(b, "|-%s-|-%s-|-%s-|\n",
		strings.Repeat("-", nameW), strings.Repeat("-", valW), strings.Repeat("-", descW))
	for _, r := range rows {
		fmt.Fprintf(b, "| %-*s | %-*s | %-*s |\n", nameW, r.Name, valW, r.Value, descW, r.Description)
	}
}

// JSON renders rows as an indented array.
func JSON(w io.Writer, rows []Row) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

// Names renders just the token names, one per line.
func Names(w io.Writer, rows []Row) error {
	for _, r := range rows {
		if _, err := fmt.Fprintln(w, r.Name); err != nil {
			return err
		}
	}
	return nil
}

func displayType(r Row) string {
	if r.Type == "" {
		return "-"
	}
	return r.Type
}

// slugify converts a name to a URL-safe anchor ID.
// e.g., "Color Brand" -> "color-brand"
func slugify(name string) string {
	var result strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			result.WriteRune(r)
		} else if r == ' ' || r == '-' || r == '_' || r == '.' {
			result.WriteRune('-')
		}
	}
	s := result.String()
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return strings.Trim(s, "-")
}

// toTitleCase converts a string to Title Case.
func toTitleCase(s string) string {
	if s == "" {
		return "Uncategorized"
	}
	return cases.Title(language.English).String(s)
}
