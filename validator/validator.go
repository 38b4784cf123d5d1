/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package validator checks token documents before a build.
//
// Validation fails only when a document cannot be turned into a token tree.
// Suspicious references, missing sections and ignored input are reported as
// warnings, and leaf counts per top-level section are collected for the
// build summary.
package validator

import (
	"fmt"
	"slices"
	"strings"

	"bennypowers.dev/gavanim/parser"
	"bennypowers.dev/gavanim/resolver"
	"bennypowers.dev/gavanim/theme"
	"bennypowers.dev/gavanim/token"
)

// ValidationError is a single finding, used for both errors and warnings.
type ValidationError struct {
	// FilePath is the path to the file containing the error.
	FilePath string
	// Path is the dot path to the problematic element.
	Path string
	// Line is the 1-based source line, when known.
	Line int
	// Message describes what's wrong.
	Message string
	// Suggestion provides an actionable fix.
	Suggestion string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var sb strings.Builder
	if e.FilePath != "" {
		sb.WriteString(e.FilePath)
		if e.Line > 0 {
			fmt.Fprintf(&sb, ":%d", e.Line)
		}
		sb.WriteString(": ")
	}
	if e.Path != "" {
		sb.WriteString(e.Path)
		sb.WriteString(": ")
	}
	sb.WriteString(e.Message)
	if e.Suggestion != "" {
		sb.WriteString(" (")
		sb.WriteString(e.Suggestion)
		sb.WriteString(")")
	}
	return sb.String()
}

// SectionCount is the number of leaves below one top-level key.
type SectionCount struct {
	Section string `json:"section"`
	Count   int    `json:"count"`
}

// Result is the outcome of validating one document.
type Result struct {
	// OK is false when the document could not be parsed.
	OK bool `json:"ok"`

	Errors   []ValidationError `json:"errors,omitempty"`
	Warnings []ValidationError `json:"warnings,omitempty"`

	// Counts lists leaf counts per top-level section in source order.
	Counts []SectionCount `json:"counts"`

	// Total is the number of leaves in the document.
	Total int `json:"total"`

	// Document is the parsed document, nil when parsing failed.
	Document *token.Document `json:"-"`

	// Err is the parse failure, nil when parsing succeeded.
	Err error `json:"-"`
}

// Count returns the leaf count of section, or zero.
func (r *Result) Count(section string) int {
	for _, c := range r.Counts {
		if c.Section == section {
			return c.Count
		}
	}
	return 0
}

// Options configures validation.
type Options struct {
	// FilePath is recorded on every finding.
	FilePath string

	// Sections are the top-level keys a document is expected to have.
	// Nil means token.DefaultStructuralRoots; an empty slice disables the check.
	Sections []string

	// Parser configures parsing.
	Parser parser.Options

	// References additionally resolves every theme, reporting references
	// that match no token as warnings and reference cycles as errors.
	References bool

	// Resolver configures reference lookup when References is set.
	Resolver resolver.Options

	// Theme configures theme enumeration when References is set.
	Theme theme.Options
}

// Validate checks content and never returns nil.
func Validate(content []byte, opts Options) *Result {
	res := &Result{OK: true}

	popts := opts.Parser
	popts.Warn = func(w parser.Warning) {
		if opts.Parser.Warn != nil {
			opts.Parser.Warn(w)
		}
		res.warn(opts.FilePath, w.Path.DotPath(), w.Line, w.Message, "")
	}

	doc, err := parser.Parse(content, popts)
	if err != nil {
		res.OK = false
		res.Err = err
		res.Errors = append(res.Errors, ValidationError{
			FilePath: opts.FilePath,
			Message:  err.Error(),
		})
		return res
	}
	res.Document = doc

	for _, s := range doc.Sections() {
		n := doc.CountLeaves(s.ID)
		res.Counts = append(res.Counts, SectionCount{Section: s.Key, Count: n})
		res.Total += n
	}

	res.Warnings = append(res.Warnings, MissingSections(doc, opts.Sections, opts.FilePath)...)
	res.Warnings = append(res.Warnings, ReferenceSyntax(doc, opts.FilePath)...)
	if opts.References {
		res.Warnings = append(res.Warnings, ReferenceTargets(doc, opts.Resolver, opts.FilePath)...)
		for _, e := range Cycles(doc, opts.Resolver, opts.Theme, opts.FilePath) {
			res.OK = false
			res.Errors = append(res.Errors, e)
		}
	}
	return res
}

// MissingSections returns a warning for every expected top-level key doc
// lacks. Nil sections means token.DefaultStructuralRoots.
func MissingSections(doc *token.Document, sections []string, file string) []ValidationError {
	if sections == nil {
		sections = token.DefaultStructuralRoots
	}
	var out []ValidationError
	for _, want := range sections {
		if _, ok := doc.Lookup(token.Path{want}); !ok {
			out = append(out, ValidationError{
				FilePath: file,
				Path:     want,
				Message:  fmt.Sprintf("expected top-level section %q is missing", want),
			})
		}
	}
	return out
}

// Merge appends other's findings and counts to r. Counts for a section
// present in both are summed.
func (r *Result) Merge(other *Result) {
	r.OK = r.OK && other.OK
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
	for _, c := range other.Counts {
		i := slices.IndexFunc(r.Counts, func(x SectionCount) bool { return x.Section == c.Section })
		if i < 0 {
			r.Counts = append(r.Counts, c)
		} else {
			r.Counts[i].Count += c.Count
		}
	}
	r.Total += other.Total
}

func (r *Result) warn(file, path string, line int, msg, suggestion string) {
	r.Warnings = append(r.Warnings, ValidationError{
		FilePath:   file,
		Path:       path,
		Line:       line,
		Message:    msg,
		Suggestion: suggestion,
	})
}
