/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package load provides a high-level API for loading a token project:
// configuration, source files, validation and the parsed document.
package load

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"bennypowers.dev/gavanim/config"
	"bennypowers.dev/gavanim/fs"
	"bennypowers.dev/gavanim/parser"
	"bennypowers.dev/gavanim/schema"
	"bennypowers.dev/gavanim/theme"
	"bennypowers.dev/gavanim/token"
	"bennypowers.dev/gavanim/validator"
)

// Options configures how a project is loaded.
type Options struct {
	// Root is the project directory. Relative sources and the config file
	// are found from here. Defaults to the working directory.
	Root string

	// FS is the filesystem to use. Defaults to OS filesystem if nil.
	FS fs.FileSystem

	// Config replaces the config file when set.
	Config *config.Config

	// Sources replaces the configured source list when set.
	Sources []string
}

// Project is a loaded, validated token document and everything needed to
// build it.
type Project struct {
	Root     string
	Config   *config.Config
	Sources  []string
	Document *token.Document
	Set      theme.Set

	// Validation holds findings for all sources. Counts are summed across
	// files, and section and reference checks run on the merged document.
	Validation *validator.Result
}

// Load reads and validates the project's token sources.
//
// The loading process:
//  1. Loads config from .config/gavanim.{yaml,yml,json,toml}, or defaults
//  2. Expands source globs; a missing source is schema.ErrSourceMissing
//  3. Validates each source; a source that does not parse is schema.ErrParse
//  4. Parses and merges all sources into one document
//  5. Enumerates brands and modes
func Load(ctx context.Context, opts Options) (*Project, error) {
	filesystem := opts.FS
	if filesystem == nil {
		filesystem = fs.NewOSFileSystem()
	}

	root := opts.Root
	if root == "" {
		root = "."
	}
	if !filepath.IsAbs(root) {
		absRoot, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve root path: %w", err)
		}
		root = absRoot
	}

	cfg := opts.Config
	if cfg == nil {
		var err error
		if cfg, err = config.LoadOrDefault(filesystem, root); err != nil {
			return nil, err
		}
	}
	if len(opts.Sources) > 0 {
		c := *cfg
		c.Source = opts.Sources
		cfg = &c
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	sources, err := cfg.ExpandSources(filesystem, root)
	if err != nil {
		return nil, err
	}

	popts := cfg.ParserOptions()
	combined := &validator.Result{OK: true}
	for _, path := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !filesystem.Exists(path) {
			return nil, fmt.Errorf("%w: %s", schema.ErrSourceMissing, path)
		}
		data, err := filesystem.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		res := validator.Validate(data, validator.Options{
			FilePath: path,
			Sections: []string{},
			Parser:   popts,
		})
		if !res.OK {
			return nil, fmt.Errorf("%s: %w", path, asParseError(res.Err))
		}
		combined.Merge(res)
	}

	doc, err := parser.ParseFiles(filesystem, sources, popts)
	if err != nil {
		return nil, err
	}
	combined.Document = doc
	combined.Warnings = append(combined.Warnings, validator.MissingSections(doc, cfg.Sections, doc.Source)...)
	combined.Warnings = append(combined.Warnings, validator.ReferenceTargets(doc, cfg.ResolverOptions(), doc.Source)...)

	return &Project{
		Root:       root,
		Config:     cfg,
		Sources:    sources,
		Document:   doc,
		Set:        theme.Enumerate(doc, cfg.ThemeOptions()),
		Validation: combined,
	}, nil
}

// Check returns the project's validation findings with reference cycles
// in any theme added as errors.
func (p *Project) Check() *validator.Result {
	res := &validator.Result{OK: true, Document: p.Document}
	res.Merge(p.Validation)
	for _, e := range validator.Cycles(p.Document, p.Config.ResolverOptions(), p.Config.ThemeOptions(), p.Document.Source) {
		res.OK = false
		res.Errors = append(res.Errors, e)
	}
	return res
}

// asParseError makes every validation failure match schema.ErrParse while
// keeping its own kind.
func asParseError(err error) error {
	if err == nil || errors.Is(err, schema.ErrParse) {
		return err
	}
	return fmt.Errorf("%w: %w", schema.ErrParse, err)
}
