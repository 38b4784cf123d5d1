/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package build generates every theme's CSS and JSON files for a project
// and writes the index manifest describing them.
package build

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"bennypowers.dev/gavanim/config"
	"bennypowers.dev/gavanim/convert"
	"bennypowers.dev/gavanim/convert/formatter"
	"bennypowers.dev/gavanim/fs"
	"bennypowers.dev/gavanim/load"
	"bennypowers.dev/gavanim/schema"
	"bennypowers.dev/gavanim/theme"
	"bennypowers.dev/gavanim/token"
	"bennypowers.dev/gavanim/validator"
)

// IndexFile is the manifest written at the top of the output directory.
const IndexFile = "index.json"

// Options configures a build. Zero values fall back to the project config.
type Options struct {
	// Root is the project directory.
	Root string

	// FS is the filesystem sources are read from and output is written to.
	FS fs.FileSystem

	// Config replaces the config file when set.
	Config *config.Config

	// Sources replaces the configured source list when set.
	Sources []string

	// OutDir replaces the configured output directory when set.
	OutDir string

	// Jobs replaces the configured concurrency limit when positive.
	Jobs int

	// Now returns the build time. Defaults to time.Now.
	Now func() time.Time
}

// ThemeResult is the outcome of building one theme.
type ThemeResult struct {
	Theme theme.Theme

	// Outputs are the files written for the theme.
	Outputs []convert.Output

	// Unresolved lists references left dangling in this theme.
	Unresolved []string

	// Err is why the theme failed, nil on success.
	Err error
}

// Report describes a finished build.
type Report struct {
	Sources     []string
	OutDir      string
	Set         theme.Set
	GeneratedAt time.Time

	// Themes holds one result per brand and mode, in build order.
	Themes []ThemeResult

	// Extra lists bundle and primitives files.
	Extra []convert.Output

	// Validation holds leaf counts and warnings for the sources.
	Validation *validator.Result

	// Warnings adds build-time findings to the validation warnings.
	Warnings []validator.ValidationError

	// Index is the manifest written to IndexFile.
	Index *Index
}

// Failed returns the themes that could not be built.
func (r *Report) Failed() []ThemeResult {
	var out []ThemeResult
	for _, t := range r.Themes {
		if t.Err != nil {
			out = append(out, t)
		}
	}
	return out
}

// AllWarnings returns validation and build warnings together.
func (r *Report) AllWarnings() []validator.ValidationError {
	var out []validator.ValidationError
	if r.Validation != nil {
		out = append(out, r.Validation.Warnings...)
	}
	return append(out, r.Warnings...)
}

// FilesWritten counts every file the build wrote, the index included.
func (r *Report) FilesWritten() int {
	n := len(r.Extra)
	for _, t := range r.Themes {
		n += len(t.Outputs)
	}
	if r.Index != nil {
		n++
	}
	return n
}

// Run loads the project and builds every theme.
//
// A missing or unparseable source fails before anything is written. Themes
// are built concurrently and independently: a theme that fails is recorded
// in the report and the others are still written. When any theme fails, Run
// returns the report together with an error matching schema.ErrSerialization.
func Run(ctx context.Context, opts Options) (*Report, error) {
	filesystem := opts.FS
	if filesystem == nil {
		filesystem = fs.NewOSFileSystem()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	project, err := load.Load(ctx, load.Options{
		Root:    opts.Root,
		FS:      filesystem,
		Config:  opts.Config,
		Sources: opts.Sources,
	})
	if err != nil {
		return nil, err
	}
	cfg := project.Config

	outDir := cfg.OutPath(project.Root)
	if opts.OutDir != "" {
		outDir = opts.OutDir
		if !filepath.IsAbs(outDir) {
			outDir = filepath.Join(project.Root, outDir)
		}
	}
	jobs := cfg.Jobs
	if opts.Jobs > 0 {
		jobs = opts.Jobs
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	report := &Report{
		Sources:     project.Sources,
		OutDir:      outDir,
		Set:         project.Set,
		GeneratedAt: now().UTC(),
		Validation:  project.Validation,
	}

	copts := cfg.ConvertOptions()
	copts.GeneratedAt = report.GeneratedAt
	pipeline := convert.NewPipeline(project.Document, project.Set, copts)
	report.Warnings = append(report.Warnings, duplicateNames(project.Document, copts)...)

	write := func(outputs []convert.Output) error {
		for _, out := range outputs {
			if err := fs.WriteFileAll(filesystem, filepath.Join(outDir, out.Filename), out.Content); err != nil {
				return err
			}
		}
		return nil
	}

	themes := project.Set.Themes()
	report.Themes = make([]ThemeResult, len(themes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(themes))))
	for i, t := range themes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := ThemeResult{Theme: t}
			defer func() { report.Themes[i] = res }()

			resolved, err := pipeline.Resolve(t)
			if err != nil {
				res.Err = err
				return nil
			}
			for _, r := range resolved {
				res.Unresolved = append(res.Unresolved, r.Unresolved...)
			}
			outputs, err := pipeline.ThemeFrom(t, resolved)
			if err != nil {
				res.Err = err
				return nil
			}
			if err := write(outputs); err != nil {
				res.Err = err
				return nil
			}
			res.Outputs = outputs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report, err
	}

	writeExtra := func(outputs []convert.Output, err error) error {
		if err != nil {
			return err
		}
		if err := write(outputs); err != nil {
			return err
		}
		report.Extra = append(report.Extra, outputs...)
		return nil
	}

	var extraErrs []error
	if cfg.Bundle {
		var ok []theme.Theme
		for _, t := range report.Themes {
			if t.Err == nil {
				ok = append(ok, t.Theme)
			}
		}
		if len(ok) > 0 {
			extraErrs = append(extraErrs, writeExtra(pipeline.Bundle(ok)))
		}
	}
	extraErrs = append(extraErrs, writeExtra(pipeline.Primitives()))

	index, err := NewIndex(filesystem, report, cfg.Description)
	if err != nil {
		return report, err
	}
	data, err := index.Encode()
	if err != nil {
		return report, fmt.Errorf("encoding %s: %w", IndexFile, err)
	}
	if err := fs.WriteFileAll(filesystem, filepath.Join(outDir, IndexFile), data); err != nil {
		return report, err
	}
	report.Index = index

	return report, report.failure(errors.Join(extraErrs...))
}

// failure summarizes failed themes and extra outputs as one error.
func (r *Report) failure(extra error) error {
	failed := r.Failed()
	if len(failed) == 0 && extra == nil {
		return nil
	}
	errs := make([]error, 0, len(failed)+1)
	names := make([]string, 0, len(failed))
	for _, f := range failed {
		names = append(names, f.Theme.String())
		errs = append(errs, f.Err)
	}
	if extra != nil {
		errs = append(errs, extra)
	}
	if len(failed) == 0 {
		return fmt.Errorf("%w: %w", schema.ErrSerialization, errors.Join(errs...))
	}
	return fmt.Errorf("%w: %d of %d themes failed (%s): %w",
		schema.ErrSerialization, len(failed), len(r.Themes), strings.Join(names, ", "), errors.Join(errs...))
}

// duplicateNames warns about distinct tokens that produce the same output
// name. The later token wins in every output.
func duplicateNames(doc *token.Document, opts convert.Options) []validator.ValidationError {
	var tokens []token.Resolved
	_ = doc.Walk(func(path token.Path, _ *token.Leaf) error {
		tokens = append(tokens, token.Resolved{Path: path})
		return nil
	})

	var out []validator.ValidationError
	for _, naming := range []formatter.Naming{opts.CSSNaming, opts.JSONNaming} {
		for _, name := range formatter.Duplicates(formatter.Entries(tokens, naming)) {
			out = append(out, validator.ValidationError{
				FilePath:   doc.Source,
				Path:       name,
				Message:    fmt.Sprintf("several tokens are named %q; the last one wins", name),
				Suggestion: "rename one of the tokens or change the structural roots",
			})
		}
	}
	return out
}
