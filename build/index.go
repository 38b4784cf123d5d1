/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package build

import (
	"bytes"
	"encoding/json"
	"errors"
	iofs "io/fs"
	"path/filepath"
	"time"

	"bennypowers.dev/gavanim/convert"
	"bennypowers.dev/gavanim/fs"
	"bennypowers.dev/gavanim/internal/version"
)

// DefaultDescription is recorded in the manifest when none is configured.
const DefaultDescription = "Generated design token themes"

// Index is the manifest of every theme file the build was expected to
// produce, with what actually exists on disk.
type Index struct {
	Meta    IndexMeta             `json:"meta"`
	Brands  map[string]BrandIndex `json:"brands"`
	Summary Summary               `json:"summary"`
}

// IndexMeta describes the build.
type IndexMeta struct {
	GeneratedAt  string `json:"generatedAt"`
	Version      string `json:"version"`
	Description  string `json:"description"`
	DefaultBrand string `json:"defaultBrand"`
	BaseMode     string `json:"baseMode"`
}

// BrandIndex lists a brand's modes.
type BrandIndex struct {
	Modes map[string]ModeIndex `json:"modes"`
}

// ModeIndex lists the files of one theme.
type ModeIndex struct {
	CSS  FileEntry `json:"css"`
	JSON FileEntry `json:"json"`
}

// FileEntry is one output file, with its path relative to the output
// directory.
type FileEntry struct {
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
	Size   int64  `json:"size"`
}

// Summary totals the build.
type Summary struct {
	TotalBrands  int `json:"totalBrands"`
	TotalModes   int `json:"totalModes"`
	TotalFiles   int `json:"totalFiles"`
	TotalTokens  int `json:"totalTokens"`
	FailedThemes int `json:"failedThemes"`
}

// NewIndex inspects the output directory for every theme in the report.
// Only files written by this build count as existing.
func NewIndex(filesystem fs.FileSystem, report *Report, description string) (*Index, error) {
	if description == "" {
		description = DefaultDescription
	}
	idx := &Index{
		Meta: IndexMeta{
			GeneratedAt:  report.GeneratedAt.UTC().Format(time.RFC3339),
			Version:      version.Get(),
			Description:  description,
			DefaultBrand: report.Set.DefaultBrand,
			BaseMode:     report.Set.BaseMode,
		},
		Brands: make(map[string]BrandIndex, len(report.Set.Brands)),
		Summary: Summary{
			TotalBrands:  len(report.Set.Brands),
			TotalModes:   len(report.Set.Modes),
			FailedThemes: len(report.Failed()),
		},
	}
	if report.Validation != nil {
		idx.Summary.TotalTokens = report.Validation.Total
	}

	written := make(map[string]bool)
	for _, t := range report.Themes {
		for _, out := range t.Outputs {
			written[out.Filename] = true
		}
	}

	for _, t := range report.Set.Themes() {
		cssPath, jsonPath := convert.ThemePaths(t)
		cssEntry, err := stat(filesystem, report.OutDir, cssPath, written[cssPath])
		if err != nil {
			return nil, err
		}
		jsonEntry, err := stat(filesystem, report.OutDir, jsonPath, written[jsonPath])
		if err != nil {
			return nil, err
		}
		for _, e := range []FileEntry{cssEntry, jsonEntry} {
			if e.Exists {
				idx.Summary.TotalFiles++
			}
		}

		brand, ok := idx.Brands[t.Brand]
		if !ok {
			brand = BrandIndex{Modes: make(map[string]ModeIndex, len(report.Set.Modes))}
			idx.Brands[t.Brand] = brand
		}
		brand.Modes[t.Mode] = ModeIndex{CSS: cssEntry, JSON: jsonEntry}
	}
	return idx, nil
}

// stat describes rel. A file left over from an earlier build is reported
// as missing.
func stat(filesystem fs.FileSystem, outDir, rel string, written bool) (FileEntry, error) {
	entry := FileEntry{Path: filepath.ToSlash(rel)}
	if !written {
		return entry, nil
	}
	info, err := filesystem.Stat(filepath.Join(outDir, rel))
	switch {
	case errors.Is(err, iofs.ErrNotExist):
		return entry, nil
	case err != nil:
		return entry, err
	}
	entry.Exists = true
	entry.Size = info.Size()
	return entry, nil
}

// Encode writes the manifest as two-space indented JSON.
func (idx *Index) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(idx); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
