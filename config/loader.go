/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	gfs "bennypowers.dev/gavanim/fs"
	"bennypowers.dev/gavanim/schema"
	"bennypowers.dev/gavanim/specifier"
)

// ConfigFileName is the base name of the config file without extension.
const ConfigFileName = "gavanim"

// ConfigDir is the directory where config files are stored.
const ConfigDir = ".config"

// configExtensions are the supported config file extensions in priority order.
var configExtensions = []string{".yaml", ".yml", ".json", ".toml"}

// Path returns the config file found under rootDir, or "" if there is none.
func Path(filesystem gfs.FileSystem, rootDir string) string {
	for _, ext := range configExtensions {
		configPath := filepath.Join(rootDir, ConfigDir, ConfigFileName+ext)
		if filesystem.Exists(configPath) {
			return configPath
		}
	}
	return ""
}

// Load searches for .config/gavanim.{yaml,yml,json,toml} from rootDir.
// Fields the file leaves out keep their defaults.
// Returns nil if no config found (not an error).
func Load(filesystem gfs.FileSystem, rootDir string) (*Config, error) {
	configPath := Path(filesystem, rootDir)
	if configPath == "" {
		return nil, nil
	}

	data, err := filesystem.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	switch filepath.Ext(configPath) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".json":
		err = json.Unmarshal(jsonc.ToJSON(data), cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}
	return cfg, nil
}

// LoadOrDefault returns config or defaults if not found.
// A config file that exists but cannot be read is an error.
func LoadOrDefault(filesystem gfs.FileSystem, rootDir string) (*Config, error) {
	cfg, err := Load(filesystem, rootDir)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return Default(), nil
	}
	return cfg, nil
}

// ExpandSources expands glob patterns and package specifiers in Source and
// returns absolute paths in a stable order. A glob matching nothing is schema.ErrSourceMissing;
// plain paths are returned as given and checked when read.
func (c *Config) ExpandSources(filesystem gfs.FileSystem, rootDir string) ([]string, error) {
	var result []string

	for _, pattern := range c.Source {
		expanded, err := expandFilePath(filesystem, rootDir, pattern)
		if err != nil {
			return nil, err
		}
		if len(expanded) == 0 {
			return nil, fmt.Errorf("%w: %s matched no files", schema.ErrSourceMissing, pattern)
		}
		for _, p := range expanded {
			if !slices.Contains(result, p) {
				result = append(result, p)
			}
		}
	}

	return result, nil
}

// OutPath returns the absolute output directory.
func (c *Config) OutPath(rootDir string) string {
	if filepath.IsAbs(c.OutDir) {
		return c.OutDir
	}
	return filepath.Join(rootDir, c.OutDir)
}

// expandFilePath expands a single file path which may contain globs or
// name a file in an installed npm or jsr package.
func expandFilePath(filesystem gfs.FileSystem, rootDir, pattern string) ([]string, error) {
	if specifier.IsPackageSpecifier(pattern) {
		path, err := specifier.Resolve(filesystem, rootDir, pattern)
		if err != nil {
			return nil, err
		}
		return []string{path}, nil
	}

	if !filepath.IsAbs(pattern) {
		pattern = filepath.Join(rootDir, pattern)
	}

	if !containsGlob(pattern) {
		return []string{pattern}, nil
	}

	return expandGlob(filesystem, pattern)
}

// containsGlob returns true if the pattern contains glob characters.
func containsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// expandGlob expands a glob pattern against the filesystem.
func expandGlob(filesystem gfs.FileSystem, pattern string) ([]string, error) {
	baseDir := pattern
	for containsGlob(baseDir) {
		baseDir = filepath.Dir(baseDir)
	}
	if !filesystem.Exists(baseDir) {
		return nil, nil
	}

	relPattern := strings.TrimPrefix(pattern, baseDir)
	relPattern = strings.TrimPrefix(relPattern, string(filepath.Separator))

	var matches []string
	err := fs.WalkDir(filesystem, baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		relPath := strings.TrimPrefix(path, baseDir)
		relPath = strings.TrimPrefix(relPath, string(filepath.Separator))

		if matched, _ := doublestar.Match(relPattern, filepath.ToSlash(relPath)); matched {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(matches)
	return matches, nil
}
