/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package specifier resolves token sources published in npm and jsr
// packages, such as npm:@acme/tokens/tokens.json, to files under
// node_modules.
package specifier

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	gfs "bennypowers.dev/gavanim/fs"
	"bennypowers.dev/gavanim/schema"
)

// Kind indicates the type of specifier.
type Kind int

const (
	// KindLocal is a local file path or glob.
	KindLocal Kind = iota
	// KindNPM is an npm package specifier.
	KindNPM
	// KindJSR is a jsr package specifier.
	KindJSR
)

// Specifier represents a parsed source specifier.
type Specifier struct {
	Kind Kind

	// Package is the package name, e.g. "@scope/pkg" or "pkg".
	Package string

	// File is the file path within the package, or the local path.
	File string

	// Raw is the original specifier string.
	Raw string
}

// npm:@scope/pkg/path, npm:pkg/path, jsr:@scope/pkg/path
var packagePattern = regexp.MustCompile(`^(npm|jsr):(@[^/]+/[^/]+|[^@/][^/]*)(/.*)?$`)

// Parse parses a specifier string. Anything that is not a well-formed
// package specifier is a local path.
func Parse(spec string) Specifier {
	m := packagePattern.FindStringSubmatch(spec)
	if m == nil {
		return Specifier{Kind: KindLocal, File: spec, Raw: spec}
	}
	kind := KindNPM
	if m[1] == "jsr" {
		kind = KindJSR
	}
	return Specifier{
		Kind:    kind,
		Package: m[2],
		File:    strings.TrimPrefix(m[3], "/"),
		Raw:     spec,
	}
}

// IsPackageSpecifier reports whether spec names a file in an npm or jsr
// package.
func IsPackageSpecifier(spec string) bool {
	return Parse(spec).Kind != KindLocal
}

// installedName is the directory a package is installed under in
// node_modules. jsr packages installed through the npm compatibility
// layer live under @jsr, with jsr:@scope/pkg becoming @jsr/scope__pkg.
func (s Specifier) installedName() string {
	if s.Kind != KindJSR {
		return s.Package
	}
	name := strings.TrimPrefix(s.Package, "@")
	return filepath.Join("@jsr", strings.Replace(name, "/", "__", 1))
}

// Resolve returns the absolute path of a package specifier, walking up from
// rootDir through every node_modules directory. Local specifiers are
// returned unchanged. A package file that cannot be found is
// schema.ErrSourceMissing.
func Resolve(filesystem gfs.FileSystem, rootDir, spec string) (string, error) {
	parsed := Parse(spec)
	if parsed.Kind == KindLocal {
		return spec, nil
	}
	if parsed.File == "" {
		return "", fmt.Errorf("%w: %s names a package but no file in it", schema.ErrSourceMissing, spec)
	}

	dir := rootDir
	if !filepath.IsAbs(dir) {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return "", fmt.Errorf("failed to resolve path %s: %w", dir, err)
		}
		dir = abs
	}
	start := dir

	for {
		base := filepath.Join(dir, "node_modules")
		candidate := filepath.Join(base, parsed.installedName(), parsed.File)
		if !isInsideDir(candidate, base) {
			return "", fmt.Errorf("%w: path traversal in specifier %s", schema.ErrSourceMissing, spec)
		}
		if filesystem.Exists(candidate) {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("%w: %s (package %s not installed in any node_modules above %s)",
		schema.ErrSourceMissing, spec, parsed.Package, start)
}

func isInsideDir(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
