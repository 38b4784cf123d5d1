/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package build

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	buildlib "bennypowers.dev/gavanim/build"
	"bennypowers.dev/gavanim/internal/logger"
)

// WriteSummary prints what a build read and wrote. Paths are shown
// relative to root.
func WriteSummary(w io.Writer, root string, r *buildlib.Report, elapsed time.Duration) {
	rel := func(p string) string {
		abs, err := filepath.Abs(root)
		if err != nil {
			return p
		}
		if out, err := filepath.Rel(abs, p); err == nil && !strings.HasPrefix(out, "..") {
			return out
		}
		return p
	}
	heading := func(s string) string { return logger.Render(logger.StyleHeading, s) }
	title := cases.Title(language.English)

	fmt.Fprintln(w, heading("Sources"))
	for _, s := range r.Sources {
		fmt.Fprintf(w, "  %s\n", rel(s))
	}

	if v := r.Validation; v != nil {
		fmt.Fprintln(w, heading("Tokens"))
		width := len("Total")
		for _, c := range v.Counts {
			width = max(width, len(c.Section))
		}
		for _, c := range v.Counts {
			fmt.Fprintf(w, "  %-*s %5d\n", width, c.Section, c.Count)
		}
		fmt.Fprintf(w, "  %-*s %5d\n", width, "Total", v.Total)
	}

	fmt.Fprintf(w, "%s %d brands x %d modes\n", heading("Themes"), len(r.Set.Brands), len(r.Set.Modes))
	for _, t := range r.Themes {
		if t.Err != nil {
			fmt.Fprintf(w, "  %s %s/%s: %v\n", logger.Render(logger.StyleError, "x"), title.String(t.Theme.Brand), t.Theme.Mode, t.Err)
			continue
		}
		note := ""
		if n := len(t.Unresolved); n > 0 {
			note = logger.Render(logger.StyleMuted, fmt.Sprintf(" (%d unresolved)", n))
		}
		fmt.Fprintf(w, "  %s %s/%s%s\n", logger.Render(logger.StyleSuccess, "ok"), title.String(t.Theme.Brand), t.Theme.Mode, note)
	}

	if warnings := r.AllWarnings(); len(warnings) > 0 {
		fmt.Fprintf(w, "%s (%d)\n", logger.Render(logger.StyleWarn, "Warnings"), len(warnings))
		for _, warning := range warnings {
			fmt.Fprintf(w, "  %s\n", warning.Error())
		}
	}

	failed := len(r.Failed())
	status := logger.Render(logger.StyleSuccess, "Built")
	if failed > 0 {
		status = logger.Render(logger.StyleError, fmt.Sprintf("Built with %d failed themes:", failed))
	}
	fmt.Fprintf(w, "%s %d files in %s %s\n", status, r.FilesWritten(), rel(r.OutDir),
		logger.Render(logger.StyleMuted, "("+elapsed.Round(time.Millisecond).String()+")"))
}
