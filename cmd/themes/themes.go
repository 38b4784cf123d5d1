/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package themes provides the themes command for gavanim.
package themes

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/gavanim/convert"
	"bennypowers.dev/gavanim/convert/formatter/css"
	"bennypowers.dev/gavanim/internal/logger"
	"bennypowers.dev/gavanim/load"
	"bennypowers.dev/gavanim/theme"
)

// Cmd is the themes cobra command.
var Cmd = &cobra.Command{
	Use:   "themes",
	Short: "List the brands and modes a build would produce",
	Long: `List every brand and mode found in the token sources, with the selector
and output files of each theme. Nothing is written.`,
	Args: cobra.NoArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().StringP("format", "f", "text", "Output format: text, json")
}

// Entry describes one theme.
type Entry struct {
	Brand    string `json:"brand"`
	Mode     string `json:"mode"`
	Selector string `json:"selector"`
	CSS      string `json:"css"`
	JSON     string `json:"json"`
}

// Listing is the set of themes with their output files.
type Listing struct {
	DefaultBrand string   `json:"defaultBrand"`
	BaseMode     string   `json:"baseMode"`
	Brands       []string `json:"brands"`
	Modes        []string `json:"modes"`
	Themes       []Entry  `json:"themes"`
}

// List describes every theme of project. Output paths are relative to the
// output directory.
func List(project *load.Project) Listing {
	set := project.Set
	cf := css.New(css.Options{
		Set:            set,
		BrandAttribute: project.Config.CSS.BrandAttribute,
		ModeAttribute:  project.Config.CSS.ModeAttribute,
	})
	listing := Listing{
		DefaultBrand: set.DefaultBrand,
		BaseMode:     set.BaseMode,
		Brands:       set.Brands,
		Modes:        set.Modes,
	}
	for _, t := range set.Themes() {
		cssPath, jsonPath := convert.ThemePaths(t)
		listing.Themes = append(listing.Themes, Entry{
			Brand:    t.Brand,
			Mode:     t.Mode,
			Selector: cf.Selector(t),
			CSS:      filepath.ToSlash(cssPath),
			JSON:     filepath.ToSlash(jsonPath),
		})
	}
	return listing
}

func run(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	project, err := load.Load(cmd.Context(), load.Options{Root: viper.GetString("root")})
	if err != nil {
		return err
	}
	listing := List(project)

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(listing)
	case "text":
		writeText(out, listing)
		return nil
	default:
		return fmt.Errorf("unknown format %q: expected text or json", format)
	}
}

func writeText(w io.Writer, l Listing) {
	fmt.Fprintf(w, "%s %v (default %s)\n", logger.Render(logger.StyleHeading, "Brands:"), l.Brands, l.DefaultBrand)
	fmt.Fprintf(w, "%s %v (base %s)\n", logger.Render(logger.StyleHeading, "Modes:"), l.Modes, l.BaseMode)
	width := 0
	for _, e := range l.Themes {
		width = max(width, len(theme.Theme{Brand: e.Brand, Mode: e.Mode}.String()))
	}
	for _, e := range l.Themes {
		name := theme.Theme{Brand: e.Brand, Mode: e.Mode}.String()
		fmt.Fprintf(w, "  %-*s  %s\n", width, name, logger.Render(logger.StyleMuted, e.Selector))
	}
}
