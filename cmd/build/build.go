/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package build provides the build command for gavanim.
package build

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	buildlib "bennypowers.dev/gavanim/build"
	"bennypowers.dev/gavanim/internal/logger"
)

// Cmd is the build cobra command.
var Cmd = &cobra.Command{
	Use:   "build",
	Short: "Generate CSS and JSON for every brand and mode",
	Long: `Generate one CSS file and one JSON file for every brand and mode found in
the token sources, plus an index.json manifest.

With no flags, sources and the output directory come from
.config/gavanim.{yaml,yml,json,toml}, falling back to
tokens/selected-tokens.json and dist/tokens. Flags may also be set
through GAVANIM_SOURCE, GAVANIM_OUT and GAVANIM_JOBS.

Output layout:
  {out}/{brand}/css/{mode}.css
  {out}/{brand}/json/{mode}.json
  {out}/index.json

Examples:
  # Build with project defaults
  gavanim build

  # Build split sources into public/tokens
  gavanim build --source 'tokens/**/*.json' --out public/tokens`,
	Args: cobra.NoArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().StringSlice("source", nil, "Token source files or globs (repeatable)")
	Cmd.Flags().StringP("out", "o", "", "Output directory")
	Cmd.Flags().IntP("jobs", "j", 0, "Themes built concurrently (default: number of CPUs)")
	_ = viper.BindPFlag("source", Cmd.Flags().Lookup("source"))
	_ = viper.BindPFlag("out", Cmd.Flags().Lookup("out"))
	_ = viper.BindPFlag("jobs", Cmd.Flags().Lookup("jobs"))
}

func run(cmd *cobra.Command, args []string) error {
	root := viper.GetString("root")
	opts := buildlib.Options{
		Root:    root,
		Sources: viper.GetStringSlice("source"),
		OutDir:  viper.GetString("out"),
		Jobs:    viper.GetInt("jobs"),
	}
	logger.Debug("building %s (sources %v, out %q, jobs %d)", root, opts.Sources, opts.OutDir, opts.Jobs)

	start := time.Now()
	report, err := buildlib.Run(cmd.Context(), opts)
	if report != nil {
		WriteSummary(cmd.OutOrStdout(), root, report, time.Since(start))
	}
	return err
}
