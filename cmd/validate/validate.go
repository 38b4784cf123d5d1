/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package validate provides the validate command for gavanim.
package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/gavanim/internal/logger"
	"bennypowers.dev/gavanim/load"
	"bennypowers.dev/gavanim/validator"
)

// ErrFailed is returned when validation finds errors, or warnings in
// strict mode.
var ErrFailed = errors.New("validation failed")

// Cmd is the validate cobra command.
var Cmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Validate design token sources",
	Long: `Validate design token sources without writing any output.

Sources that cannot be parsed and reference cycles in any theme are errors.
References without a path separator, references that match no token and
missing top-level sections are warnings.`,
	Args: cobra.ArbitraryArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().Bool("strict", false, "Fail on warnings")
	Cmd.Flags().Bool("quiet", false, "Only output errors")
	Cmd.Flags().StringP("format", "f", "text", "Output format: text, json")
}

func run(cmd *cobra.Command, args []string) error {
	strict, _ := cmd.Flags().GetBool("strict")
	quiet, _ := cmd.Flags().GetBool("quiet")
	format, _ := cmd.Flags().GetString("format")

	project, err := load.Load(cmd.Context(), load.Options{
		Root:    viper.GetString("root"),
		Sources: args,
	})
	if err != nil {
		return err
	}
	res := project.Check()

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		if err := writeJSON(out, res); err != nil {
			return err
		}
	case "text":
		writeText(out, project.Sources, res, quiet)
	default:
		return fmt.Errorf("unknown format %q: expected text or json", format)
	}

	if !res.OK || (strict && len(res.Warnings) > 0) {
		return ErrFailed
	}
	return nil
}

func writeText(w io.Writer, sources []string, res *validator.Result, quiet bool) {
	for _, e := range res.Errors {
		fmt.Fprintf(w, "%s %s\n", logger.Render(logger.StyleError, "error:"), e.Error())
	}
	if quiet {
		return
	}
	for _, e := range res.Warnings {
		fmt.Fprintf(w, "%s %s\n", logger.Render(logger.StyleWarn, "warning:"), e.Error())
	}
	for _, c := range res.Counts {
		fmt.Fprintf(w, "  %s: %d tokens\n", c.Section, c.Count)
	}
	if res.OK {
		fmt.Fprintf(w, "%s %d tokens in %d files\n", logger.Render(logger.StyleSuccess, "Valid:"), res.Total, len(sources))
	}
}

func writeJSON(w io.Writer, res *validator.Result) error {
	type finding struct {
		File       string `json:"file,omitempty"`
		Path       string `json:"path,omitempty"`
		Line       int    `json:"line,omitempty"`
		Message    string `json:"message"`
		Suggestion string `json:"suggestion,omitempty"`
	}
	convert := func(in []validator.ValidationError) []finding {
		out := make([]finding, 0, len(in))
		for _, e := range in {
			out = append(out, finding{File: e.FilePath, Path: e.Path, Line: e.Line, Message: e.Message, Suggestion: e.Suggestion})
		}
		return out
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		OK       bool                     `json:"ok"`
		Errors   []finding                `json:"errors"`
		Warnings []finding                `json:"warnings"`
		Counts   []validator.SectionCount `json:"counts"`
		Total    int                      `json:"total"`
	}{res.OK, convert(res.Errors), convert(res.Warnings), res.Counts, res.Total})
}
