/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package list provides the list command for gavanim.
package list

import (
	"fmt"
	"io"
	"regexp"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/gavanim/cmd/render"
	"bennypowers.dev/gavanim/convert"
	"bennypowers.dev/gavanim/internal/logger"
	"bennypowers.dev/gavanim/load"
	"bennypowers.dev/gavanim/token"
)

// Cmd is the list cobra command.
var Cmd = &cobra.Command{
	Use:   "list",
	Short: "List the resolved tokens of one theme",
	Long: `List every token of one brand and mode with its effective value.

Examples:
  # Tokens of the default brand in the base mode
  gavanim list

  # Colors of the banana brand in dark mode, with swatches
  gavanim list --brand banana --mode dark --category color

  # The CSS block a build would write
  gavanim list --brand apple --mode dark --format css`,
	Args: cobra.NoArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().String("brand", "", "Brand to resolve (default: the default brand)")
	Cmd.Flags().String("mode", "", "Mode to resolve (default: the base mode)")
	Cmd.Flags().String("category", "", "Only list tokens in this category")
	Cmd.Flags().String("match", "", "Only list tokens whose name or path matches this regular expression")
	Cmd.Flags().StringP("format", "f", "table", "Output format: table, markdown, json, css, names")
}

// Query selects one theme and filters its tokens.
type Query struct {
	Brand    string
	Mode     string
	Category string
	Match    string
	Format   string
}

func run(cmd *cobra.Command, args []string) error {
	var q Query
	q.Brand, _ = cmd.Flags().GetString("brand")
	q.Mode, _ = cmd.Flags().GetString("mode")
	q.Category, _ = cmd.Flags().GetString("category")
	q.Match, _ = cmd.Flags().GetString("match")
	q.Format, _ = cmd.Flags().GetString("format")

	project, err := load.Load(cmd.Context(), load.Options{Root: viper.GetString("root")})
	if err != nil {
		return err
	}
	return Write(cmd.OutOrStdout(), project, q)
}

// Write resolves the queried theme of project and renders its tokens.
func Write(w io.Writer, project *load.Project, q Query) error {
	t, err := project.Set.Select(q.Brand, q.Mode)
	if err != nil {
		return err
	}
	var pattern *regexp.Regexp
	if q.Match != "" {
		if pattern, err = regexp.Compile(q.Match); err != nil {
			return fmt.Errorf("invalid --match pattern: %w", err)
		}
	}

	opts := project.Config.ConvertOptions()
	pipeline := convert.NewPipeline(project.Document, project.Set, opts)
	resolved, err := pipeline.Resolve(t)
	if err != nil {
		return err
	}

	naming := opts.CSSNaming
	if q.Format == "json" {
		naming = opts.JSONNaming
	}
	rows := render.Filter(render.ComputeRows(project.Document, resolved, naming), q.Category, pattern)

	switch q.Format {
	case "", "table":
		return render.Table(w, rows, logger.ColorEnabled())
	case "markdown", "md":
		return render.Markdown(w, t.String(), rows)
	case "json":
		return render.JSON(w, rows)
	case "names":
		return render.Names(w, rows)
	case "css":
		keep := make(map[string]bool, len(rows))
		for _, r := range rows {
			keep[r.Path] = true
		}
		var selected []token.Resolved
		for _, r := range resolved {
			if keep[r.Path.DotPath()] {
				selected = append(selected, r)
			}
		}
		out, err := convert.FormatTokens(selected, convert.FormatCSS, t, project.Set, opts)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	default:
		return fmt.Errorf("unknown format %q: expected table, markdown, json, css or names", q.Format)
	}
}
