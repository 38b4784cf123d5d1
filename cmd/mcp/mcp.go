/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package mcp provides the mcp command, a Model Context Protocol server
// that lets tools list, build and validate themes without touching disk.
package mcp

import (
	"context"
	"io"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/gavanim/cmd/themes"
	"bennypowers.dev/gavanim/convert"
	"bennypowers.dev/gavanim/fs"
	"bennypowers.dev/gavanim/internal/logger"
	"bennypowers.dev/gavanim/internal/version"
	"bennypowers.dev/gavanim/load"
	"bennypowers.dev/gavanim/validator"
)

// Cmd is the mcp cobra command.
var Cmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve themes over the Model Context Protocol on stdio",
	Long: `Start a Model Context Protocol server on stdin and stdout.

Tools:
  list_themes   brands, modes and the output files of every theme
  build_theme   CSS and JSON output of one theme, returned without writing
  validate      errors, warnings and token counts for the sources`,
	Args: cobra.NoArgs,
	RunE: run,
}

func run(cmd *cobra.Command, args []string) error {
	// stdout carries the protocol
	logger.SetOutput(io.Discard)
	server := NewServer(viper.GetString("root"), fs.NewOSFileSystem())
	return server.Run(cmd.Context(), &sdk.StdioTransport{})
}

// ThemeInput selects a theme. Empty fields select the default brand and
// the base mode.
type ThemeInput struct {
	Brand string `json:"brand,omitempty" jsonschema:"brand identifier, defaults to the default brand"`
	Mode  string `json:"mode,omitempty" jsonschema:"mode name, defaults to the base mode"`
}

// NoInput is the input of tools without parameters.
type NoInput struct{}

// OutputRecord is one generated file.
type OutputRecord struct {
	Format   string `json:"format"`
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// BuildResult is the output of build_theme.
type BuildResult struct {
	Theme      string         `json:"theme"`
	Outputs    []OutputRecord `json:"outputs"`
	Unresolved []string       `json:"unresolved,omitempty"`
}

// ValidateResult is the output of validate.
type ValidateResult struct {
	OK       bool                     `json:"ok"`
	Errors   []string                 `json:"errors"`
	Warnings []string                 `json:"warnings"`
	Counts   []validator.SectionCount `json:"counts"`
	Total    int                      `json:"total"`
}

type handlers struct {
	root string
	fs   fs.FileSystem
}

// NewServer returns a server whose tools load the project at root from
// filesystem on every call.
func NewServer(root string, filesystem fs.FileSystem) *sdk.Server {
	h := &handlers{root: root, fs: filesystem}
	server := sdk.NewServer(&sdk.Implementation{Name: "gavanim", Version: version.Get()}, nil)
	sdk.AddTool(server, &sdk.Tool{
		Name:        "list_themes",
		Description: "List the brands and modes of the token sources and the files each theme builds to",
	}, h.listThemes)
	sdk.AddTool(server, &sdk.Tool{
		Name:        "build_theme",
		Description: "Resolve one brand and mode and return its CSS and JSON output without writing files",
	}, h.buildTheme)
	sdk.AddTool(server, &sdk.Tool{
		Name:        "validate",
		Description: "Validate the token sources and report errors, warnings and token counts",
	}, h.validate)
	return server
}

func (h *handlers) load(ctx context.Context) (*load.Project, error) {
	return load.Load(ctx, load.Options{Root: h.root, FS: h.fs})
}

func (h *handlers) listThemes(ctx context.Context, req *sdk.CallToolRequest, _ NoInput) (*sdk.CallToolResult, themes.Listing, error) {
	project, err := h.load(ctx)
	if err != nil {
		return nil, themes.Listing{}, err
	}
	return nil, themes.List(project), nil
}

func (h *handlers) buildTheme(ctx context.Context, req *sdk.CallToolRequest, in ThemeInput) (*sdk.CallToolResult, BuildResult, error) {
	project, err := h.load(ctx)
	if err != nil {
		return nil, BuildResult{}, err
	}
	t, err := project.Set.Select(in.Brand, in.Mode)
	if err != nil {
		return nil, BuildResult{}, err
	}

	pipeline := convert.NewPipeline(project.Document, project.Set, project.Config.ConvertOptions())
	resolved, err := pipeline.Resolve(t)
	if err != nil {
		return nil, BuildResult{}, err
	}
	outputs, err := pipeline.ThemeFrom(t, resolved)
	if err != nil {
		return nil, BuildResult{}, err
	}

	res := BuildResult{Theme: t.String()}
	for _, r := range resolved {
		res.Unresolved = append(res.Unresolved, r.Unresolved...)
	}
	for _, out := range outputs {
		res.Outputs = append(res.Outputs, OutputRecord{
			Format:   string(out.Format),
			Filename: out.Filename,
			Content:  string(out.Content),
		})
	}
	return nil, res, nil
}

func (h *handlers) validate(ctx context.Context, req *sdk.CallToolRequest, _ NoInput) (*sdk.CallToolResult, ValidateResult, error) {
	project, err := h.load(ctx)
	if err != nil {
		return nil, ValidateResult{}, err
	}
	check := project.Check()
	res := ValidateResult{
		OK:       check.OK,
		Errors:   messages(check.Errors),
		Warnings: messages(check.Warnings),
		Counts:   check.Counts,
		Total:    check.Total,
	}
	return nil, res, nil
}

func messages(in []validator.ValidationError) []string {
	out := make([]string, 0, len(in))
	for _, e := range in {
		out = append(out, e.Error())
	}
	return out
}
