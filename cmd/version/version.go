/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package version provides the version command for gavanim.
package version

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/gavanim/config"
	"bennypowers.dev/gavanim/fs"
	"bennypowers.dev/gavanim/internal/version"
)

// Cmd is the version cobra command.
var Cmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and build settings",
	Long: `Print the gavanim version, the config file in use under --root and
the directory a build would write to.`,
	Args: cobra.NoArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().StringP("format", "f", "text", "Output format (text, json)")
}

// Report is the version and the build settings found under a root.
type Report struct {
	version.Info

	// Config is the config file in use, empty when defaults apply.
	Config string `json:"config"`

	// OutDir is where a build writes. Empty when the config cannot be read.
	OutDir string `json:"outDir,omitempty"`

	// ConfigError is set when the config file exists but cannot be read.
	ConfigError string `json:"configError,omitempty"`
}

// Describe reports the version and the settings found under root.
// An unreadable config is recorded in the report rather than returned.
func Describe(filesystem fs.FileSystem, root string) Report {
	r := Report{Info: version.Current(), Config: config.Path(filesystem, root)}
	cfg, err := config.LoadOrDefault(filesystem, root)
	if err != nil {
		r.ConfigError = err.Error()
		return r
	}
	r.OutDir = cfg.OutPath(root)
	return r
}

func run(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("error reading format flag: %w", err)
	}
	r := Describe(fs.NewOSFileSystem(), viper.GetString("root"))
	return Write(cmd.OutOrStdout(), r, format)
}

// Write renders r as text or json.
func Write(w io.Writer, r Report, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return fmt.Errorf("error marshaling version info: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "", "text":
		fmt.Fprintf(w, "gavanim %s\n", version.Full())
		configPath := r.Config
		if configPath == "" {
			configPath = "none (defaults)"
		}
		fmt.Fprintf(w, "config: %s\n", configPath)
		if r.ConfigError != "" {
			fmt.Fprintf(w, "error:  %s\n", r.ConfigError)
			return nil
		}
		fmt.Fprintf(w, "output: %s\n", r.OutDir)
		return nil
	default:
		return fmt.Errorf("unknown format %q: expected text or json", format)
	}
}
