/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package cmd provides CLI commands for gavanim.
package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/gavanim/cmd/build"
	"bennypowers.dev/gavanim/cmd/list"
	"bennypowers.dev/gavanim/cmd/mcp"
	"bennypowers.dev/gavanim/cmd/themes"
	"bennypowers.dev/gavanim/cmd/validate"
	"bennypowers.dev/gavanim/cmd/version"
	"bennypowers.dev/gavanim/internal/logger"
)

// EnvPrefix prefixes environment variables that override flags,
// e.g. GAVANIM_OUT=public.
const EnvPrefix = "GAVANIM"

var rootCmd = &cobra.Command{
	Use:   "gavanim",
	Short: "Build brand and mode themes from design tokens",
	Long: `gavanim reads a design token tree, resolves brand and mode overrides,
and writes one CSS file and one JSON file per brand and mode, plus an
index.json manifest describing them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetVerbose(viper.GetBool("verbose"))
		logger.SetColor(!viper.GetBool("no-color"))
	},
}

// Execute runs the root command and reports any error on stderr.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		logger.Error("%v", err)
	}
	return err
}

func init() {
	cobra.OnInitialize(initEnv)

	flags := rootCmd.PersistentFlags()
	flags.StringP("root", "C", ".", "Project directory holding tokens and .config/")
	flags.BoolP("verbose", "v", false, "Print debug output")
	flags.Bool("no-color", false, "Disable colored output")
	_ = viper.BindPFlags(flags)

	rootCmd.AddCommand(build.Cmd)
	rootCmd.AddCommand(list.Cmd)
	rootCmd.AddCommand(mcp.Cmd)
	rootCmd.AddCommand(themes.Cmd)
	rootCmd.AddCommand(validate.Cmd)
	rootCmd.AddCommand(version.Cmd)
}

func initEnv() {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}
