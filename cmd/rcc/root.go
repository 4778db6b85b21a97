/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package rcc

import (
	"fmt"
	"os"

	"github.com/BlueTheDuck/rcc/cmd/rcc/parse"
	"github.com/BlueTheDuck/rcc/cmd/rcc/preprocess"
	"github.com/BlueTheDuck/rcc/cmd/rcc/repl"
	"github.com/BlueTheDuck/rcc/cmd/rcc/tokens"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	Version        = "develop"
	CommitHash     = "n/a"
	BuildTimestamp = "n/a"

	rootCmd = &cobra.Command{
		Use:   "rcc",
		Short: "rcc is the front end of a small C compiler",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initLogging()
			initLogLevel()
			initConfig(cmd.Root().PersistentFlags().Lookup("config").Value.String())
			initLogging()
			initLogLevel()
			traceConfig()
		},
		Version: Version,
	}
)

func init() {
	// Configure the root binary options
	rootCmd.PersistentFlags().CountP("verbose", "v", "-v for debug logs (-vv for trace)")
	rootCmd.PersistentFlags().Bool("local", true, "Configures the logger to print readable logs")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the rcc config file (default ./rcc.toml)")
	rootCmd.PersistentFlags().StringArrayP("define", "D", nil, "Predefine an object-like macro, as NAME=VALUE or NAME")
	rootCmd.PersistentFlags().StringP("output", "o", "text", "Output format of tables [csv, json, text]")

	// Bind viper config to the root flags
	viper.BindPFlag("rcc.local", rootCmd.PersistentFlags().Lookup("local"))
	viper.BindPFlag("rcc.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("rcc.define", rootCmd.PersistentFlags().Lookup("define"))
	viper.BindPFlag("rcc.output", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	rootCmd.SetVersionTemplate(fmt.Sprintf("rcc version: %s git_commit: %s build_time: %s\n", Version, CommitHash, BuildTimestamp))

	viper.AutomaticEnv()

	// Register commands on the root binary command
	for _, cmd := range []*cobra.Command{tokens.Command, preprocess.Command, parse.Command, repl.Command} {
		cmd.Version = rootCmd.Version
		rootCmd.AddCommand(cmd)
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("root command failed")
		os.Exit(1)
	}
}
