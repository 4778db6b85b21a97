/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package rcc

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

func initConfig(configFile string) {
	log := viper.Get("logger").(zerolog.Logger)

	// config Read
	viper.SetConfigType("toml")
	viper.SetConfigName("rcc")
	viper.AddConfigPath("config")
	viper.AddConfigPath("/etc/rcc")
	viper.AddConfigPath("$HOME/.rcc")
	viper.AddConfigPath(".")

	if configFile != "" {
		viper.SetConfigFile(configFile)
	}

	err := viper.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		log.Debug().Msg("No config file found, using defaults as a base")
	} else if err != nil {
		log.Error().Err(err).Msg("Error loading config file")
	}

	log.Debug().Str("file", viper.ConfigFileUsed()).Msg("loaded config from file")

	viper.Set("rcc.predefined", predefined(log))
}

// predefined merges rcc.defines from the config file with the -D flags.
// The config may list definitions as NAME=VALUE strings, or as a table
// mapping NAME to VALUE. Flags come last, so they win.
func predefined(log zerolog.Logger) []string {
	defines := []string{}

	switch d := viper.Get("rcc.defines").(type) {
	case nil:
	case []interface{}:
		for _, v := range d {
			defines = append(defines, fmt.Sprint(v))
		}
	case []string:
		defines = append(defines, d...)
	case map[string]interface{}:
		names := make([]string, 0, len(d))
		for k := range d {
			names = append(names, k)
		}
		sort.Strings(names)
		for _, k := range names {
			defines = append(defines, fmt.Sprintf("%s=%v", k, d[k]))
		}
	default:
		log.Error().Msgf("rcc.defines must be a list or a table, got %T", d)
	}

	for _, d := range defines {
		log.Trace().Msgf("rcc.defines: %s", d)
	}

	return append(defines, viper.GetStringSlice("rcc.define")...)
}

func initLogLevel() {
	level := viper.GetInt("rcc.verbose")
	switch clamp(2, level) {
	case 2:
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	case 1:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// initLogging logs to stderr, leaving stdout to command output.
func initLogging() {
	var writer io.Writer

	writer = os.Stderr
	if viper.GetBool("rcc.local") {
		writer = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			NoColor:    !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()),
			TimeFormat: time.RFC3339,
		}
	}

	logger := zerolog.New(writer).
		With().
		Timestamp().
		Caller().
		Logger()

	viper.Set("logger", logger)
}

func traceConfig() {
	log := viper.Get("logger").(zerolog.Logger)

	for _, v := range viper.AllKeys() {
		if v == "logger" {
			continue
		}
		log.Trace().Msgf("%s=%v", v, viper.Get(v))
	}
}

func clamp(clamp, a int) int {
	if a >= clamp {
		return clamp
	}
	return a
}
