/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package frontend

import (
	"github.com/BlueTheDuck/rcc/pkg/metrics"
	"github.com/BlueTheDuck/rcc/pkg/preprocessor"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

type Option func(*config)

type config struct {
	logger  zerolog.Logger
	metrics metrics.Store
	table   *preprocessor.Table
	defines []string
}

// WithLogger sets the logger handed to every stage.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithMetrics records spans, macros, tokens, nodes and phase timings in
// store.
func WithMetrics(store metrics.Store) Option {
	return func(c *config) {
		c.metrics = store
	}
}

// WithTable runs the preprocessor against an existing macro table, which
// keeps whatever the source defines.
func WithTable(table *preprocessor.Table) Option {
	return func(c *config) {
		c.table = table
	}
}

// WithDefines predefines object-like macros, each given as NAME=VALUE or
// NAME.
func WithDefines(defines ...string) Option {
	return func(c *config) {
		c.defines = append(c.defines, defines...)
	}
}

func newConfig(opts []Option) (*config, error) {
	c := &config{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(c)
	}

	if c.table == nil {
		c.table = preprocessor.NewTable()
	}

	for _, d := range c.defines {
		name, value := preprocessor.ParseDefine(d)
		if err := c.table.Predefine(name, value); err != nil {
			return nil, errors.Wrapf(err, "predefining '%s'", d)
		}
		c.logger.Debug().Str("macro", name).Str("value", value).Msg("predefined macro")
	}

	return c, nil
}
