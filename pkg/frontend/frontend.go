/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package frontend

import (
	"time"

	"github.com/BlueTheDuck/rcc/pkg/ast"
	"github.com/BlueTheDuck/rcc/pkg/common/parse"
	"github.com/BlueTheDuck/rcc/pkg/lexer"
	"github.com/BlueTheDuck/rcc/pkg/metrics"
	"github.com/BlueTheDuck/rcc/pkg/parser"
	"github.com/BlueTheDuck/rcc/pkg/preprocessor"
	"github.com/BlueTheDuck/rcc/pkg/span"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Phases reported through metrics.Store.ObservePhase
const (
	PhasePreprocess = "preprocess"
	PhaseTokenize   = "tokenize"
	PhaseParse      = "parse"
)

func (c *config) sequence(src *span.Source, logger zerolog.Logger) span.Sequence {
	var seq span.Sequence = span.NewScanner(src)
	if c.metrics != nil {
		c.metrics.ObserveSource(src)
		seq = metrics.CountSpans(seq, c.metrics, "scanner")
	}

	engine := preprocessor.NewEngine(seq, c.table)
	engine.Logger = logger
	if c.metrics != nil {
		engine.Observer = c.metrics
		return metrics.CountSpans(engine, c.metrics, "preprocessor")
	}
	return engine
}

func (c *config) sourceLogger(src *span.Source) zerolog.Logger {
	return c.logger.With().Str("source", src.Name).Str("source_id", src.ID).Logger()
}

func (c *config) observe(phase string, start time.Time) {
	if c.metrics != nil {
		c.metrics.ObservePhase(phase, time.Since(start))
	}
}

// Preprocess returns every span of src with macros resolved, whitespace and
// comments included, ending with the TAG_EOF span.
func Preprocess(src *span.Source, opts ...Option) ([]span.Span, error) {
	c, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	logger := c.sourceLogger(src)

	start := time.Now()
	spans, err := collect(c.sequence(src, logger))
	c.observe(PhasePreprocess, start)
	if err != nil {
		return nil, errors.Wrapf(err, "preprocessing %s", src.Name)
	}

	logger.Debug().Int("spans", len(spans)).Int("macros", c.table.Len()).Msg("preprocessed source")
	return spans, nil
}

func collect(seq span.Sequence) (spans []span.Span, err error) {
	defer parse.Catch(&err)
	return span.Collect(seq), nil
}

// Tokenize runs src through the scanner, the preprocessor and the tokenizer.
func Tokenize(src *span.Source, opts ...Option) ([]lexer.Token, error) {
	c, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	return c.tokenize(src, c.sourceLogger(src))
}

func (c *config) tokenize(src *span.Source, logger zerolog.Logger) ([]lexer.Token, error) {
	start := time.Now()
	t := lexer.NewTokenizer(c.sequence(src, logger))
	t.Logger = logger

	tokens, err := t.Drain()
	c.observe(PhaseTokenize, start)
	if err != nil {
		return nil, errors.Wrapf(err, "tokenizing %s", src.Name)
	}

	if c.metrics != nil {
		for _, tok := range tokens {
			c.metrics.IncTokens(tok.Type)
		}
	}

	logger.Debug().Int("tokens", len(tokens)).Msg("tokenized source")
	return tokens, nil
}

// Parse runs the whole front end over src.
func Parse(src *span.Source, opts ...Option) (ast.Program, error) {
	c, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	logger := c.sourceLogger(src)

	tokens, err := c.tokenize(src, logger)
	if err != nil {
		return nil, err
	}

	p := parser.NewParser(tokens)
	p.Logger = logger

	start := time.Now()
	program, err := p.Parse()
	c.observe(PhaseParse, start)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", src.Name)
	}

	if c.metrics != nil {
		metrics.CountNodes(c.metrics, program)
	}

	logger.Debug().Int("statements", len(program)).Msg("parsed source")
	return program, nil
}

// SyntaxError digs the parse.SyntaxError out of an error returned by this
// package.
func SyntaxError(err error) (parse.SyntaxError, bool) {
	syntaxError, ok := errors.Cause(err).(parse.SyntaxError)
	return syntaxError, ok
}
