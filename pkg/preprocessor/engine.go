/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package preprocessor

import (
	"fmt"

	"github.com/BlueTheDuck/rcc/pkg/common/parse"
	"github.com/BlueTheDuck/rcc/pkg/span"
	"github.com/rs/zerolog"
)

// Observer is notified of macro table activity.
type Observer interface {
	MacroDefined(m *Macro)
	MacroExpanded(m *Macro)
}

// Engine intercepts #define directives on an upstream span Sequence and
// replaces macro invocations with their expansion. It is itself a
// span.Sequence.
//
// Expansion is not recursive: spans coming out of an expansion are never
// looked up in the macro table again.
type Engine struct {
	Logger   zerolog.Logger
	Observer Observer

	upstream span.Sequence
	table    *Table

	// pending holds expanded spans in reverse order, so the last element
	// is the next one to emit
	pending []span.Span
}

// NewEngine wraps upstream. A nil table starts the engine with no macros.
func NewEngine(upstream span.Sequence, table *Table) *Engine {
	if table == nil {
		table = NewTable()
	}

	return &Engine{
		Logger:   zerolog.Nop(),
		upstream: upstream,
		table:    table,
	}
}

func (e *Engine) Table() *Table {
	return e.table
}

// Next implements span.Sequence
func (e *Engine) Next() (span.Span, bool) {
	for {
		if n := len(e.pending); n > 0 {
			s := e.pending[n-1]
			e.pending = e.pending[:n-1]
			return s, true
		}

		s, ok := e.upstream.Next()
		if !ok {
			return span.Span{}, false
		}

		switch s.Tag {
		case span.TAG_PUNCTUATION:
			if !s.Is("#") {
				return s, true
			}
			e.directive(s)
		case span.TAG_IDENTIFIER:
			m, found := e.table.Lookup(s.Text())
			if !found {
				return s, true
			}
			e.expand(s, m)
		default:
			return s, true
		}
	}
}

func (e *Engine) fail(l parse.Location, m string) {
	panic(parse.NewSyntaxError(parse.PHASE_PREPROCESSOR, l, m))
}

func between(from, to span.Span) parse.Location {
	l := from.Location()
	l.End = to.End
	return l
}

// push schedules an expansion so that it is emitted in textual order.
func (e *Engine) push(expansion []span.Span) {
	for i := len(expansion) - 1; i >= 0; i-- {
		e.pending = append(e.pending, expansion[i])
	}
}

// pull returns the next upstream span, failing with m if the upstream is
// exhausted.
func (e *Engine) pull(at span.Span, m string) span.Span {
	s, ok := e.upstream.Next()
	if !ok {
		e.fail(at.Location(), m)
	}
	return s
}

// pullOnLine returns the next significant span of the current logical line.
func (e *Engine) pullOnLine(at span.Span, m string) span.Span {
	for {
		s := e.pull(at, m)
		if s.EndsLine() {
			e.fail(between(at, s), m)
		}
		if s.Significant() {
			return s
		}
	}
}

// pullSignificant skips whitespace and comments, including newlines.
func (e *Engine) pullSignificant(at span.Span, m string) span.Span {
	for {
		s := e.pull(at, m)
		if s.Tag == span.TAG_EOF {
			e.fail(between(at, s), m)
		}
		if s.Significant() {
			return s
		}
	}
}

// directive handles everything following a '#'.
//
// Grammar:
//
//	directive       = "#" "define" define
func (e *Engine) directive(hash span.Span) {
	name := e.pullOnLine(hash, "expected a directive name after '#'")

	if !name.Is("define") {
		e.fail(between(hash, name), fmt.Sprintf("preprocessor directive '%s' not implemented", name.Text()))
	}

	m := e.define(name)
	e.table.Define(m)

	e.Logger.Trace().
		Str("macro", m.Key()).
		Bool("function_like", m.FunctionLike).
		Int("params", m.Arity()).
		Int("body", len(m.Body)).
		Msg("defined macro")
	if e.Observer != nil {
		e.Observer.MacroDefined(m)
	}
}

// define parses the remainder of a #define line.
//
// Grammar:
//
//	define          = identifier [ "(" [ params ] ")" ] *body-span NEWLINE
//	params          = identifier *( "," identifier )
func (e *Engine) define(directive span.Span) *Macro {
	name := e.pullOnLine(directive, "expected a macro name after #define")
	if name.Tag != span.TAG_IDENTIFIER {
		e.fail(name.Location(), fmt.Sprintf("expected an identifier after #define, found '%s'", name.Text()))
	}

	params := []span.Span{}
	functionLike := false

	// The parameter list must touch the name
	s := e.pull(name, "unexpected end of input in #define")
	if s.Tag == span.TAG_PUNCTUATION && s.Is("(") {
		functionLike = true
		params = e.params(s)
		s = e.pull(name, "unexpected end of input in #define")
	}

	body := []span.Span{}
	for !s.EndsLine() {
		if s.Significant() {
			body = append(body, s)
		}
		s = e.pull(name, "unexpected end of input in #define")
	}

	// A directive on the last line must not swallow the end of input
	if s.Tag == span.TAG_EOF {
		e.push([]span.Span{s})
	}

	return NewMacro(name, params, body, functionLike)
}

func (e *Engine) params(open span.Span) []span.Span {
	const unterminated = "unterminated macro parameter list"
	params := []span.Span{}

	s := e.pullOnLine(open, unterminated)
	if s.Is(")") {
		return params
	}

	for {
		if s.Tag != span.TAG_IDENTIFIER {
			e.fail(s.Location(), fmt.Sprintf("expected a parameter name, found '%s'", s.Text()))
		}
		params = append(params, s)

		s = e.pullOnLine(open, unterminated)
		if s.Is(")") {
			return params
		}
		if !s.Is(",") {
			e.fail(s.Location(), fmt.Sprintf("expected ',' or ')' in parameter list, found '%s'", s.Text()))
		}

		s = e.pullOnLine(open, unterminated)
	}
}

// expand replaces the invocation of m starting at name.
//
// Grammar:
//
//	invocation      = identifier [ "(" [ argument *( "," argument ) ] ")" ]
//	argument        = *( any span except "," and ")" )
func (e *Engine) expand(name span.Span, m *Macro) {
	if !m.FunctionLike {
		e.traceExpansion(name, m)
		e.push(m.Body)
		return
	}

	open := e.pullSignificant(name, fmt.Sprintf("expected '(' after function-like macro '%s'", m.Key()))
	if !open.Is("(") {
		e.fail(open.Location(), fmt.Sprintf("expected '(' after function-like macro '%s', found '%s'", m.Key(), open.Text()))
	}

	// Parentheses are not balanced: the first ')' closes the invocation
	args := [][]span.Span{}
	argument := []span.Span{}
	var closing span.Span
	for {
		s := e.pull(name, fmt.Sprintf("unterminated invocation of macro '%s'", m.Key()))
		if s.Tag == span.TAG_EOF {
			e.fail(between(name, s), fmt.Sprintf("unterminated invocation of macro '%s'", m.Key()))
		}

		if s.Tag == span.TAG_PUNCTUATION && s.Is(")") {
			args = append(args, argument)
			closing = s
			break
		}
		if s.Tag == span.TAG_PUNCTUATION && s.Is(",") {
			args = append(args, argument)
			argument = []span.Span{}
			continue
		}
		if s.Significant() {
			argument = append(argument, s)
		}
	}

	// F() passes no arguments rather than a single empty one
	if m.Arity() == 0 && len(args) == 1 && len(args[0]) == 0 {
		args = args[:0]
	}

	if len(args) != m.Arity() {
		e.fail(between(name, closing), fmt.Sprintf("macro '%s' expects %d arguments, got %d", m.Key(), m.Arity(), len(args)))
	}

	e.traceExpansion(name, m)
	e.push(m.Apply(args))
}

func (e *Engine) traceExpansion(at span.Span, m *Macro) {
	e.Logger.Trace().
		Str("macro", m.Key()).
		Int("offset", at.Start).
		Msg("expanded macro")
	if e.Observer != nil {
		e.Observer.MacroExpanded(m)
	}
}
