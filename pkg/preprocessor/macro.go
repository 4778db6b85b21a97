/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package preprocessor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BlueTheDuck/rcc/pkg/common/parse"
	"github.com/BlueTheDuck/rcc/pkg/span"
)

// Macro is a single #define. It is never mutated after creation.
type Macro struct {
	Name         span.Span
	Params       []span.Span
	Body         []span.Span
	FunctionLike bool

	params map[string]int
}

func NewMacro(name span.Span, params []span.Span, body []span.Span, functionLike bool) *Macro {
	m := &Macro{
		Name:         name,
		Params:       params,
		Body:         body,
		FunctionLike: functionLike,
		params:       make(map[string]int, len(params)),
	}

	for i, p := range params {
		m.params[p.Text()] = i
	}

	return m
}

func (m *Macro) Key() string {
	return m.Name.Text()
}

func (m *Macro) Arity() int {
	return len(m.Params)
}

// Apply substitutes args for the parameters in the body and returns the
// expansion in textual order. The caller guarantees len(args) == Arity().
func (m *Macro) Apply(args [][]span.Span) []span.Span {
	if len(args) != len(m.Params) {
		panic(fmt.Sprintf("macro %s applied to %d arguments, wants %d", m.Key(), len(args), len(m.Params)))
	}

	expansion := make([]span.Span, 0, len(m.Body))
	for _, s := range m.Body {
		if index, ok := m.params[s.Text()]; ok && s.Tag == span.TAG_IDENTIFIER {
			expansion = append(expansion, args[index]...)
			continue
		}
		expansion = append(expansion, s)
	}

	return expansion
}

func (m *Macro) String() string {
	var b strings.Builder

	b.WriteString("#define ")
	b.WriteString(m.Key())

	if m.FunctionLike {
		params := make([]string, len(m.Params))
		for i, p := range m.Params {
			params[i] = p.Text()
		}
		b.WriteString("(" + strings.Join(params, ", ") + ")")
	}

	for _, s := range m.Body {
		b.WriteString(" ")
		b.WriteString(s.Text())
	}

	return b.String()
}

// Table maps macro names to their latest definition.
type Table struct {
	macros map[string]*Macro
}

func NewTable() *Table {
	return &Table{macros: map[string]*Macro{}}
}

// Define inserts m, replacing any previous macro with the same name.
func (t *Table) Define(m *Macro) {
	t.macros[m.Key()] = m
}

func (t *Table) Lookup(name string) (*Macro, bool) {
	m, ok := t.macros[name]
	return m, ok
}

func (t *Table) Len() int {
	return len(t.macros)
}

// Macros returns every definition sorted by name.
func (t *Table) Macros() []*Macro {
	names := make([]string, 0, len(t.macros))
	for name := range t.macros {
		names = append(names, name)
	}
	sort.Strings(names)

	macros := make([]*Macro, len(names))
	for i, name := range names {
		macros[i] = t.macros[name]
	}
	return macros
}

// Predefine adds an object-like macro whose body is the classified text of
// body, as a -D NAME=VALUE flag would.
func (t *Table) Predefine(name, body string) (err error) {
	defer parse.Catch(&err)

	src := span.NewSource("<predefined>", name+" "+body)
	spans := span.Collect(span.NewScanner(src))

	nameSpan := spans[0]
	if nameSpan.Tag != span.TAG_IDENTIFIER || nameSpan.Len() != len(name) {
		return parse.NewSyntaxError(parse.PHASE_PREPROCESSOR, nameSpan.Location(),
			fmt.Sprintf("invalid macro name '%s'", name))
	}

	macroBody := []span.Span{}
	for _, s := range spans[1:] {
		if s.Significant() && s.Tag != span.TAG_EOF {
			macroBody = append(macroBody, s)
		}
	}

	t.Define(NewMacro(nameSpan, nil, macroBody, false))
	return nil
}

// ParseDefine splits a NAME=VALUE definition. A bare NAME defines it as 1.
func ParseDefine(definition string) (string, string) {
	name, value, found := strings.Cut(definition, "=")
	if !found {
		return strings.TrimSpace(name), "1"
	}
	return strings.TrimSpace(name), value
}
