/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package repl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BlueTheDuck/rcc/pkg/lexer"
	"github.com/BlueTheDuck/rcc/pkg/metrics"
	"github.com/BlueTheDuck/rcc/pkg/preprocessor"
)

type TokenTable []lexer.Token

func (t TokenTable) Headers() []string {
	return []string{"#", "Type", "Lexeme", "Value", "Line", "Column"}
}

func (t TokenTable) Values() [][]string {
	rows := [][]string{}
	for i, tok := range t {
		value := ""
		switch tok.Type {
		case lexer.TOK_INTEGER:
			value = strconv.FormatInt(tok.Integer, 10)
		case lexer.TOK_KEYWORD, lexer.TOK_IDENTIFIER:
			value = tok.Lexeme()
		}

		l := tok.Span.Location()
		rows = append(rows, []string{
			strconv.Itoa(i),
			strings.TrimPrefix(tok.Type.ToString(), "TOK_"),
			tok.Lexeme(),
			value,
			strconv.Itoa(l.Line),
			strconv.Itoa(l.Column),
		})
	}
	return rows
}

type MacroTable []*preprocessor.Macro

func (t MacroTable) Headers() []string {
	return []string{"Name", "Kind", "Arity", "Definition"}
}

func (t MacroTable) Values() [][]string {
	rows := [][]string{}
	for _, m := range t {
		kind := "object"
		if m.FunctionLike {
			kind = "function"
		}
		rows = append(rows, []string{m.Key(), kind, strconv.Itoa(m.Arity()), m.String()})
	}
	return rows
}

type StatsTable []metrics.Row

func (t StatsTable) Headers() []string {
	return []string{"Metric", "Labels", "Value"}
}

func (t StatsTable) Values() [][]string {
	rows := [][]string{}
	for _, r := range t {
		rows = append(rows, []string{r.Metric, r.Labels, r.Value})
	}
	return rows
}

type HelpTable []CommandInfo

func (t HelpTable) Headers() []string {
	return []string{"Command", "Description"}
}

func (t HelpTable) Values() [][]string {
	rows := [][]string{}
	for _, h := range t {
		usage := fmt.Sprintf(":%s", h.Name)
		if h.Argument != "" {
			usage += " " + h.Argument
		}
		rows = append(rows, []string{usage, h.Description})
	}
	return rows
}
