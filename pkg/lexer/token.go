/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package lexer

import (
	"strconv"

	"github.com/BlueTheDuck/rcc/pkg/span"
)

type TokenType int

const (
	TOK_INVALID TokenType = iota
	TOK_EOF

	TOK_KEYWORD
	TOK_IDENTIFIER
	TOK_INTEGER

	TOK_PAREN_L
	TOK_PAREN_R
	TOK_BRACE_L
	TOK_BRACE_R

	TOK_EQ_EQ
	TOK_ASSIGN
	TOK_SEMICOLON
	TOK_COMMA
	TOK_STAR
)

func (t TokenType) ToString() string {
	switch t {
	case TOK_INVALID:
		return "TOK_INVALID"
	case TOK_EOF:
		return "TOK_EOF"
	case TOK_KEYWORD:
		return "TOK_KEYWORD"
	case TOK_IDENTIFIER:
		return "TOK_IDENTIFIER"
	case TOK_INTEGER:
		return "TOK_INTEGER"
	case TOK_PAREN_L:
		return "TOK_PAREN_L"
	case TOK_PAREN_R:
		return "TOK_PAREN_R"
	case TOK_BRACE_L:
		return "TOK_BRACE_L"
	case TOK_BRACE_R:
		return "TOK_BRACE_R"
	case TOK_EQ_EQ:
		return "TOK_EQ_EQ"
	case TOK_ASSIGN:
		return "TOK_ASSIGN"
	case TOK_SEMICOLON:
		return "TOK_SEMICOLON"
	case TOK_COMMA:
		return "TOK_COMMA"
	case TOK_STAR:
		return "TOK_STAR"
	}
	return "TOK_UNKNOWN"
}

type Keyword int

const (
	KEYWORD_NONE Keyword = iota
	KEYWORD_TYPEDEF
	KEYWORD_IF
	KEYWORD_ELSE
)

var keywords = map[string]Keyword{
	"typedef": KEYWORD_TYPEDEF,
	"if":      KEYWORD_IF,
	"else":    KEYWORD_ELSE,
}

var punctuators = map[string]TokenType{
	"(":  TOK_PAREN_L,
	")":  TOK_PAREN_R,
	"{":  TOK_BRACE_L,
	"}":  TOK_BRACE_R,
	"==": TOK_EQ_EQ,
	"=":  TOK_ASSIGN,
	";":  TOK_SEMICOLON,
	",":  TOK_COMMA,
	"*":  TOK_STAR,
}

// Token is an immutable lexical unit. Span is the span it was produced
// from, which for macro expansions points into the macro body.
type Token struct {
	Type    TokenType
	Keyword Keyword
	Integer int64
	Span    span.Span
}

func (t Token) Lexeme() string {
	return t.Span.Text()
}

func (t Token) Is(tt TokenType) bool {
	return t.Type == tt
}

func (t Token) IsKeyword(k Keyword) bool {
	return t.Type == TOK_KEYWORD && t.Keyword == k
}

func (t Token) String() string {
	switch t.Type {
	case TOK_EOF:
		return "$"
	case TOK_INTEGER:
		return strconv.FormatInt(t.Integer, 10)
	case TOK_INVALID:
		return "<invalid>"
	}
	return t.Lexeme()
}
