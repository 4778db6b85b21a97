/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package lexer

import (
	"fmt"
	"strconv"

	"github.com/BlueTheDuck/rcc/pkg/common/parse"
	"github.com/BlueTheDuck/rcc/pkg/span"
	"github.com/rs/zerolog"
)

// Tokenizer turns significant spans from an upstream Sequence into tokens.
type Tokenizer struct {
	Logger zerolog.Logger

	upstream span.Sequence
	done     bool
	count    int
}

func NewTokenizer(upstream span.Sequence) *Tokenizer {
	return &Tokenizer{Logger: zerolog.Nop(), upstream: upstream}
}

// Next returns the next token. TOK_EOF is returned once, after which the
// tokenizer is exhausted.
func (t *Tokenizer) Next() (Token, bool) {
	if t.done {
		return Token{}, false
	}

	for {
		s, ok := t.upstream.Next()
		if !ok {
			panic(parse.NewSyntaxError(parse.PHASE_TOKENIZER, parse.Location{},
				"span sequence ended without an end of input"))
		}

		if !s.Significant() {
			continue
		}

		tok := Lex(s)
		t.count++
		if tok.Type == TOK_EOF {
			t.done = true
			t.Logger.Debug().Int("tokens", t.count).Msg("reached end of input")
		}
		return tok, true
	}
}

// Lex maps a single significant span to its token. A span that matches no
// token is an internal inconsistency between the scanner and the tokenizer.
func Lex(s span.Span) Token {
	text := s.Text()
	tok := Token{Span: s}

	switch s.Tag {
	case span.TAG_EOF:
		tok.Type = TOK_EOF
		return tok
	case span.TAG_IDENTIFIER:
		if k, ok := keywords[text]; ok {
			tok.Type = TOK_KEYWORD
			tok.Keyword = k
			return tok
		}
		tok.Type = TOK_IDENTIFIER
		return tok
	case span.TAG_LITERAL:
		value, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			panic(parse.NewSyntaxError(parse.PHASE_TOKENIZER, s.Location(),
				fmt.Sprintf("integer literal '%s' out of range", text)))
		}
		tok.Type = TOK_INTEGER
		tok.Integer = value
		return tok
	case span.TAG_PUNCTUATION, span.TAG_OPERATOR:
		if tt, ok := punctuators[text]; ok {
			tok.Type = tt
			return tok
		}
	}

	panic(parse.NewSyntaxError(parse.PHASE_TOKENIZER, s.Location(),
		fmt.Sprintf("no token for '%s' of type %s", text, s.Tag.ToString())))
}

// Drain collects every remaining token into a buffer ending with TOK_EOF.
func (t *Tokenizer) Drain() (tokens []Token, err error) {
	defer parse.Catch(&err)

	tokens = []Token{}
	for tok, ok := t.Next(); ok; tok, ok = t.Next() {
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

// Tokenize drains upstream into a token buffer ending with TOK_EOF.
func Tokenize(upstream span.Sequence) ([]Token, error) {
	return NewTokenizer(upstream).Drain()
}
