/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package lexer

import "strings"

// Stream is a read-only window over a finalized token buffer. Narrowing a
// Stream never copies tokens, so keeping an old Stream around is all it
// takes to backtrack.
type Stream struct {
	tokens []Token
	offset int
}

func NewStream(tokens []Token) Stream {
	return Stream{tokens: tokens}
}

func (s Stream) Len() int {
	return len(s.tokens)
}

func (s Stream) Empty() bool {
	return len(s.tokens) == 0
}

// Offset is the index of the window's first token in the original buffer.
func (s Stream) Offset() int {
	return s.offset
}

func (s Stream) At(i int) Token {
	return s.tokens[i]
}

// Peek returns the first token, or a TOK_INVALID token if the window is
// empty.
func (s Stream) Peek() Token {
	if len(s.tokens) == 0 {
		return Token{Type: TOK_INVALID}
	}
	return s.tokens[0]
}

// Split divides the window into the first n tokens and the rest.
func (s Stream) Split(n int) (Stream, Stream) {
	return Stream{tokens: s.tokens[:n], offset: s.offset},
		Stream{tokens: s.tokens[n:], offset: s.offset + n}
}

func (s Stream) Skip(n int) Stream {
	_, rest := s.Split(n)
	return rest
}

func (s Stream) Slice(from, to int) Stream {
	return Stream{tokens: s.tokens[from:to], offset: s.offset + from}
}

func (s Stream) Tokens() []Token {
	return s.tokens
}

func (s Stream) String() string {
	parts := make([]string, len(s.tokens))
	for i, t := range s.tokens {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}
