/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package span

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/BlueTheDuck/rcc/pkg/common/parse"
)

const punctuation = "(){},#?:;*"

// Scanner slices a Source into classified spans on demand. Lexical errors
// are raised as parse.SyntaxError panics.
type Scanner struct {
	Source *Source
	Pos    int
	done   bool
}

func NewScanner(src *Source) *Scanner {
	return &Scanner{Source: src}
}

// Classify returns the span starting at offset. At the end of the source
// it returns a zero-length TAG_EOF span.
func Classify(src *Source, offset int) Span {
	s := Scanner{Source: src, Pos: offset}
	return s.Emit()
}

// Next implements Sequence. The TAG_EOF span is returned exactly once.
func (s *Scanner) Next() (Span, bool) {
	if s.done {
		return Span{}, false
	}

	sp := s.Emit()
	if sp.Tag == TAG_EOF {
		s.done = true
	}
	return sp, true
}

func (s *Scanner) input() string {
	return s.Source.Text[s.Pos:]
}

func (s *Scanner) fail(start, end int, m string) {
	panic(parse.NewSyntaxError(parse.PHASE_LEXICAL, parse.Locate(s.Source.Name, s.Source.Text, start, end), m))
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentifierStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentifierPart(r rune) bool {
	return isIdentifierStart(r) || isDigit(r)
}

// MatchOperator returns the length of the next token, assuming it is an
// operator.
//
// Grammar:
//
//	operator        = op [ op / "=" ]
//	op              = "+" / "-" / "<" / ">" / "="
func (s *Scanner) MatchOperator() int {
	input := s.input()
	if len(input) > 1 && (input[1] == input[0] || input[1] == '=') {
		return 2
	}
	return 1
}

// MatchIdentifier returns the length of the next token, assuming it is an
// identifier.
//
// Grammar:
//
//	identifier      = ( ALPHA / "_" ) *( ALPHA / DIGIT / "_" )
func (s *Scanner) MatchIdentifier() int {
	input := s.input()
	size := 0

	for size < len(input) && isIdentifierPart(rune(input[size])) {
		size++
	}

	return size
}

// MatchInteger returns the length of the next token, assuming it is an
// integer literal.
//
// Grammar:
//
//	integer         = [ "-" ] 1*DIGIT
func (s *Scanner) MatchInteger() int {
	input := s.input()
	size := 0

	if strings.HasPrefix(input, "-") {
		size++
	}
	for size < len(input) && isDigit(rune(input[size])) {
		size++
	}

	return size
}

// MatchWhitespace returns the length of the whitespace run at the current
// position.
func (s *Scanner) MatchWhitespace() int {
	input := s.input()
	size := 0

	for size < len(input) {
		r, width := utf8.DecodeRuneInString(input[size:])
		if !unicode.IsSpace(r) {
			break
		}
		size += width
	}

	return size
}

// MatchString returns the length of the next token, including both quotes,
// assuming it is a string literal.
//
// Grammar:
//
//	string          = DQUOTE *( char / escape ) DQUOTE
//	escape          = "\" ( "\" / DQUOTE / "'" / "n" / "t" / "r" / "0" / LF )
func (s *Scanner) MatchString() int {
	input := s.input()
	i := 1

	for {
		if i >= len(input) {
			s.fail(s.Pos, s.Pos+i, "unterminated string literal")
		}

		r, width := utf8.DecodeRuneInString(input[i:])
		switch r {
		case '"':
			return i + width
		case '\n':
			s.fail(s.Pos, s.Pos+i, "unterminated string literal")
		case '\\':
			if i+1 >= len(input) {
				s.fail(s.Pos, s.Pos+i, "unterminated string literal")
			}
			switch input[i+1] {
			case '\\', '"', '\'', 'n', 't', 'r', '0', '\n':
			default:
				s.fail(s.Pos+i, s.Pos+i+2, fmt.Sprintf("invalid escape sequence '\\%c'", input[i+1]))
			}
			i += 2
			continue
		}
		i += width
	}
}

// MatchComment returns the length of the comment at the current position,
// or 0 if there is none.
//
// Grammar:
//
//	comment         = "//" *( any except LF ) / "/*" *any "*/"
func (s *Scanner) MatchComment() int {
	input := s.input()

	switch {
	case strings.HasPrefix(input, "//"):
		if end := strings.IndexByte(input, '\n'); end >= 0 {
			return end
		}
		return len(input)
	case strings.HasPrefix(input, "/*"):
		end := strings.Index(input[2:], "*/")
		if end < 0 {
			s.fail(s.Pos, s.Pos+2, "unterminated block comment")
		}
		return end + 4
	}

	return 0
}

// Emit the next Span found on Scanner.Source
func (s *Scanner) Emit() Span {
	input := s.Source.Text
	if s.Pos >= len(input) {
		s.Pos = len(input)
		return Span{Source: s.Source, Start: s.Pos, End: s.Pos, Tag: TAG_EOF}
	}

	r, width := utf8.DecodeRuneInString(input[s.Pos:])
	start := s.Pos
	var tag Tag
	skip := 0

	switch {
	case r == '-' && start+1 < len(input) && isDigit(rune(input[start+1])):
		tag = TAG_LITERAL
		skip = s.MatchInteger()
	case strings.ContainsRune("+-<>=", r):
		tag = TAG_OPERATOR
		skip = s.MatchOperator()
	case strings.ContainsRune(punctuation, r):
		tag = TAG_PUNCTUATION
		skip = width
	case r == '"':
		tag = TAG_STRING
		skip = s.MatchString()
	case r == '/':
		tag = TAG_COMMENT
		skip = s.MatchComment()
	case unicode.IsSpace(r):
		tag = TAG_WHITESPACE
		skip = s.MatchWhitespace()
	case isDigit(r):
		tag = TAG_LITERAL
		skip = s.MatchInteger()
	case isIdentifierStart(r):
		tag = TAG_IDENTIFIER
		skip = s.MatchIdentifier()
	}

	if skip == 0 {
		s.fail(start, start+width, fmt.Sprintf("unknown character %q", r))
	}

	s.Pos = start + skip
	return Span{Source: s.Source, Start: start, End: s.Pos, Tag: tag}
}
