/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package lexer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/BlueTheDuck/rcc/pkg/common/parse"
	"github.com/BlueTheDuck/rcc/pkg/preprocessor"
	"github.com/BlueTheDuck/rcc/pkg/span"
	"github.com/rs/zerolog"
)

func tokenize(t *testing.T, input string) []Token {
	t.Helper()

	src := span.NewSource("test.c", input)
	tokens, err := Tokenize(preprocessor.NewEngine(span.NewScanner(src), nil))
	if err != nil {
		t.Fatalf("%q: %s", input, err)
	}
	return tokens
}

func compareTypes(t *testing.T, input string, tokens []Token, want []TokenType) {
	t.Helper()

	if len(tokens) != len(want) {
		t.Fatalf("%q: wanted %d tokens, got %d: %s", input, len(want), len(tokens), NewStream(tokens))
	}
	for i, tok := range tokens {
		if tok.Type != want[i] {
			t.Errorf("%q: token %d: wanted %s, got %s", input, i, want[i].ToString(), tok.Type.ToString())
		}
	}
}

func TestIdentifiers(t *testing.T) {
	for _, ident := range []string{"main", "_x", "a1_b", "int32_t", "X", "iffy", "elsewhere"} {
		tokens := tokenize(t, ident)

		compareTypes(t, ident, tokens, []TokenType{TOK_IDENTIFIER, TOK_EOF})
		if tokens[0].Lexeme() != ident {
			t.Errorf("wanted '%s', got '%s'", ident, tokens[0].Lexeme())
		}
	}
}

func TestKeywords(t *testing.T) {
	want := map[string]Keyword{"typedef": KEYWORD_TYPEDEF, "if": KEYWORD_IF, "else": KEYWORD_ELSE}

	for text, keyword := range want {
		tokens := tokenize(t, text)

		compareTypes(t, text, tokens, []TokenType{TOK_KEYWORD, TOK_EOF})
		if !tokens[0].IsKeyword(keyword) {
			t.Errorf("'%s' did not tokenize to the expected keyword", text)
		}
	}
}

func TestTokenizePrograms(t *testing.T) {
	tests := []struct {
		input string
		want  []TokenType
	}{
		{
			"int main() {}",
			[]TokenType{TOK_IDENTIFIER, TOK_IDENTIFIER, TOK_PAREN_L, TOK_PAREN_R, TOK_BRACE_L, TOK_BRACE_R, TOK_EOF},
		},
		{
			"int main() {int x = 2;}",
			[]TokenType{TOK_IDENTIFIER, TOK_IDENTIFIER, TOK_PAREN_L, TOK_PAREN_R, TOK_BRACE_L,
				TOK_IDENTIFIER, TOK_IDENTIFIER, TOK_ASSIGN, TOK_INTEGER, TOK_SEMICOLON, TOK_BRACE_R, TOK_EOF},
		},
		{
			"typedef unsigned int uint32_t;",
			[]TokenType{TOK_KEYWORD, TOK_IDENTIFIER, TOK_IDENTIFIER, TOK_IDENTIFIER, TOK_SEMICOLON, TOK_EOF},
		},
		{
			"if(1 == 2) {}",
			[]TokenType{TOK_KEYWORD, TOK_PAREN_L, TOK_INTEGER, TOK_EQ_EQ, TOK_INTEGER, TOK_PAREN_R, TOK_BRACE_L, TOK_BRACE_R, TOK_EOF},
		},
		{
			"int main(int argc, char **argv) // entry\n{ /* empty */ }",
			[]TokenType{TOK_IDENTIFIER, TOK_IDENTIFIER, TOK_PAREN_L, TOK_IDENTIFIER, TOK_IDENTIFIER, TOK_COMMA,
				TOK_IDENTIFIER, TOK_STAR, TOK_STAR, TOK_IDENTIFIER, TOK_PAREN_R, TOK_BRACE_L, TOK_BRACE_R, TOK_EOF},
		},
		{
			"   \n\t ",
			[]TokenType{TOK_EOF},
		},
	}

	for _, test := range tests {
		compareTypes(t, test.input, tokenize(t, test.input), test.want)
	}
}

func TestIntegerValues(t *testing.T) {
	tokens := tokenize(t, "0 42 -7 9223372036854775807")

	want := []int64{0, 42, -7, 9223372036854775807}
	for i, value := range want {
		if tokens[i].Type != TOK_INTEGER || tokens[i].Integer != value {
			t.Errorf("wanted integer %d, got %s %s", value, tokens[i].Type.ToString(), tokens[i])
		}
	}
}

func TestObjectLikeMacroTokens(t *testing.T) {
	tokens := tokenize(t, "#define FOO 42\nFOO;")

	compareTypes(t, "FOO", tokens, []TokenType{TOK_INTEGER, TOK_SEMICOLON, TOK_EOF})
	if tokens[0].Integer != 42 {
		t.Errorf("wanted 42, got %d", tokens[0].Integer)
	}
}

func TestFunctionLikeMacroTokens(t *testing.T) {
	tokens := tokenize(t, "#define PAIR(a,b) a b\nPAIR(x,y);")

	compareTypes(t, "PAIR", tokens, []TokenType{TOK_IDENTIFIER, TOK_IDENTIFIER, TOK_SEMICOLON, TOK_EOF})
	if tokens[0].Lexeme() != "x" || tokens[1].Lexeme() != "y" {
		t.Errorf("wanted x y, got %s %s", tokens[0], tokens[1])
	}
}

// Macro-produced tokens keep pointing at the body of the definition.
func TestMacroTokenSpans(t *testing.T) {
	tokens := tokenize(t, "#define FOO 42\nFOO;")

	if l := tokens[0].Span.Location(); l.Line != 1 || l.Column != 13 {
		t.Errorf("wanted the literal to come from 1:13, got %d:%d", l.Line, l.Column)
	}
	if l := tokens[1].Span.Location(); l.Line != 2 || l.Column != 4 {
		t.Errorf("wanted ';' at 2:4, got %d:%d", l.Line, l.Column)
	}
}

func TestTokenizerErrors(t *testing.T) {
	tests := []struct {
		input   string
		phase   parse.Phase
		message string
	}{
		{"a + b", parse.PHASE_TOKENIZER, "no token for '+' of type TAG_OPERATOR"},
		{"x <= y", parse.PHASE_TOKENIZER, "no token for '<=' of type TAG_OPERATOR"},
		{`s = "text";`, parse.PHASE_TOKENIZER, `no token for '"text"' of type TAG_STRING`},
		{"c ? a : b", parse.PHASE_TOKENIZER, "no token for '?' of type TAG_PUNCTUATION"},
		{"99999999999999999999", parse.PHASE_TOKENIZER, "integer literal '99999999999999999999' out of range"},
		{"int @;", parse.PHASE_LEXICAL, "unknown character '@'"},
		{"#pragma once", parse.PHASE_PREPROCESSOR, "not implemented"},
	}

	for _, test := range tests {
		src := span.NewSource("test.c", test.input)
		_, err := Tokenize(preprocessor.NewEngine(span.NewScanner(src), nil))

		syntaxError, ok := err.(parse.SyntaxError)
		if !ok {
			t.Errorf("%q: wanted a SyntaxError, got %v", test.input, err)
			continue
		}
		if syntaxError.Phase != test.phase {
			t.Errorf("%q: wanted a %s error, got %s", test.input, test.phase.ToString(), syntaxError.Phase.ToString())
		}
		if !strings.Contains(syntaxError.Message, test.message) {
			t.Errorf("%q: wanted message containing '%s', got '%s'", test.input, test.message, syntaxError.Message)
		}
	}
}

func TestTokenizerStopsAfterEOF(t *testing.T) {
	tok := NewTokenizer(span.NewScanner(span.NewSource("", "x")))

	tok.Next()
	if eof, _ := tok.Next(); eof.Type != TOK_EOF {
		t.Fatalf("wanted TOK_EOF, got %s", eof.Type.ToString())
	}
	if _, ok := tok.Next(); ok {
		t.Error("wanted the tokenizer to be exhausted after TOK_EOF")
	}
}

func TestDrainLogs(t *testing.T) {
	var b bytes.Buffer
	tok := NewTokenizer(span.NewScanner(span.NewSource("", "x y")))
	tok.Logger = zerolog.New(&b).Level(zerolog.DebugLevel)

	tokens, err := tok.Drain()
	if err != nil {
		t.Fatal(err)
	}
	if len(tokens) != 3 {
		t.Errorf("wanted 3 tokens, got %d", len(tokens))
	}
	if !strings.Contains(b.String(), `"tokens":3`) {
		t.Errorf("wanted the token count to be logged, got %q", b.String())
	}
}
