/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package repl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/BlueTheDuck/rcc/pkg/repl"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

func newTestSession(t *testing.T) (*session, *bytes.Buffer) {
	t.Helper()

	viper.Set("logger", zerolog.Nop())
	viper.Set("rcc.predefined", []string{"WIDTH=80"})
	t.Cleanup(viper.Reset)

	var b bytes.Buffer
	s, err := newSession(&b, repl.NewOutputWriter(&b, "csv"))
	if err != nil {
		t.Fatal(err)
	}
	return s, &b
}

func TestSessionKeepsMacros(t *testing.T) {
	s, out := newTestSession(t)

	if !s.handle("#define INIT(v) int v = WIDTH;") {
		t.Fatal("wanted the session to continue")
	}
	out.Reset()

	s.handle("INIT(x)")
	want := "VarDeclNode[int]\n    IdentifierNode[x]\n    IdentifierNode[WIDTH]\n"
	if out.String() != want {
		t.Errorf("wanted:\n%s\ngot:\n%s", want, out.String())
	}

	out.Reset()
	s.handle("int y = WIDTH;")
	if !strings.Contains(out.String(), "IntegerNode[80]") {
		t.Errorf("wanted the predefined macro to expand, got:\n%s", out.String())
	}
}

func TestSessionCommands(t *testing.T) {
	s, out := newTestSession(t)

	s.handle("#define ONE 1")
	out.Reset()
	s.handle(":macros")
	if !strings.Contains(out.String(), "ONE,object,0,#define ONE 1") {
		t.Errorf("wanted ONE in the macro table, got:\n%s", out.String())
	}

	out.Reset()
	s.handle(":tokens ONE;")
	if !strings.Contains(out.String(), "0,INTEGER,1,1,1,13") {
		t.Errorf("wanted ONE to be tokenized as its body, got:\n%s", out.String())
	}

	out.Reset()
	s.handle(":preprocess x = ONE;")
	if out.String() != "x = 1;\n" {
		t.Errorf("wanted 'x = 1;', got %q", out.String())
	}

	out.Reset()
	s.handle(":reset")
	s.handle(":macros")
	if strings.Contains(out.String(), "ONE") || !strings.Contains(out.String(), "WIDTH") {
		t.Errorf("wanted only predefined macros after :reset, got:\n%s", out.String())
	}

	if s.handle(":quit") {
		t.Error("wanted :quit to end the session")
	}
}

func TestCompleter(t *testing.T) {
	c := newCompleter()

	candidates, offset := c.Do([]rune(":to"), 3)
	if len(candidates) != 1 || offset != 3 || !strings.HasPrefix(":to"+string(candidates[0]), ":tokens") {
		t.Errorf("wanted ':to' to complete to ':tokens', got %q at %d", candidates, offset)
	}

	// Arguments are source text
	line := []rune(":tokens FO")
	if candidates, _ := c.Do(line, len(line)); len(candidates) != 0 {
		t.Errorf("wanted no completions for a command argument, got %q", candidates)
	}
}

func TestSessionErrors(t *testing.T) {
	s, out := newTestSession(t)

	s.handle("int x = ;")
	if !strings.HasPrefix(out.String(), "Syntax error found in <repl:1> at line 1, column 9:") {
		t.Errorf("unexpected output:\n%s", out.String())
	}

	out.Reset()
	s.handle(":frobnicate")
	if out.String() != "error: unknown command ':frobnicate', try ':help'\n" {
		t.Errorf("unexpected output %q", out.String())
	}

	if !s.handle("") {
		t.Error("wanted an empty line to be ignored")
	}
}
