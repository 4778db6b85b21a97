/*
 * Copyright (c) 2022, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package frontend

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BlueTheDuck/rcc/pkg/ast"
	"github.com/BlueTheDuck/rcc/pkg/common/parse"
	"github.com/BlueTheDuck/rcc/pkg/lexer"
	"github.com/BlueTheDuck/rcc/pkg/metrics"
	"github.com/BlueTheDuck/rcc/pkg/preprocessor"
	"github.com/BlueTheDuck/rcc/pkg/span"
	"github.com/andreyvit/diff"
	"github.com/rs/zerolog"
)

func TestParse(t *testing.T) {
	testDirectory, err := filepath.Abs("../../test/parsing")
	if err != nil {
		panic(err)
	}

	inputDirectory := path.Join(testDirectory, "input")
	expectationDirectory := path.Join(testDirectory, "expectations")

	tests, err := filepath.Glob(fmt.Sprintf("%s/*.txt", inputDirectory))
	if err != nil {
		t.Fatal(err)
	}
	if len(tests) == 0 {
		t.Fatalf("no tests found in %s", inputDirectory)
	}

	for _, test := range tests {
		t.Run(filepath.Base(test), func(t *testing.T) {
			var expected string
			expectation := path.Join(expectationDirectory, filepath.Base(test))
			expectedBytes, err := os.ReadFile(expectation)
			if err == nil {
				expected = string(expectedBytes)
			}

			file, err := os.Open(test)
			if err != nil {
				t.Fatalf("Error opening test: %s", test)
			}
			defer file.Close()

			scanner := bufio.NewScanner(file)

			shouldPass := false
			scanner.Scan()
			if strings.ToUpper(scanner.Text()) == "PASS" {
				shouldPass = true
			}

			// Everything after the first line is a single translation unit
			input := ""
			for scanner.Scan() {
				input += scanner.Text() + "\n"
			}

			actual := ""
			program, err := Parse(span.NewSource(filepath.Base(test), input))
			switch {
			case shouldPass && err != nil:
				t.Fatal(err)
			case !shouldPass && err == nil:
				t.Fatalf("Expected program to fail:\n%s", input)
			case shouldPass:
				actual = ast.Dump(program)
			default:
				syntaxError, ok := SyntaxError(err)
				if !ok {
					t.Fatalf("wanted a syntax error, got %s", err)
				}
				actual = syntaxError.Error() + "\n"
			}

			if os.Getenv("SHOULD_REBASE") != "" {
				err := os.WriteFile(expectation, []byte(actual), 0666)
				if err != nil {
					t.Error(err)
				}
				expected = actual
			}

			if a, e := strings.TrimSpace(actual), strings.TrimSpace(expected); a != e {
				t.Errorf("Expectation not met:\n%s", diff.LineDiff(e, a))
			}
		})
	}
}

func text(spans []span.Span) string {
	out := ""
	for _, s := range spans {
		out += s.Text()
	}
	return out
}

func TestPreprocess(t *testing.T) {
	spans, err := Preprocess(span.NewSource("test.c", "#define N 3\nint x = N; // three\n"))
	if err != nil {
		t.Fatal(err)
	}

	if got := text(spans); got != "int x = 3; // three\n" {
		t.Errorf("wanted the macro-resolved text, got %q", got)
	}
	if last := spans[len(spans)-1]; last.Tag != span.TAG_EOF {
		t.Errorf("wanted the last span to be TAG_EOF, got %s", last.Tag.ToString())
	}
}

func TestWithDefines(t *testing.T) {
	tokens, err := Tokenize(span.NewSource("test.c", "WIDTH DEBUG"), WithDefines("WIDTH=80", "DEBUG"))
	if err != nil {
		t.Fatal(err)
	}

	if s := lexer.NewStream(tokens).String(); s != "80 1 $" {
		t.Errorf("wanted '80 1 $', got '%s'", s)
	}

	_, err = Tokenize(span.NewSource("test.c", "x"), WithDefines("1BAD=2"))
	if err == nil {
		t.Error("wanted an invalid predefined macro name to be an error")
	}
}

// A shared table keeps definitions from one source to the next.
func TestWithTable(t *testing.T) {
	table := preprocessor.NewTable()

	if _, err := Parse(span.NewSource("first", "#define INIT(v) int v = 0;\n"), WithTable(table)); err != nil {
		t.Fatal(err)
	}

	program, err := Parse(span.NewSource("second", "INIT(counter)"), WithTable(table))
	if err != nil {
		t.Fatal(err)
	}
	if len(program) != 1 {
		t.Fatalf("wanted 1 statement, got %d", len(program))
	}
	if v := program[0].(*ast.VarDeclNode); ast.DeclaredName(v.Declarator).Value() != "counter" {
		t.Errorf("wanted 'counter' to be declared, got '%s'", ast.DeclaredName(v.Declarator).Value())
	}
}

func TestWithMetrics(t *testing.T) {
	store := metrics.NewMetricsStore()

	_, err := Parse(span.NewSource("test.c", "#define ONE 1\nint x = ONE;"), WithMetrics(store))
	if err != nil {
		t.Fatal(err)
	}

	rows, err := metrics.Summary(store)
	if err != nil {
		t.Fatal(err)
	}

	found := map[string]string{}
	for _, row := range rows {
		found[row.Metric+"{"+row.Labels+"}"] = row.Value
	}

	want := map[string]string{
		"macros_defined{}":                          "1",
		"macro_expansions{macro=ONE}":               "1",
		"tokens{type=TOK_IDENTIFIER}":               "2",
		"tokens{type=TOK_INTEGER}":                  "1",
		"nodes{kind=VarDeclNode}":                   "1",
		"spans{stage=preprocessor,tag=TAG_EOF}":     "1",
		"spans{stage=scanner,tag=TAG_IDENTIFIER}":   "5",
		"spans{stage=preprocessor,tag=TAG_LITERAL}": "1",
	}
	for key, value := range want {
		if found[key] != value {
			t.Errorf("%s: wanted %s, got '%s'", key, value, found[key])
		}
	}
	for _, phase := range []string{PhaseTokenize, PhaseParse} {
		if _, ok := found["phase_seconds{phase="+phase+"}"]; !ok {
			t.Errorf("wanted the %s phase to be timed", phase)
		}
	}
}

func TestErrorsKeepTheirCause(t *testing.T) {
	_, err := Parse(span.NewSource("bad.c", "int x = 1 + 2;"))
	if err == nil {
		t.Fatal("wanted an error")
	}

	if !strings.HasPrefix(err.Error(), "tokenizing bad.c: ") {
		t.Errorf("wanted the error to name the phase and source, got '%s'", err)
	}

	syntaxError, ok := SyntaxError(err)
	if !ok {
		t.Fatalf("wanted a SyntaxError cause, got %T", err)
	}
	if syntaxError.Phase != parse.PHASE_TOKENIZER || syntaxError.Location.File != "bad.c" {
		t.Errorf("unexpected error: %s", syntaxError)
	}
}

func TestWithLogger(t *testing.T) {
	var b bytes.Buffer
	logger := zerolog.New(&b).Level(zerolog.DebugLevel)

	if _, err := Parse(span.NewSource("test.c", "int x = 1;"), WithLogger(logger)); err != nil {
		t.Fatal(err)
	}

	for _, m := range []string{"reached end of input", "tokenized source", "parsed program"} {
		if !strings.Contains(b.String(), m) {
			t.Errorf("wanted the log to contain '%s', got:\n%s", m, b.String())
		}
	}
}
