/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 * Copyright (c) 2022-2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package repl

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BlueTheDuck/rcc/cmd/rcc/shared"
	"github.com/BlueTheDuck/rcc/pkg/ast"
	"github.com/BlueTheDuck/rcc/pkg/frontend"
	"github.com/BlueTheDuck/rcc/pkg/lexer"
	"github.com/BlueTheDuck/rcc/pkg/metrics"
	"github.com/BlueTheDuck/rcc/pkg/preprocessor"
	"github.com/BlueTheDuck/rcc/pkg/repl"
	"github.com/BlueTheDuck/rcc/pkg/span"
	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Command = &cobra.Command{
	Use:   "repl",
	Short: "Parse source line by line, keeping macros across lines",
	Args:  cobra.NoArgs,

	Run: func(cmd *cobra.Command, args []string) {
		writer, err := shared.Writer(os.Stdout)
		if err != nil {
			shared.Fatal(nil, err)
		}

		s, err := newSession(os.Stdout, writer)
		if err != nil {
			shared.Fatal(nil, err)
		}

		readlinePrompt(s)
	},
}

// session holds what survives from one line to the next.
type session struct {
	out    io.Writer
	writer repl.OutputWriter
	table  *preprocessor.Table
	store  metrics.Store
	lines  int
}

func newSession(out io.Writer, writer repl.OutputWriter) (*session, error) {
	s := &session{out: out, writer: writer}
	if err := s.reset(); err != nil {
		return nil, err
	}
	return s, nil
}

// reset forgets every macro, keeping only the predefined ones.
func (s *session) reset() error {
	s.table = preprocessor.NewTable()
	s.store = metrics.NewMetricsStore()
	s.store.RegisterCollector(metrics.NewTableCollector("repl", s.table))

	for _, d := range viper.GetStringSlice("rcc.predefined") {
		name, value := preprocessor.ParseDefine(d)
		if err := s.table.Predefine(name, value); err != nil {
			return err
		}
	}
	return nil
}

func (s *session) source(text string) *span.Source {
	s.lines++
	return span.NewSource(fmt.Sprintf("<repl:%d>", s.lines), text)
}

func (s *session) options() []frontend.Option {
	return []frontend.Option{
		frontend.WithLogger(shared.Logger()),
		frontend.WithTable(s.table),
		frontend.WithMetrics(s.store),
	}
}

// handle runs one line of input, returning false once the user asks to
// leave.
func (s *session) handle(line string) bool {
	cmd, err := repl.ParseREPLCommand([]byte(line))
	if err != nil {
		shared.ReportError(s.out, nil, err)
		return true
	}

	var src *span.Source
	switch cmd.Name {
	case repl.CommandQuit:
		return false
	case repl.CommandHelp:
		err = s.writer.Write(repl.Commands)
	case repl.CommandMacros:
		err = s.writer.Write(repl.MacroTable(s.table.Macros()))
	case repl.CommandReset:
		err = s.reset()
	case repl.CommandStats:
		var rows []metrics.Row
		if rows, err = metrics.Summary(s.store); err == nil {
			err = s.writer.Write(repl.StatsTable(rows))
		}
	case repl.CommandTokens:
		src = s.source(cmd.Arg)
		var toks []lexer.Token
		if toks, err = frontend.Tokenize(src, s.options()...); err == nil {
			err = s.writer.Write(repl.TokenTable(toks))
		}
	case repl.CommandPreprocess:
		src = s.source(cmd.Arg)
		var spans []span.Span
		if spans, err = frontend.Preprocess(src, s.options()...); err == nil {
			for _, sp := range spans {
				fmt.Fprint(s.out, sp.Text())
			}
			fmt.Fprintln(s.out)
		}
	case repl.CommandSource:
		if cmd.Arg == "" {
			return true
		}
		src = s.source(cmd.Arg + "\n")
		var program ast.Program
		if program, err = frontend.Parse(src, s.options()...); err == nil {
			fmt.Fprint(s.out, ast.Dump(program))
		}
	}

	if err != nil {
		shared.ReportError(s.out, src, err)
	}
	return true
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

// newCompleter completes meta command names. Their arguments are free
// source text, so nothing is offered after the name.
func newCompleter() *readline.PrefixCompleter {
	items := []readline.PrefixCompleterInterface{}
	for _, c := range repl.Commands {
		items = append(items, readline.PcItem(":"+c.Name))
	}
	return readline.NewPrefixCompleter(items...)
}

func readlinePrompt(s *session) {
	completer := newCompleter()

	// Setup the readline executor
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mrcc>\033[0m ",
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       ":quit",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	// Handle input
	for {
		ln := rl.Line()
		if ln.CanContinue() {
			continue
		} else if ln.CanBreak() {
			break
		}

		if !s.handle(strings.TrimSpace(ln.Line)) {
			break
		}
	}
	rl.Clean()
}
