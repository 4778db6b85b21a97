/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package shared

import (
	"fmt"
	"io"
	"os"

	"github.com/BlueTheDuck/rcc/pkg/frontend"
	"github.com/BlueTheDuck/rcc/pkg/repl"
	"github.com/BlueTheDuck/rcc/pkg/span"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

var outputs = []string{"csv", "json", "text"}

func Logger() zerolog.Logger {
	return viper.Get("logger").(zerolog.Logger)
}

// LoadSource reads path, or stdin when path is "-".
func LoadSource(path string) (*span.Source, error) {
	var (
		b   []byte
		err error
	)

	if path == "-" {
		b, err = io.ReadAll(os.Stdin)
		path = "<stdin>"
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	return span.NewSource(path, string(b)), nil
}

// Options returns the frontend options every command shares, followed by
// extra.
func Options(extra ...frontend.Option) []frontend.Option {
	opts := []frontend.Option{
		frontend.WithLogger(Logger()),
		frontend.WithDefines(viper.GetStringSlice("rcc.predefined")...),
	}
	return append(opts, extra...)
}

// Writer returns an OutputWriter for the configured output format.
func Writer(w io.Writer) (repl.OutputWriter, error) {
	output := viper.GetString("rcc.output")
	for _, o := range outputs {
		if o == output {
			return repl.NewOutputWriter(w, output), nil
		}
	}
	return nil, errors.Errorf("unsupported output format '%s'", output)
}

// ReportError prints err to w. Syntax errors inside src are shown with the
// offending line.
func ReportError(w io.Writer, src *span.Source, err error) {
	if syntaxError, ok := frontend.SyntaxError(err); ok && src != nil && syntaxError.Location.File == src.Name {
		fmt.Fprint(w, syntaxError.FormatError(src.Text))
		return
	}
	fmt.Fprintf(w, "error: %s\n", err)
}

// Fatal reports err and exits.
func Fatal(src *span.Source, err error) {
	ReportError(os.Stderr, src, err)
	os.Exit(1)
}
