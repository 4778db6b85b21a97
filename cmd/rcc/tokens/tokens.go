/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package tokens

import (
	"os"

	"github.com/BlueTheDuck/rcc/cmd/rcc/shared"
	"github.com/BlueTheDuck/rcc/pkg/frontend"
	"github.com/BlueTheDuck/rcc/pkg/repl"
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:   "tokens FILE",
	Short: "Print the tokens of a source file after preprocessing",
	Args:  cobra.ExactArgs(1),

	Run: func(cmd *cobra.Command, args []string) {
		writer, err := shared.Writer(os.Stdout)
		if err != nil {
			shared.Fatal(nil, err)
		}

		src, err := shared.LoadSource(args[0])
		if err != nil {
			shared.Fatal(nil, err)
		}

		toks, err := frontend.Tokenize(src, shared.Options()...)
		if err != nil {
			shared.Fatal(src, err)
		}

		if err := writer.Write(repl.TokenTable(toks)); err != nil {
			shared.Fatal(src, err)
		}
	},
}
