/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package preprocess

import (
	"fmt"
	"os"
	"strings"

	"github.com/BlueTheDuck/rcc/cmd/rcc/shared"
	"github.com/BlueTheDuck/rcc/pkg/frontend"
	"github.com/BlueTheDuck/rcc/pkg/preprocessor"
	"github.com/BlueTheDuck/rcc/pkg/repl"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Command = &cobra.Command{
	Use:   "preprocess FILE",
	Short: "Print a source file with every macro resolved",
	Args:  cobra.ExactArgs(1),

	Run: func(cmd *cobra.Command, args []string) {
		src, err := shared.LoadSource(args[0])
		if err != nil {
			shared.Fatal(nil, err)
		}

		table := preprocessor.NewTable()
		spans, err := frontend.Preprocess(src, shared.Options(frontend.WithTable(table))...)
		if err != nil {
			shared.Fatal(src, err)
		}

		var out strings.Builder
		for _, s := range spans {
			out.WriteString(s.Text())
		}
		fmt.Print(out.String())

		if !viper.GetBool("rcc.preprocess.macros") {
			return
		}

		writer, err := shared.Writer(os.Stdout)
		if err != nil {
			shared.Fatal(nil, err)
		}
		fmt.Println()
		if err := writer.Write(repl.MacroTable(table.Macros())); err != nil {
			shared.Fatal(src, err)
		}
	},
}

func init() {
	// Flags for this command
	Command.Flags().BoolP("macros", "m", false, "Print the macro table after the output")

	// Bind flags to viper
	viper.BindPFlag("rcc.preprocess.macros", Command.Flags().Lookup("macros"))
}
