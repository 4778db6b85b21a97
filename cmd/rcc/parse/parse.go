/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package parse

import (
	"fmt"
	"os"

	"github.com/BlueTheDuck/rcc/cmd/rcc/shared"
	"github.com/BlueTheDuck/rcc/pkg/ast"
	"github.com/BlueTheDuck/rcc/pkg/frontend"
	"github.com/BlueTheDuck/rcc/pkg/metrics"
	"github.com/BlueTheDuck/rcc/pkg/preprocessor"
	"github.com/BlueTheDuck/rcc/pkg/repl"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Command = &cobra.Command{
	Use:   "parse FILE",
	Short: "Print the syntax tree of a source file",
	Args:  cobra.ExactArgs(1),

	Run: func(cmd *cobra.Command, args []string) {
		src, err := shared.LoadSource(args[0])
		if err != nil {
			shared.Fatal(nil, err)
		}

		stats := viper.GetBool("rcc.parse.stats")
		store := metrics.NewMetricsStore()
		table := preprocessor.NewTable()
		store.RegisterCollector(metrics.NewTableCollector(src.Name, table))

		opts := shared.Options(frontend.WithTable(table))
		if stats {
			opts = append(opts, frontend.WithMetrics(store))
		}

		program, err := frontend.Parse(src, opts...)
		if err != nil {
			shared.Fatal(src, err)
		}

		fmt.Print(ast.Dump(program))

		if !stats {
			return
		}

		rows, err := metrics.Summary(store)
		if err != nil {
			shared.Fatal(src, err)
		}
		writer, err := shared.Writer(os.Stdout)
		if err != nil {
			shared.Fatal(nil, err)
		}
		fmt.Println()
		if err := writer.Write(repl.StatsTable(rows)); err != nil {
			shared.Fatal(src, err)
		}
	},
}

func init() {
	// Flags for this command
	Command.Flags().Bool("stats", false, "Print metrics about the run after the tree")

	// Bind flags to viper
	viper.BindPFlag("rcc.parse.stats", Command.Flags().Lookup("stats"))
}
