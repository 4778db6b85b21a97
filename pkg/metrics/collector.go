/*
 * Copyright (c) 2022, Gideon Williams gideon@gideonw.com
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package metrics

import (
	"github.com/BlueTheDuck/rcc/pkg/preprocessor"
	"github.com/prometheus/client_golang/prometheus"
)

type tableCollector struct {
	table *preprocessor.Table

	macros       *prometheus.Desc
	functionLike *prometheus.Desc
}

// NewTableCollector reports the current contents of a macro table.
func NewTableCollector(name string, table *preprocessor.Table) prometheus.Collector {
	return &tableCollector{
		table: table,
		macros: prometheus.NewDesc(
			"rcc_macro_table_size",
			"Number of macros in the table.",
			nil, prometheus.Labels{"table": name},
		),
		functionLike: prometheus.NewDesc(
			"rcc_macro_table_function_like",
			"Number of function-like macros in the table.",
			nil, prometheus.Labels{"table": name},
		),
	}
}

// Describe implements Collector.
func (c *tableCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.macros
	ch <- c.functionLike
}

// Collect implements Collector.
func (c *tableCollector) Collect(ch chan<- prometheus.Metric) {
	functionLike := 0
	for _, m := range c.table.Macros() {
		if m.FunctionLike {
			functionLike++
		}
	}

	ch <- prometheus.MustNewConstMetric(c.macros, prometheus.GaugeValue, float64(c.table.Len()))
	ch <- prometheus.MustNewConstMetric(c.functionLike, prometheus.GaugeValue, float64(functionLike))
}
