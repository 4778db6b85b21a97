/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package metrics

import (
	"time"

	"github.com/BlueTheDuck/rcc/pkg/lexer"
	"github.com/BlueTheDuck/rcc/pkg/preprocessor"
	"github.com/BlueTheDuck/rcc/pkg/span"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Store collects counters about a run of the front end. It doubles as a
// preprocessor.Observer.
type Store interface {
	preprocessor.Observer

	Registry() *prometheus.Registry
	RegisterCollector(c prometheus.Collector)

	// Collection
	ObserveSource(src *span.Source)
	ObserveSpan(stage string, tag span.Tag)
	IncTokens(tt lexer.TokenType)
	IncNodes(kind string)
	ObservePhase(phase string, d time.Duration)
}

type metricsStore struct {
	registry       *prometheus.Registry
	SourceBytes    prometheus.Counter
	Spans          *prometheus.CounterVec
	MacrosDefined  prometheus.Counter
	MacroExpansion *prometheus.CounterVec
	Tokens         *prometheus.CounterVec
	Nodes          *prometheus.CounterVec
	PhaseSeconds   *prometheus.HistogramVec
}

var (
	StageLabel = "stage"
	TagLabel   = "tag"
	MacroLabel = "macro"
	TypeLabel  = "type"
	KindLabel  = "kind"
	PhaseLabel = "phase"
)

func NewMetricsStore() Store {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	buckets := []float64{}
	for i := 1; i < 20; i++ {
		buckets = append(buckets, float64(2*i)*time.Microsecond.Seconds())
	}

	factory := promauto.With(reg)
	return &metricsStore{
		registry: reg,
		SourceBytes: factory.NewCounter(prometheus.CounterOpts{
			Name: "rcc_source_bytes",
			Help: "Bytes of source text fed to the front end",
		}),
		Spans: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rcc_spans",
			Help: "Spans coming out of each stage, by classification",
		}, []string{StageLabel, TagLabel}),
		MacrosDefined: factory.NewCounter(prometheus.CounterOpts{
			Name: "rcc_macros_defined",
			Help: "Number of #define directives processed",
		}),
		MacroExpansion: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rcc_macro_expansions",
			Help: "Macro expansions, by macro name",
		}, []string{MacroLabel}),
		Tokens: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rcc_tokens",
			Help: "Tokens produced by the tokenizer, by type",
		}, []string{TypeLabel}),
		Nodes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rcc_nodes",
			Help: "Syntax tree nodes built by the parser, by kind",
		}, []string{KindLabel}),
		PhaseSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rcc_phase_seconds",
			Help:    "Time spent in each phase of the front end",
			Buckets: buckets,
		}, []string{PhaseLabel}),
	}
}

func (ms *metricsStore) Registry() *prometheus.Registry {
	return ms.registry
}

func (ms *metricsStore) RegisterCollector(c prometheus.Collector) {
	ms.registry.MustRegister(c)
}

func (ms *metricsStore) ObserveSource(src *span.Source) {
	ms.SourceBytes.Add(float64(len(src.Text)))
}

func (ms *metricsStore) ObserveSpan(stage string, tag span.Tag) {
	ms.Spans.With(prometheus.Labels{StageLabel: stage, TagLabel: tag.ToString()}).Inc()
}

func (ms *metricsStore) MacroDefined(m *preprocessor.Macro) {
	ms.MacrosDefined.Inc()
}

func (ms *metricsStore) MacroExpanded(m *preprocessor.Macro) {
	ms.MacroExpansion.With(prometheus.Labels{MacroLabel: m.Key()}).Inc()
}

func (ms *metricsStore) IncTokens(tt lexer.TokenType) {
	ms.Tokens.With(prometheus.Labels{TypeLabel: tt.ToString()}).Inc()
}

func (ms *metricsStore) IncNodes(kind string) {
	ms.Nodes.With(prometheus.Labels{KindLabel: kind}).Inc()
}

func (ms *metricsStore) ObservePhase(phase string, d time.Duration) {
	ms.PhaseSeconds.
		With(prometheus.Labels{PhaseLabel: phase}).
		Observe(d.Seconds())
}
