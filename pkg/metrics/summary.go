/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package metrics

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	dto "github.com/prometheus/client_model/go"
)

const prefix = "rcc_"

// Row is one line of a human-readable metrics summary.
type Row struct {
	Metric string
	Labels string
	Value  string
}

// Summary gathers the front end's own metrics (runtime collectors are left
// out) into rows sorted by metric name and labels.
func Summary(store Store) ([]Row, error) {
	families, err := store.Registry().Gather()
	if err != nil {
		return nil, err
	}

	rows := []Row{}
	for _, family := range families {
		name := family.GetName()
		if !strings.HasPrefix(name, prefix) {
			continue
		}

		for _, m := range family.GetMetric() {
			rows = append(rows, Row{
				Metric: strings.TrimPrefix(name, prefix),
				Labels: labels(m),
				Value:  value(name, family.GetType(), m),
			})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Metric != rows[j].Metric {
			return rows[i].Metric < rows[j].Metric
		}
		return rows[i].Labels < rows[j].Labels
	})

	return rows, nil
}

func labels(m *dto.Metric) string {
	pairs := []string{}
	for _, l := range m.GetLabel() {
		pairs = append(pairs, l.GetName()+"="+l.GetValue())
	}
	return strings.Join(pairs, ",")
}

func value(name string, t dto.MetricType, m *dto.Metric) string {
	switch t {
	case dto.MetricType_COUNTER:
		v := m.GetCounter().GetValue()
		if strings.HasSuffix(name, "_bytes") {
			return humanize.Bytes(uint64(v))
		}
		return humanize.Comma(int64(v))
	case dto.MetricType_GAUGE:
		return humanize.Comma(int64(m.GetGauge().GetValue()))
	case dto.MetricType_HISTOGRAM:
		h := m.GetHistogram()
		total := time.Duration(math.Round(h.GetSampleSum() * float64(time.Second)))
		return humanize.Comma(int64(h.GetSampleCount())) + " in " + total.String()
	}
	return ""
}
