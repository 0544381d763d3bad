// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"sigs.k8s.io/yaml"

	"github.com/katalvlaran/dlcq/mono"
)

// printYAML marshals v with sigs.k8s.io/yaml (json tags) and writes it to w.
func printYAML(w io.Writer, v any) error {
	out, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

func monoKeys(b *mono.Basis) []string {
	keys := make([]string, b.Len())
	for i := range keys {
		keys[i] = b.At(i).Key()
	}
	return keys
}

type metricSample struct {
	Name   string            `json:"name"`
	Labels map[string]string `json:"labels,omitempty"`
	Value  float64           `json:"value"`
	Count  uint64            `json:"count,omitempty"`
}

// dumpMetrics writes the dlcq_* series of the default registry as YAML.
// Histograms report their sample sum as value.
func dumpMetrics(w io.Writer) error {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}

	var samples []metricSample
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), "dlcq_") {
			continue
		}
		for _, m := range mf.GetMetric() {
			s := metricSample{Name: mf.GetName(), Labels: map[string]string{}}
			for _, lp := range m.GetLabel() {
				s.Labels[lp.GetName()] = lp.GetValue()
			}
			switch {
			case m.GetCounter() != nil:
				s.Value = m.GetCounter().GetValue()
			case m.GetHistogram() != nil:
				s.Value = m.GetHistogram().GetSampleSum()
				s.Count = m.GetHistogram().GetSampleCount()
			}
			samples = append(samples, s)
		}
	}
	sort.SliceStable(samples, func(i, j int) bool { return samples[i].Name < samples[j].Name })

	return printYAML(w, map[string]any{"metrics": samples})
}
