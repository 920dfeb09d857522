package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"gopkg.in/yaml.v3"
)

func renderResults(results []Result) error {
	if output == "yaml" {
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(results); err != nil {
			return fmt.Errorf("failed to encode results: %w", err)
		}
		return enc.Close()
	}

	_, _ = bold.Println("═══════════════════════════════════════════════════════════")
	_, _ = bold.Println("📊 For-each results (best of runs)")
	_, _ = bold.Println("═══════════════════════════════════════════════════════════")

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Scenario", "Category", "Size", "Workers", "Serial", "Parallel", "Speedup", "Check")

	for _, r := range results {
		check := green.Sprint("ok")
		if !r.Match {
			check = red.Sprint("MISMATCH")
		}

		_ = table.Append([]string{
			r.Scenario,
			r.Category,
			fmt.Sprintf("%d", r.Size),
			fmt.Sprintf("%d", r.Workers),
			formatDuration(r.Serial),
			formatDuration(r.Parallel),
			formatSpeedup(r.Speedup),
			check,
		})
	}

	if err := table.Render(); err != nil {
		return err
	}
	fmt.Println()
	return nil
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return d.Round(time.Microsecond).String()
	default:
		return d.Round(10 * time.Microsecond).String()
	}
}

func formatSpeedup(s float64) string {
	text := fmt.Sprintf("%.2fx", s)
	switch {
	case s >= 1.5:
		return green.Sprint(text)
	case s < 1:
		return yellow.Sprint(text)
	default:
		return text
	}
}

// renderMetrics prints every counter and gauge of reg, one line per series.
func renderMetrics(reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	_, _ = bold.Println("📈 Pool metrics")
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Metric", "Labels", "Value")

	sort.Slice(families, func(i, j int) bool {
		return families[i].GetName() < families[j].GetName()
	})
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			value, ok := metricValue(mf.GetType(), m)
			if !ok {
				continue
			}
			_ = table.Append([]string{mf.GetName(), formatLabels(m), value})
		}
	}
	return table.Render()
}

func metricValue(t dto.MetricType, m *dto.Metric) (string, bool) {
	switch t {
	case dto.MetricType_COUNTER:
		return fmt.Sprintf("%.0f", m.GetCounter().GetValue()), true
	case dto.MetricType_GAUGE:
		return fmt.Sprintf("%.0f", m.GetGauge().GetValue()), true
	case dto.MetricType_HISTOGRAM:
		h := m.GetHistogram()
		if h.GetSampleCount() == 0 {
			return "0 samples", true
		}
		mean := time.Duration(h.GetSampleSum() / float64(h.GetSampleCount()) * float64(time.Second))
		return fmt.Sprintf("%d samples, mean %s", h.GetSampleCount(), formatDuration(mean)), true
	default:
		return "", false
	}
}

func formatLabels(m *dto.Metric) string {
	parts := make([]string, 0, len(m.GetLabel()))
	for _, lp := range m.GetLabel() {
		parts = append(parts, lp.GetName()+"="+lp.GetValue())
	}
	return strings.Join(parts, ",")
}
