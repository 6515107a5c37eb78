// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "songmood"

// Submission outcomes used as the "result" label.
const (
	ResultOK       = "ok"
	ResultInvalid  = "invalid"
	ResultConflict = "conflict"
	ResultLimited  = "rate_limited"
	ResultError    = "error"
)

// Metrics holds the server's collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	Submissions  *prometheus.CounterVec
	RowsWritten  prometheus.Counter
	SongChanges  *prometheus.CounterVec
	CurrentIndex prometheus.Gauge
}

// New creates and registers all collectors, plus Go runtime and process
// collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Annotation submissions by result.",
		}, []string{"result"}),
		RowsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "response_rows_written_total",
			Help:      "Response rows appended to the log.",
		}),
		SongChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "song_changes_total",
			Help:      "Queue moves by cause (next, prev, set, advance).",
		}, []string{"cause"}),
		CurrentIndex: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "current_song_index",
			Help:      "Zero-based position of the current song.",
		}),
	}

	m.registry.MustRegister(
		m.Submissions,
		m.RowsWritten,
		m.SongChanges,
		m.CurrentIndex,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Submission counts one submission outcome. Rows are only counted for ResultOK.
func (m *Metrics) Submission(result string, rows int) {
	if m == nil {
		return
	}
	m.Submissions.WithLabelValues(result).Inc()
	if result == ResultOK {
		m.RowsWritten.Add(float64(rows))
	}
}

// SongChanged records a queue move to index.
func (m *Metrics) SongChanged(cause string, index int) {
	if m == nil {
		return
	}
	m.SongChanges.WithLabelValues(cause).Inc()
	m.CurrentIndex.Set(float64(index))
}

// SetCurrentIndex reports the queue position without counting a move.
func (m *Metrics) SetCurrentIndex(index int) {
	if m == nil {
		return
	}
	m.CurrentIndex.Set(float64(index))
}
