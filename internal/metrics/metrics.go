// Package metrics exposes Prometheus instrumentation for a thread pool.
//
// A nil *Recorder is valid and records nothing, so pools built without a
// registry pay only a nil check per event.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "parpool"

// Task outcomes used as the "outcome" label of the completed counter.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
	OutcomePanic = "panic"
)

// Recorder holds the collectors of a single pool.
type Recorder struct {
	TasksSubmitted prometheus.Counter
	TasksCompleted *prometheus.CounterVec
	TasksDropped   prometheus.Counter
	TaskDuration   prometheus.Histogram
	BusyWorkers    prometheus.Gauge
	QueueDepth     prometheus.Gauge
	Workers        prometheus.Gauge
}

// New registers the pool collectors with reg. Every series carries a
// constant "pool" label so several pools can share one registry. Pools
// registered under the same name share their collectors.
// It returns nil when reg is nil.
func New(reg prometheus.Registerer, pool string) *Recorder {
	if reg == nil {
		return nil
	}

	labels := prometheus.Labels{"pool": pool}

	return &Recorder{
		TasksSubmitted: register(reg, prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "tasks_submitted_total",
			Help:        "Total number of tasks accepted by the pool",
			ConstLabels: labels,
		})),
		TasksCompleted: register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "tasks_completed_total",
			Help:        "Total number of tasks that ran to completion, by outcome",
			ConstLabels: labels,
		}, []string{"outcome"})),
		TasksDropped: register(reg, prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "tasks_dropped_total",
			Help:        "Total number of queued tasks discarded by Close",
			ConstLabels: labels,
		})),
		TaskDuration: register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "task_duration_seconds",
			Help:        "Task execution time in seconds",
			Buckets:     prometheus.ExponentialBuckets(0.0001, 4, 10),
			ConstLabels: labels,
		})),
		BusyWorkers: register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "busy_workers",
			Help:        "Number of workers currently running a task",
			ConstLabels: labels,
		})),
		QueueDepth: register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "queue_depth",
			Help:        "Number of tasks waiting in the queue",
			ConstLabels: labels,
		})),
		Workers: register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "workers",
			Help:        "Number of worker goroutines owned by the pool",
			ConstLabels: labels,
		})),
	}
}

// register adds c to reg. When an identical collector is already
// registered it returns that one instead.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

// RecordSubmit counts an accepted task and updates the queue depth.
func (r *Recorder) RecordSubmit(queued int) {
	if r == nil {
		return
	}
	r.TasksSubmitted.Inc()
	r.QueueDepth.Set(float64(queued))
}

// RecordQueue updates the busy worker and queue depth gauges.
func (r *Recorder) RecordQueue(busy, queued int) {
	if r == nil {
		return
	}
	r.BusyWorkers.Set(float64(busy))
	r.QueueDepth.Set(float64(queued))
}

// RecordTask records a finished task with its outcome and duration.
func (r *Recorder) RecordTask(outcome string, d time.Duration) {
	if r == nil {
		return
	}
	r.TasksCompleted.WithLabelValues(outcome).Inc()
	r.TaskDuration.Observe(d.Seconds())
}

// RecordDropped counts n tasks discarded without running.
func (r *Recorder) RecordDropped(n int) {
	if r == nil || n == 0 {
		return
	}
	r.TasksDropped.Add(float64(n))
	r.QueueDepth.Set(0)
}

// SetWorkers records the number of live workers.
func (r *Recorder) SetWorkers(n int) {
	if r == nil {
		return
	}
	r.Workers.Set(float64(n))
}
