package pool

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/utkarsh5026/parpool/internal/backoff"
	"golang.org/x/time/rate"
)

const (
	defaultChunkingFactor = 3.0

	// defaultMaxDelay caps retry delays when WithBackoff sets no limit.
	defaultMaxDelay = 30 * time.Second
)

// BackoffKind selects how retry delays grow.
type BackoffKind = backoff.Kind

const (
	BackoffExponential = backoff.Exponential
	BackoffJittered    = backoff.Jittered
	BackoffConstant    = backoff.Constant
)

// Option is a functional option for configuring a pool.
type Option func(*config)

type config struct {
	workerCount    int
	threadSetting  ThreadSetting
	chunkingFactor float64

	maxAttempts  int
	initialDelay time.Duration
	backoffKind  BackoffKind
	maxDelay     time.Duration
	jitter       float64
	rateLimiter  *rate.Limiter

	lockThreads bool
	pinThreads  bool

	beforeTaskStart func(worker int)
	onTaskEnd       func(worker int, d time.Duration, err error)
	onRetry         func(worker, attempt int, err error)

	name       string
	registerer prometheus.Registerer
}

func defaultConfig() *config {
	return &config{
		workerCount:    -1,
		threadSetting:  DefaultThreads,
		chunkingFactor: defaultChunkingFactor,
		backoffKind:    backoff.Exponential,
		jitter:         0.1,
	}
}

func (c *config) workers() int {
	if c.workerCount >= 0 {
		return c.workerCount
	}
	return c.threadSetting.Workers()
}

// WithWorkerCount sets the number of worker goroutines. Zero is valid and
// makes every submission run inline on the caller. Negative values are ignored.
func WithWorkerCount(count int) Option {
	return func(cfg *config) {
		if count >= 0 {
			cfg.workerCount = count
		}
	}
}

// WithThreadSetting sizes the pool from the number of CPUs. An explicit
// WithWorkerCount takes precedence.
func WithThreadSetting(s ThreadSetting) Option {
	return func(cfg *config) {
		cfg.threadSetting = s
	}
}

// WithChunkingFactor sets how many chunks per worker the for-each functions
// aim for. The default of 3 gives each worker about three chunks, which
// evens out uneven per-element costs. Non-positive values are ignored.
func WithChunkingFactor(f float64) Option {
	return func(cfg *config) {
		if f > 0 {
			cfg.chunkingFactor = f
		}
	}
}

// WithRetryPolicy sets a retry policy for tasks submitted with Enqueue,
// EnqueuePriority, Go and GoPriority. maxAttempts is the total number of
// attempts; initialDelay is the delay before the first retry. Tasks created
// by the for-each functions are never retried.
func WithRetryPolicy(maxAttempts int, initialDelay time.Duration) Option {
	return func(cfg *config) {
		if maxAttempts > 0 {
			cfg.maxAttempts = maxAttempts
		}

		if initialDelay > 0 {
			cfg.initialDelay = initialDelay
		}
	}
}

// WithBackoff selects how retry delays grow and caps them at maxDelay
// (30s when maxDelay is not positive). Only meaningful together with
// WithRetryPolicy.
func WithBackoff(kind BackoffKind, maxDelay time.Duration) Option {
	return func(cfg *config) {
		cfg.backoffKind = kind
		if maxDelay > 0 {
			cfg.maxDelay = maxDelay
		}
	}
}

// WithRateLimit sets a rate limiter for controlling task throughput.
// tasksPerSecond specifies the maximum number of tasks to start per second.
// burst specifies the maximum number of tasks that can start in a burst.
// If not specified, no rate limiting is applied.
//
// Example:
//
//	WithRateLimit(10, 5) // Allow 10 tasks/sec with burst of 5
func WithRateLimit(tasksPerSecond float64, burst int) Option {
	return func(cfg *config) {
		if tasksPerSecond > 0 && burst > 0 {
			cfg.rateLimiter = rate.NewLimiter(rate.Limit(tasksPerSecond), burst)
		}
	}
}

// WithLockedThreads locks every worker goroutine to its own OS thread for
// the lifetime of the pool.
func WithLockedThreads() Option {
	return func(cfg *config) {
		cfg.lockThreads = true
	}
}

// WithCPUAffinity locks every worker to an OS thread and pins worker i to
// CPU i % NumCPU where the platform supports it.
func WithCPUAffinity() Option {
	return func(cfg *config) {
		cfg.lockThreads = true
		cfg.pinThreads = true
	}
}

// WithBeforeTaskStart registers a hook called on the worker right before a
// task runs.
func WithBeforeTaskStart(hook func(worker int)) Option {
	return func(cfg *config) {
		cfg.beforeTaskStart = hook
	}
}

// WithOnTaskEnd registers a hook called after a task finished, with the
// time it took and the error it resolved to.
func WithOnTaskEnd(hook func(worker int, d time.Duration, err error)) Option {
	return func(cfg *config) {
		cfg.onTaskEnd = hook
	}
}

// WithOnRetry registers a hook called after each failed attempt that will
// be retried. attempt is 1 for the first failure.
func WithOnRetry(hook func(worker, attempt int, err error)) Option {
	return func(cfg *config) {
		cfg.onRetry = hook
	}
}

// WithName names the pool in metrics and debug logs. Pools are named with a
// short random id by default.
func WithName(name string) Option {
	return func(cfg *config) {
		if name != "" {
			cfg.name = name
		}
	}
}

// WithPrometheus registers the pool metrics with reg.
func WithPrometheus(reg prometheus.Registerer) Option {
	return func(cfg *config) {
		cfg.registerer = reg
	}
}
