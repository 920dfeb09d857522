// Package backoff computes the delays between retries of a failed task.
//
// Every strategy is stateless, so a single value can be shared by all workers
// of a pool and by concurrent retries of different tasks.
package backoff

import (
	"math/rand/v2"
	"time"
)

// maxShift caps the exponent so the multiplication cannot overflow.
const maxShift = 62

// Kind selects the backoff algorithm.
type Kind int

const (
	// Exponential doubles the delay on every attempt: initial * 2^attempt.
	Exponential Kind = iota

	// Jittered is Exponential scaled by a random factor in [1-j, 1+j], which
	// spreads out retries of tasks that failed at the same moment.
	Jittered

	// Constant waits the initial delay before every retry.
	Constant
)

func (k Kind) String() string {
	switch k {
	case Exponential:
		return "exponential"
	case Jittered:
		return "jittered"
	case Constant:
		return "constant"
	default:
		return "unknown"
	}
}

// Strategy returns the delay to wait before retry number attempt.
// attempt is 0 for the first retry after the initial failure.
type Strategy interface {
	NextDelay(attempt int) time.Duration
}

// New creates a strategy of the given kind. maxDelay caps every delay;
// jitter is only used by Jittered and is clamped to [0, 1].
func New(kind Kind, initial, maxDelay time.Duration, jitter float64) Strategy {
	if maxDelay < initial {
		maxDelay = initial
	}

	switch kind {
	case Jittered:
		return jittered{initial: initial, max: maxDelay, factor: clamp(jitter, 0, 1)}
	case Constant:
		return constant(initial)
	default:
		return exponential{initial: initial, max: maxDelay}
	}
}

type exponential struct {
	initial, max time.Duration
}

func (e exponential) NextDelay(attempt int) time.Duration {
	return exponentialDelay(attempt, e.initial, e.max)
}

type jittered struct {
	initial, max time.Duration
	factor       float64
}

func (j jittered) NextDelay(attempt int) time.Duration {
	base := exponentialDelay(attempt, j.initial, j.max)
	scale := 1 + (rand.Float64()*2-1)*j.factor // #nosec G404 -- jitter does not need crypto rand
	return clamp(time.Duration(float64(base)*scale), 0, j.max)
}

type constant time.Duration

func (c constant) NextDelay(attempt int) time.Duration {
	if attempt < 0 {
		return 0
	}
	return time.Duration(c)
}

func exponentialDelay(attempt int, initial, maxDelay time.Duration) time.Duration {
	if attempt < 0 {
		return 0
	}
	if attempt >= maxShift {
		return maxDelay
	}

	delay := initial * time.Duration(int64(1)<<uint(attempt))
	if delay > maxDelay || delay < 0 || (initial > 0 && delay/initial != time.Duration(int64(1)<<uint(attempt))) {
		return maxDelay
	}
	return delay
}

func clamp[T int | int64 | float64 | time.Duration](v, lo, hi T) T {
	return max(lo, min(v, hi))
}
