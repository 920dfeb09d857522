package types

import (
	"context"
	"sync"
	"time"
)

// Future is the handle returned for every submitted task. It resolves exactly
// once, either to the value produced by the task or to the error it failed with.
//
// A Future may be read from any number of goroutines; every reader observes the
// same value and error.
type Future[R any] struct {
	once  sync.Once
	done  chan struct{}
	value R
	err   error
}

// NewFuture creates an unresolved future.
func NewFuture[R any]() *Future[R] {
	return &Future[R]{done: make(chan struct{})}
}

// Resolve stores the outcome of the task and wakes every waiter.
// Only the first call has an effect; it reports whether this call resolved the future.
func (f *Future[R]) Resolve(value R, err error) bool {
	resolved := false
	f.once.Do(func() {
		f.value = value
		f.err = err
		close(f.done)
		resolved = true
	})
	return resolved
}

// Get blocks until the task has completed and returns its result.
func (f *Future[R]) Get() (R, error) {
	<-f.done
	return f.value, f.err
}

// GetWithContext waits for the result until ctx is done.
// Giving up on the wait does not cancel the task itself.
func (f *Future[R]) GetWithContext(ctx context.Context) (R, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero R
		return zero, ctx.Err()
	}
}

// GetWithTimeout waits at most timeout for the result.
// A timeout <= 0 waits forever.
func (f *Future[R]) GetWithTimeout(timeout time.Duration) (R, error) {
	if timeout <= 0 {
		return f.Get()
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return f.GetWithContext(ctx)
}

// TryGet returns the result without blocking. ready is false while the task
// has not completed yet.
func (f *Future[R]) TryGet() (value R, err error, ready bool) {
	select {
	case <-f.done:
		return f.value, f.err, true
	default:
		var zero R
		return zero, nil, false
	}
}

// Done returns a channel that is closed once the future is resolved.
func (f *Future[R]) Done() <-chan struct{} {
	return f.done
}

// IsReady reports whether the future has been resolved.
func (f *Future[R]) IsReady() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}
