package pool

import "iter"

// Executor runs the tasks of a for-each call. *ThreadPool and
// *PriorityThreadPool run them on their workers; Threads builds a pool for
// the duration of one call.
type Executor interface {
	NumWorkerThreads() int

	// acquire returns the pool to submit to and a function releasing it.
	acquire() (*core, func())
}

func (c *core) acquire() (*core, func()) {
	return c, func() {}
}

// Threads is an Executor that starts a pool of n workers for a single
// for-each call and closes it when the call returns. Threads(0) runs the
// call serially on the caller.
type Threads int

// NumWorkerThreads returns n, or 0 for negative n.
func (n Threads) NumWorkerThreads() int {
	return max(int(n), 0)
}

func (n Threads) acquire() (*core, func()) {
	p := New(WithWorkerCount(n.NumWorkerThreads()))
	return &p.core, p.Close
}

// ForEach calls fn(worker, i) exactly once for every i in [0, size) and
// blocks until all calls returned.
//
// The range is split into chunks, one task per chunk, sized so that every
// worker gets about as many chunks as the pool's chunking factor. A chunk
// stops at its first error; other chunks keep running. ForEach returns the
// first error in chunk order, or nil.
//
// On an executor without workers the calls happen on the caller in
// increasing order with worker 0 and stop at the first error.
//
// A task must not call ForEach on its own pool: once every worker waits on
// chunks queued behind it, nothing is left to run them.
func ForEach(ex Executor, size int, fn func(worker, i int) error) error {
	c, release := ex.acquire()
	defer release()

	return forEachIndex(c, size, fn)
}

// ForEachStrided calls fn(worker, i) for i = start, start+step, ... while
// i < stop. step must be positive.
func ForEachStrided(ex Executor, start, stop, step int, fn func(worker, i int) error) error {
	if step <= 0 {
		return ErrInvalidStep
	}

	c, release := ex.acquire()
	defer release()

	return forEachIndex(c, stridedCount(start, stop, step), func(worker, k int) error {
		return fn(worker, start+k*step)
	})
}

// ForEachSlice calls fn with a pointer to every element of s, so fn may
// update the elements in place.
func ForEachSlice[E any](ex Executor, s []E, fn func(worker int, e *E) error) error {
	c, release := ex.acquire()
	defer release()

	return forEachIndex(c, len(s), func(worker, i int) error {
		return fn(worker, &s[i])
	})
}

// ForEachSeq calls fn for every element of seq. How the sequence is split
// depends on its category, see Sequence.
func ForEachSeq[E any](ex Executor, seq Sequence[E], fn func(worker int, e E) error) error {
	c, release := ex.acquire()
	defer release()

	debugLog("pool %s: for-each over %s sequence", c.name, seq.cat)

	switch seq.cat {
	case forward:
		return forEachForward(c, seq.first, fn)
	case input:
		return forEachInput(c, seq.seq, fn)
	default:
		return forEachIndex(c, seq.length, func(worker, i int) error {
			return fn(worker, seq.at(i))
		})
	}
}

func forEachIndex(c *core, size int, fn func(worker, i int) error) error {
	if size <= 0 {
		return nil
	}

	cs := chunkSize(size, c.workers, c.conf.chunkingFactor)
	chunks := splitChunks(size, cs)
	futures := make([]*Future[struct{}], 0, len(chunks))

	var submitErr error
	for _, ch := range chunks {
		f, err := submitFunc(c, 0, false, func(worker int) (struct{}, error) {
			for i := ch.start; i < ch.start+ch.count; i++ {
				if err := fn(worker, i); err != nil {
					return struct{}{}, err
				}
			}
			return struct{}{}, nil
		})
		if err != nil {
			submitErr = err
			break
		}
		futures = append(futures, f)
	}

	return awaitAll(futures, submitErr)
}

// forEachForward counts the elements on a clone of first, then walks a
// driving cursor over the range, giving each chunk its own clone.
func forEachForward[E any](c *core, first ForwardIterator[E], fn func(worker int, e E) error) error {
	if first == nil {
		return nil
	}

	size := 0
	for it := first.Clone(); it.Valid(); it.Advance() {
		size++
	}
	if size == 0 {
		return nil
	}

	cs := chunkSize(size, c.workers, c.conf.chunkingFactor)
	chunks := splitChunks(size, cs)
	futures := make([]*Future[struct{}], 0, len(chunks))
	cursor := first.Clone()

	var submitErr error
	for _, ch := range chunks {
		it := cursor.Clone()
		f, err := submitFunc(c, 0, false, func(worker int) (struct{}, error) {
			for k := 0; k < ch.count; k++ {
				if err := fn(worker, it.Value()); err != nil {
					return struct{}{}, err
				}
				it.Advance()
			}
			return struct{}{}, nil
		})
		if err != nil {
			submitErr = err
			break
		}
		futures = append(futures, f)

		for range ch.count {
			cursor.Advance()
		}
	}

	return awaitAll(futures, submitErr)
}

// forEachInput submits one task per element, reading elements on the
// calling goroutine.
func forEachInput[E any](c *core, seq iter.Seq[E], fn func(worker int, e E) error) error {
	if seq == nil {
		return nil
	}

	var futures []*Future[struct{}]
	var submitErr error
	for v := range seq {
		f, err := submitFunc(c, 0, false, func(worker int) (struct{}, error) {
			return struct{}{}, fn(worker, v)
		})
		if err != nil {
			submitErr = err
			break
		}

		if c.workers == 0 {
			if _, err := f.Get(); err != nil {
				return err
			}
			continue
		}
		futures = append(futures, f)
	}

	return awaitAll(futures, submitErr)
}

// awaitAll waits for every future and returns the first error among them in
// slice order, falling back to submitErr.
func awaitAll(futures []*Future[struct{}], submitErr error) error {
	var first error
	for _, f := range futures {
		if _, err := f.Get(); err != nil && first == nil {
			first = err
		}
	}
	if first != nil {
		return first
	}
	return submitErr
}
