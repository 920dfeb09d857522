// Package pool provides a task-queue thread pool and a parallel for-each
// scheduler built on it.
//
// A ThreadPool owns a fixed number of worker goroutines, each with a stable
// index in [0, n). Tasks are queued in submission order and every
// submission returns a Future. PriorityThreadPool runs the highest priority
// queued task first and breaks ties in submission order.
//
// # Basic Usage
//
//	p := pool.New(pool.WithWorkerCount(4))
//	defer p.Close()
//
//	f, err := pool.Enqueue(p, func(worker int) (int, error) {
//	    return 42, nil
//	})
//	if err != nil {
//	    return err
//	}
//	v, err := f.Get()
//
// Submission functions are package level because they are generic in the
// result type, so one pool can run tasks of different result types.
//
// A pool with zero workers (WithWorkerCount(0) or WithThreadSetting(NoThreads))
// runs each task on the submitting goroutine, as worker 0, before Enqueue
// returns.
//
// # Parallel For-Each
//
// ForEach, ForEachStrided, ForEachSlice and ForEachSeq split a range into
// chunks and run one task per chunk on an Executor:
//
//	vec := make([]int, 10)
//	err := pool.ForEachStrided(p, 0, 10, 1, func(worker, i int) error {
//	    vec[i] = i
//	    return nil
//	})
//
// Threads(n) is an Executor that builds a pool for one call only.
//
// # Shutdown
//
// Wait blocks until the pool is idle. Close discards queued tasks, resolving
// their futures with ErrTaskDropped, and joins the workers. Shutdown lets the
// workers drain the queue first. Neither interrupts a running task.
//
// # Retry Logic
//
// Tasks submitted with Enqueue or Go can be retried with backoff:
//
//	p := pool.New(
//	    pool.WithRetryPolicy(3, 100*time.Millisecond),
//	    pool.WithBackoff(pool.BackoffJittered, time.Second),
//	)
//
// For-each tasks are never retried, so every element is visited exactly once.
//
// # Configuration Options
//
//   - WithWorkerCount(n), WithThreadSetting(s): number of workers (default: NumCPU)
//   - WithChunkingFactor(f): chunks per worker for the for-each functions (default: 3)
//   - WithRetryPolicy, WithBackoff, WithOnRetry: retries of submitted tasks
//   - WithRateLimit(tps, burst): throttle task starts
//   - WithLockedThreads, WithCPUAffinity: bind workers to OS threads and CPUs
//   - WithBeforeTaskStart, WithOnTaskEnd: task hooks
//   - WithName, WithPrometheus: metrics
package pool
