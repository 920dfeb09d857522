package types

// TaskFunc is the unit of work accepted by the pool. It receives the index of
// the worker executing it, in [0, n) for a pool with n workers, or 0 when the
// pool runs tasks inline.
type TaskFunc[R any] func(worker int) (R, error)

// SubmittedTask is the boxed, type-erased form of a task while it sits in a
// queue. It is referenced by exactly one owner at a time: the queue until a
// worker dequeues it, then the worker until Run returns.
type SubmittedTask struct {
	// Run executes the task and resolves its future.
	Run func(worker int)

	// Drop resolves the future with err without running the task.
	Drop func(err error)

	// Priority orders tasks in a priority queue; higher runs first.
	Priority float32

	// Seq is the submission sequence number assigned under the queue lock.
	Seq uint64
}
