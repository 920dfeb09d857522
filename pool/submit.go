package pool

import "github.com/utkarsh5026/parpool/internal/types"

// Future is the handle of a submitted task. It resolves exactly once to the
// task's result and error.
type Future[R any] = types.Future[R]

// TaskFunc is a task that produces a value. worker is the index of the
// worker running it.
type TaskFunc[R any] = types.TaskFunc[R]

// Enqueue submits fn to p and returns a future for its result. It fails with
// ErrPoolClosed once the pool is shutting down. On a pool without workers fn
// has already run when Enqueue returns.
func Enqueue[R any](p *ThreadPool, fn TaskFunc[R]) (*Future[R], error) {
	return submitFunc(&p.core, 0, true, fn)
}

// Go submits a task that only reports an error.
func Go(p *ThreadPool, fn func(worker int) error) (*Future[struct{}], error) {
	return Enqueue(p, voidTask(fn))
}

func voidTask(fn func(worker int) error) TaskFunc[struct{}] {
	return func(worker int) (struct{}, error) {
		return struct{}{}, fn(worker)
	}
}

// submitFunc boxes fn into a queue entry whose Run resolves the returned
// future and whose Drop resolves it with the drop reason.
func submitFunc[R any](c *core, priority float32, retry bool, fn TaskFunc[R]) (*Future[R], error) {
	future := types.NewFuture[R]()

	task := &types.SubmittedTask{
		Priority: priority,
		Run: func(worker int) {
			var value R
			err := c.execute(worker, retry, func(worker int) error {
				v, err := fn(worker)
				value = v
				return err
			})
			future.Resolve(value, err)
		},
		Drop: func(err error) {
			var zero R
			future.Resolve(zero, err)
		},
	}

	if err := c.submit(task); err != nil {
		return nil, err
	}
	return future, nil
}
