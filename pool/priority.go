package pool

import "github.com/utkarsh5026/parpool/internal/scheduler"

// PriorityThreadPool runs the queued task with the highest priority first.
// Tasks of equal priority run in submission order.
type PriorityThreadPool struct {
	core
}

// NewPriority creates a priority pool and starts its workers. It accepts
// the same options as New.
func NewPriority(opts ...Option) *PriorityThreadPool {
	p := &PriorityThreadPool{}
	p.init(scheduler.KindPriority, opts)
	return p
}

// EnqueuePriority submits fn with the given priority. Higher values start
// earlier. A task that is already running is never preempted.
func EnqueuePriority[R any](p *PriorityThreadPool, priority float32, fn TaskFunc[R]) (*Future[R], error) {
	return submitFunc(&p.core, priority, true, fn)
}

// GoPriority submits a prioritized task that only reports an error.
func GoPriority(p *PriorityThreadPool, priority float32, fn func(worker int) error) (*Future[struct{}], error) {
	return EnqueuePriority(p, priority, voidTask(fn))
}
