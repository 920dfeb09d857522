package scheduler

import "github.com/utkarsh5026/parpool/internal/types"

// Kind selects the ordering policy of a Queue.
type Kind int

const (
	// KindFIFO hands out tasks in submission order.
	KindFIFO Kind = iota

	// KindPriority hands out the highest-priority task first. Tasks of equal
	// priority are handed out in submission order.
	KindPriority
)

func (k Kind) String() string {
	switch k {
	case KindFIFO:
		return "fifo"
	case KindPriority:
		return "priority"
	default:
		return "unknown"
	}
}

// Queue is the container of pending tasks shared by all workers of a pool.
// Implementations are not safe for concurrent use; the pool guards every call
// with its own mutex so the worker loop stays agnostic to the ordering policy.
type Queue interface {
	// Push inserts a task. The task's Seq must already be assigned.
	Push(task *types.SubmittedTask)

	// Next returns the task that RemoveNext would remove, without removing it.
	// It must not be called on an empty queue.
	Next() *types.SubmittedTask

	// RemoveNext discards the task returned by Next.
	RemoveNext()

	// Len returns the number of pending tasks.
	Len() int

	// Drain removes and returns every pending task in queue order.
	Drain() []*types.SubmittedTask
}

// New creates an empty queue of the given kind.
func New(kind Kind) Queue {
	switch kind {
	case KindPriority:
		return NewPriority()
	case KindFIFO:
		fallthrough
	default:
		return NewFIFO()
	}
}
