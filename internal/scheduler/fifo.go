package scheduler

import "github.com/utkarsh5026/parpool/internal/types"

// minCompact is the smallest consumed prefix worth compacting away.
const minCompact = 64

// fifoQueue is a slice-backed first-in-first-out queue.
// head indexes the next task; the consumed prefix is reclaimed once it
// dominates the backing array.
type fifoQueue struct {
	tasks []*types.SubmittedTask
	head  int
}

// NewFIFO creates an empty FIFO queue.
func NewFIFO() Queue {
	return &fifoQueue{}
}

func (q *fifoQueue) Push(task *types.SubmittedTask) {
	q.tasks = append(q.tasks, task)
}

func (q *fifoQueue) Next() *types.SubmittedTask {
	return q.tasks[q.head]
}

func (q *fifoQueue) RemoveNext() {
	q.tasks[q.head] = nil
	q.head++

	switch {
	case q.head == len(q.tasks):
		q.tasks = q.tasks[:0]
		q.head = 0
	case q.head >= minCompact && q.head*2 >= len(q.tasks):
		n := copy(q.tasks, q.tasks[q.head:])
		clear(q.tasks[n:])
		q.tasks = q.tasks[:n]
		q.head = 0
	}
}

func (q *fifoQueue) Len() int {
	return len(q.tasks) - q.head
}

func (q *fifoQueue) Drain() []*types.SubmittedTask {
	out := make([]*types.SubmittedTask, q.Len())
	copy(out, q.tasks[q.head:])
	clear(q.tasks)
	q.tasks = q.tasks[:0]
	q.head = 0

	if len(out) > 0 {
		debugLog("fifo drained %d tasks", len(out))
	}
	return out
}
