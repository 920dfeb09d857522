package scheduler

import (
	"container/heap"
	"sort"

	"github.com/utkarsh5026/parpool/internal/types"
)

// taskHeap is a max-heap of submitted tasks ordered by priority, with
// submission order breaking ties.
//
// It implements heap.Interface and is only used through the heap package.
type taskHeap []*types.SubmittedTask

// Len returns the current number of tasks in the heap.
func (h taskHeap) Len() int {
	return len(h)
}

// Less reports whether the task at i should run before the task at j.
func (h taskHeap) Less(i, j int) bool {
	return runsBefore(h[i], h[j])
}

// Swap swaps the position of two tasks in the heap.
func (h taskHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

// Push appends a task. This is intended to meet the heap.Interface contract.
func (h *taskHeap) Push(x any) {
	task, ok := x.(*types.SubmittedTask)
	if !ok {
		panic("taskHeap.Push: invalid type assertion")
	}
	*h = append(*h, task)
}

// Pop removes the last task. This is intended to meet the heap.Interface contract.
func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// runsBefore orders by descending priority, then ascending sequence number.
// NaN priorities run after every other priority.
func runsBefore(a, b *types.SubmittedTask) bool {
	aNaN, bNaN := a.Priority != a.Priority, b.Priority != b.Priority
	switch {
	case aNaN != bNaN:
		return bNaN
	case !aNaN && a.Priority != b.Priority:
		return a.Priority > b.Priority
	}
	return a.Seq < b.Seq
}

// priorityQueue hands out the highest-priority task first.
type priorityQueue struct {
	h taskHeap
}

// NewPriority creates an empty priority queue.
func NewPriority() Queue {
	return &priorityQueue{}
}

func (q *priorityQueue) Push(task *types.SubmittedTask) {
	heap.Push(&q.h, task)
}

func (q *priorityQueue) Next() *types.SubmittedTask {
	return q.h[0]
}

func (q *priorityQueue) RemoveNext() {
	heap.Pop(&q.h)
}

func (q *priorityQueue) Len() int {
	return q.h.Len()
}

// Drain returns the pending tasks in the order they would have run.
func (q *priorityQueue) Drain() []*types.SubmittedTask {
	out := make([]*types.SubmittedTask, len(q.h))
	copy(out, q.h)
	sort.Slice(out, func(i, j int) bool {
		return runsBefore(out[i], out[j])
	})
	clear(q.h)
	q.h = q.h[:0]

	if len(out) > 0 {
		debugLog("priority queue drained %d tasks", len(out))
	}
	return out
}
