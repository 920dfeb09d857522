package scheduler

import (
	"container/heap"
	"math"
	"math/rand"
	"testing"

	"github.com/utkarsh5026/parpool/internal/types"
)

// createPriorityTask creates a submitted task with a priority and sequence number.
func createPriorityTask(priority float32, seq uint64) *types.SubmittedTask {
	return &types.SubmittedTask{
		Run:      func(int) {},
		Drop:     func(error) {},
		Priority: priority,
		Seq:      seq,
	}
}

func popAll(q Queue) []*types.SubmittedTask {
	var out []*types.SubmittedTask
	for q.Len() > 0 {
		out = append(out, q.Next())
		q.RemoveNext()
	}
	return out
}

func TestTaskHeap_Less(t *testing.T) {
	tests := []struct {
		name string
		a, b *types.SubmittedTask
		want bool
	}{
		{"higher priority first", createPriorityTask(5, 2), createPriorityTask(3, 1), true},
		{"lower priority later", createPriorityTask(3, 1), createPriorityTask(5, 2), false},
		{"tie broken by sequence", createPriorityTask(1, 1), createPriorityTask(1, 2), true},
		{"tie later sequence", createPriorityTask(1, 2), createPriorityTask(1, 1), false},
		{"negative priorities", createPriorityTask(-1, 5), createPriorityTask(-2, 1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := taskHeap{tt.a, tt.b}
			if got := h.Less(0, 1); got != tt.want {
				t.Errorf("Less() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTaskHeap_HeapInterface(t *testing.T) {
	h := &taskHeap{}
	heap.Push(h, createPriorityTask(1, 1))
	heap.Push(h, createPriorityTask(9, 2))
	heap.Push(h, createPriorityTask(4, 3))

	if h.Len() != 3 {
		t.Fatalf("expected length 3, got %d", h.Len())
	}

	top, ok := heap.Pop(h).(*types.SubmittedTask)
	if !ok {
		t.Fatal("heap.Pop returned unexpected type")
	}
	if top.Priority != 9 {
		t.Errorf("expected priority 9 on top, got %v", top.Priority)
	}
}

func TestPriorityQueue_DescendingOrder(t *testing.T) {
	q := NewPriority()
	priorities := []float32{5, 1, 3, 2, 4}
	for i, p := range priorities {
		q.Push(createPriorityTask(p, uint64(i+1)))
	}

	got := popAll(q)
	want := []float32{5, 4, 3, 2, 1}
	if len(got) != len(want) {
		t.Fatalf("expected %d tasks, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].Priority != want[i] {
			t.Errorf("position %d: expected priority %v, got %v", i, want[i], got[i].Priority)
		}
	}
}

func TestPriorityQueue_EqualPrioritiesAreFIFO(t *testing.T) {
	q := NewPriority()
	for seq := uint64(1); seq <= 50; seq++ {
		q.Push(createPriorityTask(7, seq))
	}

	for i, task := range popAll(q) {
		if task.Seq != uint64(i+1) {
			t.Fatalf("position %d: expected seq %d, got %d", i, i+1, task.Seq)
		}
	}
}

func TestPriorityQueue_NaNRunsLast(t *testing.T) {
	nan := float32(math.NaN())
	q := NewPriority()
	priorities := []float32{nan, 2, nan, float32(math.Inf(-1)), 9, nan, 0}
	for i, p := range priorities {
		q.Push(createPriorityTask(p, uint64(i+1)))
	}

	got := popAll(q)
	wantSeq := []uint64{5, 2, 7, 4, 1, 3, 6}
	for i, task := range got {
		if task.Seq != wantSeq[i] {
			t.Fatalf("position %d: expected seq %d, got %d", i, wantSeq[i], task.Seq)
		}
	}
}

func TestPriorityQueue_RandomizedOrdering(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	q := NewPriority()
	for seq := uint64(1); seq <= 1000; seq++ {
		q.Push(createPriorityTask(float32(rng.Intn(10)), seq))
	}

	got := popAll(q)
	for i := 1; i < len(got); i++ {
		if runsBefore(got[i], got[i-1]) {
			t.Fatalf("position %d: (%v,%d) should have run before (%v,%d)",
				i, got[i].Priority, got[i].Seq, got[i-1].Priority, got[i-1].Seq)
		}
	}
}

func TestPriorityQueue_Drain(t *testing.T) {
	q := NewPriority()
	q.Push(createPriorityTask(1, 1))
	q.Push(createPriorityTask(3, 2))
	q.Push(createPriorityTask(2, 3))

	drained := q.Drain()
	if q.Len() != 0 {
		t.Errorf("expected empty queue after drain, got %d", q.Len())
	}
	want := []float32{3, 2, 1}
	for i, task := range drained {
		if task.Priority != want[i] {
			t.Errorf("position %d: expected priority %v, got %v", i, want[i], task.Priority)
		}
	}

	q.Push(createPriorityTask(8, 4))
	if q.Len() != 1 || q.Next().Priority != 8 {
		t.Error("queue should be reusable after drain")
	}
}
