package pool

import (
	"container/list"
	"errors"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
)

// sliceCursor is a forward iterator over a slice that counts its clones.
type sliceCursor struct {
	s      []int
	pos    int
	clones *atomic.Int32
}

func (c *sliceCursor) Valid() bool { return c.pos < len(c.s) }
func (c *sliceCursor) Value() int { return c.s[c.pos] }
func (c *sliceCursor) Advance() { c.pos++ }

func (c *sliceCursor) Clone() ForwardIterator[int] {
	c.clones.Add(1)
	return &sliceCursor{s: c.s, pos: c.pos, clones: c.clones}
}

func collect[E any](t *testing.T, ex Executor, seq Sequence[E]) []E {
	t.Helper()

	var mu sync.Mutex
	var got []E
	err := ForEachSeq(ex, seq, func(worker int, e E) error {
		mu.Lock()
		got = append(got, e)
		mu.Unlock()
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return got
}

func newList(n int) *list.List {
	l := list.New()
	for i := range n {
		l.PushBack(i)
	}
	return l
}

func TestForEachSeq_Categories(t *testing.T) {
	const n = 103
	want := make([]int, n)
	for i := range want {
		want[i] = i
	}

	sequences := []struct {
		name string
		seq  func() Sequence[int]
	}{
		{"random access", func() Sequence[int] { return FromSlice(want) }},
		{"random access func", func() Sequence[int] {
			return RandomAccess(n, func(i int) int { return i })
		}},
		{"list", func() Sequence[int] { return FromList[int](newList(n)) }},
		{"forward cursor", func() Sequence[int] {
			return Forward[int](&sliceCursor{s: want, clones: new(atomic.Int32)})
		}},
		{"input", func() Sequence[int] { return Input(slices.Values(want)) }},
		{"channel", func() Sequence[int] {
			ch := make(chan int)
			go func() {
				defer close(ch)
				for _, v := range want {
					ch <- v
				}
			}()
			return FromChan(ch)
		}},
	}

	executors := []struct {
		name string
		ex   Executor
	}{
		{"serial", Threads(0)},
		{"parallel", Threads(4)},
	}

	for _, e := range executors {
		for _, s := range sequences {
			t.Run(e.name+"/"+s.name, func(t *testing.T) {
				got := collect(t, e.ex, s.seq())
				if e.name == "serial" {
					if !slices.Equal(got, want) {
						t.Fatalf("expected serial order %v, got %v", want, got)
					}
					return
				}
				slices.Sort(got)
				if !slices.Equal(got, want) {
					t.Errorf("expected every element exactly once, got %v", got)
				}
			})
		}
	}
}

func TestForEachSeq_Empty(t *testing.T) {
	fn := func(int, int) error {
		t.Error("fn must not be called")
		return nil
	}

	empties := []Sequence[int]{
		{},
		FromSlice[int](nil),
		FromList[int](list.New()),
		FromList[int](nil),
		Input[int](nil),
		Input(slices.Values([]int{})),
	}
	for i, seq := range empties {
		if err := ForEachSeq(Threads(2), seq, fn); err != nil {
			t.Errorf("case %d: unexpected error: %v", i, err)
		}
	}
}

func TestForEachSeq_ForwardChunks(t *testing.T) {
	clones := new(atomic.Int32)
	s := make([]int, 120)
	cursor := &sliceCursor{s: s, clones: clones}

	// 4 workers, factor 3: 120/4/3 = 10 elements per chunk, 12 chunks
	p := New(WithWorkerCount(4))
	defer p.Close()

	var visited atomic.Int32
	err := ForEachSeq(p, Forward[int](cursor), func(int, int) error {
		visited.Add(1)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if visited.Load() != 120 {
		t.Errorf("expected 120 visits, got %d", visited.Load())
	}
	// one clone to count, one driving cursor, one per chunk
	if got := clones.Load(); got != 14 {
		t.Errorf("expected 14 clones, got %d", got)
	}
	if cursor.pos != 0 {
		t.Error("the caller's cursor must not move")
	}
}

func TestForEachSeq_ListMutation(t *testing.T) {
	type item struct{ v int }

	l := list.New()
	for i := range 50 {
		l.PushBack(&item{v: i})
	}

	err := ForEachSeq(Threads(3), FromList[*item](l), func(_ int, it *item) error {
		it.v *= 10
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	i := 0
	for e := l.Front(); e != nil; e = e.Next() {
		if got := e.Value.(*item).v; got != i*10 {
			t.Fatalf("expected %d, got %d", i*10, got)
		}
		i++
	}
}

func TestForEachSeq_InputFailures(t *testing.T) {
	sentinel := errors.New("bad element")

	t.Run("serial stops reading", func(t *testing.T) {
		var read int
		seq := Input(func(yield func(int) bool) {
			for i := range 10 {
				read++
				if !yield(i) {
					return
				}
			}
		})

		err := ForEachSeq(Threads(0), seq, func(_ int, e int) error {
			if e == 2 {
				return sentinel
			}
			return nil
		})
		if !errors.Is(err, sentinel) {
			t.Errorf("expected %v, got %v", sentinel, err)
		}
		if read != 3 {
			t.Errorf("expected 3 elements read, got %d", read)
		}
	})

	t.Run("parallel visits the rest", func(t *testing.T) {
		var calls atomic.Int32
		err := ForEachSeq(Threads(3), Input(slices.Values([]int{0, 1, 2, 3, 4, 5})), func(_ int, e int) error {
			calls.Add(1)
			if e == 2 {
				return sentinel
			}
			return nil
		})
		if !errors.Is(err, sentinel) {
			t.Errorf("expected %v, got %v", sentinel, err)
		}
		if calls.Load() != 6 {
			t.Errorf("expected 6 calls, got %d", calls.Load())
		}
	})
}
