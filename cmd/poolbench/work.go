package main

import (
	"container/list"
	"hash/fnv"
	"iter"
	"strconv"

	"github.com/utkarsh5026/parpool/internal/benchcfg"
	"github.com/utkarsh5026/parpool/pool"
)

// spin hashes v rounds times so each element costs a predictable amount of
// CPU time.
func spin(v uint64, rounds int) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	for range max(rounds, 1) {
		for i := range buf {
			buf[i] = byte(v >> (8 * i))
		}
		_, _ = h.Write(buf[:])
		v = h.Sum64()
	}
	return v
}

// cell is a list element; the worker writes its result next to the input.
type cell struct {
	in  uint64
	out uint64
}

// workload is the prepared input of one scenario.
type workload struct {
	scenario benchcfg.Scenario
	count    int
	slice    []uint64
	list     *list.List
}

func prepare(s benchcfg.Scenario) *workload {
	w := &workload{scenario: s, count: s.Size}

	switch s.Category {
	case benchcfg.CategoryStrided:
		w.count = (s.Size + s.Step - 1) / s.Step
	case benchcfg.CategorySlice:
		w.slice = make([]uint64, s.Size)
		for i := range w.slice {
			w.slice[i] = uint64(i)
		}
	case benchcfg.CategoryList:
		w.list = list.New()
		for i := range s.Size {
			w.list.PushBack(&cell{in: uint64(i)})
		}
	}
	return w
}

// run executes the scenario on ex and returns a checksum that is the same
// for every correct run, whatever the executor.
func (w *workload) run(ex pool.Executor) (uint64, error) {
	s := w.scenario
	results := make([]uint64, w.count)

	var err error
	switch s.Category {
	case benchcfg.CategoryIndex:
		err = pool.ForEach(ex, s.Size, func(_, i int) error {
			results[i] = spin(uint64(i), s.Work)
			return nil
		})

	case benchcfg.CategoryStrided:
		stop := s.Start + s.Size
		err = pool.ForEachStrided(ex, s.Start, stop, s.Step, func(_, i int) error {
			results[(i-s.Start)/s.Step] = spin(uint64(i), s.Work)
			return nil
		})

	case benchcfg.CategorySlice:
		input := append([]uint64(nil), w.slice...)
		err = pool.ForEachSlice(ex, input, func(_ int, e *uint64) error {
			*e = spin(*e, s.Work)
			return nil
		})
		copy(results, input)

	case benchcfg.CategoryList:
		err = pool.ForEachSeq(ex, pool.FromList[*cell](w.list), func(_ int, c *cell) error {
			c.out = spin(c.in, s.Work)
			return nil
		})
		i := 0
		for e := w.list.Front(); e != nil; e = e.Next() {
			results[i] = e.Value.(*cell).out
			i++
		}

	case benchcfg.CategoryInput:
		err = pool.ForEachSeq(ex, pool.Input(indices(s.Size)), func(_ int, i int) error {
			results[i] = spin(uint64(i), s.Work)
			return nil
		})
	}
	if err != nil {
		return 0, err
	}

	return checksum(results), nil
}

func indices(n int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := range n {
			if !yield(i) {
				return
			}
		}
	}
}

func checksum(results []uint64) uint64 {
	h := fnv.New64a()
	for _, r := range results {
		_, _ = h.Write([]byte(strconv.FormatUint(r, 16)))
	}
	return h.Sum64()
}
