// Package benchmarks compares the pool's executors and for-each categories.
package benchmarks

import (
	"container/list"
	"math"

	"github.com/utkarsh5026/parpool/pool"
)

// executorConfig names an executor under benchmark.
type executorConfig struct {
	name  string
	ex    pool.Executor
	close func()
}

// getAllExecutors returns every executor kind with workerCount workers.
// The caller must call close on each.
func getAllExecutors(workerCount int) []executorConfig {
	fifo := pool.New(pool.WithWorkerCount(workerCount))
	prio := pool.NewPriority(pool.WithWorkerCount(workerCount))

	return []executorConfig{
		{name: "Serial", ex: pool.Threads(0), close: func() {}},
		{name: "FIFO", ex: fifo, close: fifo.Close},
		{name: "Priority", ex: prio, close: prio.Close},
		{name: "Temporary", ex: pool.Threads(workerCount), close: func() {}},
	}
}

func closeAll(configs []executorConfig) {
	for _, c := range configs {
		c.close()
	}
}

// cpuBoundWork simulates a CPU-intensive operation on one element.
func cpuBoundWork(iterations int) func(i int) float64 {
	return func(i int) float64 {
		result := float64(i)
		for k := range iterations {
			result += math.Sqrt(float64(k + i))
		}
		return result
	}
}

// unevenWork costs more for larger indices, which rewards smaller chunks.
func unevenWork(size int) func(i int) float64 {
	return func(i int) float64 {
		return cpuBoundWork(1 + 400*i/max(size, 1))(i)
	}
}

func makeList(n int) *list.List {
	l := list.New()
	for i := range n {
		l.PushBack(i)
	}
	return l
}
