package pool

import "math"

// chunk is a run of consecutive logical indices [start, start+count).
type chunk struct {
	start int
	count int
}

// chunkSize returns the number of elements per task for size elements on
// workers workers: about factor chunks per worker, never less than one
// element. With no workers the whole range is a single chunk.
func chunkSize(size, workers int, factor float64) int {
	if workers <= 0 {
		return max(size, 1)
	}
	if factor <= 0 {
		factor = defaultChunkingFactor
	}

	perWorker := size / workers
	return max(1, int(math.Round(float64(perWorker)/factor)))
}

// splitChunks partitions [0, size) into chunks of cs elements; the last
// chunk holds the remainder.
func splitChunks(size, cs int) []chunk {
	if size <= 0 {
		return nil
	}
	cs = max(cs, 1)

	chunks := make([]chunk, 0, (size+cs-1)/cs)
	for start := 0; start < size; start += cs {
		chunks = append(chunks, chunk{start: start, count: min(cs, size-start)})
	}
	return chunks
}

// stridedCount returns how many k >= 0 satisfy start + k*step < stop.
func stridedCount(start, stop, step int) int {
	if stop <= start {
		return 0
	}
	return int(uint(stop-start-1)/uint(step)) + 1
}
