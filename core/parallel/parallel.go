// Package parallel splits index ranges across CPU cores.
package parallel

import (
	"runtime"
	"sync"
)

// Parallelize splits [0, items) into contiguous chunks, one per CPU core, and
// runs fn(start, end) for each chunk concurrently. It returns once every chunk
// has finished. Chunks never overlap, so fn may write to disjoint slice ranges
// without locking.
func Parallelize(items int, fn func(start, end int)) {
	if items <= 0 {
		return
	}

	numWorkers := runtime.NumCPU()
	if numWorkers > items {
		numWorkers = items
	}
	chunkSize := (items + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for start := 0; start < items; start += chunkSize {
		end := start + chunkSize
		if end > items {
			end = items
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// ParallelizeWithThreshold runs fn(0, items) on the calling goroutine when
// items is below threshold or threshold is not positive, and falls back to
// Parallelize otherwise.
func ParallelizeWithThreshold(items, threshold int, fn func(start, end int)) bool {
	if threshold <= 0 || items < threshold {
		if items > 0 {
			fn(0, items)
		}
		return false
	}
	Parallelize(items, fn)
	return true
}
