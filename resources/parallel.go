package resources

import (
	"runtime"
	"sync"
)

// parallelThreshold is the minimum branch count to split scoring across
// goroutines. Below this the overhead dominates.
const parallelThreshold = 64

// forChunks calls fn over [0, n) split into contiguous chunks, one per worker.
// Each chunk gets its own scratch index buffer. fn must only write to indices
// inside its own range.
func forChunks(n, workers int, fn func(lo, hi int, scratch []int)) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if n < parallelThreshold || workers == 1 {
		fn(0, n, make([]int, 0, 64))
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi, make([]int, 0, 64))
		}(lo, hi)
	}
	wg.Wait()
}
