package sph

import "sync"

// parallelRange runs fn for every i in [0, n), split into contiguous chunks
// across workers. Each particle index is handled by exactly one goroutine,
// so per-particle results are deterministic regardless of worker count.
// Returns only after every chunk completes; callers use it as the phase
// barrier between density, force, and integration passes.
func parallelRange(n, workers int, fn func(i int)) {
	if n <= 0 {
		return
	}
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	var wg sync.WaitGroup
	chunk := (n + workers - 1) / workers
	for w := 0; w < workers; w++ {
		start := w * chunk
		if start >= n {
			break
		}
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(i)
			}
		}(start, end)
	}
	wg.Wait()
}
