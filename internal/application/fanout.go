package application

import "sync"

// The two fan-out policies of this package are deliberate design
// choices, kept as named utilities so call sites read as policy.
// fn must capture its own failure inside R; neither combinator stops
// early or returns an error.

// parallelMap runs fn over all items concurrently and returns results
// in input order. Fan-out is unbounded: item counts here are CI job
// counts, small by construction.
func parallelMap[T, R any](items []T, fn func(T) R) []R {
	out := make([]R, len(items))

	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		go func(i int, item T) {
			defer wg.Done()
			out[i] = fn(item)
		}(i, item)
	}
	wg.Wait()

	return out
}

// sequentialMap runs fn over items strictly one at a time, in order.
// Used where each step is I/O-heavy and writes shared storage: one
// archive buffer resident at a time, no concurrent writes.
func sequentialMap[T, R any](items []T, fn func(T) R) []R {
	out := make([]R, len(items))
	for i, item := range items {
		out[i] = fn(item)
	}
	return out
}
