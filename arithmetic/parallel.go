package arithmetic

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Chunks splits [0, n) into at most workers contiguous, disjoint ranges of
// near equal size, returned as [start, end) pairs in ascending order.
// workers <= 0 means one range per available CPU.
func Chunks(n, workers int) [][2]int {
	if n <= 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n {
		workers = n
	}
	size, rem := n/workers, n%workers
	chunks := make([][2]int, 0, workers)
	start := 0
	for i := 0; i < workers; i++ {
		end := start + size
		if i < rem {
			end++
		}
		chunks = append(chunks, [2]int{start, end})
		start = end
	}
	return chunks
}

// Execute calls f once per range returned by Chunks(n, workers), concurrently,
// and returns the first error after every call has returned. With a single
// range f runs on the calling goroutine.
func Execute(n, workers int, f func(chunk, start, end int) error) error {
	chunks := Chunks(n, workers)
	if len(chunks) == 1 {
		return f(0, chunks[0][0], chunks[0][1])
	}
	var g errgroup.Group
	for i, c := range chunks {
		i, start, end := i, c[0], c[1]
		g.Go(func() error {
			return f(i, start, end)
		})
	}
	return g.Wait()
}

// Parallelize applies f to disjoint contiguous sub-slices of v covering it
// exactly once. start is the index in v of the first element of chunk.
// Results written by f into chunk are identical to a sequential run as long as
// f only reads from and writes to its own chunk.
func Parallelize[T any](v []T, workers int, f func(chunk []T, start int) error) error {
	return Execute(len(v), workers, func(_, start, end int) error {
		return f(v[start:end], start)
	})
}
