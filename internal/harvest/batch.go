package harvest

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Outcome pairs a work item with the result or error of its one attempt.
type Outcome[T, R any] struct {
	Item   T
	Result R
	Err    error
}

// ChunkFunc is called after each chunk completes and before the next chunk
// dispatches. chunk is 1-based; outcomes covers only that chunk, in input
// order. Because it runs between chunks, it may safely mutate shared state.
type ChunkFunc[T, R any] func(chunk, totalChunks int, outcomes []Outcome[T, R])

// RunBatches partitions items into consecutive chunks of at most batchSize
// and runs op concurrently for every item of a chunk, waiting for the whole
// chunk to finish before the next one starts. Concurrency within a chunk is
// unbounded. A single item's failure never aborts the chunk or subsequent
// chunks; every outcome is returned in input order. Each item gets exactly
// one attempt and a dispatched chunk always runs to completion.
func RunBatches[T, R any](ctx context.Context, items []T, batchSize int, op func(context.Context, T) (R, error), onChunk ChunkFunc[T, R]) []Outcome[T, R] {
	if len(items) == 0 {
		return nil
	}
	if batchSize <= 0 {
		batchSize = len(items)
	}

	outcomes := make([]Outcome[T, R], len(items))
	totalChunks := (len(items) + batchSize - 1) / batchSize

	for start := 0; start < len(items); start += batchSize {
		end := min(start+batchSize, len(items))

		var g errgroup.Group
		for i := start; i < end; i++ {
			i := i
			g.Go(func() error {
				res, err := op(ctx, items[i])
				outcomes[i] = Outcome[T, R]{Item: items[i], Result: res, Err: err}
				return nil
			})
		}
		_ = g.Wait()

		if onChunk != nil {
			onChunk(start/batchSize+1, totalChunks, outcomes[start:end])
		}
	}

	return outcomes
}
