package harvest

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunBatches_ChunksAndOrder(t *testing.T) {
	items := make([]int, 12)
	for i := range items {
		items[i] = i
	}

	var chunkSizes []int
	outcomes := RunBatches(context.Background(), items, 5,
		func(_ context.Context, n int) (int, error) {
			if n == 1 {
				return 0, eris.New("boom")
			}
			return n * 2, nil
		},
		func(chunk, totalChunks int, chunkOutcomes []Outcome[int, int]) {
			assert.Equal(t, 3, totalChunks)
			chunkSizes = append(chunkSizes, len(chunkOutcomes))
		},
	)

	require.Len(t, outcomes, 12)
	assert.Equal(t, []int{5, 5, 2}, chunkSizes)

	for i, o := range outcomes {
		assert.Equal(t, i, o.Item, "input order must be preserved")
		if i == 1 {
			assert.Error(t, o.Err)
			continue
		}
		require.NoError(t, o.Err)
		assert.Equal(t, i*2, o.Result)
	}
}

func TestRunBatches_FailureDoesNotAbortChunk(t *testing.T) {
	var attempts atomic.Int32
	outcomes := RunBatches(context.Background(), []string{"a", "b", "c"}, 3,
		func(_ context.Context, s string) (string, error) {
			attempts.Add(1)
			if s == "b" {
				return "", eris.New("fetch failed")
			}
			return s, nil
		}, nil)

	assert.Equal(t, int32(3), attempts.Load())
	require.Len(t, outcomes, 3)
	assert.NoError(t, outcomes[0].Err)
	assert.Error(t, outcomes[1].Err)
	assert.NoError(t, outcomes[2].Err)
}

func TestRunBatches_NextChunkWaitsForMerge(t *testing.T) {
	// The merge callback for chunk N must run before chunk N+1 dispatches.
	var dispatched atomic.Int32
	var mergedBefore []int32

	RunBatches(context.Background(), []int{1, 2, 3, 4}, 2,
		func(_ context.Context, _ int) (struct{}, error) {
			dispatched.Add(1)
			return struct{}{}, nil
		},
		func(chunk, _ int, _ []Outcome[int, struct{}]) {
			mergedBefore = append(mergedBefore, dispatched.Load())
		},
	)

	assert.Equal(t, []int32{2, 4}, mergedBefore)
}

func TestRunBatches_Empty(t *testing.T) {
	outcomes := RunBatches(context.Background(), nil, 5,
		func(_ context.Context, n int) (int, error) { return n, nil }, nil)
	assert.Nil(t, outcomes)
}

func TestRunBatches_BatchSizeLargerThanInput(t *testing.T) {
	calls := 0
	outcomes := RunBatches(context.Background(), []int{1, 2}, 100,
		func(_ context.Context, n int) (int, error) { return n, nil },
		func(chunk, totalChunks int, _ []Outcome[int, int]) {
			calls++
			assert.Equal(t, 1, totalChunks)
		},
	)
	assert.Len(t, outcomes, 2)
	assert.Equal(t, 1, calls)
}
