package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/djraval/redwireless-scraper/internal/harvest"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestCreateAndCompleteRun(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, RunStatusDiscovering, run.Status)

	require.NoError(t, s.UpdateRunStatus(ctx, run.ID, RunStatusCollecting))

	stats := &harvest.Stats{Groups: 3, Companies: 12, PhoneListings: 45, DistinctPhones: 15}
	require.NoError(t, s.CompleteRun(ctx, run.ID, stats, "data/final_data.json"))

	runs, err := s.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	got := runs[0]
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, RunStatusComplete, got.Status)
	assert.Equal(t, "data/final_data.json", got.CorpusPath)
	require.NotNil(t, got.Stats)
	assert.Equal(t, 3, got.Stats.Groups)
	assert.Equal(t, 45, got.Stats.PhoneListings)
}

func TestFailRun(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx)
	require.NoError(t, err)

	require.NoError(t, s.FailRun(ctx, run.ID, eris.New("harvest: discovery found no companies")))

	runs, err := s.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, RunStatusFailed, runs[0].Status)
	assert.Contains(t, runs[0].Error, "no companies")
	assert.Nil(t, runs[0].Stats)
}

func TestUpdateRunStatus_UnknownRun(t *testing.T) {
	s := newTestStore(t)
	err := s.UpdateRunStatus(context.Background(), "missing", RunStatusComplete)
	require.Error(t, err)
}

func TestListRuns_Limit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := s.CreateRun(ctx)
		require.NoError(t, err)
	}

	runs, err := s.ListRuns(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

func TestListRuns_Empty(t *testing.T) {
	s := newTestStore(t)
	runs, err := s.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
