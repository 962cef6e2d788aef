package store

import (
	"context"
	"time"

	"github.com/djraval/redwireless-scraper/internal/harvest"
)

// RunStatus represents the current state of a harvest run.
type RunStatus string

const (
	RunStatusDiscovering RunStatus = "discovering"
	RunStatusEnriching   RunStatus = "enriching"
	RunStatusCollecting  RunStatus = "collecting"
	RunStatusComplete    RunStatus = "complete"
	RunStatusFailed      RunStatus = "failed"
)

// Run records one harvest execution.
type Run struct {
	ID         string         `json:"id"`
	Status     RunStatus      `json:"status"`
	Stats      *harvest.Stats `json:"stats,omitempty"`
	CorpusPath string         `json:"corpus_path,omitempty"`
	Error      string         `json:"error,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// Store defines the persistence interface for harvest run tracking.
type Store interface {
	CreateRun(ctx context.Context) (*Run, error)
	UpdateRunStatus(ctx context.Context, runID string, status RunStatus) error
	CompleteRun(ctx context.Context, runID string, stats *harvest.Stats, corpusPath string) error
	FailRun(ctx context.Context, runID string, runErr error) error
	ListRuns(ctx context.Context, limit int) ([]Run, error)

	Migrate(ctx context.Context) error
	Close() error
}
