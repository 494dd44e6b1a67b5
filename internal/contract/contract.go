// Package contract provides interfaces and shared utilities for specboard's internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/specboard/schema"
)

// SpecSource fetches specs, compliance results and diffs for a service.
// This allows the pipeline to be tested without a live backend.
type SpecSource interface {
	// ListSpecs returns every uploaded or reconstructed revision of a service.
	ListSpecs(ctx context.Context, serviceID string) ([]schema.SpecRevision, error)

	// ListAnalyses returns compliance results for one spec, or for every spec
	// of the service when specID is empty.
	ListAnalyses(ctx context.Context, serviceID, specID string) ([]schema.ComplianceResult, error)

	// DiffSpecs compares two revisions of a service.
	DiffSpecs(ctx context.Context, serviceID, oldSpecID, newSpecID string) (schema.DiffResponse, error)
}

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetPayloadStore() CacheStore
	GetHistoryStore() HistoryStore
}

// CacheStore defines the interface for cached payload storage.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// HistoryStore records compliance runs and the rows they produced.
type HistoryStore interface {
	// BeginRun creates a new run and returns its unique ID
	BeginRun(startTime time.Time, serviceID, specID string, configParams map[string]any) (int64, error)

	// EndRun updates the run with completion data
	EndRun(runID int64, endTime time.Time, totalRows int) error

	// RecordRows stores the rows built during a run
	RecordRows(runID int64, recordedAt time.Time, rows []schema.ComplianceRow) error

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// GetAllRuns returns every recorded run ordered by ID
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllRows returns every recorded row ordered by run and row ID
	GetAllRows() ([]schema.RowRecord, error)

	// Close closes the underlying connection
	Close() error
}
