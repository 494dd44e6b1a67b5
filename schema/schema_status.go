package schema

import "time"

// CacheStatus represents the status of the payload cache store.
type CacheStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}

// HistoryStatus represents the status of the compliance history store.
type HistoryStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	TotalRuns     int              `json:"total_runs"`
	LastRunID     int64            `json:"last_run_id"`
	LastRunTime   time.Time        `json:"last_run_time"`
	OldestRunTime time.Time        `json:"oldest_run_time"`
	TotalRows     int              `json:"total_rows"`
	TableSizes    map[string]int64 `json:"table_sizes"`
}

// RunRecord represents a row from the specboard_compliance_runs table.
type RunRecord struct {
	RunID        int64
	ServiceID    string
	SpecID       string
	StartTime    time.Time
	EndTime      *time.Time
	RunDuration  *int64 // Milliseconds
	TotalRows    *int32
	ConfigParams *string
}

// RowRecord represents a row from the specboard_compliance_rows table.
type RowRecord struct {
	RunID      int64
	RowID      string
	RecordedAt time.Time
	Analyzer   string
	Severity   string
	Code       string
	Message    string
	Mitigation string
	DetailJSON string
}
