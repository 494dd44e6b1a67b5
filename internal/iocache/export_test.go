package iocache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/specboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportHistory(t *testing.T) {
	t.Run("requires output file", func(t *testing.T) {
		err := ExportHistory(&MockHistoryStore{}, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--output-file is required")
	})

	t.Run("requires a store", func(t *testing.T) {
		err := ExportHistory(nil, "out")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not initialized")
	})

	t.Run("nothing to export", func(t *testing.T) {
		store := &MockHistoryStore{}
		store.On("GetStatus").Return(schema.HistoryStatus{Backend: "sqlite", Connected: true}, nil)

		err := ExportHistory(store, filepath.Join(t.TempDir(), "out"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no compliance history")
		store.AssertExpectations(t)
	})

	t.Run("writes both files", func(t *testing.T) {
		store, err := NewHistoryStore(schema.SQLiteBackend, ":memory:")
		require.NoError(t, err)
		defer func() { _ = store.Close() }()

		runID, err := store.BeginRun(fixedTime, "svc", "spec", map[string]any{"sort": "code"})
		require.NoError(t, err)
		require.NoError(t, store.RecordRows(runID, fixedTime, sampleRows()))
		require.NoError(t, store.EndRun(runID, fixedTime.Add(time.Second), 2))

		out := filepath.Join(t.TempDir(), "history")
		require.NoError(t, ExportHistory(store, out))
		assert.FileExists(t, out+".compliance_runs.parquet")
		assert.FileExists(t, out+".compliance_rows.parquet")
	})
}
