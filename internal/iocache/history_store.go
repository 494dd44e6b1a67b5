package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/specboard/internal/contract"
	"github.com/huangsam/specboard/schema"
)

// Table names for compliance history.
const (
	historyRunsTable = "specboard_compliance_runs"
	historyRowsTable = "specboard_compliance_rows"
)

// historyTables lists the history tables in creation order.
var historyTables = []string{historyRunsTable, historyRowsTable}

// HistoryStoreImpl implements the HistoryStore interface.
type HistoryStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// NewHistoryStore creates a new HistoryStore with the specified backend.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	if backend == schema.NoneBackend {
		// No-op store for disabled tracking
		return &HistoryStoreImpl{backend: backend}, nil
	}

	db, err := openDB(backend, connStr, contract.GetHistoryDBFilePath())
	if err != nil {
		return nil, err
	}

	if err := createHistoryTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history tables: %w", err)
	}

	return &HistoryStoreImpl{db: db, backend: backend}, nil
}

// createHistoryTables creates the history tables when they are missing.
func createHistoryTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{historyRunsTable, getCreateRunsQuery(backend)},
		{historyRowsTable, getCreateRowsQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}
	return nil
}

// getCreateRunsQuery returns the CREATE TABLE query for specboard_compliance_runs.
func getCreateRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(historyRunsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				service_id VARCHAR(255) NOT NULL,
				spec_id VARCHAR(255) NOT NULL,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				run_duration_ms BIGINT,
				total_rows INT,
				config_params TEXT
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				service_id TEXT NOT NULL,
				spec_id TEXT NOT NULL,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				run_duration_ms BIGINT,
				total_rows INT,
				config_params TEXT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				service_id TEXT NOT NULL,
				spec_id TEXT NOT NULL,
				start_time TEXT NOT NULL,
				end_time TEXT,
				run_duration_ms INTEGER,
				total_rows INTEGER,
				config_params TEXT
			);
		`, quotedTableName)
	}
}

// getCreateRowsQuery returns the CREATE TABLE query for specboard_compliance_rows.
func getCreateRowsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(historyRowsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				row_id VARCHAR(64) NOT NULL,
				recorded_at DATETIME(6) NOT NULL,
				analyzer VARCHAR(255) NOT NULL,
				severity VARCHAR(32) NOT NULL,
				code VARCHAR(255) NOT NULL,
				message TEXT NOT NULL,
				mitigation TEXT NOT NULL,
				detail_json MEDIUMTEXT NOT NULL,
				PRIMARY KEY (run_id, row_id)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				row_id TEXT NOT NULL,
				recorded_at TIMESTAMPTZ NOT NULL,
				analyzer TEXT NOT NULL,
				severity TEXT NOT NULL,
				code TEXT NOT NULL,
				message TEXT NOT NULL,
				mitigation TEXT NOT NULL,
				detail_json TEXT NOT NULL,
				PRIMARY KEY (run_id, row_id)
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER NOT NULL,
				row_id TEXT NOT NULL,
				recorded_at TEXT NOT NULL,
				analyzer TEXT NOT NULL,
				severity TEXT NOT NULL,
				code TEXT NOT NULL,
				message TEXT NOT NULL,
				mitigation TEXT NOT NULL,
				detail_json TEXT NOT NULL,
				PRIMARY KEY (run_id, row_id)
			);
		`, quotedTableName)
	}
}

// disabled reports whether the store is a no-op.
func (hs *HistoryStoreImpl) disabled() bool {
	return hs.backend == schema.NoneBackend || hs.db == nil
}

// placeholders returns a comma-separated placeholder list for n parameters.
func (hs *HistoryStoreImpl) placeholders(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = placeholder(hs.backend, i+1)
	}
	return strings.Join(parts, ", ")
}

// BeginRun creates a new compliance run and returns its unique ID.
func (hs *HistoryStoreImpl) BeginRun(startTime time.Time, serviceID, specID string, configParams map[string]any) (int64, error) {
	if hs.disabled() {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quotedTableName := quoteTableName(historyRunsTable, hs.backend)
	args := []any{serviceID, specID, formatTime(startTime, hs.backend), string(configJSON)}

	var runID int64
	switch hs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (service_id, spec_id, start_time, config_params) VALUES (%s) RETURNING run_id`,
			quotedTableName, hs.placeholders(len(args)))
		err = hs.db.QueryRow(query, args...).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (service_id, spec_id, start_time, config_params) VALUES (%s)`,
			quotedTableName, hs.placeholders(len(args)))
		var result sql.Result
		result, err = hs.db.Exec(query, args...)
		if err == nil {
			runID, err = result.LastInsertId()
		}
	}

	if err != nil {
		return 0, fmt.Errorf("failed to insert compliance run: %w", err)
	}
	return runID, nil
}

// EndRun updates the run with its end time, duration and row count.
func (hs *HistoryStoreImpl) EndRun(runID int64, endTime time.Time, totalRows int) error {
	if hs.disabled() {
		return nil
	}

	quotedTableName := quoteTableName(historyRunsTable, hs.backend)
	query := fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = %s`, quotedTableName, placeholder(hs.backend, 1))
	startTime, err := hs.scanTime(hs.db.QueryRow(query, runID))
	if err != nil {
		return fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
	}

	durationMs := endTime.Sub(startTime).Milliseconds()

	updateQuery := fmt.Sprintf(`UPDATE %s SET end_time = %s, run_duration_ms = %s, total_rows = %s WHERE run_id = %s`,
		quotedTableName,
		placeholder(hs.backend, 1), placeholder(hs.backend, 2), placeholder(hs.backend, 3), placeholder(hs.backend, 4))
	if _, err := hs.db.Exec(updateQuery, formatTime(endTime, hs.backend), durationMs, totalRows, runID); err != nil {
		return fmt.Errorf("failed to update compliance run: %w", err)
	}
	return nil
}

// RecordRows stores the rows built during a run in a single transaction.
func (hs *HistoryStoreImpl) RecordRows(runID int64, recordedAt time.Time, rows []schema.ComplianceRow) error {
	if hs.disabled() || len(rows) == 0 {
		return nil
	}

	quotedTableName := quoteTableName(historyRowsTable, hs.backend)
	query := fmt.Sprintf(`
		INSERT INTO %s (run_id, row_id, recorded_at, analyzer, severity, code, message, mitigation, detail_json)
		VALUES (%s)
	`, quotedTableName, hs.placeholders(9))

	tx, err := hs.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare row insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	at := formatTime(recordedAt, hs.backend)
	for _, row := range rows {
		detail, err := json.Marshal(row.Detail)
		if err != nil {
			return fmt.Errorf("failed to marshal detail for row %s: %w", row.ID, err)
		}
		if _, err := stmt.Exec(runID, row.ID, at, row.Analyzer, string(row.Severity),
			row.Code, row.Message, row.Mitigation, string(detail)); err != nil {
			return fmt.Errorf("failed to insert row %s: %w", row.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit rows: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(hs.backend),
		Connected:  hs.db != nil,
		TableSizes: make(map[string]int64),
	}

	if hs.disabled() {
		return status, nil
	}

	runsTable := quoteTableName(historyRunsTable, hs.backend)
	if err := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", runsTable)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		row := hs.db.QueryRow(fmt.Sprintf("SELECT run_id FROM %s ORDER BY run_id DESC LIMIT 1", runsTable))
		if err := row.Scan(&status.LastRunID); err != nil {
			return status, fmt.Errorf("failed to get last run id: %w", err)
		}

		lastRunTime, err := hs.scanTime(hs.db.QueryRow(fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id DESC LIMIT 1", runsTable)))
		if err != nil {
			return status, fmt.Errorf("failed to get last run time: %w", err)
		}
		status.LastRunTime = lastRunTime

		oldestRunTime, err := hs.scanTime(hs.db.QueryRow(fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id ASC LIMIT 1", runsTable)))
		if err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		status.OldestRunTime = oldestRunTime

		if err := hs.db.QueryRow(fmt.Sprintf("SELECT COALESCE(SUM(total_rows), 0) FROM %s", runsTable)).Scan(&status.TotalRows); err != nil {
			return status, fmt.Errorf("failed to get total rows: %w", err)
		}
	}

	for _, table := range historyTables {
		var count int64
		countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, hs.backend))
		if err := hs.db.QueryRow(countQuery).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}

// GetAllRuns retrieves every recorded run ordered by ID.
func (hs *HistoryStoreImpl) GetAllRuns() ([]schema.RunRecord, error) {
	if hs.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, service_id, spec_id, start_time, end_time, run_duration_ms, total_rows, config_params
		FROM %s ORDER BY run_id`, quoteTableName(historyRunsTable, hs.backend))

	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query compliance runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RunRecord
	for rows.Next() {
		var record schema.RunRecord

		switch hs.backend {
		case schema.SQLiteBackend:
			var startTimeStr string
			var endTimeStr *string
			if err := rows.Scan(&record.RunID, &record.ServiceID, &record.SpecID, &startTimeStr, &endTimeStr,
				&record.RunDuration, &record.TotalRows, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan compliance run: %w", err)
			}
			if record.StartTime, err = parseTime(startTimeStr); err != nil {
				return nil, fmt.Errorf("failed to parse start_time: %w", err)
			}
			if endTimeStr != nil {
				endTime, err := parseTime(*endTimeStr)
				if err != nil {
					return nil, fmt.Errorf("failed to parse end_time: %w", err)
				}
				record.EndTime = &endTime
			}
		default: // MySQL and PostgreSQL store as native datetime
			if err := rows.Scan(&record.RunID, &record.ServiceID, &record.SpecID, &record.StartTime, &record.EndTime,
				&record.RunDuration, &record.TotalRows, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan compliance run: %w", err)
			}
		}

		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating compliance runs: %w", err)
	}
	return results, nil
}

// GetAllRows retrieves every recorded row ordered by run and row ID.
func (hs *HistoryStoreImpl) GetAllRows() ([]schema.RowRecord, error) {
	if hs.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, row_id, recorded_at, analyzer, severity, code, message, mitigation, detail_json
		FROM %s ORDER BY run_id, row_id`, quoteTableName(historyRowsTable, hs.backend))

	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query compliance rows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RowRecord
	for rows.Next() {
		var record schema.RowRecord

		switch hs.backend {
		case schema.SQLiteBackend:
			var recordedAtStr string
			if err := rows.Scan(&record.RunID, &record.RowID, &recordedAtStr, &record.Analyzer, &record.Severity,
				&record.Code, &record.Message, &record.Mitigation, &record.DetailJSON); err != nil {
				return nil, fmt.Errorf("failed to scan compliance row: %w", err)
			}
			if record.RecordedAt, err = parseTime(recordedAtStr); err != nil {
				return nil, fmt.Errorf("failed to parse recorded_at: %w", err)
			}
		default:
			if err := rows.Scan(&record.RunID, &record.RowID, &record.RecordedAt, &record.Analyzer, &record.Severity,
				&record.Code, &record.Message, &record.Mitigation, &record.DetailJSON); err != nil {
				return nil, fmt.Errorf("failed to scan compliance row: %w", err)
			}
		}

		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating compliance rows: %w", err)
	}
	return results, nil
}

// scanTime reads a single timestamp column, handling SQLite's text storage.
func (hs *HistoryStoreImpl) scanTime(row *sql.Row) (time.Time, error) {
	if hs.backend == schema.SQLiteBackend {
		var s string
		if err := row.Scan(&s); err != nil {
			return time.Time{}, err
		}
		return parseTime(s)
	}
	var t time.Time
	err := row.Scan(&t)
	return t, err
}
