// Package parquet provides data structures and functions for exporting specboard
// compliance data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/huangsam/specboard/schema"
	"github.com/parquet-go/parquet-go"
)

// ComplianceRun represents a single recorded compliance run.
// This struct maps to the specboard_compliance_runs database table.
type ComplianceRun struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// ServiceID and SpecID identify what was analyzed
	ServiceID string `parquet:"service_id,snappy"`
	SpecID    string `parquet:"spec_id,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int64 `parquet:"run_duration_ms,optional,snappy"`

	// TotalRows is the number of compliance rows produced (nullable)
	TotalRows *int32 `parquet:"total_rows,optional,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// RecordedRow is a compliance row captured during a run.
// This struct maps to the specboard_compliance_rows database table.
type RecordedRow struct {
	RunID      int64     `parquet:"run_id,snappy"`
	RowID      string    `parquet:"row_id,snappy"`
	RecordedAt time.Time `parquet:"recorded_at,snappy"`
	Analyzer   string    `parquet:"analyzer,snappy,dict"`
	Severity   string    `parquet:"severity,snappy,dict"`
	Code       string    `parquet:"code,snappy,dict"`
	Message    string    `parquet:"message,snappy"`
	Mitigation string    `parquet:"mitigation,snappy"`
	DetailJSON string    `parquet:"detail_json,snappy"`
}

// Row is a compliance row as shown by the compliance command.
type Row struct {
	ID         string `parquet:"id,snappy"`
	Analyzer   string `parquet:"analyzer,snappy,dict"`
	Severity   string `parquet:"severity,snappy,dict"`
	Code       string `parquet:"code,snappy,dict"`
	Message    string `parquet:"message,snappy"`
	Mitigation string `parquet:"mitigation,snappy"`
	DetailJSON string `parquet:"detail_json,snappy"`
}

// writeParquet writes a slice of records to a Parquet file, inferring
// the schema from the struct tags of T.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteRunsParquet writes compliance runs to a Parquet file.
func WriteRunsParquet(data []ComplianceRun, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteRowRecordsParquet writes recorded compliance rows to a Parquet file.
func WriteRowRecordsParquet(data []RecordedRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteRowsParquet writes compliance rows to a Parquet file.
func WriteRowsParquet(rows []schema.ComplianceRow, outputPath string) error {
	converted, err := ConvertComplianceRows(rows)
	if err != nil {
		return err
	}
	return writeParquet(converted, outputPath)
}

// ConvertRunRecords converts schema.RunRecord to ComplianceRun for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []ComplianceRun {
	result := make([]ComplianceRun, len(records))
	for i, record := range records {
		result[i] = ComplianceRun{
			RunID:         record.RunID,
			ServiceID:     record.ServiceID,
			SpecID:        record.SpecID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDuration,
			TotalRows:     record.TotalRows,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertRowRecords converts schema.RowRecord to RecordedRow for Parquet export.
func ConvertRowRecords(records []schema.RowRecord) []RecordedRow {
	result := make([]RecordedRow, len(records))
	for i, record := range records {
		result[i] = RecordedRow{
			RunID:      record.RunID,
			RowID:      record.RowID,
			RecordedAt: record.RecordedAt,
			Analyzer:   record.Analyzer,
			Severity:   record.Severity,
			Code:       record.Code,
			Message:    record.Message,
			Mitigation: record.Mitigation,
			DetailJSON: record.DetailJSON,
		}
	}
	return result
}

// ConvertComplianceRows flattens compliance rows, encoding their detail as JSON.
func ConvertComplianceRows(rows []schema.ComplianceRow) ([]Row, error) {
	result := make([]Row, len(rows))
	for i, row := range rows {
		detail, err := json.Marshal(row.Detail)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal detail for row %s: %w", row.ID, err)
		}
		result[i] = Row{
			ID:         row.ID,
			Analyzer:   row.Analyzer,
			Severity:   string(row.Severity),
			Code:       row.Code,
			Message:    row.Message,
			Mitigation: row.Mitigation,
			DetailJSON: string(detail),
		}
	}
	return result, nil
}
