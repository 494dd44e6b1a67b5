package iocache

import (
	"errors"
	"fmt"

	"github.com/huangsam/specboard/internal/contract"
	"github.com/huangsam/specboard/internal/parquet"
)

// ExportHistory writes every recorded run and row to a pair of Parquet files
// named after outputFile.
func ExportHistory(store contract.HistoryStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("history store is not initialized. Set --history-backend")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no compliance history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total compliance runs: %d\n", status.TotalRuns)
	fmt.Printf("Total row records: %d\n", status.TableSizes[historyRowsTable])

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve compliance runs: %w", err)
	}
	rows, err := store.GetAllRows()
	if err != nil {
		return fmt.Errorf("failed to retrieve compliance rows: %w", err)
	}

	runsFile := outputFile + ".compliance_runs.parquet"
	if err := parquet.WriteRunsParquet(parquet.ConvertRunRecords(runs), runsFile); err != nil {
		return fmt.Errorf("failed to write compliance runs: %w", err)
	}
	fmt.Printf("Exported %d compliance runs to: %s\n", len(runs), runsFile)

	rowsFile := outputFile + ".compliance_rows.parquet"
	if err := parquet.WriteRowRecordsParquet(parquet.ConvertRowRecords(rows), rowsFile); err != nil {
		return fmt.Errorf("failed to write compliance rows: %w", err)
	}
	fmt.Printf("Exported %d row records to: %s\n", len(rows), rowsFile)

	return nil
}
