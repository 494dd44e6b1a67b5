package outwriter

import (
	"fmt"
	"io"
	"time"

	"github.com/huangsam/specboard/internal/contract"
	"github.com/huangsam/specboard/internal/parquet"
	"github.com/huangsam/specboard/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// rowsFixedWidth is the room taken by every rows column except the message.
const rowsFixedWidth = 60

// PrintRowsResults outputs compliance rows, dispatching based on the output format configured.
func PrintRowsResults(page schema.RowsPage, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForRows(w, page)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForRows(w, page.Rows)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := parquet.WriteRowsParquet(page.Rows, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		_, _ = fmt.Fprintf(headerWriter, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRowsTable(w, page, cfg, duration)
		}, "Wrote table")
	}
	return nil
}

// writeRowsTable generates and writes the human-readable table.
func writeRowsTable(w io.Writer, page schema.RowsPage, cfg *contract.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"ID", "Analyzer", "Severity", "Code", "Message", "Location"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	width := GetMaxTableTextWidth(cfg, rowsFixedWidth)
	data := make([][]string, 0, len(page.Rows))
	for _, r := range page.Rows {
		data = append(data, []string{
			r.ID,
			r.Analyzer,
			severityLabel(r.Severity, cfg),
			r.Code,
			contract.TruncateText(r.Message, width),
			contract.TruncatePath(formatLocation(r.Detail), width/2),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if page.Page > 0 {
		if _, err := fmt.Fprintf(w, "Page %d of %d (%d rows total, %d per page)\n", page.Page, page.TotalPages, page.TotalRows, page.PageSize); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintf(w, "Showing %d of %d rows\n", len(page.Rows), page.TotalRows); err != nil {
			return err
		}
	}
	if page.RunID > 0 {
		if _, err := fmt.Fprintf(w, "Recorded as history run %d\n", page.RunID); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}
