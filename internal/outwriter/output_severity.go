package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/specboard/internal/contract"
	"github.com/huangsam/specboard/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintSeverityResults outputs severity totals, dispatching based on the output format configured.
func PrintSeverityResults(report schema.SeverityReport, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForSeverities(w, report.Totals)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return errParquetRowsOnly
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSeverityTable(w, report, cfg, duration)
		}, "Wrote table")
	}
	return nil
}

// writeSeverityTable writes a two-column table with a grand total.
func writeSeverityTable(w io.Writer, report schema.SeverityReport, cfg *contract.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Severity", "Total"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	sum := 0
	data := make([][]string, 0, len(report.Totals))
	for _, t := range report.Totals {
		data = append(data, []string{severityLabel(t.Name, cfg), strconv.Itoa(t.Total)})
		sum += t.Total
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Total findings: %d\n", sum); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForSeverities writes one record per severity.
func writeCSVResultsForSeverities(w io.Writer, totals []schema.SeverityTotal) error {
	return writeCSVWithHeader(w, []string{"severity", "total"}, func(cw *csv.Writer) error {
		for _, t := range totals {
			if err := cw.Write([]string{string(t.Name), strconv.Itoa(t.Total)}); err != nil {
				return err
			}
		}
		return nil
	})
}
