package outwriter

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/specboard/internal/contract"
	"github.com/huangsam/specboard/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintVersionsResults outputs the version timeline, dispatching based on the output format configured.
func PrintVersionsResults(report schema.VersionsReport, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForVersions(w, report)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForVersions(w, report)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return errParquetRowsOnly
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeVersionsTable(w, report, cfg, duration)
		}, "Wrote table")
	}
	return nil
}

// analyzerSummary renders "n analyzers" with failed ones called out.
func analyzerSummary(list []schema.ComplianceResult) string {
	failed := 0
	for _, r := range list {
		if r.Failed() {
			failed++
		}
	}
	if failed == 0 {
		return strconv.Itoa(len(list))
	}
	return fmt.Sprintf("%d (%d failed)", len(list), failed)
}

// writeVersionsTable generates and writes the human-readable table.
func writeVersionsTable(w io.Writer, report schema.VersionsReport, cfg *contract.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Version", "Revision", "Spec", "State", "Score", "Updated", "Analyzers"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	var data [][]string
	revisions := 0
	for _, g := range report.Groups {
		for i, r := range g.Revisions {
			version := ""
			if i == 0 {
				version = g.Version
			}
			data = append(data, []string{
				version,
				r.Revision,
				r.ID,
				string(r.State),
				formatScore(r.Score),
				r.UpdatedAt,
				analyzerSummary(r.Compliance),
			})
			revisions++
		}
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if len(report.Snapshots) > 0 {
		if _, err := fmt.Fprintf(w, "\nSnapshots (%d):\n", len(report.Snapshots)); err != nil {
			return err
		}
		for _, s := range report.Snapshots {
			if _, err := fmt.Fprintf(w, "  %s  %s  %s\n", s.ID, s.Version, s.UpdatedAt); err != nil {
				return err
			}
		}
	}

	if _, err := fmt.Fprintf(w, "Showing %d versions (%d revisions)\n", len(report.Groups), revisions); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}
