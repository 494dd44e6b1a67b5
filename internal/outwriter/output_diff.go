package outwriter

import (
	"fmt"
	"io"
	"time"

	"github.com/huangsam/specboard/internal/contract"
	"github.com/huangsam/specboard/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// diffFixedWidth is the room taken by every diff column except the changes.
const diffFixedWidth = 50

// PrintDiffResults outputs a spec diff, dispatching based on the output format configured.
func PrintDiffResults(report schema.DiffReport, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForDiff(w, report)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForDiff(w, report.Changes)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return errParquetRowsOnly
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDiffTable(w, report, cfg, duration)
		}, "Wrote table")
	}
	return nil
}

// breakingLabel marks breaking entries, in red when colors are on.
func breakingLabel(breaking bool, cfg *contract.Config) string {
	if !breaking {
		return "no"
	}
	if cfg.UseColors {
		return contract.BreakColor.Sprint("yes")
	}
	return "yes"
}

// writeDiffTable generates and writes the human-readable table.
func writeDiffTable(w io.Writer, report schema.DiffReport, cfg *contract.Config, duration time.Duration) error {
	s := report.Summary
	if _, err := fmt.Fprintf(w, "%s → %s: %d added, %d modified, %d deleted (%d breaking)\n",
		report.OldSpecID, report.NewSpecID, s.Added, s.Modified, s.Deleted, s.Breaking); err != nil {
		return err
	}

	if len(report.Changes) > 0 {
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Kind", "Method", "Path", "Breaking", "Changes"})
		table.Configure(func(cfg *tablewriter.Config) {
			cfg.Row.Alignment.Global = tw.AlignLeft
		})

		width := GetMaxTableTextWidth(cfg, diffFixedWidth)
		data := make([][]string, 0, len(report.Changes))
		for _, c := range report.Changes {
			data = append(data, []string{
				string(c.Kind),
				c.Method,
				contract.TruncatePath(c.Path, width),
				breakingLabel(c.Breaking, cfg),
				contract.TruncateText(formatChanges(c.DiffEntry), width),
			})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "Completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}
