package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/specboard/internal/contract"
	"github.com/huangsam/specboard/schema"
)

// PrintCheckResults outputs a check result, dispatching based on the output format configured.
func PrintCheckResults(result schema.CheckResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForCheck(w, result, cfg.SeverityLimits)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return errParquetRowsOnly
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCheckText(w, result, cfg, duration)
		}, "Wrote text")
	}
	return nil
}

// writeCheckText prints the check result in a concise format suitable for CI/CD.
func writeCheckText(w io.Writer, result schema.CheckResult, cfg *contract.Config, duration time.Duration) error {
	if err := writeCheckHeader(w, result, cfg, duration); err != nil {
		return err
	}
	if result.Passed {
		return writeCheckSuccess(w, result, cfg)
	}
	return writeCheckFailure(w, result, cfg)
}

// formatLimits renders the configured limits in severity order.
func formatLimits(limits map[schema.Severity]int) string {
	out := ""
	for _, sev := range schema.AllSeverities {
		limit, ok := limits[sev]
		if !ok {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += fmt.Sprintf("%s=%d", sev, limit)
	}
	if out == "" {
		return "none"
	}
	return out
}

// writeCheckHeader prints the common header information for check results.
func writeCheckHeader(w io.Writer, result schema.CheckResult, cfg *contract.Config, duration time.Duration) error {
	if _, err := fmt.Fprintln(w, "Compliance Check Results:"); err != nil {
		return err
	}

	labels := []string{"Spec:", "Version:", "Limits:", "Breaking:"}
	breaking := "ignored"
	if cfg.FailOnBreaking {
		breaking = "fail"
	}
	values := []any{result.SpecID, result.Version, formatLimits(cfg.SeverityLimits), breaking}

	maxLabelLen := 0
	for _, label := range labels {
		maxLabelLen = max(maxLabelLen, len(label))
	}
	for i, label := range labels {
		if _, err := fmt.Fprintf(w, "  %-*s %v\n", maxLabelLen+1, label, values[i]); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "\nChecked %d severities in %v\n\n", len(result.Totals), duration)
	return err
}

// writeCheckSuccess prints the success case output.
func writeCheckSuccess(w io.Writer, result schema.CheckResult, cfg *contract.Config) error {
	if _, err := fmt.Fprintf(w, "%sAll severities within limits\n\n", headerPrefix(cfg, "✅")); err != nil {
		return err
	}
	return writeObservedTotals(w, result, cfg)
}

// writeCheckFailure prints the failure case output.
func writeCheckFailure(w io.Writer, result schema.CheckResult, cfg *contract.Config) error {
	if _, err := fmt.Fprintf(w, "%sCheck failed\n\n", headerPrefix(cfg, "❌")); err != nil {
		return err
	}
	if len(result.Violations) > 0 {
		if _, err := fmt.Fprintln(w, "Limit violations:"); err != nil {
			return err
		}
		for _, v := range result.Violations {
			if _, err := fmt.Fprintf(w, "  %s: %d > %d\n", severityLabel(v.Severity, cfg), v.Total, v.Limit); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	if len(result.Breaking) > 0 {
		if _, err := fmt.Fprintf(w, "Breaking changes (%d):\n", len(result.Breaking)); err != nil {
			return err
		}
		for _, b := range result.Breaking {
			if _, err := fmt.Fprintf(w, "  %s %s %s\n", b.Kind, b.Method, b.Path); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return writeObservedTotals(w, result, cfg)
}

// writeObservedTotals lists every severity total and any analyzer that did not finish.
func writeObservedTotals(w io.Writer, result schema.CheckResult, cfg *contract.Config) error {
	if _, err := fmt.Fprintln(w, "Totals observed:"); err != nil {
		return err
	}
	for _, t := range result.Totals {
		if _, err := fmt.Fprintf(w, "  %s: %d\n", severityLabel(t.Name, cfg), t.Total); err != nil {
			return err
		}
	}
	if len(result.Failed) > 0 {
		if _, err := fmt.Fprintf(w, "\nAnalyzers without results: %v\n", result.Failed); err != nil {
			return err
		}
	}
	return nil
}

// writeCSVResultsForCheck writes one record per severity with its limit and status.
func writeCSVResultsForCheck(w io.Writer, result schema.CheckResult, limits map[schema.Severity]int) error {
	header := []string{"spec_id", "severity", "total", "limit", "status"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, t := range result.Totals {
			limit, status := "", "ok"
			if l, ok := limits[t.Name]; ok {
				limit = strconv.Itoa(l)
				if t.Total > l {
					status = "violation"
				}
			}
			if err := cw.Write([]string{result.SpecID, string(t.Name), strconv.Itoa(t.Total), limit, status}); err != nil {
				return err
			}
		}
		return nil
	})
}
