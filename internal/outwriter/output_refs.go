package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/specboard/internal/contract"
	"github.com/huangsam/specboard/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintReferenceResults outputs a reference view, dispatching based on the output format configured.
func PrintReferenceResults(view schema.ReferenceView, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForReferences(w, view)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForAnnotations(w, view.Annotations)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return errParquetRowsOnly
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReferenceText(w, view, cfg, duration)
		}, "Wrote text")
	}
	return nil
}

// writeReferenceText prints the pane diff followed by the reference marks.
func writeReferenceText(w io.Writer, view schema.ReferenceView, cfg *contract.Config, duration time.Duration) error {
	res := view.Resolution
	if res.Pointer != "" {
		if _, err := fmt.Fprintf(w, "Reference: %s (%s)\n", res.Pointer, res.Name); err != nil {
			return err
		}
		presence := fmt.Sprintf("old=%t, new=%t", res.OldValue != nil, res.NewValue != nil)
		if _, err := fmt.Fprintf(w, "Present:   %s\n\n", presence); err != nil {
			return err
		}
		diff := view.Diff
		if diff == "" {
			diff = "No differences between panes\n"
		}
		if _, err := io.WriteString(w, diff); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	if len(view.Annotations) > 0 {
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Pane", "Line", "Column", "Reference", "Pointer"})
		table.Configure(func(cfg *tablewriter.Config) {
			cfg.Row.Alignment.Global = tw.AlignLeft
		})
		data := make([][]string, 0, len(view.Annotations))
		for _, a := range view.Annotations {
			data = append(data, []string{
				string(a.Pane),
				strconv.Itoa(a.Line),
				strconv.Itoa(a.Column),
				a.Reference,
				a.Pointer,
			})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "Candidates: %d, marks: %d\n", len(res.Candidates), len(view.Annotations)); err != nil {
		return err
	}
	if len(view.Active) > 0 {
		if _, err := fmt.Fprintf(w, "Pinned: %s\n", strings.Join(view.Active, ", ")); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// writeJSONResultsForReferences marshals the view to JSON and writes it.
func writeJSONResultsForReferences(w io.Writer, view schema.ReferenceView) error {
	if view.Annotations == nil {
		view.Annotations = []schema.Annotation{}
	}
	if view.Active == nil {
		view.Active = []string{}
	}
	return writeJSON(w, view)
}

// writeCSVResultsForAnnotations writes one record per reference mark.
func writeCSVResultsForAnnotations(w io.Writer, annotations []schema.Annotation) error {
	header := []string{"pane", "offset", "length", "line", "column", "reference", "pointer"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, a := range annotations {
			rec := []string{
				string(a.Pane),
				strconv.Itoa(a.Offset),
				strconv.Itoa(a.Length),
				strconv.Itoa(a.Line),
				strconv.Itoa(a.Column),
				a.Reference,
				a.Pointer,
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
