package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/huangsam/specboard/internal/contract"
	"github.com/huangsam/specboard/schema"
)

// errParquetRowsOnly is returned when parquet output is requested for anything but rows.
var errParquetRowsOnly = errors.New("parquet output is only supported for compliance rows")

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	if err := writeRows(csvWriter); err != nil {
		return err
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// formatScore renders a nullable score with one decimal place.
func formatScore(score *float64) string {
	if score == nil {
		return "-"
	}
	return strconv.FormatFloat(*score, 'f', 1, 64)
}

// severityLabel picks a colored or plain label.
func severityLabel(sev schema.Severity, cfg *contract.Config) string {
	if cfg.UseColors {
		return contract.GetColorLabel(sev)
	}
	return contract.GetPlainLabel(sev)
}

// formatLocation summarizes where the first detail of a row points.
func formatLocation(details []schema.Detail) string {
	if len(details) == 0 {
		return ""
	}
	d := details[0]
	loc := strings.Join(d.Path, ".")
	if d.Range != nil {
		loc = fmt.Sprintf("%s:%d:%d", loc, d.Range.Start.Line, d.Range.Start.Column)
	}
	if len(details) > 1 {
		loc += fmt.Sprintf(" (+%d more)", len(details)-1)
	}
	return loc
}

// formatChanges joins the messages of a diff entry's change descriptors.
func formatChanges(e schema.DiffEntry) string {
	var parts []string
	for _, c := range []struct {
		name string
		desc *schema.ChangeDescriptor
	}{
		{"parameters", e.Parameters},
		{"requestBody", e.RequestBody},
		{"responses", e.Responses},
		{"security", e.Security},
	} {
		if c.desc != nil && c.desc.Message != "" {
			parts = append(parts, c.name+": "+c.desc.Message)
		}
	}
	return strings.Join(parts, "; ")
}

// descriptorMessage returns the message of a change descriptor, if any.
func descriptorMessage(d *schema.ChangeDescriptor) string {
	if d == nil {
		return ""
	}
	return d.Message
}
