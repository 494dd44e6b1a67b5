package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/huangsam/specboard/schema"
)

// writeJSONResultsForDiff marshals the report to JSON and writes it.
func writeJSONResultsForDiff(w io.Writer, report schema.DiffReport) error {
	if report.Changes == nil {
		report.Changes = []schema.KindedDiffEntry{}
	}
	return writeJSON(w, report)
}

// writeCSVResultsForDiff writes one record per changed operation.
func writeCSVResultsForDiff(w io.Writer, changes []schema.KindedDiffEntry) error {
	header := []string{
		"kind",
		"method",
		"path",
		"breaking",
		"parameters",
		"request_body",
		"responses",
		"security",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, c := range changes {
			rec := []string{
				string(c.Kind),
				c.Method,
				c.Path,
				strconv.FormatBool(c.Breaking),
				descriptorMessage(c.Parameters),
				descriptorMessage(c.RequestBody),
				descriptorMessage(c.Responses),
				descriptorMessage(c.Security),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
