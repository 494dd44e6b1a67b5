package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"io"

	"github.com/huangsam/specboard/schema"
)

// writeJSONResultsForRows marshals the page to JSON and writes it.
func writeJSONResultsForRows(w io.Writer, page schema.RowsPage) error {
	if page.Rows == nil {
		page.Rows = []schema.ComplianceRow{}
	}
	return writeJSON(w, page)
}

// writeCSVResultsForRows writes one CSV record per row, with details encoded as JSON.
func writeCSVResultsForRows(w io.Writer, rows []schema.ComplianceRow) error {
	header := []string{
		"id",
		"analyzer",
		"severity",
		"code",
		"message",
		"mitigation",
		"detail",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range rows {
			detail, err := json.Marshal(r.Detail)
			if err != nil {
				return err
			}
			rec := []string{
				r.ID,
				r.Analyzer,
				string(r.Severity),
				r.Code,
				r.Message,
				r.Mitigation,
				string(detail),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
