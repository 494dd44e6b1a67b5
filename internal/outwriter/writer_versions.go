package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/huangsam/specboard/schema"
)

// writeJSONResultsForVersions marshals the report to JSON and writes it.
func writeJSONResultsForVersions(w io.Writer, report schema.VersionsReport) error {
	if report.Groups == nil {
		report.Groups = []schema.VersionGroup{}
	}
	return writeJSON(w, report)
}

// writeCSVResultsForVersions writes one CSV record per revision.
// Snapshots are listed after the timeline with an empty rank.
func writeCSVResultsForVersions(w io.Writer, report schema.VersionsReport) error {
	header := []string{
		"version",
		"rank",
		"spec_id",
		"revision",
		"state",
		"score",
		"updated_at",
		"analyzers",
		"latest",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, g := range report.Groups {
			for i, r := range g.Revisions {
				if err := cw.Write(versionRecord(r, strconv.Itoa(i+1), i == 0)); err != nil {
					return err
				}
			}
		}
		for _, s := range report.Snapshots {
			if err := cw.Write(versionRecord(s, "", false)); err != nil {
				return err
			}
		}
		return nil
	})
}

// versionRecord converts one revision into a CSV record.
func versionRecord(r schema.SpecRevision, rank string, latest bool) []string {
	score := ""
	if r.Score != nil {
		score = strconv.FormatFloat(*r.Score, 'f', -1, 64)
	}
	return []string{
		r.Version,
		rank,
		r.ID,
		r.Revision,
		string(r.State),
		score,
		r.UpdatedAt,
		strconv.Itoa(len(r.Compliance)),
		strconv.FormatBool(latest),
	}
}
