package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/specboard/internal/contract"
	"github.com/huangsam/specboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(output schema.OutputMode) *contract.Config {
	return &contract.Config{
		Output:       output,
		Width:        160,
		CacheBackend: schema.NoneBackend,
		SeverityLimits: map[schema.Severity]int{
			schema.SeverityError:   0,
			schema.SeverityWarning: 5,
		},
	}
}

func sampleVersions() schema.VersionsReport {
	score := 91.0
	b := schema.SpecRevision{ID: "b", Version: "1.0", Revision: "r2", UpdatedAt: "2024-02-01", Score: &score, State: schema.StateLatest,
		Compliance: []schema.ComplianceResult{{AnalyzerID: "spectral", Status: schema.StatusAnalyzed}, {AnalyzerID: "owasp", Status: "Failed"}}}
	a := schema.SpecRevision{ID: "a", Version: "1.0", Revision: "r1", UpdatedAt: "2024-01-01", State: schema.StateRelease}
	c := schema.SpecRevision{ID: "c", Version: "0.9", Revision: "r1", UpdatedAt: "2023-06-01", State: schema.StateArchive}
	return schema.VersionsReport{
		ServiceID: "petstore",
		Groups: []schema.VersionGroup{
			{Version: "1.0", UpdatedAt: b.UpdatedAt, Revisions: []schema.SpecRevision{b, a}, LatestRevision: b},
			{Version: "0.9", UpdatedAt: c.UpdatedAt, Revisions: []schema.SpecRevision{c}, LatestRevision: c},
		},
		Snapshots: []schema.SpecRevision{{ID: "s1", Version: "1.0", UpdatedAt: "2024-03-01", State: schema.StateReconstructed}},
	}
}

func sampleRows() []schema.ComplianceRow {
	return []schema.ComplianceRow{
		{
			ID: "0", Analyzer: "spectral", Severity: schema.SeverityError, Code: "E001",
			Message: "operation is missing a description", Mitigation: "add a description",
			Detail: []schema.Detail{{Path: []string{"paths", "/pets", "get"}}},
		},
		{ID: "1", Analyzer: "owasp", Severity: schema.SeverityHint, Code: "H100", Message: "consider rate limits"},
	}
}

func TestVersionsOutput(t *testing.T) {
	report := sampleVersions()

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeVersionsTable(&buf, report, testConfig(schema.TextOut), 15*time.Millisecond))
		out := buf.String()
		assert.Contains(t, out, "91.0")
		assert.Contains(t, out, "2 (1 failed)")
		assert.Contains(t, out, "Snapshots (1):")
		assert.Contains(t, out, "Showing 2 versions (3 revisions)")
		assert.Contains(t, out, "Completed in 15ms. Cache backend: none")
		assert.Less(t, strings.Index(out, "r2"), strings.Index(out, "0.9"))
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeCSVResultsForVersions(&buf, report))
		records, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 5)
		assert.Equal(t, []string{"version", "rank", "spec_id", "revision", "state", "score", "updated_at", "analyzers", "latest"}, records[0])
		assert.Equal(t, []string{"1.0", "1", "b", "r2", "Latest", "91", "2024-02-01", "2", "true"}, records[1])
		assert.Equal(t, []string{"1.0", "2", "a", "r1", "Release", "", "2024-01-01", "0", "false"}, records[2])
		assert.Equal(t, "", records[4][1])
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeJSONResultsForVersions(&buf, schema.VersionsReport{ServiceID: "empty"}))
		var decoded map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, []any{}, decoded["groups"])
		assert.NotContains(t, decoded, "snapshots")
	})

	t.Run("parquet unsupported", func(t *testing.T) {
		err := PrintVersionsResults(report, testConfig(schema.ParquetOut), 0)
		assert.ErrorIs(t, err, errParquetRowsOnly)
	})
}

func TestRowsOutput(t *testing.T) {
	page := schema.RowsPage{Rows: sampleRows(), Page: 1, PageSize: 2, TotalPages: 3, TotalRows: 5, RunID: 9}

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeRowsTable(&buf, page, testConfig(schema.TextOut), time.Second))
		out := buf.String()
		assert.Contains(t, out, "E001")
		assert.Contains(t, out, "paths./pets.get")
		assert.Contains(t, out, "Page 1 of 3 (5 rows total, 2 per page)")
		assert.Contains(t, out, "Recorded as history run 9")
	})

	t.Run("table without paging", func(t *testing.T) {
		var buf bytes.Buffer
		unpaged := schema.RowsPage{Rows: sampleRows()[:1], TotalRows: 2}
		require.NoError(t, writeRowsTable(&buf, unpaged, testConfig(schema.TextOut), time.Second))
		assert.Contains(t, buf.String(), "Showing 1 of 2 rows")
		assert.NotContains(t, buf.String(), "history run")
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeCSVResultsForRows(&buf, page.Rows))
		records, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "spectral", records[1][1])
		assert.Equal(t, `[{"path":["paths","/pets","get"]}]`, records[1][6])
		assert.Equal(t, "null", records[2][6])
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeJSONResultsForRows(&buf, schema.RowsPage{}))
		assert.Contains(t, buf.String(), `"rows": []`)
	})

	t.Run("parquet", func(t *testing.T) {
		cfg := testConfig(schema.ParquetOut)
		cfg.OutputFile = filepath.Join(t.TempDir(), "rows.parquet")
		require.NoError(t, PrintRowsResults(page, cfg, 0))
		info, err := os.Stat(cfg.OutputFile)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	})

	t.Run("json file", func(t *testing.T) {
		cfg := testConfig(schema.JSONOut)
		cfg.OutputFile = filepath.Join(t.TempDir(), "rows.json")
		require.NoError(t, PrintRowsResults(page, cfg, 0))
		data, err := os.ReadFile(cfg.OutputFile)
		require.NoError(t, err)
		var decoded schema.RowsPage
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, page.TotalRows, decoded.TotalRows)
		assert.Len(t, decoded.Rows, 2)
	})
}

func TestSeverityOutput(t *testing.T) {
	report := schema.SeverityReport{Totals: []schema.SeverityTotal{
		{Name: schema.SeverityError, Total: 2},
		{Name: schema.SeverityWarning, Total: 1},
		{Name: schema.SeverityInfo, Total: 0},
		{Name: schema.SeverityHint, Total: 4},
	}}

	var buf bytes.Buffer
	require.NoError(t, writeSeverityTable(&buf, report, testConfig(schema.TextOut), 0))
	assert.Contains(t, buf.String(), "Total findings: 7")

	buf.Reset()
	require.NoError(t, writeCSVResultsForSeverities(&buf, report.Totals))
	assert.Equal(t, "severity,total\nerror,2\nwarning,1\ninfo,0\nhint,4\n", buf.String())

	assert.ErrorIs(t, PrintSeverityResults(report, testConfig(schema.ParquetOut), 0), errParquetRowsOnly)
}

func TestReferenceOutput(t *testing.T) {
	view := schema.ReferenceView{
		OldSpecID: "a",
		NewSpecID: "b",
		Resolution: schema.Resolution{
			Pointer:    "#/components/schemas/Pet",
			Name:       "Pet",
			NewValue:   map[string]any{"type": "object"},
			Candidates: []string{"Error", "Pet"},
		},
		Annotations: []schema.Annotation{
			{Pane: schema.NewPane, Offset: 12, Length: 5, Line: 2, Column: 3, Reference: "Error", Pointer: "#/components/schemas/Error"},
		},
		Active: []string{"#/components/schemas/Pet"},
		Diff:   "--- old\n+++ new\n@@ -1 +1 @@\n-{}\n+type: object\n",
	}

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeReferenceText(&buf, view, testConfig(schema.TextOut), 0))
		out := buf.String()
		assert.Contains(t, out, "Reference: #/components/schemas/Pet (Pet)")
		assert.Contains(t, out, "old=false, new=true")
		assert.Contains(t, out, "+type: object")
		assert.Contains(t, out, "Candidates: 2, marks: 1")
		assert.Contains(t, out, "Pinned: #/components/schemas/Pet")
	})

	t.Run("text identical panes", func(t *testing.T) {
		var buf bytes.Buffer
		same := view
		same.Diff = ""
		require.NoError(t, writeReferenceText(&buf, same, testConfig(schema.TextOut), 0))
		assert.Contains(t, buf.String(), "No differences between panes")
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeCSVResultsForAnnotations(&buf, view.Annotations))
		assert.Equal(t, "pane,offset,length,line,column,reference,pointer\nnew,12,5,2,3,Error,#/components/schemas/Error\n", buf.String())
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeJSONResultsForReferences(&buf, schema.ReferenceView{}))
		assert.Contains(t, buf.String(), `"annotations": []`)
		assert.Contains(t, buf.String(), `"active": []`)
	})
}

func TestDiffOutput(t *testing.T) {
	report := schema.DiffReport{
		OldSpecID: "a",
		NewSpecID: "b",
		Summary:   schema.DiffSummary{Added: 1, Modified: 1, Breaking: 1},
		Changes: []schema.KindedDiffEntry{
			{Kind: schema.ChangeAdded, DiffEntry: schema.DiffEntry{Method: "post", Path: "/pets"}},
			{Kind: schema.ChangeModified, DiffEntry: schema.DiffEntry{Method: "get", Path: "/pets", Breaking: true,
				Responses: &schema.ChangeDescriptor{Message: "response 200 changed"}}},
		},
	}

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeDiffTable(&buf, report, testConfig(schema.TextOut), 0))
		out := buf.String()
		assert.Contains(t, out, "a → b: 1 added, 1 modified, 0 deleted (1 breaking)")
		assert.Contains(t, out, "modified")
		assert.Contains(t, out, "/pets")
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeCSVResultsForDiff(&buf, report.Changes))
		records, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, []string{"modified", "get", "/pets", "true", "", "", "response 200 changed", ""}, records[2])
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeJSONResultsForDiff(&buf, schema.DiffReport{}))
		assert.Contains(t, buf.String(), `"changes": []`)
		assert.NotContains(t, buf.String(), "markdown")
	})

	t.Run("breaking label", func(t *testing.T) {
		cfg := testConfig(schema.TextOut)
		assert.Equal(t, "no", breakingLabel(false, cfg))
		assert.Equal(t, "yes", breakingLabel(true, cfg))
	})
}

func TestCheckOutput(t *testing.T) {
	totals := []schema.SeverityTotal{
		{Name: schema.SeverityError, Total: 1},
		{Name: schema.SeverityWarning, Total: 2},
		{Name: schema.SeverityInfo, Total: 0},
		{Name: schema.SeverityHint, Total: 0},
	}

	t.Run("passed", func(t *testing.T) {
		var buf bytes.Buffer
		result := schema.CheckResult{SpecID: "b", Version: "1.0", Passed: true, Totals: totals}
		require.NoError(t, writeCheckText(&buf, result, testConfig(schema.TextOut), time.Second))
		out := buf.String()
		assert.Contains(t, out, "Compliance Check Results:")
		assert.Contains(t, out, "error=0, warning=5")
		assert.Contains(t, out, "All severities within limits")
		assert.Contains(t, out, "warning: 2")
	})

	t.Run("failed", func(t *testing.T) {
		var buf bytes.Buffer
		result := schema.CheckResult{
			SpecID:     "b",
			Totals:     totals,
			Violations: []schema.LimitViolation{{Severity: schema.SeverityError, Total: 1, Limit: 0}},
			Breaking:   []schema.KindedDiffEntry{{Kind: schema.ChangeDeleted, DiffEntry: schema.DiffEntry{Method: "delete", Path: "/pets"}}},
			Failed:     []string{"owasp"},
		}
		require.NoError(t, writeCheckText(&buf, result, testConfig(schema.TextOut), time.Second))
		out := buf.String()
		assert.Contains(t, out, "Check failed")
		assert.Contains(t, out, "error: 1 > 0")
		assert.Contains(t, out, "deleted delete /pets")
		assert.Contains(t, out, "Analyzers without results: [owasp]")
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		result := schema.CheckResult{SpecID: "b", Totals: totals}
		require.NoError(t, writeCSVResultsForCheck(&buf, result, testConfig(schema.CSVOut).SeverityLimits))
		assert.Equal(t, "spec_id,severity,total,limit,status\n"+
			"b,error,1,0,violation\nb,warning,2,5,ok\nb,info,0,,ok\nb,hint,0,,ok\n", buf.String())
	})

	assert.Equal(t, "none", formatLimits(nil))
}
