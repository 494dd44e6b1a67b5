package mcp_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/huangsam/specboard/internal/contract"
	mcp_internal "github.com/huangsam/specboard/internal/mcp"
	"github.com/huangsam/specboard/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *server.MCPServer {
	baseCfg := &contract.Config{
		Source:       schema.FileSource,
		ServiceID:    "petstore",
		SpecsFile:    "testdata/specs.json",
		DiffFile:     "testdata/diff.json",
		Output:       schema.JSONOut,
		ResultLimit:  contract.DefaultResultLimit,
		PageSize:     contract.DefaultPageSize,
		SortField:    schema.FieldSeverity,
		CacheBackend: schema.NoneBackend,
	}

	// No manager: the file source is opened without a payload cache
	var mgr contract.CacheManager
	return mcp_internal.NewMCPServer(baseCfg, mgr)
}

func callTool(t *testing.T, s *server.MCPServer, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	require.NotNil(t, res)
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "content should be text")
	return text.Text
}

func decodeResult[T any](t *testing.T, res *mcp.CallToolResult) T {
	t.Helper()
	require.False(t, res.IsError, resultText(t, res))
	var out T
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
	return out
}

func TestMCPServer_Tools(t *testing.T) {
	s := newTestServer()
	for _, name := range []string{
		"list_versions", "list_compliance_rows", "summarize_severities",
		"resolve_reference", "diff_specs", "check_spec",
	} {
		assert.NotNil(t, s.GetTool(name), "Tool %s should exist", name)
	}
}

func TestMCPServerHandlers_Results(t *testing.T) {
	s := newTestServer()

	t.Run("list_versions", func(t *testing.T) {
		report := decodeResult[schema.VersionsReport](t, callTool(t, s, "list_versions", map[string]any{
			"include_snapshots": true,
		}))
		assert.Equal(t, "petstore", report.ServiceID)
		require.Len(t, report.Groups, 2)
		assert.Equal(t, "1.0", report.Groups[0].Version)
		assert.Equal(t, []string{"b", "a"}, report.Groups[0].RevisionIDs())
		require.Len(t, report.Snapshots, 1)
		assert.Equal(t, "s", report.Snapshots[0].ID)
	})

	t.Run("list_versions active only", func(t *testing.T) {
		report := decodeResult[schema.VersionsReport](t, callTool(t, s, "list_versions", map[string]any{
			"active_only": true,
		}))
		require.Len(t, report.Groups, 1)
		assert.Empty(t, report.Snapshots)
	})

	t.Run("list_compliance_rows", func(t *testing.T) {
		page := decodeResult[schema.RowsPage](t, callTool(t, s, "list_compliance_rows", map[string]any{
			"spec": "b",
			"sort": "severity",
			"desc": true,
		}))
		assert.Equal(t, 4, page.TotalRows)
		codes := make([]string, len(page.Rows))
		for i, row := range page.Rows {
			codes[i] = row.Code
		}
		assert.Equal(t, []string{"E1", "E2", "W1", "H1"}, codes)
	})

	t.Run("list_compliance_rows paged", func(t *testing.T) {
		page := decodeResult[schema.RowsPage](t, callTool(t, s, "list_compliance_rows", map[string]any{
			"spec":      "b",
			"page":      2.0,
			"page_size": 3.0,
		}))
		assert.Equal(t, 2, page.Page)
		assert.Equal(t, 2, page.TotalPages)
		assert.Len(t, page.Rows, 1)
	})

	t.Run("summarize_severities", func(t *testing.T) {
		report := decodeResult[schema.SeverityReport](t, callTool(t, s, "summarize_severities", map[string]any{
			"spec": "b",
		}))
		assert.Equal(t, []schema.SeverityTotal{
			{Name: schema.SeverityError, Total: 2},
			{Name: schema.SeverityWarning, Total: 1},
			{Name: schema.SeverityInfo, Total: 0},
			{Name: schema.SeverityHint, Total: 1},
		}, report.Totals)
	})

	t.Run("resolve_reference", func(t *testing.T) {
		view := decodeResult[schema.ReferenceView](t, callTool(t, s, "resolve_reference", map[string]any{
			"old_spec": "a",
			"new_spec": "b",
			"pointer":  "#/components/schemas/Pet",
		}))
		assert.Equal(t, "Pet", view.Resolution.Name)
		assert.Equal(t, []string{"Owner"}, view.Resolution.Candidates)
		assert.Contains(t, view.Diff, "required")
		assert.Contains(t, view.Active, "#/components/schemas/Pet")
	})

	t.Run("diff_specs", func(t *testing.T) {
		report := decodeResult[schema.DiffReport](t, callTool(t, s, "diff_specs", map[string]any{
			"old_spec": "a",
			"new_spec": "b",
		}))
		assert.Equal(t, schema.DiffSummary{Added: 1, Modified: 1, Breaking: 1}, report.Summary)
		assert.Len(t, report.Changes, 2)
		assert.Equal(t, "## Changes", report.Markdown)
	})

	t.Run("check_spec", func(t *testing.T) {
		result := decodeResult[schema.CheckResult](t, callTool(t, s, "check_spec", map[string]any{
			"limits":           "error:0",
			"old_spec":         "a",
			"fail_on_breaking": true,
		}))
		assert.Equal(t, "b", result.SpecID)
		assert.False(t, result.Passed)
		require.Len(t, result.Violations, 1)
		assert.Equal(t, schema.SeverityError, result.Violations[0].Severity)
		assert.Len(t, result.Breaking, 1)
	})
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	s := newTestServer()

	tests := []struct {
		name    string
		tool    string
		args    map[string]any
		wantErr string
	}{
		{"rows with bad sort", "list_compliance_rows", map[string]any{"sort": "score"}, "invalid sort field"},
		{"rows with bad page size", "list_compliance_rows", map[string]any{"page": 1.0, "page_size": 5000.0}, "page-size must be between"},
		{"reference without specs", "resolve_reference", map[string]any{"pointer": "#/components/schemas/Pet"}, "at least one of old_spec or new_spec"},
		{"reference with unknown spec", "resolve_reference", map[string]any{"old_spec": "zzz"}, "not found"},
		{"diff missing new_spec", "diff_specs", map[string]any{"old_spec": "a"}, "old_spec and new_spec are required"},
		{"check with bad limits", "check_spec", map[string]any{"limits": "fatal:1"}, "invalid severity"},
		{"unknown service", "list_versions", map[string]any{"service": "inventory"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := callTool(t, s, tt.tool, tt.args)
			if tt.wantErr == "" {
				assert.False(t, res.IsError, resultText(t, res))
				return
			}
			assert.True(t, res.IsError, "The response should indicate an error state")
			assert.Contains(t, resultText(t, res), tt.wantErr)
		})
	}
}
