// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/specboard/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

var sortFields = []string{"id", "analyzer", "severity", "code", "message", "mitigation"}

// NewMCPServer initializes and configures the specboard MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Specboard Compliance Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: list_versions ---
	s.AddTool(mcp.NewTool("list_versions",
		mcp.WithDescription("Group the uploaded spec revisions of a service by version, most recent first, with compliance attached."),
		mcp.WithString("service", mcp.Description("Service id (defaults to the configured service).")),
		mcp.WithBoolean("active_only", mcp.Description("Drop archived revisions and versions left empty.")),
		mcp.WithBoolean("include_snapshots", mcp.Description("Also list reconstructed snapshots.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of versions returned.")),
	), h.handleListVersions)

	// --- 2. Tool: list_compliance_rows ---
	s.AddTool(mcp.NewTool("list_compliance_rows",
		mcp.WithDescription("Flatten the compliance findings of a spec (or the whole service) into sorted rows."),
		mcp.WithString("service", mcp.Description("Service id (defaults to the configured service).")),
		mcp.WithString("spec", mcp.Description("Spec id. Leave empty for every spec of the service.")),
		mcp.WithString("sort", mcp.Description("Row field to sort by. Defaults to 'severity'."), mcp.Enum(sortFields...)),
		mcp.WithBoolean("desc", mcp.Description("Sort in descending order.")),
		mcp.WithNumber("page", mcp.Description("1-based page number. 0 disables paging.")),
		mcp.WithNumber("page_size", mcp.Description("Rows per page when paging.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of rows when not paging.")),
	), h.handleListComplianceRows)

	// --- 3. Tool: summarize_severities ---
	s.AddTool(mcp.NewTool("summarize_severities",
		mcp.WithDescription("Total the reported findings per severity (error, warning, info, hint)."),
		mcp.WithString("service", mcp.Description("Service id (defaults to the configured service).")),
		mcp.WithString("spec", mcp.Description("Spec id. Leave empty for every spec of the service.")),
	), h.handleSummarizeSeverities)

	// --- 4. Tool: resolve_reference ---
	s.AddTool(mcp.NewTool("resolve_reference",
		mcp.WithDescription("Resolve a schema $ref in two spec revisions and list the cross-referenced schema names found in both panes."),
		mcp.WithString("old_spec", mcp.Description("Spec id of the old side.")),
		mcp.WithString("new_spec", mcp.Description("Spec id of the new side.")),
		mcp.WithString("pointer", mcp.Description("Reference such as '#/components/schemas/Pet'.")),
		mcp.WithString("active", mcp.Description("Comma separated references already pinned.")),
		mcp.WithString("service", mcp.Description("Service id (defaults to the configured service).")),
	), h.handleResolveReference)

	// --- 5. Tool: diff_specs ---
	s.AddTool(mcp.NewTool("diff_specs",
		mcp.WithDescription("Diff two spec revisions at the operation level and flag breaking changes."),
		mcp.WithString("old_spec", mcp.Description("Spec id of the old side."), mcp.Required()),
		mcp.WithString("new_spec", mcp.Description("Spec id of the new side."), mcp.Required()),
		mcp.WithString("service", mcp.Description("Service id (defaults to the configured service).")),
	), h.handleDiffSpecs)

	// --- 6. Tool: check_spec ---
	s.AddTool(mcp.NewTool("check_spec",
		mcp.WithDescription("Gate a spec on its severity totals and, optionally, on breaking changes since an older spec."),
		mcp.WithString("spec", mcp.Description("Spec id. Defaults to the latest revision of the newest version.")),
		mcp.WithString("old_spec", mcp.Description("Older spec id to diff against.")),
		mcp.WithString("limits", mcp.Description("Severity limits such as 'error:0,warning:10'.")),
		mcp.WithBoolean("fail_on_breaking", mcp.Description("Fail the check when breaking changes are found.")),
		mcp.WithString("service", mcp.Description("Service id (defaults to the configured service).")),
	), h.handleCheckSpec)

	return s
}

// StartMCPServer starts the specboard MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
