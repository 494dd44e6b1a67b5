package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/huangsam/specboard/core"
	"github.com/huangsam/specboard/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

// scopedConfig clones the base config and applies the service override.
func (h *toolHandler) scopedConfig(request mcp.CallToolRequest) *contract.Config {
	cfg := h.baseCfg.Clone()
	if s := strings.TrimSpace(request.GetString("service", "")); s != "" {
		cfg.ServiceID = s
	}
	return cfg
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, _ := json.MarshalIndent(v, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListVersions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.scopedConfig(request)
	cfg.ActiveOnly = request.GetBool("active_only", cfg.ActiveOnly)
	cfg.IncludeSnapshots = request.GetBool("include_snapshots", cfg.IncludeSnapshots)
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	report, err := core.GetVersionsResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing versions failed: %v", err)), nil
	}
	return jsonResult(report)
}

func (h *toolHandler) handleListComplianceRows(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.scopedConfig(request)
	cfg.SpecID = strings.TrimSpace(request.GetString("spec", cfg.SpecID))
	cfg.Descending = request.GetBool("desc", cfg.Descending)
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	sort := request.GetString("sort", "")
	if err := contract.RevalidateRows(cfg, sort, request.GetInt("page", 0), request.GetInt("page_size", 0)); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid row parameters: %v", err)), nil
	}

	page, err := core.GetComplianceResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("building compliance rows failed: %v", err)), nil
	}
	return jsonResult(page)
}

func (h *toolHandler) handleSummarizeSeverities(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.scopedConfig(request)
	cfg.SpecID = strings.TrimSpace(request.GetString("spec", cfg.SpecID))

	report, err := core.GetSeverityResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("summarizing severities failed: %v", err)), nil
	}
	return jsonResult(report)
}

func (h *toolHandler) handleResolveReference(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.scopedConfig(request)
	cfg.OldSpecID = strings.TrimSpace(request.GetString("old_spec", ""))
	cfg.NewSpecID = strings.TrimSpace(request.GetString("new_spec", ""))
	cfg.Pointer = strings.TrimSpace(request.GetString("pointer", ""))
	cfg.ActiveRefs = nil
	for p := range strings.SplitSeq(request.GetString("active", ""), ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			cfg.ActiveRefs = append(cfg.ActiveRefs, trimmed)
		}
	}
	cfg.FromLine, cfg.ToLine = 0, 0

	if cfg.OldSpecID == "" && cfg.NewSpecID == "" {
		return mcp.NewToolResultError("at least one of old_spec or new_spec is required"), nil
	}

	view, err := core.GetReferenceResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("resolving reference failed: %v", err)), nil
	}
	return jsonResult(view)
}

func (h *toolHandler) handleDiffSpecs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.scopedConfig(request)
	cfg.OldSpecID = strings.TrimSpace(request.GetString("old_spec", ""))
	cfg.NewSpecID = strings.TrimSpace(request.GetString("new_spec", ""))
	if cfg.OldSpecID == "" || cfg.NewSpecID == "" {
		return mcp.NewToolResultError("old_spec and new_spec are required"), nil
	}

	report, err := core.GetDiffResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("diff failed: %v", err)), nil
	}
	return jsonResult(report)
}

func (h *toolHandler) handleCheckSpec(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.scopedConfig(request)
	cfg.SpecID = strings.TrimSpace(request.GetString("spec", cfg.SpecID))
	cfg.OldSpecID = strings.TrimSpace(request.GetString("old_spec", ""))
	cfg.FailOnBreaking = request.GetBool("fail_on_breaking", cfg.FailOnBreaking)
	if err := contract.RevalidateLimits(cfg, request.GetString("limits", "")); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid check parameters: %v", err)), nil
	}

	result, err := core.GetCheckResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("check failed to run: %v", err)), nil
	}
	return jsonResult(result)
}
