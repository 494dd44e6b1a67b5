package core

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/specboard/core/agg"
	"github.com/huangsam/specboard/core/algo"
	"github.com/huangsam/specboard/internal/contract"
	"github.com/huangsam/specboard/internal/outwriter"
	"github.com/huangsam/specboard/schema"
)

// ExecuteCompliance prints the compliance rows of the service, or of one
// spec when --spec is set. With --record the full row list is stored as a
// history run before printing.
func ExecuteCompliance(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	if !shouldSuppressHeader(ctx) {
		subject := "Compliance rows"
		if cfg.SpecID != "" {
			subject = fmt.Sprintf("Compliance rows for spec %s", cfg.SpecID)
		}
		outwriter.LogServiceHeader(cfg, subject)
	}

	src, err := openSource(cfg, mgr)
	if err != nil {
		return err
	}
	rows, err := fetchRows(ctx, cfg, src)
	if err != nil {
		return err
	}

	page := paginateRows(rows, cfg)
	if cfg.Record {
		var history contract.HistoryStore
		if mgr != nil {
			history = mgr.GetHistoryStore()
		}
		runID, err := recordRun(history, cfg, rows, start)
		if err != nil {
			return err
		}
		page.RunID = runID
	}
	return outwriter.NewOutWriter().WriteRows(page, cfg, time.Since(start))
}

// GetComplianceResults returns the sorted and paged compliance rows.
func GetComplianceResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.RowsPage, error) {
	src, err := openSource(cfg, mgr)
	if err != nil {
		return schema.RowsPage{}, err
	}
	rows, err := fetchRows(ctx, cfg, src)
	if err != nil {
		return schema.RowsPage{}, err
	}
	return paginateRows(rows, cfg), nil
}

// fetchRows builds and sorts every row of the configured service or spec.
func fetchRows(ctx context.Context, cfg *contract.Config, src contract.SpecSource) ([]schema.ComplianceRow, error) {
	list, err := src.ListAnalyses(ctx, cfg.ServiceID, cfg.SpecID)
	if err != nil {
		return nil, err
	}
	rows := agg.BuildComplianceRowsWithOptions(list, agg.RowOptions{ContentIDs: cfg.ContentIDs})
	if rows == nil {
		rows = []schema.ComplianceRow{}
	}
	return algo.SortRows(rows, cfg.SortField, cfg.Descending), nil
}

// paginateRows applies --page/--page-size, or --limit when not paging.
func paginateRows(rows []schema.ComplianceRow, cfg *contract.Config) schema.RowsPage {
	page := schema.RowsPage{SpecID: cfg.SpecID, TotalRows: len(rows)}
	if cfg.Page > 0 {
		page.Rows, page.TotalPages = algo.Paginate(rows, cfg.Page, cfg.PageSize)
		page.Page = cfg.Page
		page.PageSize = cfg.PageSize
		return page
	}
	page.Rows = algo.Limit(rows, cfg.ResultLimit)
	if len(rows) > 0 {
		page.TotalPages = 1
	}
	return page
}

// recordRun stores rows as one history run and returns its id.
func recordRun(history contract.HistoryStore, cfg *contract.Config, rows []schema.ComplianceRow, start time.Time) (int64, error) {
	if history == nil {
		return 0, fmt.Errorf("--record needs a history backend")
	}

	runID, err := history.BeginRun(start, cfg.ServiceID, cfg.SpecID, runParams(cfg))
	if err != nil {
		return 0, fmt.Errorf("failed to begin history run: %w", err)
	}
	if err := history.RecordRows(runID, time.Now(), rows); err != nil {
		return 0, fmt.Errorf("failed to record rows for run %d: %w", runID, err)
	}
	if err := history.EndRun(runID, time.Now(), len(rows)); err != nil {
		return 0, fmt.Errorf("failed to end run %d: %w", runID, err)
	}
	return runID, nil
}

// runParams captures the settings that shaped a recorded run.
func runParams(cfg *contract.Config) map[string]any {
	return map[string]any{
		"source":      string(cfg.Source),
		"service":     cfg.ServiceID,
		"spec":        cfg.SpecID,
		"sort":        string(cfg.SortField),
		"desc":        cfg.Descending,
		"content_ids": cfg.ContentIDs,
	}
}
