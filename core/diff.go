package core

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/specboard/core/agg"
	"github.com/huangsam/specboard/internal/contract"
	"github.com/huangsam/specboard/internal/outwriter"
	"github.com/huangsam/specboard/schema"
)

// ExecuteDiff prints the operation-level diff between --old-spec and --new-spec.
func ExecuteDiff(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	if !shouldSuppressHeader(ctx) {
		outwriter.LogCompareHeader(cfg, cfg.OldSpecID, cfg.NewSpecID)
	}
	report, err := GetDiffResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteDiff(report, cfg, time.Since(start))
}

// GetDiffResults fetches the diff of the configured spec pair and rolls it up.
func GetDiffResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.DiffReport, error) {
	src, err := openSource(cfg, mgr)
	if err != nil {
		return schema.DiffReport{}, err
	}
	return buildDiffReport(ctx, cfg.ServiceID, cfg.OldSpecID, cfg.NewSpecID, src)
}

func buildDiffReport(ctx context.Context, serviceID, oldSpecID, newSpecID string, src contract.SpecSource) (schema.DiffReport, error) {
	if oldSpecID == "" || newSpecID == "" {
		return schema.DiffReport{}, fmt.Errorf("both --old-spec and --new-spec are required")
	}
	resp, err := src.DiffSpecs(ctx, serviceID, oldSpecID, newSpecID)
	if err != nil {
		return schema.DiffReport{}, err
	}
	return schema.DiffReport{
		OldSpecID: oldSpecID,
		NewSpecID: newSpecID,
		Summary:   agg.SummarizeDiff(resp.Result.JSON),
		Changes:   agg.AllChanges(resp.Result.JSON),
		Markdown:  resp.Result.Markdown,
	}, nil
}
