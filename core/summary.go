package core

import (
	"context"
	"time"

	"github.com/huangsam/specboard/core/agg"
	"github.com/huangsam/specboard/internal/contract"
	"github.com/huangsam/specboard/internal/outwriter"
	"github.com/huangsam/specboard/schema"
)

// ExecuteSummary prints the severity totals of the service or one spec.
func ExecuteSummary(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	if !shouldSuppressHeader(ctx) {
		outwriter.LogServiceHeader(cfg, "Severity summary")
	}
	report, err := GetSeverityResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteSeverities(report, cfg, time.Since(start))
}

// GetSeverityResults rolls findings up into one total per known severity.
func GetSeverityResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.SeverityReport, error) {
	src, err := openSource(cfg, mgr)
	if err != nil {
		return schema.SeverityReport{}, err
	}
	list, err := src.ListAnalyses(ctx, cfg.ServiceID, cfg.SpecID)
	if err != nil {
		return schema.SeverityReport{}, err
	}
	return schema.SeverityReport{SpecID: cfg.SpecID, Totals: agg.SummarizeResults(list)}, nil
}
