package core

import (
	"context"
	"time"

	"github.com/huangsam/specboard/core/agg"
	"github.com/huangsam/specboard/core/algo"
	"github.com/huangsam/specboard/internal/contract"
	"github.com/huangsam/specboard/internal/outwriter"
	"github.com/huangsam/specboard/schema"
	"golang.org/x/sync/errgroup"
)

// ExecuteVersions prints the version timeline of the configured service.
func ExecuteVersions(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	if !shouldSuppressHeader(ctx) {
		outwriter.LogServiceHeader(cfg, "Versions")
	}
	report, err := GetVersionsResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteVersions(report, cfg, time.Since(start))
}

// GetVersionsResults groups the service's revisions into versions with
// their compliance results attached.
func GetVersionsResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.VersionsReport, error) {
	src, err := openSource(cfg, mgr)
	if err != nil {
		return schema.VersionsReport{}, err
	}
	return buildVersions(ctx, cfg, src)
}

// fetchSpecsAndAnalyses loads the spec list and the analyses of every spec concurrently.
func fetchSpecsAndAnalyses(ctx context.Context, cfg *contract.Config, src contract.SpecSource) ([]schema.SpecRevision, []schema.ComplianceResult, error) {
	var (
		specs    []schema.SpecRevision
		analyses []schema.ComplianceResult
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		specs, err = src.ListSpecs(gctx, cfg.ServiceID)
		return err
	})
	g.Go(func() error {
		var err error
		analyses, err = src.ListAnalyses(gctx, cfg.ServiceID, "")
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return specs, analyses, nil
}

func buildVersions(ctx context.Context, cfg *contract.Config, src contract.SpecSource) (schema.VersionsReport, error) {
	specs, analyses, err := fetchSpecsAndAnalyses(ctx, cfg, src)
	if err != nil {
		return schema.VersionsReport{}, err
	}

	uploaded, snapshots := agg.PartitionSnapshots(specs)
	groups := agg.GroupVersions(uploaded, analyses)
	if cfg.ActiveOnly {
		groups = agg.FilterActiveVersions(groups)
	}

	report := schema.VersionsReport{
		ServiceID: cfg.ServiceID,
		Groups:    algo.Limit(groups, cfg.ResultLimit),
	}
	if cfg.IncludeSnapshots && len(snapshots) > 0 {
		report.Snapshots = algo.SortRevisions(agg.AttachCompliance(snapshots, analyses))
	}
	return report, nil
}
