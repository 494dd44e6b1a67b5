package core

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/specboard/core/agg"
	"github.com/huangsam/specboard/internal/backend"
	"github.com/huangsam/specboard/internal/contract"
	"github.com/huangsam/specboard/internal/outwriter"
	"github.com/huangsam/specboard/schema"
	"golang.org/x/sync/errgroup"
)

// ExecuteCheck gates one spec on its severity totals and, when --old-spec
// is set, on breaking changes since that spec. It returns ErrCheckFailed
// after printing when the gate does not pass.
func ExecuteCheck(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	result, err := GetCheckResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	if err := outwriter.NewOutWriter().WriteCheck(result, cfg, time.Since(start)); err != nil {
		return err
	}
	if !result.Passed {
		return ErrCheckFailed
	}
	return nil
}

// GetCheckResults computes the check result without printing it.
func GetCheckResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.CheckResult, error) {
	src, err := openSource(cfg, mgr)
	if err != nil {
		return schema.CheckResult{}, err
	}
	return runCheck(ctx, cfg, src)
}

// CheckBuilder gathers what a check needs and evaluates it step by step.
type CheckBuilder struct {
	ctx context.Context
	cfg *contract.Config
	src contract.SpecSource

	specs    []schema.SpecRevision
	analyses []schema.ComplianceResult
	diff     *schema.DiffResponse
	result   schema.CheckResult
	err      error
}

// NewCheckBuilder is the starting point for running a check.
func NewCheckBuilder(ctx context.Context, cfg *contract.Config, src contract.SpecSource) *CheckBuilder {
	return &CheckBuilder{ctx: ctx, cfg: cfg, src: src, result: schema.CheckResult{SpecID: cfg.SpecID}}
}

// Fetch loads the spec list, the spec's analyses and the optional diff concurrently.
func (b *CheckBuilder) Fetch() *CheckBuilder {
	if b.err != nil {
		return b
	}
	g, gctx := errgroup.WithContext(b.ctx)
	g.Go(func() error {
		var err error
		b.specs, err = b.src.ListSpecs(gctx, b.cfg.ServiceID)
		return err
	})
	if b.cfg.SpecID != "" {
		b.goFetchDetails(gctx, g)
	}
	b.err = g.Wait()
	return b
}

// goFetchDetails schedules the analyses and diff fetches of the checked spec.
func (b *CheckBuilder) goFetchDetails(ctx context.Context, g *errgroup.Group) {
	g.Go(func() error {
		var err error
		b.analyses, err = b.src.ListAnalyses(ctx, b.cfg.ServiceID, b.cfg.SpecID)
		return err
	})
	if b.cfg.OldSpecID != "" {
		g.Go(func() error {
			resp, err := b.src.DiffSpecs(ctx, b.cfg.ServiceID, b.cfg.OldSpecID, b.cfg.SpecID)
			if err != nil {
				return err
			}
			b.diff = &resp
			return nil
		})
	}
}

// ResolveSpec fills in the spec version. Without --spec the latest
// revision of the newest version is checked, so its details are fetched here.
func (b *CheckBuilder) ResolveSpec() *CheckBuilder {
	if b.err != nil {
		return b
	}
	uploaded, _ := agg.PartitionSnapshots(b.specs)
	groups := agg.GroupVersions(uploaded, nil)

	if b.result.SpecID == "" {
		if len(groups) == 0 {
			b.err = fmt.Errorf("service %s has no specs to check: %w", b.cfg.ServiceID, backend.ErrNotFound)
			return b
		}
		cfg := b.cfg.CloneWithSpec(groups[0].LatestRevision.ID)
		b.cfg = cfg
		b.result.SpecID = cfg.SpecID
		b.result.Version = groups[0].Version
		g, gctx := errgroup.WithContext(b.ctx)
		b.goFetchDetails(gctx, g)
		b.err = g.Wait()
		return b
	}

	rev, ok := agg.FindRevision(groups, b.result.SpecID)
	if !ok {
		b.err = fmt.Errorf("spec %s: %w", b.result.SpecID, backend.ErrNotFound)
		return b
	}
	b.result.Version = rev.Version
	return b
}

// Evaluate compares totals with the limits and collects breaking changes.
func (b *CheckBuilder) Evaluate() *CheckBuilder {
	if b.err != nil {
		return b
	}
	b.result.Totals = agg.SummarizeResults(b.analyses)
	b.result.Violations = agg.CheckLimits(b.result.Totals, b.cfg.SeverityLimits)
	b.result.Failed = agg.FailedAnalyzers(b.analyses)
	if b.diff != nil {
		b.result.Breaking = agg.BreakingChanges(b.diff.Result.JSON)
	}
	b.result.Passed = len(b.result.Violations) == 0 &&
		!(b.cfg.FailOnBreaking && len(b.result.Breaking) > 0)
	return b
}

// Build returns the check result or the first error met.
func (b *CheckBuilder) Build() (schema.CheckResult, error) {
	return b.result, b.err
}

func runCheck(ctx context.Context, cfg *contract.Config, src contract.SpecSource) (schema.CheckResult, error) {
	return NewCheckBuilder(ctx, cfg, src).
		Fetch().
		ResolveSpec().
		Evaluate().
		Build()
}
