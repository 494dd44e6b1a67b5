package core

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/specboard/core/refs"
	"github.com/huangsam/specboard/internal/backend"
	"github.com/huangsam/specboard/internal/contract"
	"github.com/huangsam/specboard/internal/outwriter"
	"github.com/huangsam/specboard/schema"
)

// ExecuteRefs resolves --pointer between --old-spec and --new-spec and prints
// the pane diff together with the reference marks.
func ExecuteRefs(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	if !shouldSuppressHeader(ctx) {
		outwriter.LogCompareHeader(cfg, cfg.OldSpecID, cfg.NewSpecID)
	}
	view, err := GetReferenceResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteReferences(view, cfg, time.Since(start))
}

// GetReferenceResults builds the reference view for the configured spec pair.
func GetReferenceResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.ReferenceView, error) {
	src, err := openSource(cfg, mgr)
	if err != nil {
		return schema.ReferenceView{}, err
	}
	return buildReferenceView(ctx, cfg, src)
}

// documentOf returns the document text of specID. An empty id stands for a
// side that does not exist and gives an empty document.
func documentOf(specs []schema.SpecRevision, specID string) (string, error) {
	if specID == "" {
		return "", nil
	}
	for _, s := range specs {
		if s.ID == specID {
			return s.DocumentText, nil
		}
	}
	return "", fmt.Errorf("spec %s: %w", specID, backend.ErrNotFound)
}

func buildReferenceView(ctx context.Context, cfg *contract.Config, src contract.SpecSource) (schema.ReferenceView, error) {
	if cfg.OldSpecID == "" && cfg.NewSpecID == "" {
		return schema.ReferenceView{}, fmt.Errorf("at least one of --old-spec and --new-spec is required")
	}
	specs, err := src.ListSpecs(ctx, cfg.ServiceID)
	if err != nil {
		return schema.ReferenceView{}, err
	}
	oldDoc, err := documentOf(specs, cfg.OldSpecID)
	if err != nil {
		return schema.ReferenceView{}, err
	}
	newDoc, err := documentOf(specs, cfg.NewSpecID)
	if err != nil {
		return schema.ReferenceView{}, err
	}

	// Pinned pointers are kept in pointer form; resolving one pins it too.
	active := []string{}
	for _, ref := range cfg.ActiveRefs {
		active = refs.Activate(active, ref)
	}

	res := refs.Resolve(oldDoc, newDoc, cfg.Pointer)
	if cfg.Pointer == "" {
		res.Pointer, res.Name = "", ""
		res.OldValue, res.NewValue = nil, nil
		res.OldText, res.NewText = "", ""
	} else {
		active = refs.Activate(active, cfg.Pointer)
	}

	diff, err := refs.PaneDiff(res)
	if err != nil {
		return schema.ReferenceView{}, fmt.Errorf("failed to diff panes of %s: %w", res.Pointer, err)
	}

	return schema.ReferenceView{
		OldSpecID:   cfg.OldSpecID,
		NewSpecID:   cfg.NewSpecID,
		Resolution:  res,
		Annotations: markPanes(res, cfg.FromLine, cfg.ToLine),
		Active:      active,
		Pinned:      refs.ResolveActive(oldDoc, newDoc, active),
		Diff:        diff,
	}, nil
}

// markPanes marks candidate names on both panes, old pane first.
// A zero toLine marks the whole text.
func markPanes(res schema.Resolution, fromLine, toLine int) []schema.Annotation {
	mark := func(text string, pane schema.Pane) []schema.Annotation {
		if toLine == 0 {
			return refs.MarkReferences(text, pane, res.Candidates)
		}
		return refs.MarkWindow(text, pane, res.Candidates, fromLine, toLine)
	}
	out := mark(res.OldText, schema.OldPane)
	return append(out, mark(res.NewText, schema.NewPane)...)
}
