package agg

import "github.com/huangsam/specboard/schema"

// SummarizeDiff counts changed operations per bucket and how many are breaking.
func SummarizeDiff(result schema.JSONDiffResult) schema.DiffSummary {
	summary := schema.DiffSummary{
		Added:    len(result.Added),
		Modified: len(result.Modified),
		Deleted:  len(result.Deleted),
	}
	for _, entry := range AllChanges(result) {
		if entry.Breaking {
			summary.Breaking++
		}
	}
	return summary
}

// AllChanges lists added, modified and deleted entries in that order.
func AllChanges(result schema.JSONDiffResult) []schema.KindedDiffEntry {
	out := make([]schema.KindedDiffEntry, 0, len(result.Added)+len(result.Modified)+len(result.Deleted))
	for _, e := range result.Added {
		out = append(out, schema.KindedDiffEntry{Kind: schema.ChangeAdded, DiffEntry: e})
	}
	for _, e := range result.Modified {
		out = append(out, schema.KindedDiffEntry{Kind: schema.ChangeModified, DiffEntry: e})
	}
	for _, e := range result.Deleted {
		out = append(out, schema.KindedDiffEntry{Kind: schema.ChangeDeleted, DiffEntry: e})
	}
	return out
}

// BreakingChanges returns only the breaking entries, in AllChanges order.
func BreakingChanges(result schema.JSONDiffResult) []schema.KindedDiffEntry {
	out := []schema.KindedDiffEntry{}
	for _, entry := range AllChanges(result) {
		if entry.Breaking {
			out = append(out, entry)
		}
	}
	return out
}
