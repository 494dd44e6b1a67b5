// Package algo has ordering, sorting and paging primitives for specboard.
package algo

import (
	"sort"

	"github.com/huangsam/specboard/schema"
)

// SortRevisions returns a copy of revs ordered by UpdatedAt, most recent first.
// ISO-8601 timestamps order correctly as strings. Ties keep input order.
func SortRevisions(revs []schema.SpecRevision) []schema.SpecRevision {
	out := make([]schema.SpecRevision, len(revs))
	copy(out, revs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt > out[j].UpdatedAt
	})
	return out
}

// SortGroups returns a copy of groups ordered by UpdatedAt, most recent first.
// Ties keep input order.
func SortGroups(groups []schema.VersionGroup) []schema.VersionGroup {
	out := make([]schema.VersionGroup, len(groups))
	copy(out, groups)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt > out[j].UpdatedAt
	})
	return out
}

// IsRecencyOrdered reports whether every adjacent pair is in descending UpdatedAt order.
func IsRecencyOrdered(revs []schema.SpecRevision) bool {
	for i := 1; i < len(revs); i++ {
		if revs[i-1].UpdatedAt < revs[i].UpdatedAt {
			return false
		}
	}
	return true
}
