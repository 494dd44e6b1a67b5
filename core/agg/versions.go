// Package agg has the aggregation pipeline that turns fetched specs and
// compliance results into version groups, rows and severity rollups.
package agg

import (
	"github.com/huangsam/specboard/core/algo"
	"github.com/huangsam/specboard/schema"
)

// AttachCompliance returns copies of specs where each revision carries the
// results whose SpecID matches its ID. Every copy gets a fresh list, empty
// when nothing matches, so the inputs are never aliased or mutated.
func AttachCompliance(specs []schema.SpecRevision, compliance []schema.ComplianceResult) []schema.SpecRevision {
	if specs == nil {
		return nil
	}
	bySpec := make(map[string][]schema.ComplianceResult)
	for _, result := range compliance {
		bySpec[result.SpecID] = append(bySpec[result.SpecID], result)
	}

	out := make([]schema.SpecRevision, len(specs))
	for i, spec := range specs {
		matched := bySpec[spec.ID]
		spec.Compliance = make([]schema.ComplianceResult, len(matched))
		copy(spec.Compliance, matched)
		out[i] = spec
	}
	return out
}

// GroupVersions groups revisions by version with compliance attached.
// Revisions inside a group and the groups themselves are ordered most
// recent first, ties keeping input order. A nil spec list yields no groups.
func GroupVersions(specs []schema.SpecRevision, compliance []schema.ComplianceResult) []schema.VersionGroup {
	if specs == nil {
		return []schema.VersionGroup{}
	}

	attached := AttachCompliance(specs, compliance)

	var order []string
	members := make(map[string][]schema.SpecRevision)
	for _, rev := range attached {
		if _, ok := members[rev.Version]; !ok {
			order = append(order, rev.Version)
		}
		members[rev.Version] = append(members[rev.Version], rev)
	}

	groups := make([]schema.VersionGroup, 0, len(order))
	for _, version := range order {
		groups = append(groups, newGroup(version, algo.SortRevisions(members[version])))
	}
	return algo.SortGroups(groups)
}

// FilterActiveVersions drops archived revisions and any group left empty.
// Latest revision and timestamp are recomputed from what remains and the
// groups are re-ordered by recency. The input is left untouched.
func FilterActiveVersions(groups []schema.VersionGroup) []schema.VersionGroup {
	out := make([]schema.VersionGroup, 0, len(groups))
	for _, g := range groups {
		kept := make([]schema.SpecRevision, 0, len(g.Revisions))
		for _, rev := range g.Revisions {
			if rev.State == schema.StateArchive {
				continue
			}
			kept = append(kept, rev)
		}
		if len(kept) == 0 {
			continue
		}
		out = append(out, newGroup(g.Version, kept))
	}
	return algo.SortGroups(out)
}

// PartitionSnapshots splits reconstructed revisions from uploaded ones,
// keeping the relative order of each side.
func PartitionSnapshots(specs []schema.SpecRevision) (uploaded, snapshots []schema.SpecRevision) {
	uploaded = []schema.SpecRevision{}
	snapshots = []schema.SpecRevision{}
	for _, spec := range specs {
		if spec.State == schema.StateReconstructed {
			snapshots = append(snapshots, spec)
		} else {
			uploaded = append(uploaded, spec)
		}
	}
	return uploaded, snapshots
}

// FindRevision looks up a revision by id across all groups.
func FindRevision(groups []schema.VersionGroup, specID string) (schema.SpecRevision, bool) {
	for _, g := range groups {
		for _, rev := range g.Revisions {
			if rev.ID == specID {
				return rev, true
			}
		}
	}
	return schema.SpecRevision{}, false
}

// FlattenGroups returns every revision of every group in display order.
func FlattenGroups(groups []schema.VersionGroup) []schema.SpecRevision {
	var out []schema.SpecRevision
	for _, g := range groups {
		out = append(out, g.Revisions...)
	}
	return out
}

// newGroup builds a group from revisions that are already sorted.
func newGroup(version string, sorted []schema.SpecRevision) schema.VersionGroup {
	return schema.VersionGroup{
		Version:        version,
		UpdatedAt:      sorted[0].UpdatedAt,
		Revisions:      sorted,
		LatestRevision: sorted[0],
	}
}
