// Package schema has models, constants and helpers shared by all parts of specboard.
package schema

// SpecRevision is one uploaded document within a version.
// The pipeline treats revisions as immutable input; derived copies carry
// the ComplianceList attached by the version grouper.
type SpecRevision struct {
	ID           string             `json:"id"`
	Version      string             `json:"version"`  // Group key
	Revision     string             `json:"revision"` // Label within a version
	UpdatedAt    string             `json:"updatedAt"`
	Score        *float64           `json:"score"` // Nil until analysis completes
	State        SpecState          `json:"state"`
	DocumentText string             `json:"documentText,omitempty"`
	ServiceID    string             `json:"serviceId"`
	Compliance   []ComplianceResult `json:"complianceList,omitempty"`
}

// VersionGroup collects every revision sharing a version string.
type VersionGroup struct {
	Version        string         `json:"version"`
	UpdatedAt      string         `json:"updatedAt"`
	Revisions      []SpecRevision `json:"revisions"` // Most recent first
	LatestRevision SpecRevision   `json:"latestRevision"`
}

// RevisionIDs returns the ids of the group's revisions in order.
func (g VersionGroup) RevisionIDs() []string {
	ids := make([]string, len(g.Revisions))
	for i, r := range g.Revisions {
		ids[i] = r.ID
	}
	return ids
}
