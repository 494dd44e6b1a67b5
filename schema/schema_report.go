package schema

// VersionsReport is the revision timeline of one service.
type VersionsReport struct {
	ServiceID string         `json:"serviceId"`
	Groups    []VersionGroup `json:"groups"`
	Snapshots []SpecRevision `json:"snapshots,omitempty"` // Reconstructed revisions, kept out of the timeline
}

// RowsPage is one page of compliance rows.
type RowsPage struct {
	SpecID     string          `json:"specId,omitempty"`
	Rows       []ComplianceRow `json:"rows"`
	Page       int             `json:"page"` // 0 when paging is off
	PageSize   int             `json:"pageSize"`
	TotalPages int             `json:"totalPages"`
	TotalRows  int             `json:"totalRows"`
	RunID      int64           `json:"runId,omitempty"` // Set when the rows were recorded to history
}

// SeverityReport is the severity rollup of a service or spec.
type SeverityReport struct {
	SpecID string          `json:"specId,omitempty"`
	Totals []SeverityTotal `json:"totals"`
}

// ReferenceView is a resolved pointer together with the marks to draw on both panes.
type ReferenceView struct {
	OldSpecID   string       `json:"oldSpecId"`
	NewSpecID   string       `json:"newSpecId"`
	Resolution  Resolution   `json:"resolution"`
	Annotations []Annotation `json:"annotations"`
	Active      []string     `json:"active"`
	Pinned      []Resolution `json:"pinned,omitempty"` // One per active pointer
	Diff        string       `json:"diff"`             // Unified diff of the two panes
}

// DiffReport is the operation-level diff between two specs.
type DiffReport struct {
	OldSpecID string            `json:"oldSpecId"`
	NewSpecID string            `json:"newSpecId"`
	Summary   DiffSummary       `json:"summary"`
	Changes   []KindedDiffEntry `json:"changes"`
	Markdown  string            `json:"markdown,omitempty"`
}
