package schema

// DiffResponse is the body returned by the spec diff endpoint.
type DiffResponse struct {
	Result DiffResult `json:"result"`
}

// DiffResult carries the structured diff and an optional markdown rendering.
type DiffResult struct {
	JSON     JSONDiffResult `json:"json"`
	Markdown string         `json:"markdown,omitempty"`
}

// JSONDiffResult lists operations added, modified and deleted between two specs.
type JSONDiffResult struct {
	Added    []DiffEntry `json:"added"`
	Modified []DiffEntry `json:"modified"`
	Deleted  []DiffEntry `json:"deleted"`
}

// DiffEntry is one operation-level change.
type DiffEntry struct {
	Method      string            `json:"method"`
	Path        string            `json:"path"`
	Breaking    bool              `json:"breaking"`
	Parameters  *ChangeDescriptor `json:"parameters,omitempty"`
	RequestBody *ChangeDescriptor `json:"requestBody,omitempty"`
	Responses   *ChangeDescriptor `json:"responses,omitempty"`
	Security    *ChangeDescriptor `json:"security,omitempty"`
}

// ChangeDescriptor explains a change to one part of a modified operation.
type ChangeDescriptor struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// DiffChangeKind is the bucket a DiffEntry came from.
type DiffChangeKind string

// All diff change kinds.
const (
	ChangeAdded    DiffChangeKind = "added"
	ChangeModified DiffChangeKind = "modified"
	ChangeDeleted  DiffChangeKind = "deleted"
)

// DiffSummary counts changes per bucket.
type DiffSummary struct {
	Added    int `json:"added"`
	Modified int `json:"modified"`
	Deleted  int `json:"deleted"`
	Breaking int `json:"breaking"`
}

// Total is the number of changed operations.
func (s DiffSummary) Total() int {
	return s.Added + s.Modified + s.Deleted
}

// KindedDiffEntry pairs an entry with the bucket it was listed under.
type KindedDiffEntry struct {
	Kind DiffChangeKind `json:"kind"`
	DiffEntry
}
