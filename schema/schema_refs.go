package schema

// Pane identifies one side of a side-by-side comparison.
type Pane string

// Both comparison panes.
const (
	OldPane Pane = "old"
	NewPane Pane = "new"
)

// SchemaPointerPrefix is prepended to a schema name to form its pointer.
const SchemaPointerPrefix = "#/components/schemas/"

// Annotation marks one clickable reference occurrence inside pane text.
// Offset and Length are byte positions; Line and Column are 1-based.
type Annotation struct {
	Pane      Pane   `json:"pane"`
	Offset    int    `json:"offset"`
	Length    int    `json:"length"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	Reference string `json:"reference"`
	Pointer   string `json:"pointer"`
}

// End is the byte offset just past the match.
func (a Annotation) End() int {
	return a.Offset + a.Length
}

// Resolution is the result of resolving one pointer against an old/new spec pair.
type Resolution struct {
	Pointer    string         `json:"pointer"`
	Name       string         `json:"name"`
	OldSchemas map[string]any `json:"oldSchemas"`
	NewSchemas map[string]any `json:"newSchemas"`
	OldValue   any            `json:"oldValue,omitempty"` // Nil when the name is absent on the old side
	NewValue   any            `json:"newValue,omitempty"`
	OldText    string         `json:"oldText"`
	NewText    string         `json:"newText"`
	Candidates []string       `json:"candidates"`
}

// PaneText returns the rendered text of a pane.
func (r Resolution) PaneText(p Pane) string {
	if p == OldPane {
		return r.OldText
	}
	return r.NewText
}
