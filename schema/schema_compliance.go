package schema

// ComplianceResult is one analyzer's run against one revision.
type ComplianceResult struct {
	AnalyzerID string         `json:"analyzerId"`
	SpecID     string         `json:"specId"`
	Status     AnalysisStatus `json:"status"`
	Findings   *Findings      `json:"findings,omitempty"` // Nil when the analyzer produced nothing
}

// Failed reports whether the run ended with a failure marker.
func (r ComplianceResult) Failed() bool {
	return r.Status != StatusAnalyzed
}

// Findings maps severity names to issue buckets in discovery order.
type Findings struct {
	keyed[*IssueBucket]
}

// NewFindings returns an empty Findings ready for Set.
func NewFindings() *Findings {
	return &Findings{}
}

// Set stores the bucket for a severity, appending new severities at the end.
func (f *Findings) Set(sev Severity, bucket *IssueBucket) *Findings {
	f.set(string(sev), bucket)
	return f
}

// Get returns the bucket for a severity.
func (f *Findings) Get(sev Severity) (*IssueBucket, bool) {
	if f == nil {
		return nil, false
	}
	b, ok := f.get(string(sev))
	return b, ok && b != nil
}

// Severities returns the severity keys in discovery order.
func (f *Findings) Severities() []Severity {
	if f == nil {
		return nil
	}
	keys := f.keys()
	out := make([]Severity, len(keys))
	for i, k := range keys {
		out[i] = Severity(k)
	}
	return out
}

// Len returns the number of severity keys.
func (f *Findings) Len() int {
	if f == nil {
		return 0
	}
	return f.size()
}

// SeverityCount returns the reported count for a severity, 0 when absent.
func (f *Findings) SeverityCount(sev Severity) int {
	if b, ok := f.Get(sev); ok {
		return b.Count
	}
	return 0
}

// IssueBucket groups the rules violated at one severity.
type IssueBucket struct {
	Count int      `json:"count"`
	Rules *RuleSet `json:"rules,omitempty"`
}

// RuleSet maps rule codes to the rule's finding in discovery order.
type RuleSet struct {
	keyed[RuleFinding]
}

// NewRuleSet returns an empty RuleSet ready for Set.
func NewRuleSet() *RuleSet {
	return &RuleSet{}
}

// Set stores a rule finding under its code.
func (rs *RuleSet) Set(code string, rule RuleFinding) *RuleSet {
	rs.set(code, rule)
	return rs
}

// Get returns the finding for a rule code.
func (rs *RuleSet) Get(code string) (RuleFinding, bool) {
	if rs == nil {
		return RuleFinding{}, false
	}
	return rs.get(code)
}

// Codes returns rule codes in discovery order.
func (rs *RuleSet) Codes() []string {
	if rs == nil {
		return nil
	}
	return rs.keys()
}

// Len returns the number of rule codes.
func (rs *RuleSet) Len() int {
	if rs == nil {
		return 0
	}
	return rs.size()
}

// RuleFinding describes one violated rule.
type RuleFinding struct {
	Message    string   `json:"message"`
	Mitigation string   `json:"mitigation"`
	Data       []Detail `json:"data"`
}

// Detail locates a finding inside the document, either by a text range
// or by an old/new pair of fragments.
type Detail struct {
	Path  []string   `json:"path"`
	Range *TextRange `json:"range,omitempty"`
	Old   *string    `json:"old,omitempty"`
	New   *string    `json:"new,omitempty"`
}

// TextRange spans from Start to End.
type TextRange struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Position is a line/column location.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Kind returns "range", "diff" or "path" depending on which payload is present.
func (d Detail) Kind() string {
	switch {
	case d.Range != nil:
		return "range"
	case d.Old != nil || d.New != nil:
		return "diff"
	default:
		return "path"
	}
}

// ComplianceRow is one renderable finding.
type ComplianceRow struct {
	ID         string   `json:"id"`
	Analyzer   string   `json:"analyzer"`
	Severity   Severity `json:"severity"`
	Code       string   `json:"code"`
	Message    string   `json:"message"`
	Mitigation string   `json:"mitigation"`
	Detail     []Detail `json:"detail"`
}

// Field returns the string value of a sortable column.
// The second result is false for unknown fields.
func (r ComplianceRow) Field(f RowField) (string, bool) {
	switch f {
	case FieldID:
		return r.ID, true
	case FieldAnalyzer:
		return r.Analyzer, true
	case FieldSeverity:
		return string(r.Severity), true
	case FieldCode:
		return r.Code, true
	case FieldMessage:
		return r.Message, true
	case FieldMitigation:
		return r.Mitigation, true
	default:
		return "", false
	}
}

// SeverityCounter is anything carrying a per-severity count.
type SeverityCounter interface {
	SeverityCount(sev Severity) int
}

// SeverityCount holds a bare count for one severity.
type SeverityCount struct {
	Count int `json:"count"`
}

// SeverityCounts is a summary object keyed by severity.
type SeverityCounts map[Severity]SeverityCount

// SeverityCount returns the count for a severity, 0 when absent.
func (c SeverityCounts) SeverityCount(sev Severity) int {
	return c[sev].Count
}

// SeverityTotal is the rolled-up total for one severity.
type SeverityTotal struct {
	Name  Severity `json:"name"`
	Total int      `json:"total"`
}
