package schema

// LimitViolation is a severity whose total went over its allowed maximum.
type LimitViolation struct {
	Severity Severity `json:"severity"`
	Total    int      `json:"total"`
	Limit    int      `json:"limit"`
}

// CheckResult is the outcome of gating a revision on its compliance findings.
type CheckResult struct {
	SpecID     string            `json:"specId"`
	Version    string            `json:"version"`
	Passed     bool              `json:"passed"`
	Totals     []SeverityTotal   `json:"totals"`
	Violations []LimitViolation  `json:"violations"`
	Breaking   []KindedDiffEntry `json:"breaking,omitempty"`
	Failed     []string          `json:"failedAnalyzers,omitempty"` // Analyzers that did not finish
}
