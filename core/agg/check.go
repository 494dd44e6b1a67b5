package agg

import "github.com/huangsam/specboard/schema"

// CheckLimits returns the severities whose total exceeds its limit, in
// display order. Severities without a limit are not gated.
func CheckLimits(totals []schema.SeverityTotal, limits map[schema.Severity]int) []schema.LimitViolation {
	violations := []schema.LimitViolation{}
	for _, t := range totals {
		limit, ok := limits[t.Name]
		if !ok || t.Total <= limit {
			continue
		}
		violations = append(violations, schema.LimitViolation{Severity: t.Name, Total: t.Total, Limit: limit})
	}
	return violations
}

// FailedAnalyzers lists analyzers whose run ended in a failure marker.
func FailedAnalyzers(list []schema.ComplianceResult) []string {
	var out []string
	for _, result := range list {
		if result.Failed() {
			out = append(out, result.AnalyzerID)
		}
	}
	return out
}
