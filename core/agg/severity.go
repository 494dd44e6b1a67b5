package agg

import "github.com/huangsam/specboard/schema"

// SummarizeSeverities sums per-severity counts across items.
// Totals always cover every known severity in display order, defaulting to 0.
// Nil items and a nil slice are treated as contributing nothing.
func SummarizeSeverities[T schema.SeverityCounter](items []T) []schema.SeverityTotal {
	totals := make([]schema.SeverityTotal, len(schema.AllSeverities))
	for i, sev := range schema.AllSeverities {
		totals[i].Name = sev
		for _, item := range items {
			if any(item) == nil {
				continue
			}
			totals[i].Total += item.SeverityCount(sev)
		}
	}
	return totals
}

// SummarizeResults rolls up the reported counts of every result's findings.
func SummarizeResults(list []schema.ComplianceResult) []schema.SeverityTotal {
	findings := make([]*schema.Findings, 0, len(list))
	for _, result := range list {
		findings = append(findings, result.Findings)
	}
	return SummarizeSeverities(findings)
}

// SummarizeRows counts built rows per severity.
func SummarizeRows(rows []schema.ComplianceRow) []schema.SeverityTotal {
	counts := schema.SeverityCounts{}
	for _, row := range rows {
		c := counts[row.Severity]
		c.Count++
		counts[row.Severity] = c
	}
	return SummarizeSeverities([]schema.SeverityCounts{counts})
}

// TotalFor returns the total for one severity, 0 when absent.
func TotalFor(totals []schema.SeverityTotal, sev schema.Severity) int {
	for _, t := range totals {
		if t.Name == sev {
			return t.Total
		}
	}
	return 0
}
