package agg

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/huangsam/specboard/schema"
)

// RowOptions tunes how compliance rows are built.
type RowOptions struct {
	// ContentIDs derives ids from analyzer, severity and code instead of
	// discovery position. Repeats within one build get a "-n" suffix.
	ContentIDs bool
}

// BuildComplianceRows flattens findings into rows with positional ids.
// A nil list yields nil, which callers read as "not loaded yet".
func BuildComplianceRows(list []schema.ComplianceResult) []schema.ComplianceRow {
	return BuildComplianceRowsWithOptions(list, RowOptions{})
}

// BuildComplianceRowsWithOptions flattens findings into rows.
//
// Rows come out in discovery order: results in list order, then severities
// and rule codes in the order the analyzer reported them. Results without
// findings and severities with no rules contribute nothing.
func BuildComplianceRowsWithOptions(list []schema.ComplianceResult, opts RowOptions) []schema.ComplianceRow {
	if list == nil {
		return nil
	}

	rows := []schema.ComplianceRow{}
	seen := make(map[string]int)
	for _, result := range list {
		if result.Findings == nil {
			continue
		}
		for _, sev := range result.Findings.Severities() {
			bucket, ok := result.Findings.Get(sev)
			if !ok || bucket.Rules.Len() == 0 {
				continue
			}
			for _, code := range bucket.Rules.Codes() {
				rule, _ := bucket.Rules.Get(code)
				id := strconv.Itoa(len(rows))
				if opts.ContentIDs {
					id = contentID(result.AnalyzerID, sev, code, seen)
				}
				detail := rule.Data
				if detail == nil {
					detail = []schema.Detail{}
				}
				rows = append(rows, schema.ComplianceRow{
					ID:         id,
					Analyzer:   result.AnalyzerID,
					Severity:   sev,
					Code:       code,
					Message:    rule.Message,
					Mitigation: rule.Mitigation,
					Detail:     detail,
				})
			}
		}
	}
	return rows
}

// CountRuleEntries returns how many rows BuildComplianceRows would emit.
func CountRuleEntries(list []schema.ComplianceResult) int {
	total := 0
	for _, result := range list {
		for _, sev := range result.Findings.Severities() {
			if bucket, ok := result.Findings.Get(sev); ok {
				total += bucket.Rules.Len()
			}
		}
	}
	return total
}

// contentID hashes analyzer, severity and code, suffixing repeats.
func contentID(analyzer string, sev schema.Severity, code string, seen map[string]int) string {
	sum := xxhash.Sum64String(analyzer + "|" + string(sev) + "|" + code)
	id := strconv.FormatUint(sum, 16)
	n := seen[id]
	seen[id] = n + 1
	if n > 0 {
		return fmt.Sprintf("%s-%d", id, n)
	}
	return id
}
