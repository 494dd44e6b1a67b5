package agg

import (
	_ "embed"
	"encoding/json"
	"testing"

	"github.com/huangsam/specboard/schema"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/analyses.json
var analysesJSON []byte

// loadAnalyses decodes the shared compliance fixture.
func loadAnalyses(t *testing.T) []schema.ComplianceResult {
	t.Helper()
	var list []schema.ComplianceResult
	require.NoError(t, json.Unmarshal(analysesJSON, &list))
	return list
}

// singleRuleResult builds a result with one rule under one severity.
func singleRuleResult(analyzer, specID string, sev schema.Severity, code string) schema.ComplianceResult {
	rules := schema.NewRuleSet().Set(code, schema.RuleFinding{Message: "m", Mitigation: "f", Data: []schema.Detail{}})
	return schema.ComplianceResult{
		AnalyzerID: analyzer,
		SpecID:     specID,
		Status:     schema.StatusAnalyzed,
		Findings:   schema.NewFindings().Set(sev, &schema.IssueBucket{Count: 1, Rules: rules}),
	}
}
