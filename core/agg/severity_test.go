package agg

import (
	"testing"

	"github.com/huangsam/specboard/schema"
	"github.com/stretchr/testify/assert"
)

func zeroTotals() []schema.SeverityTotal {
	return []schema.SeverityTotal{
		{Name: schema.SeverityError},
		{Name: schema.SeverityWarning},
		{Name: schema.SeverityInfo},
		{Name: schema.SeverityHint},
	}
}

func TestSummarizeSeveritiesEmpty(t *testing.T) {
	assert.Equal(t, zeroTotals(), SummarizeSeverities([]schema.SeverityCounts{}))
	assert.Equal(t, zeroTotals(), SummarizeSeverities[schema.SeverityCounts](nil))
	assert.Equal(t, zeroTotals(), SummarizeSeverities([]*schema.Findings{nil, nil}))
	assert.Equal(t, zeroTotals(), SummarizeSeverities([]schema.SeverityCounter{nil}))
}

func TestSummarizeSeveritiesSums(t *testing.T) {
	tests := []struct {
		name     string
		items    []schema.SeverityCounts
		expected map[schema.Severity]int
	}{
		{
			name: "two errors",
			items: []schema.SeverityCounts{
				{schema.SeverityError: {Count: 1}},
				{schema.SeverityError: {Count: 1}},
			},
			expected: map[schema.Severity]int{schema.SeverityError: 2},
		},
		{
			name: "missing severities default to zero",
			items: []schema.SeverityCounts{
				{schema.SeverityWarning: {Count: 4}},
				{},
				{schema.SeverityHint: {Count: 2}, schema.SeverityWarning: {Count: 1}},
			},
			expected: map[schema.Severity]int{schema.SeverityWarning: 5, schema.SeverityHint: 2},
		},
		{
			name: "unknown severities are ignored",
			items: []schema.SeverityCounts{
				{"critical": {Count: 9}, schema.SeverityInfo: {Count: 1}},
			},
			expected: map[schema.Severity]int{schema.SeverityInfo: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := SummarizeSeverities(tt.items)
			assert.Len(t, totals, len(schema.AllSeverities))
			for i, sev := range schema.AllSeverities {
				assert.Equal(t, sev, totals[i].Name, "fixed universe order")
				assert.Equal(t, tt.expected[sev], totals[i].Total)
			}
		})
	}
}

func TestSummarizeResults(t *testing.T) {
	totals := SummarizeResults(loadAnalyses(t))

	assert.Equal(t, 1, TotalFor(totals, schema.SeverityError))
	assert.Equal(t, 2, TotalFor(totals, schema.SeverityWarning))
	assert.Equal(t, 1, TotalFor(totals, schema.SeverityInfo))
	assert.Equal(t, 0, TotalFor(totals, schema.SeverityHint))
	assert.Equal(t, 0, TotalFor(totals, "critical"))

	assert.Equal(t, zeroTotals(), SummarizeResults(nil))
}

func TestSummarizeRows(t *testing.T) {
	rows := []schema.ComplianceRow{
		{Severity: schema.SeverityError},
		{Severity: schema.SeverityError},
		{Severity: schema.SeverityHint},
		{Severity: "critical"},
	}
	totals := SummarizeRows(rows)

	assert.Equal(t, 2, TotalFor(totals, schema.SeverityError))
	assert.Equal(t, 0, TotalFor(totals, schema.SeverityWarning))
	assert.Equal(t, 1, TotalFor(totals, schema.SeverityHint))
}
