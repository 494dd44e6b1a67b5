package agg

import (
	"testing"

	"github.com/huangsam/specboard/schema"
	"github.com/stretchr/testify/assert"
)

func TestCheckLimits(t *testing.T) {
	totals := SummarizeResults(loadAnalyses(t)) // error 1, warning 2, info 1

	tests := []struct {
		name     string
		limits   map[schema.Severity]int
		expected []schema.LimitViolation
	}{
		{
			name:     "no limits",
			limits:   nil,
			expected: []schema.LimitViolation{},
		},
		{
			name:   "zero errors allowed",
			limits: map[schema.Severity]int{schema.SeverityError: 0},
			expected: []schema.LimitViolation{
				{Severity: schema.SeverityError, Total: 1, Limit: 0},
			},
		},
		{
			name:     "at the limit passes",
			limits:   map[schema.Severity]int{schema.SeverityWarning: 2, schema.SeverityError: 1},
			expected: []schema.LimitViolation{},
		},
		{
			name:   "display order",
			limits: map[schema.Severity]int{schema.SeverityInfo: 0, schema.SeverityError: 0},
			expected: []schema.LimitViolation{
				{Severity: schema.SeverityError, Total: 1, Limit: 0},
				{Severity: schema.SeverityInfo, Total: 1, Limit: 0},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CheckLimits(totals, tt.limits))
		})
	}
}

func TestFailedAnalyzers(t *testing.T) {
	assert.Equal(t, []string{"breaking"}, FailedAnalyzers(loadAnalyses(t)))
	assert.Nil(t, FailedAnalyzers(nil))
}
