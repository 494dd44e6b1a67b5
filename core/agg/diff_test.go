package agg

import (
	"testing"

	"github.com/huangsam/specboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDiff() schema.JSONDiffResult {
	return schema.JSONDiffResult{
		Added: []schema.DiffEntry{
			{Method: "post", Path: "/pets"},
		},
		Modified: []schema.DiffEntry{
			{
				Method:   "get",
				Path:     "/pets/{id}",
				Breaking: true,
				Parameters: &schema.ChangeDescriptor{
					Message: "parameter became required",
					Details: []string{"query.limit"},
				},
			},
			{Method: "put", Path: "/pets/{id}"},
		},
		Deleted: []schema.DiffEntry{
			{Method: "delete", Path: "/pets/{id}", Breaking: true},
		},
	}
}

func TestSummarizeDiff(t *testing.T) {
	summary := SummarizeDiff(sampleDiff())

	assert.Equal(t, schema.DiffSummary{Added: 1, Modified: 2, Deleted: 1, Breaking: 2}, summary)
	assert.Equal(t, 4, summary.Total())
	assert.Equal(t, schema.DiffSummary{}, SummarizeDiff(schema.JSONDiffResult{}))
}

func TestAllChanges(t *testing.T) {
	changes := AllChanges(sampleDiff())

	require.Len(t, changes, 4)
	assert.Equal(t, schema.ChangeAdded, changes[0].Kind)
	assert.Equal(t, schema.ChangeModified, changes[1].Kind)
	assert.Equal(t, schema.ChangeModified, changes[2].Kind)
	assert.Equal(t, schema.ChangeDeleted, changes[3].Kind)
}

func TestBreakingChanges(t *testing.T) {
	breaking := BreakingChanges(sampleDiff())

	require.Len(t, breaking, 2)
	assert.Equal(t, "/pets/{id}", breaking[0].Path)
	assert.Equal(t, "get", breaking[0].Method)
	assert.Equal(t, schema.ChangeDeleted, breaking[1].Kind)

	assert.Empty(t, BreakingChanges(schema.JSONDiffResult{}))
}
