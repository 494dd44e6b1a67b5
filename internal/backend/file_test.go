package backend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture(name string) string {
	return filepath.Join("testdata", name)
}

func TestFileSource_ListSpecs(t *testing.T) {
	ctx := context.Background()
	src := NewFileSource(fixture("specs.yaml"), "", "")

	all, err := src.ListSpecs(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	petstore, err := src.ListSpecs(ctx, "petstore")
	require.NoError(t, err)
	require.Len(t, petstore, 2)
	assert.Equal(t, "a", petstore[0].ID)
	assert.Contains(t, petstore[0].DocumentText, "Pet:")

	none, err := src.ListSpecs(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestFileSource_ListAnalyses(t *testing.T) {
	ctx := context.Background()

	t.Run("embedded compliance lists", func(t *testing.T) {
		src := NewFileSource(fixture("specs.yaml"), "", "")
		list, err := src.ListAnalyses(ctx, "petstore", "")
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "spectral", list[0].AnalyzerID)
		assert.Equal(t, 1, list[0].Findings.SeverityCount("error"))
	})

	t.Run("analyses file filtered by spec", func(t *testing.T) {
		src := NewFileSource(fixture("specs.yaml"), fixture("analyses.json"), "")
		list, err := src.ListAnalyses(ctx, "petstore", "a")
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "owasp", list[0].AnalyzerID)
		assert.True(t, list[0].Failed())
	})

	t.Run("missing analyses file", func(t *testing.T) {
		src := NewFileSource(fixture("specs.yaml"), fixture("nope.json"), "")
		_, err := src.ListAnalyses(ctx, "petstore", "")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestFileSource_DiffSpecs(t *testing.T) {
	ctx := context.Background()

	t.Run("without diff file", func(t *testing.T) {
		src := NewFileSource(fixture("specs.yaml"), "", "")
		_, err := src.DiffSpecs(ctx, "petstore", "a", "b")
		assert.ErrorIs(t, err, ErrUnsupported)
	})

	t.Run("unknown spec", func(t *testing.T) {
		src := NewFileSource(fixture("specs.yaml"), "", fixture("diff.json"))
		_, err := src.DiffSpecs(ctx, "petstore", "a", "zzz")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("reads diff", func(t *testing.T) {
		src := NewFileSource(fixture("specs.yaml"), "", fixture("diff.json"))
		resp, err := src.DiffSpecs(ctx, "petstore", "a", "b")
		require.NoError(t, err)
		assert.Len(t, resp.Result.JSON.Added, 1)
		require.Len(t, resp.Result.JSON.Modified, 1)
		assert.True(t, resp.Result.JSON.Modified[0].Breaking)
		require.NotNil(t, resp.Result.JSON.Modified[0].Responses)
		assert.Equal(t, "response 200 changed", resp.Result.JSON.Modified[0].Responses.Message)
		assert.Equal(t, "## Changes", resp.Result.Markdown)
	})
}

func TestFileSource_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFileSource(fixture("specs.yaml"), "", "").ListSpecs(ctx, "")
	assert.ErrorIs(t, err, context.Canceled)
}
