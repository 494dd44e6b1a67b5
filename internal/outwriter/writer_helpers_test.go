package outwriter

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/specboard/internal/contract"
	"github.com/huangsam/specboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	tests := []struct {
		name     string
		data     any
		expected string
	}{
		{
			name: "simple object",
			data: map[string]any{"name": "test", "value": 42},
			expected: `{
  "name": "test",
  "value": 42
}
`,
		},
		{
			name: "array",
			data: []string{"a", "b"},
			expected: `[
  "a",
  "b"
]
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, writeJSON(&buf, tt.data))
			assert.Equal(t, tt.expected, buf.String())
		})
	}

	t.Run("unsupported value", func(t *testing.T) {
		var buf bytes.Buffer
		err := writeJSON(&buf, make(chan int))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to encode JSON")
	})
}

func TestWriteCSVWithHeader(t *testing.T) {
	var buf bytes.Buffer
	err := writeCSVWithHeader(&buf, []string{"a", "b"}, func(w *csv.Writer) error {
		return w.Write([]string{"1", "two, with comma"})
	})
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,\"two, with comma\"\n", buf.String())

	buf.Reset()
	err = writeCSVWithHeader(&buf, []string{"a"}, func(*csv.Writer) error {
		return errors.New("boom")
	})
	assert.EqualError(t, err, "boom")
}

func TestWriteWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	err := writeWithFile(path, func(w io.Writer) error {
		_, err := w.Write([]byte("hello"))
		return err
	}, "Wrote text")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	err = writeWithFile(filepath.Join(t.TempDir(), "missing", "out.txt"), nil, "Wrote text")
	assert.Error(t, err)
}

func TestFormatScore(t *testing.T) {
	score := 87.26
	assert.Equal(t, "-", formatScore(nil))
	assert.Equal(t, "87.3", formatScore(&score))
}

func TestSeverityLabel(t *testing.T) {
	assert.Equal(t, "error", severityLabel(schema.SeverityError, &contract.Config{}))
	assert.Equal(t, "unknown", severityLabel("", &contract.Config{}))
	colored := severityLabel(schema.SeverityError, &contract.Config{UseColors: true})
	assert.Contains(t, colored, "error")
}

func TestFormatLocation(t *testing.T) {
	oldText := "a"
	tests := []struct {
		name     string
		details  []schema.Detail
		expected string
	}{
		{"none", nil, ""},
		{"path only", []schema.Detail{{Path: []string{"paths", "/pets"}}}, "paths./pets"},
		{
			"range",
			[]schema.Detail{{Path: []string{"info"}, Range: &schema.TextRange{Start: schema.Position{Line: 3, Column: 5}}}},
			"info:3:5",
		},
		{
			"several",
			[]schema.Detail{{Path: []string{"info"}}, {Path: []string{"x"}, Old: &oldText}, {Path: []string{"y"}}},
			"info (+2 more)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatLocation(tt.details))
		})
	}
}

func TestFormatChanges(t *testing.T) {
	entry := schema.DiffEntry{
		Parameters: &schema.ChangeDescriptor{Message: "limit added"},
		Responses:  &schema.ChangeDescriptor{Message: "200 changed"},
		Security:   &schema.ChangeDescriptor{},
	}
	assert.Equal(t, "parameters: limit added; responses: 200 changed", formatChanges(entry))
	assert.Empty(t, formatChanges(schema.DiffEntry{}))
	assert.Empty(t, descriptorMessage(nil))
}

func TestGetMaxTableTextWidth(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		fixed    int
		expected int
	}{
		{"narrow", 60, 60, minTextWidth},
		{"medium", 120, 60, 40},
		{"wide", 300, 60, maxTextWidth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetMaxTableTextWidth(&contract.Config{Width: tt.width}, tt.fixed))
		})
	}
}

func TestLogHeaders(t *testing.T) {
	var buf bytes.Buffer
	orig := headerWriter
	headerWriter = &buf
	defer func() { headerWriter = orig }()

	cfg := &contract.Config{ServiceID: "petstore", BaseURL: "https://api.example.com", UseEmojis: true}
	LogServiceHeader(cfg, "Versions")
	LogCompareHeader(&contract.Config{ServiceID: "petstore", SpecsFile: "specs.yaml"}, "a", "b")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "🔎 Service: petstore (Source: https://api.example.com)", lines[0])
	assert.Equal(t, "📄 Versions", lines[1])
	assert.Equal(t, "Service: petstore (Source: specs.yaml)", lines[2])
	assert.Equal(t, "Comparing: a ↔ b", lines[3])
}
