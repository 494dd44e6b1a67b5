package contract

import (
	"testing"

	"github.com/huangsam/specboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevalidateRows(t *testing.T) {
	tests := []struct {
		name     string
		sort     string
		page     int
		pageSize int
		wantErr  string
		wantSort schema.RowField
		wantPage int
		wantSize int
	}{
		{"no overrides", "", 0, 0, "", schema.FieldSeverity, 0, DefaultPageSize},
		{"sort by code", "Code", 0, 0, "", schema.FieldCode, 0, DefaultPageSize},
		{"page with default size", "", 2, 0, "", schema.FieldSeverity, 2, DefaultPageSize},
		{"page with size", "", 3, 10, "", schema.FieldSeverity, 3, 10},
		{"bad sort", "score", 0, 0, "invalid sort field 'score'", "", 0, 0},
		{"negative page", "", -1, 0, "page cannot be negative", "", 0, 0},
		{"page size too big", "", 1, MaxPageSize + 1, "page-size must be between 1 and 1000", "", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{SortField: schema.FieldSeverity, PageSize: DefaultPageSize}
			err := RevalidateRows(cfg, tt.sort, tt.page, tt.pageSize)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSort, cfg.SortField)
			assert.Equal(t, tt.wantPage, cfg.Page)
			assert.Equal(t, tt.wantSize, cfg.PageSize)
		})
	}
}

func TestRevalidateLimits(t *testing.T) {
	base := map[schema.Severity]int{schema.SeverityError: 0, schema.SeverityWarning: 5}

	t.Run("merges over existing limits", func(t *testing.T) {
		cfg := &Config{SeverityLimits: base}
		require.NoError(t, RevalidateLimits(cfg, "warning:10, hint:3"))
		assert.Equal(t, map[schema.Severity]int{
			schema.SeverityError:   0,
			schema.SeverityWarning: 10,
			schema.SeverityHint:    3,
		}, cfg.SeverityLimits)
		assert.Equal(t, 5, base[schema.SeverityWarning], "the original map is not modified")
	})

	t.Run("empty string keeps limits", func(t *testing.T) {
		cfg := &Config{SeverityLimits: base}
		require.NoError(t, RevalidateLimits(cfg, ""))
		assert.Equal(t, base, cfg.SeverityLimits)
	})

	t.Run("errors", func(t *testing.T) {
		cfg := &Config{}
		err := RevalidateLimits(cfg, "fatal:1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid severity 'fatal'")

		err = RevalidateLimits(cfg, "error:-1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be negative")
	})
}
