package contract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    time.Duration
		expectError bool
	}{
		{"go duration", "15m", 15 * time.Minute, false},
		{"compound go duration", "1h30m", 90 * time.Minute, false},
		{"plural hours", "2 hours", 2 * time.Hour, false},
		{"singular day mixed case", "1 Day", 24 * time.Hour, false},
		{"weeks", "2 weeks", 14 * 24 * time.Hour, false},
		{"seconds", "45 seconds", 45 * time.Second, false},
		{"padded", "  30 minutes ", 30 * time.Minute, false},
		{"zero go duration", "0s", 0, true},
		{"negative go duration", "-5m", 0, true},
		{"zero units", "0 hours", 0, true},
		{"unsupported unit", "3 fortnights", 0, true},
		{"garbage", "soon", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDuration(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
