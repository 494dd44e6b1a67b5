package contract

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Define the regular expression to capture "N [units]".
var durationRe = regexp.MustCompile(`^(\d+)\s+(week|day|hour|minute|second)s?$`)

// ParseDuration converts strings like "2 hours" or "90s" into a time.Duration.
// It first tries Go's built-in time.ParseDuration for standard formats, then falls back
// to custom parsing for human-readable formats.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)

	// Try Go's built-in duration parsing first (e.g., "15m", "1h30m")
	if duration, err := time.ParseDuration(s); err == nil {
		if duration <= 0 {
			return 0, errors.New("duration must be positive")
		}
		return duration, nil
	}

	// Fall back to custom parsing for human-readable formats (e.g., "30 minutes", "1 day")
	s = strings.ToLower(s)
	matches := durationRe.FindStringSubmatch(s)

	if len(matches) == 0 {
		return 0, fmt.Errorf("invalid duration format: %s", s)
	}

	// 1: Value (e.g., "2")
	// 2: Unit (e.g., "hour")
	value, _ := strconv.Atoi(matches[1])
	unit := matches[2]

	var total time.Duration
	switch unit {
	case "week":
		total = time.Duration(value) * 7 * 24 * time.Hour
	case "day":
		total = time.Duration(value) * 24 * time.Hour
	case "hour":
		total = time.Duration(value) * time.Hour
	case "minute":
		total = time.Duration(value) * time.Minute
	case "second":
		total = time.Duration(value) * time.Second
	}

	if total == 0 {
		return 0, errors.New("duration must be positive")
	}

	return total, nil
}
