package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/specboard/schema"
)

// Color variables for console output.
var (
	ErrorColor   = color.New(color.FgRed, color.Bold) // ErrorColor represents standard danger.
	WarningColor = color.New(color.FgYellow)          // WarningColor represents standard caution, not bold.
	InfoColor    = color.New(color.FgCyan)            // InfoColor represents informational signal.
	HintColor    = color.New(color.Faint)             // HintColor is for low-priority suggestions.
	UnknownColor = color.New(color.FgMagenta)         // UnknownColor flags severities outside the known set.
	BreakColor   = color.New(color.FgRed)             // BreakColor marks breaking diff entries.
)

// GetPlainLabel returns the display label for a severity. This is the core
// logic used for CSV, JSON, and table printing.
func GetPlainLabel(sev schema.Severity) string {
	if sev == "" {
		return "unknown"
	}
	return string(sev)
}

// GetColorLabel returns a colored severity label for console output (table).
func GetColorLabel(sev schema.Severity) string {
	text := GetPlainLabel(sev)

	switch sev {
	case schema.SeverityError:
		return ErrorColor.Sprint(text)
	case schema.SeverityWarning:
		return WarningColor.Sprint(text)
	case schema.SeverityInfo:
		return InfoColor.Sprint(text)
	case schema.SeverityHint:
		return HintColor.Sprint(text)
	default:
		return UnknownColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for payload caching.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".specboard_cache.db"
	}
	return filepath.Join(homeDir, ".specboard_cache.db")
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for compliance history.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".specboard_history.db"
	}
	return filepath.Join(homeDir, ".specboard_history.db")
}

// TruncateText truncates text to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for the "..." and at least one character.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// TruncatePath truncates a path-like value to a maximum width with an ellipsis prefix,
// keeping the most specific trailing part visible.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
