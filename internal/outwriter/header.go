package outwriter

import (
	"fmt"
	"io"
	"os"

	"github.com/huangsam/specboard/internal/contract"
)

// headerWriter is where progress headers go. Stdout stays clean for piping.
var headerWriter io.Writer = os.Stderr

// headerPrefix returns the emoji prefix when emojis are enabled.
func headerPrefix(cfg *contract.Config, emoji string) string {
	if !cfg.UseEmojis {
		return ""
	}
	return emoji + " "
}

// sourceName describes where specs are read from.
func sourceName(cfg *contract.Config) string {
	if cfg.BaseURL != "" {
		return cfg.BaseURL
	}
	return cfg.SpecsFile
}

// LogServiceHeader prints a concise, 2-line header for a service-level command.
func LogServiceHeader(cfg *contract.Config, subject string) {
	_, _ = fmt.Fprintf(headerWriter, "%sService: %s (Source: %s)\n", headerPrefix(cfg, "🔎"), cfg.ServiceID, sourceName(cfg))
	_, _ = fmt.Fprintf(headerWriter, "%s%s\n", headerPrefix(cfg, "📄"), subject)
}

// LogCompareHeader prints a header for commands working on a spec pair.
func LogCompareHeader(cfg *contract.Config, oldSpecID, newSpecID string) {
	_, _ = fmt.Fprintf(headerWriter, "%sService: %s (Source: %s)\n", headerPrefix(cfg, "🔎"), cfg.ServiceID, sourceName(cfg))
	_, _ = fmt.Fprintf(headerWriter, "%sComparing: %s ↔ %s\n", headerPrefix(cfg, "📊"), oldSpecID, newSpecID)
}
