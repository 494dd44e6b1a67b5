package outwriter

import (
	"os"

	"github.com/huangsam/specboard/internal/contract"
	"golang.org/x/term"
)

// Bounds for free-text columns such as messages and paths.
const (
	minTextWidth = 15
	maxTextWidth = 80
)

// GetMaxTableTextWidth calculates the maximum width of the free-text column
// of a table, given the space taken by its fixed columns.
func GetMaxTableTextWidth(cfg *contract.Config, fixedWidth int) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for table borders, separators, and padding
	available := termWidth - fixedWidth - 20
	if available < minTextWidth {
		return minTextWidth
	}
	if available > maxTextWidth {
		return maxTextWidth
	}
	return available
}
