// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/huangsam/specboard/internal/contract"
	"github.com/huangsam/specboard/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteVersions prints the version timeline using the configured output format.
func (ow *OutWriter) WriteVersions(report schema.VersionsReport, cfg *contract.Config, duration time.Duration) error {
	return PrintVersionsResults(report, cfg, duration)
}

// WriteRows prints a page of compliance rows using the configured output format.
func (ow *OutWriter) WriteRows(page schema.RowsPage, cfg *contract.Config, duration time.Duration) error {
	return PrintRowsResults(page, cfg, duration)
}

// WriteSeverities prints severity totals using the configured output format.
func (ow *OutWriter) WriteSeverities(report schema.SeverityReport, cfg *contract.Config, duration time.Duration) error {
	return PrintSeverityResults(report, cfg, duration)
}

// WriteReferences prints a resolved reference view using the configured output format.
func (ow *OutWriter) WriteReferences(view schema.ReferenceView, cfg *contract.Config, duration time.Duration) error {
	return PrintReferenceResults(view, cfg, duration)
}

// WriteDiff prints a spec diff using the configured output format.
func (ow *OutWriter) WriteDiff(report schema.DiffReport, cfg *contract.Config, duration time.Duration) error {
	return PrintDiffResults(report, cfg, duration)
}

// WriteCheck prints a check result using the configured output format.
func (ow *OutWriter) WriteCheck(result schema.CheckResult, cfg *contract.Config, duration time.Duration) error {
	return PrintCheckResults(result, cfg, duration)
}
