package cmd

import (
	"github.com/huangsam/specboard/core"
	"github.com/huangsam/specboard/internal/contract"
	"github.com/spf13/cobra"
)

// complianceCmd flattens compliance findings into rows.
var complianceCmd = &cobra.Command{
	Use:   "compliance",
	Short: "Show compliance findings as sortable rows.",
	Long: `Flatten the findings of every analyzer into one row per rule.

Rows are built in discovery order (analyzer, then severity, then rule) and
then sorted by the chosen field. Sorting by severity uses the fixed rank
error, warning, info, hint. Ties keep their discovery order.

Without --spec the findings of every spec of the service are listed.

Examples:
  # Errors first
  specboard compliance --service petstore --spec 42 --desc

  # Page through rows sorted by analyzer
  specboard compliance --service petstore --spec 42 --sort analyzer --page 2 --page-size 50

  # Stable ids across rebuilds
  specboard compliance --service petstore --spec 42 --content-ids --output json

  # Record the run for trend tracking
  specboard compliance --service petstore --spec 42 --record --history-backend sqlite

  # Export rows to Parquet
  specboard compliance --service petstore --output parquet --output-file rows.parquet`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCompliance(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot build compliance rows", err)
		}
	},
}
