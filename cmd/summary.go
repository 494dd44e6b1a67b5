package cmd

import (
	"github.com/huangsam/specboard/core"
	"github.com/huangsam/specboard/internal/contract"
	"github.com/spf13/cobra"
)

// summaryCmd totals findings per severity.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Total compliance findings per severity.",
	Long: `Sum the reported finding counts of every analyzer per severity.

All four severities are always listed in the order error, warning, info,
hint, with 0 for those nobody reported.

Examples:
  # Totals for one spec
  specboard summary --service petstore --spec 42

  # Totals across the whole service as JSON
  specboard summary --service petstore --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSummary(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot summarize severities", err)
		}
	},
}
