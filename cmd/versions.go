package cmd

import (
	"github.com/huangsam/specboard/core"
	"github.com/huangsam/specboard/internal/contract"
	"github.com/spf13/cobra"
)

// versionsCmd groups spec revisions by version.
var versionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "Show spec revisions grouped by version, most recent first.",
	Long: `Group every uploaded spec revision of a service by its version string.

Revisions inside a version and the versions themselves are ordered by their
last update, most recent first. Each revision carries the compliance results
of the analyzers that ran against it, summarized in the Analyzers column.

Reconstructed snapshots are kept out of the version timeline. Use
--include-snapshots to list them separately.

Examples:
  # List versions of a service
  specboard versions --base-url https://specs.example.com --service petstore

  # Hide archived revisions
  specboard versions --service petstore --active-only

  # Read a local export instead of the live service
  specboard versions --source file --specs-file specs.json --include-snapshots

  # Export to CSV
  specboard versions --service petstore --output csv --output-file versions.csv`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteVersions(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot list versions", err)
		}
	},
}
