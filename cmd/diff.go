package cmd

import (
	"github.com/huangsam/specboard/core"
	"github.com/huangsam/specboard/internal/contract"
	"github.com/spf13/cobra"
)

// diffCmd lists operation-level changes between two spec revisions.
var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Show operations added, modified and deleted between two spec revisions.",
	Long: `Diff two spec revisions of a service at the operation level.

Changes are listed added first, then modified, then deleted, with breaking
changes flagged. Modified operations show what changed in their parameters,
request body, responses and security.

Examples:
  # Diff two revisions
  specboard diff --service petstore --old-spec 41 --new-spec 42

  # Use a precomputed diff with the file source
  specboard diff --source file --specs-file specs.json --diff-file diff.json --old-spec 41 --new-spec 42

  # Keep the service's markdown rendering
  specboard diff --service petstore --old-spec 41 --new-spec 42 --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDiff(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot diff specs", err)
		}
	},
}
