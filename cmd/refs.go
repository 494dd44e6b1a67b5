package cmd

import (
	"github.com/huangsam/specboard/core"
	"github.com/huangsam/specboard/internal/contract"
	"github.com/spf13/cobra"
)

// refsCmd resolves a schema reference across two spec revisions.
var refsCmd = &cobra.Command{
	Use:   "refs",
	Short: "Resolve a schema reference in two spec revisions and mark cross-references.",
	Long: `Resolve a $ref pointer against the schemas of an old and a new spec revision.

Prints the unified diff of the two schema fragments, then every occurrence of
a referenced schema name in either pane with its line and column. Pinned
references (--active) are resolved as well.

Either side may be left out, in which case that pane is empty.

Examples:
  # Compare the Pet schema between two revisions
  specboard refs --service petstore --old-spec 41 --new-spec 42 --pointer '#/components/schemas/Pet'

  # Only mark lines 20 to 60 of each pane
  specboard refs --old-spec 41 --new-spec 42 --pointer '#/components/schemas/Pet' --from-line 20 --to-line 60

  # Keep Owner pinned alongside
  specboard refs --old-spec 41 --new-spec 42 --pointer '#/components/schemas/Pet' --active '#/components/schemas/Owner'`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRefs(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot resolve references", err)
		}
	},
}
