package cmd

import (
	"errors"
	"os"

	"github.com/huangsam/specboard/core"
	"github.com/huangsam/specboard/internal/contract"
	"github.com/spf13/cobra"
)

// checkCmd focused on CI/CD policy enforcement.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Enforce severity limits for CI/CD pipelines (fails build on violations)",
	Long: `Total the compliance findings of one spec and compare them with severity limits.

Designed specifically for CI/CD integration - exits with a non-zero code when a
severity total exceeds its limit, or when --fail-on-breaking is set and the
diff from --old-spec has breaking changes.

Limits come from the 'limits' section of the config file and can be
overridden with --limits-override. Severities without a limit are not gated.

Without --spec the latest revision of the newest version is checked.

Examples:
  # No errors allowed, up to 10 warnings
  specboard check --service petstore --spec 42 --limits-override "error:0,warning:10"

  # Also block breaking changes since the released spec
  specboard check --service petstore --spec 42 --old-spec 41 --fail-on-breaking

  # Check whatever was uploaded last
  specboard check --service petstore`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		err := core.ExecuteCheck(rootCtx, cfg, cacheManager)
		if errors.Is(err, core.ErrCheckFailed) {
			os.Exit(1)
		}
		if err != nil {
			contract.LogFatal("Policy check failed", err)
		}
	},
}
