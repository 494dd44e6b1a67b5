package cmd

import (
	"github.com/huangsam/specboard/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the specboard MCP server",
	Long:  `Launch an MCP server that allows AI agents to browse spec versions, compliance findings, references and diffs via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Header logs are suppressed per tool call, since stdio carries the protocol.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, cacheManager)
	},
}
