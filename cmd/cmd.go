// Package cmd defines the command-line interface for specboard.
package cmd

import (
	"github.com/huangsam/specboard/internal/contract"
	"github.com/huangsam/specboard/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(versionsCmd)
	rootCmd.AddCommand(complianceCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(refsCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mcpCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("source", string(schema.HTTPSource), "Spec source: http or file")
	rootCmd.PersistentFlags().String("base-url", "", "Base URL of the spec service (http source)")
	rootCmd.PersistentFlags().String("token", "", "Bearer token for the spec service (prefer SPECBOARD_TOKEN)")
	rootCmd.PersistentFlags().String("timeout", contract.DefaultTimeout.String(), "HTTP request timeout (e.g., 30s, '2 minutes')")
	rootCmd.PersistentFlags().StringP("service", "s", "", "Service id whose specs are listed")
	rootCmd.PersistentFlags().String("specs-file", "", "JSON or YAML export of the spec list (file source)")
	rootCmd.PersistentFlags().String("analyses-file", "", "JSON or YAML export of compliance results (file source)")
	rootCmd.PersistentFlags().String("diff-file", "", "JSON or YAML export of a spec diff (file source)")
	rootCmd.PersistentFlags().String("spec", "", "Spec id to inspect")
	rootCmd.PersistentFlags().String("old-spec", "", "Spec id of the old side of a comparison")
	rootCmd.PersistentFlags().String("new-spec", "", "Spec id of the new side of a comparison")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Payload cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("cache-ttl", contract.DefaultCacheTTL.String(), "How long cached payloads stay fresh (e.g., 15m, '1 hour')")
	rootCmd.PersistentFlags().Bool("refresh", false, "Skip cached payloads and fetch fresh ones")
	rootCmd.PersistentFlags().String("history-backend", "", "Compliance history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for compliance history (must differ from cache-db-connect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("emoji", "no", "Enable emojis in output headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of versionsCmd to Viper
	versionsCmd.Flags().Bool("active-only", false, "Hide archived revisions and versions left empty")
	versionsCmd.Flags().Bool("include-snapshots", false, "Also list reconstructed snapshots")
	if err := viper.BindPFlags(versionsCmd.Flags()); err != nil {
		contract.LogFatal("Error binding versions flags", err)
	}

	// Bind all flags of complianceCmd to Viper
	complianceCmd.Flags().Int("page", 0, "1-based page of rows to show (0 disables paging)")
	complianceCmd.Flags().Int("page-size", contract.DefaultPageSize, "Rows per page when paging")
	complianceCmd.Flags().String("sort", string(schema.FieldSeverity), "Row field to sort by: id or analyzer or severity or code or message or mitigation")
	complianceCmd.Flags().Bool("desc", false, "Sort in descending order")
	complianceCmd.Flags().Bool("content-ids", false, "Use content-derived row ids instead of positional ones")
	complianceCmd.Flags().Bool("record", false, "Record the rows as a run in the history store")
	if err := viper.BindPFlags(complianceCmd.Flags()); err != nil {
		contract.LogFatal("Error binding compliance flags", err)
	}

	// Bind all flags of refsCmd to Viper
	refsCmd.Flags().String("pointer", "", "Schema reference to resolve (e.g., '#/components/schemas/Pet')")
	refsCmd.Flags().String("active", "", "Comma-separated references already pinned")
	refsCmd.Flags().Int("from-line", 0, "First pane line to mark (1-based)")
	refsCmd.Flags().Int("to-line", 0, "Last pane line to mark (0 marks the whole pane)")
	if err := viper.BindPFlags(refsCmd.Flags()); err != nil {
		contract.LogFatal("Error binding refs flags", err)
	}

	// Bind all flags of checkCmd to Viper
	checkCmd.Flags().String("limits-override", "", "Severity limits for CI/CD gating (format: 'error:0,warning:10')")
	checkCmd.Flags().Bool("fail-on-breaking", false, "Fail when --old-spec diffs with breaking changes")
	if err := viper.BindPFlags(checkCmd.Flags()); err != nil {
		contract.LogFatal("Error binding check flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("to", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
