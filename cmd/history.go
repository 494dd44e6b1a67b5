package cmd

import (
	"fmt"

	"github.com/huangsam/specboard/internal/contract"
	"github.com/huangsam/specboard/internal/iocache"
	"github.com/huangsam/specboard/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historyBackendFromConfig reads and validates the history backend settings.
// An empty backend means history is disabled.
func historyBackendFromConfig() (schema.DatabaseBackend, string, error) {
	if err := loadConfigFile(); err != nil {
		return "", "", err
	}

	backend := schema.NoneBackend
	if backendStr := viper.GetString("history-backend"); backendStr != "" {
		backend = schema.DatabaseBackend(backendStr)
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", "", fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}
	connStr := viper.GetString("history-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// historySetup loads minimal configuration needed for history operations.
// This is used by commands that need history access without full shared setup.
func historySetup() error {
	backend, connStr, err := historyBackendFromConfig()
	if err != nil {
		return err
	}

	// Initialize stores with the loaded config (no payload cache for history commands)
	if err := iocache.InitStores("", "", backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")

	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyMigrateSetup loads the history settings without opening the store,
// allowing migrations to run on a fresh database.
func historyMigrateSetup(_ *cobra.Command, _ []string) error {
	backend, connStr, err := historyBackendFromConfig()
	if err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetHistoryDBFilePath()
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	return nil
}

// historyCmd focused on compliance history management.
//
// Note: History subcommands use minimal initialization (historySetup) instead of
// the full sharedSetup, so no spec source needs to be configured.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage recorded compliance runs and exports",
	Long: `Manage compliance runs recorded with 'specboard compliance --record'.

Every recorded run stores:
- Run metadata (service, spec, timestamps, duration, configuration)
- Every compliance row built during the run

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show history statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all recorded runs
  migrate - Run database schema migrations

Examples:
  # Check history status
  specboard history status --history-backend sqlite

  # Export for analysis in pandas/DuckDB
  specboard history export --history-backend sqlite --output-file compliance`,
}

// historyClearCmd clears the history data.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded compliance runs",
	Long: `Delete all recorded compliance runs and their rows.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  specboard history export --history-backend sqlite --output-file backup
  specboard history clear --history-backend sqlite`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearHistory(cfg.HistoryBackend, contract.GetHistoryDBFilePath(), cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear history", err)
		}
		fmt.Println("Compliance history cleared successfully.")
	},
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display compliance history statistics and connection details",
	Long: `Show detailed information about recorded compliance runs.

Displays:
- Backend type and connection status
- Total number of runs and rows stored
- Last and oldest run timestamps
- Database table sizes

Examples:
  # Check history status
  specboard history status --history-backend sqlite`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := iocache.Manager.GetHistoryStore()
		if store == nil {
			contract.LogFatal("Failed to get history status", fmt.Errorf("history store is not initialized"))
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		iocache.PrintHistoryStatus(status)
	},
}

// historyExportCmd exports history data to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recorded runs to Parquet for BI tools and analytics",
	Long: `Export all recorded compliance runs to Parquet format.

Writes two files next to --output-file:
- <output-file>.compliance_runs.parquet - one record per run
- <output-file>.compliance_rows.parquet - one record per recorded row

Examples:
  # Export all data
  specboard history export --history-backend sqlite --output-file compliance

  # Use with DuckDB for analysis
  duckdb -c "SELECT severity, count(*) FROM read_parquet('compliance.compliance_rows.parquet') GROUP BY 1"`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExportHistory(iocache.Manager.GetHistoryStore(), cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export history", err)
		}
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the compliance history store.

By default, migrates to the latest version. Use --to for specific versions.

Examples:
  # Migrate to latest version (default)
  specboard history migrate --history-backend postgresql --history-db-connect "host=... dbname=..."

  # Migrate to specific version
  specboard history migrate --history-backend sqlite --to 1

  # Roll back everything
  specboard history migrate --history-backend sqlite --to 0`,
	PreRunE: historyMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.MigrateHistory(cfg.HistoryBackend, cfg.HistoryDBConnect, viper.GetInt("to")); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
