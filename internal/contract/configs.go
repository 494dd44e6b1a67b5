package contract

import (
	"fmt"
	"maps"
	"net/url"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/specboard/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 50
	MaxResultLimit     = 1000
	DefaultPageSize    = 25
	MaxPageSize        = 1000
	DefaultTimeout     = 30 * time.Second
	DefaultCacheTTL    = 15 * time.Minute
)

// PayloadCacheVersion is bumped whenever the cached payload shape changes,
// so stale entries are ignored instead of misread.
const PayloadCacheVersion = 1

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for specboard.
// This struct remains the "final, validated" config.
type Config struct {
	Source       schema.SourceKind
	BaseURL      string
	Token        string // Please use env var as this is plaintext
	Timeout      time.Duration
	ServiceID    string
	SpecsFile    string
	AnalysesFile string
	DiffFile     string

	Output      schema.OutputMode
	OutputFile  string
	ResultLimit int
	Page        int
	PageSize    int
	SortField   schema.RowField
	Descending  bool
	Width       int // Terminal width override (0 = auto-detect)

	ActiveOnly       bool
	IncludeSnapshots bool
	ContentIDs       bool

	SpecID    string
	OldSpecID string
	NewSpecID string

	Pointer    string
	ActiveRefs []string
	FromLine   int
	ToLine     int

	// SeverityLimits is the maximum total allowed per severity by the check command
	SeverityLimits map[schema.Severity]int
	FailOnBreaking bool

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext
	CacheTTL       time.Duration
	Refresh        bool

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext
	Record           bool

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Source           string `mapstructure:"source"`
	BaseURL          string `mapstructure:"base-url"`
	Token            string `mapstructure:"token"`
	Timeout          string `mapstructure:"timeout"`
	Service          string `mapstructure:"service"`
	SpecsFile        string `mapstructure:"specs-file"`
	AnalysesFile     string `mapstructure:"analyses-file"`
	DiffFile         string `mapstructure:"diff-file"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Limit            int    `mapstructure:"limit"`
	Width            int    `mapstructure:"width"`
	CacheBackend     string `mapstructure:"cache-backend"`
	CacheDBConnect   string `mapstructure:"cache-db-connect"`
	CacheTTL         string `mapstructure:"cache-ttl"`
	Refresh          bool   `mapstructure:"refresh"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`
	Emoji            string `mapstructure:"emoji"`
	Color            string `mapstructure:"color"`

	// --- Fields from versionsCmd.Flags() ---
	ActiveOnly       bool `mapstructure:"active-only"`
	IncludeSnapshots bool `mapstructure:"include-snapshots"`

	// --- Fields from complianceCmd.Flags() ---
	Spec       string `mapstructure:"spec"`
	Page       int    `mapstructure:"page"`
	PageSize   int    `mapstructure:"page-size"`
	Sort       string `mapstructure:"sort"`
	Desc       bool   `mapstructure:"desc"`
	ContentIDs bool   `mapstructure:"content-ids"`
	Record     bool   `mapstructure:"record"`

	// --- Fields from refsCmd.Flags() and diffCmd.Flags() ---
	OldSpec  string `mapstructure:"old-spec"`
	NewSpec  string `mapstructure:"new-spec"`
	Pointer  string `mapstructure:"pointer"`
	Active   string `mapstructure:"active"`
	FromLine int    `mapstructure:"from-line"`
	ToLine   int    `mapstructure:"to-line"`

	// --- Fields from checkCmd.Flags() ---
	LimitsStr      string `mapstructure:"limits-override"`
	FailOnBreaking bool   `mapstructure:"fail-on-breaking"`

	// --- Severity limits from config file ---
	Limits LimitsRawInput `mapstructure:"limits"`
}

// LimitsRawInput holds severity limit definitions from the YAML config file.
type LimitsRawInput struct {
	Error   *int `mapstructure:"error"`
	Warning *int `mapstructure:"warning"`
	Info    *int `mapstructure:"info"`
	Hint    *int `mapstructure:"hint"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.ActiveRefs != nil {
		clone.ActiveRefs = slices.Clone(c.ActiveRefs)
	}
	if c.SeverityLimits != nil {
		clone.SeverityLimits = make(map[schema.Severity]int, len(c.SeverityLimits))
		maps.Copy(clone.SeverityLimits, c.SeverityLimits)
	}
	return &clone
}

// CloneWithSpec creates a copy of the Config scoped to a single spec.
func (c *Config) CloneWithSpec(specID string) *Config {
	clone := c.Clone()
	clone.SpecID = specID
	return clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processSource(cfg, input); err != nil {
		return err
	}
	if err := processRowOptions(cfg, input); err != nil {
		return err
	}
	if err := processReferenceOptions(cfg, input); err != nil {
		return err
	}
	if err := processSeverityLimits(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates cache and history backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	// --- History Backend Validation ---
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if cfg.HistoryBackend == "" {
		if input.Record {
			return fmt.Errorf("--record requires a history backend (set --history-backend)")
		}
		return nil
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return err
	}

	// The payload cache is cleared by deleting its file, so history must live elsewhere
	if cfg.CacheBackend == schema.SQLiteBackend && cfg.HistoryBackend == schema.SQLiteBackend {
		cacheDBPath := cfg.CacheDBConnect
		if cacheDBPath == "" {
			cacheDBPath = GetCacheDBFilePath()
		}
		historyDBPath := cfg.HistoryDBConnect
		if historyDBPath == "" {
			historyDBPath = GetHistoryDBFilePath()
		}
		if filepath.Clean(cacheDBPath) == filepath.Clean(historyDBPath) {
			return fmt.Errorf("cache and history storage must use different SQLite database files. Both resolve to %q", cacheDBPath)
		}
	}
	return nil
}

// validateSimpleInputs processes and validates output, paging and backend fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.ActiveOnly = input.ActiveOnly
	cfg.IncludeSnapshots = input.IncludeSnapshots
	cfg.ContentIDs = input.ContentIDs
	cfg.Refresh = input.Refresh
	cfg.Record = input.Record
	cfg.FailOnBreaking = input.FailOnBreaking
	cfg.SpecID = strings.TrimSpace(input.Spec)

	// Parse emoji flag
	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Output Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("--output-file is required when using parquet output")
	}

	// --- 3. Durations ---
	cfg.Timeout = DefaultTimeout
	if input.Timeout != "" {
		timeout, err := ParseDuration(input.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout: %w", err)
		}
		cfg.Timeout = timeout
	}
	cfg.CacheTTL = DefaultCacheTTL
	if input.CacheTTL != "" {
		ttl, err := ParseDuration(input.CacheTTL)
		if err != nil {
			return fmt.Errorf("invalid cache-ttl: %w", err)
		}
		cfg.CacheTTL = ttl
	}

	// --- 4. Backend Validation ---
	return validateBackendConfigs(cfg, input)
}

// processSource validates the spec source and its required settings.
func processSource(cfg *Config, input *ConfigRawInput) error {
	cfg.Source = schema.SourceKind(strings.ToLower(strings.TrimSpace(input.Source)))
	if _, ok := schema.ValidSources[cfg.Source]; !ok {
		return fmt.Errorf("invalid source '%s'. must be http, file", input.Source)
	}
	cfg.ServiceID = strings.TrimSpace(input.Service)
	cfg.Token = input.Token
	cfg.SpecsFile = input.SpecsFile
	cfg.AnalysesFile = input.AnalysesFile
	cfg.DiffFile = input.DiffFile

	switch cfg.Source {
	case schema.HTTPSource:
		cfg.BaseURL = strings.TrimRight(strings.TrimSpace(input.BaseURL), "/")
		if cfg.BaseURL == "" {
			return fmt.Errorf("--base-url is required when using the http source")
		}
		u, err := url.Parse(cfg.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid --base-url '%s'. expected an absolute URL like https://api.example.com", input.BaseURL)
		}
		if cfg.ServiceID == "" {
			return fmt.Errorf("--service is required when using the http source")
		}
	case schema.FileSource:
		if cfg.SpecsFile == "" {
			return fmt.Errorf("--specs-file is required when using the file source")
		}
	}
	return nil
}

// processRowOptions validates sorting and paging of compliance rows.
func processRowOptions(cfg *Config, input *ConfigRawInput) error {
	cfg.SortField = schema.RowField(strings.ToLower(strings.TrimSpace(input.Sort)))
	if cfg.SortField == "" {
		cfg.SortField = schema.FieldSeverity
	}
	if _, ok := schema.ValidRowFields[cfg.SortField]; !ok {
		return fmt.Errorf("invalid sort field '%s'. must be id, analyzer, severity, code, message, mitigation", input.Sort)
	}
	cfg.Descending = input.Desc

	if input.Page < 0 {
		return fmt.Errorf("page cannot be negative (received %d)", input.Page)
	}
	cfg.Page = input.Page
	if input.Page > 0 && (input.PageSize < 1 || input.PageSize > MaxPageSize) {
		return fmt.Errorf("page-size must be between 1 and %d when paging (received %d)", MaxPageSize, input.PageSize)
	}
	cfg.PageSize = input.PageSize
	return nil
}

// processReferenceOptions handles the spec pair, pointer and pinned references.
func processReferenceOptions(cfg *Config, input *ConfigRawInput) error {
	cfg.OldSpecID = strings.TrimSpace(input.OldSpec)
	cfg.NewSpecID = strings.TrimSpace(input.NewSpec)
	cfg.Pointer = strings.TrimSpace(input.Pointer)

	cfg.ActiveRefs = nil
	for p := range strings.SplitSeq(input.Active, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			cfg.ActiveRefs = append(cfg.ActiveRefs, trimmed)
		}
	}

	if input.FromLine < 0 || input.ToLine < 0 {
		return fmt.Errorf("line window cannot be negative (received %d-%d)", input.FromLine, input.ToLine)
	}
	if input.ToLine > 0 && input.FromLine > input.ToLine {
		return fmt.Errorf("from-line (%d) cannot be after to-line (%d)", input.FromLine, input.ToLine)
	}
	cfg.FromLine = input.FromLine
	cfg.ToLine = input.ToLine
	return nil
}

// processSeverityLimits merges config file limits with the --limits-override flag.
// The flag takes precedence. Severities without a limit are not gated.
func processSeverityLimits(cfg *Config, input *ConfigRawInput) error {
	limits := make(map[schema.Severity]int)

	fromFile := map[schema.Severity]*int{
		schema.SeverityError:   input.Limits.Error,
		schema.SeverityWarning: input.Limits.Warning,
		schema.SeverityInfo:    input.Limits.Info,
		schema.SeverityHint:    input.Limits.Hint,
	}
	for sev, v := range fromFile {
		if v != nil {
			limits[sev] = *v
		}
	}

	if input.LimitsStr != "" {
		parsed, err := parseSeverityLimitsString(input.LimitsStr)
		if err != nil {
			return fmt.Errorf("invalid --limits-override format: %w", err)
		}
		maps.Copy(limits, parsed)
	}

	for sev, limit := range limits {
		if limit < 0 {
			return fmt.Errorf("limit for severity %s cannot be negative (received %d)", sev, limit)
		}
	}

	cfg.SeverityLimits = limits
	return nil
}

// parseSeverityLimitsString parses a string like "error:0,warning:10"
// into a map of Severity to int.
func parseSeverityLimitsString(s string) (map[schema.Severity]int, error) {
	limits := make(map[schema.Severity]int)

	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		keyValue := strings.Split(part, ":")
		if len(keyValue) != 2 {
			return nil, fmt.Errorf("invalid limit format '%s', expected 'severity:value'", part)
		}

		sev := schema.Severity(strings.ToLower(strings.TrimSpace(keyValue[0])))
		if sev.Rank() == schema.UnknownSeverityRank {
			return nil, fmt.Errorf("invalid severity '%s', must be error, warning, info, or hint", keyValue[0])
		}

		valueStr := strings.TrimSpace(keyValue[1])
		value, err := strconv.Atoi(valueStr)
		if err != nil {
			return nil, fmt.Errorf("invalid limit value '%s' for severity %s: %w", valueStr, sev, err)
		}

		limits[sev] = value
	}

	return limits, nil
}
