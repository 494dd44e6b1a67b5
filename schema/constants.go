package schema

// Custom string types for type safety.
type (
	// Severity is the name of a compliance finding bucket.
	Severity string

	// SpecState is the lifecycle state of a spec revision.
	SpecState string

	// AnalysisStatus is the outcome of one analyzer run.
	AnalysisStatus string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for payload caching.
	DatabaseBackend string

	// SourceKind selects where specs and analyses are read from.
	SourceKind string

	// RowField names a sortable ComplianceRow column.
	RowField string
)

// Known severities, in rank order.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
	SeverityHint    Severity = "hint"
)

// All spec states.
const (
	StateDevelopment   SpecState = "Development"
	StateRelease       SpecState = "Release"
	StateArchive       SpecState = "Archive"
	StateLatest        SpecState = "Latest"
	StateReconstructed SpecState = "Reconstructed"
)

// StatusAnalyzed marks a successful analyzer run. Anything else is a failure marker.
const StatusAnalyzed AnalysisStatus = "Analyzed"

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All cache backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All sources supported.
const (
	HTTPSource SourceKind = "http" // default
	FileSource SourceKind = "file"
)

// Sortable row fields.
const (
	FieldID         RowField = "id"
	FieldAnalyzer   RowField = "analyzer"
	FieldSeverity   RowField = "severity"
	FieldCode       RowField = "code"
	FieldMessage    RowField = "message"
	FieldMitigation RowField = "mitigation"
)

// UnknownSeverityRank places unrecognized severities after every known one.
const UnknownSeverityRank = 100

// AllSeverities is the fixed severity universe, in display order.
var AllSeverities = []Severity{SeverityError, SeverityWarning, SeverityInfo, SeverityHint}

// severityRanks maps known severities to their sort rank.
var severityRanks = map[Severity]int{
	SeverityError:   0,
	SeverityWarning: 1,
	SeverityInfo:    2,
	SeverityHint:    3,
}

// Rank returns the fixed sort rank of a severity; unknown severities rank last.
func (s Severity) Rank() int {
	if r, ok := severityRanks[s]; ok {
		return r
	}
	return UnknownSeverityRank
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid cache backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidSources lists all valid source kinds.
var ValidSources = map[SourceKind]struct{}{
	HTTPSource: {},
	FileSource: {},
}

// ValidRowFields lists all sortable row fields.
var ValidRowFields = map[RowField]struct{}{
	FieldID:         {},
	FieldAnalyzer:   {},
	FieldSeverity:   {},
	FieldCode:       {},
	FieldMessage:    {},
	FieldMitigation: {},
}
