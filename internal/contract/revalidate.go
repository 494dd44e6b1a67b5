package contract

import (
	"fmt"
	"maps"
	"strings"

	"github.com/huangsam/specboard/schema"
)

// RevalidateRows re-applies the row sort and paging rules to a cloned config
// after a caller such as an MCP tool has overridden them.
func RevalidateRows(cfg *Config, sort string, page, pageSize int) error {
	if sort != "" {
		field := schema.RowField(strings.ToLower(strings.TrimSpace(sort)))
		if _, ok := schema.ValidRowFields[field]; !ok {
			return fmt.Errorf("invalid sort field '%s'. must be id, analyzer, severity, code, message, mitigation", sort)
		}
		cfg.SortField = field
	}
	if page < 0 {
		return fmt.Errorf("page cannot be negative (received %d)", page)
	}
	if page == 0 {
		return nil
	}
	if pageSize == 0 {
		pageSize = cfg.PageSize
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		return fmt.Errorf("page-size must be between 1 and %d when paging (received %d)", MaxPageSize, pageSize)
	}
	cfg.Page = page
	cfg.PageSize = pageSize
	return nil
}

// RevalidateLimits merges a "severity:value" override string into the
// config's severity limits.
func RevalidateLimits(cfg *Config, limitsStr string) error {
	if limitsStr == "" {
		return nil
	}
	parsed, err := parseSeverityLimitsString(limitsStr)
	if err != nil {
		return fmt.Errorf("invalid limits: %w", err)
	}
	limits := make(map[schema.Severity]int, len(cfg.SeverityLimits)+len(parsed))
	maps.Copy(limits, cfg.SeverityLimits)
	for sev, limit := range parsed {
		if limit < 0 {
			return fmt.Errorf("limit for severity %s cannot be negative (received %d)", sev, limit)
		}
		limits[sev] = limit
	}
	cfg.SeverityLimits = limits
	return nil
}
