// Package core turns fetched specs, analyses and diffs into reports.
//
// Each command has an Execute function that prints through the output writer
// and a Get function that returns the report for callers like the MCP server.
package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/huangsam/specboard/internal/backend"
	"github.com/huangsam/specboard/internal/contract"
)

// ExecutorFunc defines the function signature for executing a command.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error

// ErrCheckFailed is returned by ExecuteCheck when the gate did not pass.
var ErrCheckFailed = errors.New("compliance check failed")

// sourceFactory builds the SpecSource for a run. Tests replace it.
var sourceFactory = func(cfg *contract.Config, mgr contract.CacheManager) (contract.SpecSource, error) {
	var store contract.CacheStore
	if mgr != nil {
		store = mgr.GetPayloadStore()
	}
	return backend.New(cfg, store)
}

// openSource builds the SpecSource selected by cfg.
func openSource(cfg *contract.Config, mgr contract.CacheManager) (contract.SpecSource, error) {
	src, err := sourceFactory(cfg, mgr)
	if err != nil {
		return nil, fmt.Errorf("failed to open spec source: %w", err)
	}
	return src, nil
}
