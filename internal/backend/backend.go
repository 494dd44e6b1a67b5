// Package backend has the SpecSource implementations used by specboard.
package backend

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/huangsam/specboard/internal/contract"
	"github.com/huangsam/specboard/schema"
	"sigs.k8s.io/yaml"
)

var (
	// ErrNotFound is returned when the backend has no such service, spec or file.
	ErrNotFound = errors.New("not found")

	// ErrUnsupported is returned when the source cannot serve a request.
	ErrUnsupported = errors.New("unsupported by source")
)

// DiffRequest is the body posted to the diff endpoint.
type DiffRequest struct {
	OldSpecID string `json:"oldSpecId"`
	NewSpecID string `json:"newSpecId"`
}

// New builds the SpecSource selected by cfg. The payload store may be nil.
func New(cfg *contract.Config, store contract.CacheStore) (contract.SpecSource, error) {
	switch cfg.Source {
	case schema.HTTPSource:
		opts := []Option{WithToken(cfg.Token)}
		if store != nil {
			opts = append(opts, WithCache(store, cfg.CacheTTL, cfg.Refresh))
		}
		return NewHTTPSource(cfg.BaseURL, cfg.Timeout, opts...), nil
	case schema.FileSource:
		return NewFileSource(cfg.SpecsFile, cfg.AnalysesFile, cfg.DiffFile), nil
	default:
		return nil, fmt.Errorf("unsupported source: %s", cfg.Source)
	}
}

// decode unmarshals a JSON or YAML payload. JSON goes straight to
// encoding/json so findings keep their document order.
func decode(data []byte, v any) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '{') {
		return json.Unmarshal(trimmed, v)
	}
	return yaml.Unmarshal(data, v)
}
