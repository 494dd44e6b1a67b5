package backend

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/huangsam/specboard/internal/contract"
	"github.com/huangsam/specboard/schema"
)

// FileSource reads exported payloads from local JSON or YAML files.
// Analyses fall back to the compliance lists embedded in the specs file
// when no analyses file is given.
type FileSource struct {
	specsFile    string
	analysesFile string
	diffFile     string
}

var _ contract.SpecSource = &FileSource{} // Compile-time check

// NewFileSource creates a file-backed source. Only specsFile is required.
func NewFileSource(specsFile, analysesFile, diffFile string) *FileSource {
	return &FileSource{specsFile: specsFile, analysesFile: analysesFile, diffFile: diffFile}
}

// ListSpecs implements contract.SpecSource. Revisions without a service id
// belong to every service.
func (s *FileSource) ListSpecs(ctx context.Context, serviceID string) ([]schema.SpecRevision, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var specs []schema.SpecRevision
	if err := readFile(s.specsFile, &specs); err != nil {
		return nil, err
	}
	if serviceID == "" {
		return specs, nil
	}

	filtered := make([]schema.SpecRevision, 0, len(specs))
	for _, spec := range specs {
		if spec.ServiceID == "" || spec.ServiceID == serviceID {
			filtered = append(filtered, spec)
		}
	}
	return filtered, nil
}

// ListAnalyses implements contract.SpecSource.
func (s *FileSource) ListAnalyses(ctx context.Context, serviceID, specID string) ([]schema.ComplianceResult, error) {
	var list []schema.ComplianceResult

	if s.analysesFile != "" {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := readFile(s.analysesFile, &list); err != nil {
			return nil, err
		}
	} else {
		specs, err := s.ListSpecs(ctx, serviceID)
		if err != nil {
			return nil, err
		}
		for _, spec := range specs {
			list = append(list, spec.Compliance...)
		}
	}

	if specID == "" {
		return list, nil
	}
	filtered := make([]schema.ComplianceResult, 0, len(list))
	for _, result := range list {
		if result.SpecID == specID {
			filtered = append(filtered, result)
		}
	}
	return filtered, nil
}

// DiffSpecs implements contract.SpecSource. The diff file holds one
// precomputed diff; both spec ids must exist in the specs file.
func (s *FileSource) DiffSpecs(ctx context.Context, serviceID, oldSpecID, newSpecID string) (schema.DiffResponse, error) {
	var resp schema.DiffResponse
	if s.diffFile == "" {
		return resp, fmt.Errorf("diff needs --diff-file with the file source: %w", ErrUnsupported)
	}

	specs, err := s.ListSpecs(ctx, serviceID)
	if err != nil {
		return resp, err
	}
	for _, id := range []string{oldSpecID, newSpecID} {
		if !containsSpec(specs, id) {
			return resp, fmt.Errorf("spec %s: %w", id, ErrNotFound)
		}
	}

	if err := readFile(s.diffFile, &resp); err != nil {
		return resp, err
	}
	return resp, nil
}

func containsSpec(specs []schema.SpecRevision, id string) bool {
	for _, spec := range specs {
		if spec.ID == id {
			return true
		}
	}
	return false
}

// readFile decodes a JSON or YAML file into v.
func readFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := decode(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
