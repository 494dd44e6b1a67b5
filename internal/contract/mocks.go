package contract

import (
	"context"

	"github.com/huangsam/specboard/schema"
	"github.com/stretchr/testify/mock"
)

// MockSpecSource is a mock implementation of SpecSource for testing.
type MockSpecSource struct {
	mock.Mock
}

var _ SpecSource = &MockSpecSource{} // Compile-time check

// ListSpecs implements the SpecSource interface.
func (m *MockSpecSource) ListSpecs(ctx context.Context, serviceID string) ([]schema.SpecRevision, error) {
	args := m.Called(ctx, serviceID)
	specs, _ := args.Get(0).([]schema.SpecRevision)
	return specs, args.Error(1)
}

// ListAnalyses implements the SpecSource interface.
func (m *MockSpecSource) ListAnalyses(ctx context.Context, serviceID, specID string) ([]schema.ComplianceResult, error) {
	args := m.Called(ctx, serviceID, specID)
	list, _ := args.Get(0).([]schema.ComplianceResult)
	return list, args.Error(1)
}

// DiffSpecs implements the SpecSource interface.
func (m *MockSpecSource) DiffSpecs(ctx context.Context, serviceID, oldSpecID, newSpecID string) (schema.DiffResponse, error) {
	args := m.Called(ctx, serviceID, oldSpecID, newSpecID)
	resp, _ := args.Get(0).(schema.DiffResponse)
	return resp, args.Error(1)
}
