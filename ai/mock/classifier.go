package mock

import (
	"context"
	"strings"

	"github.com/dsaini64/regulations/core"
)

// MockStatusClassifier is a test double for ai.StatusClassifier.
// It allows custom behavior injection via function fields.
type MockStatusClassifier struct {
	// ClassifyStatusFunc is called by ClassifyStatus if set.
	// If nil, uses default deterministic behavior.
	ClassifyStatusFunc func(ctx context.Context, description, url, content string) (core.RegulationStatus, string, error)

	// Disabled makes Enabled report false and ClassifyStatus return
	// StatusUnknown, mimicking an unconfigured classifier.
	Disabled bool

	callCount int
}

// NewMockStatusClassifier creates a mock classifier with default deterministic behavior.
// Note: Returns concrete type to allow test assertions via GetMockClassifier().
func NewMockStatusClassifier() *MockStatusClassifier {
	return &MockStatusClassifier{}
}

// Enabled reports whether the mock simulates a configured classifier.
func (m *MockStatusClassifier) Enabled() bool {
	return !m.Disabled
}

// ClassifyStatus returns a deterministic classification based on simple
// keyword checks, or delegates to ClassifyStatusFunc if set.
func (m *MockStatusClassifier) ClassifyStatus(ctx context.Context, description, url, content string) (core.RegulationStatus, string, error) {
	m.callCount++

	if m.Disabled {
		return core.StatusUnknown, "LLM not configured", nil
	}

	if m.ClassifyStatusFunc != nil {
		return m.ClassifyStatusFunc(ctx, description, url, content)
	}

	// Default: crude keyword classification, deterministic for tests
	lower := strings.ToLower(description)
	switch {
	case strings.Contains(lower, "shall not") || strings.Contains(lower, "prohibited"):
		return core.StatusProhibited, "mock analysis: prohibition wording", nil
	case strings.Contains(lower, "reserved"):
		return core.StatusReserved, "mock analysis: reserved section", nil
	case strings.Contains(lower, "definition"):
		return core.StatusAdministrative, "mock analysis: definitions", nil
	default:
		return core.StatusUnknown, "mock analysis: undetermined", nil
	}
}

// CallCount returns the number of times ClassifyStatus was called.
func (m *MockStatusClassifier) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockStatusClassifier) Reset() {
	m.callCount = 0
	m.ClassifyStatusFunc = nil
	m.Disabled = false
}
