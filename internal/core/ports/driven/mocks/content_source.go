package mocks

import (
	"context"
	"sync"

	"github.com/custodia-labs/claro-core/internal/core/domain"
)

// MockContentSource is a mock implementation of ContentSource for testing
type MockContentSource struct {
	mu      sync.Mutex
	records []*domain.ContentRecord
	err     error
	loads   int
}

// NewMockContentSource creates a new MockContentSource
func NewMockContentSource(records ...*domain.ContentRecord) *MockContentSource {
	return &MockContentSource{records: records}
}

// SetRecords replaces the records the source will return
func (m *MockContentSource) SetRecords(records []*domain.ContentRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = records
}

// SetError makes Load fail with the given error
func (m *MockContentSource) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Loads returns how many times Load was called
func (m *MockContentSource) Loads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loads
}

func (m *MockContentSource) Load(ctx context.Context) ([]*domain.ContentRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
	if m.err != nil {
		return nil, m.err
	}
	out := make([]*domain.ContentRecord, len(m.records))
	copy(out, m.records)
	return out, nil
}

func (m *MockContentSource) Name() string {
	return "mock"
}
