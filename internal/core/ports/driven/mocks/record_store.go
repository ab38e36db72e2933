package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/claro-core/internal/core/domain"
)

// MockRecordStore is a mock implementation of RecordStore for testing
type MockRecordStore struct {
	mu      sync.RWMutex
	records map[string]*domain.ContentRecord
	err     error
}

// NewMockRecordStore creates a new MockRecordStore
func NewMockRecordStore() *MockRecordStore {
	return &MockRecordStore{records: make(map[string]*domain.ContentRecord)}
}

// SetError makes every write fail with the given error
func (m *MockRecordStore) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MockRecordStore) Save(ctx context.Context, rec *domain.ContentRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.records[rec.ID] = rec
	return nil
}

func (m *MockRecordStore) SaveBatch(ctx context.Context, recs []*domain.ContentRecord) error {
	for _, rec := range recs {
		if err := m.Save(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

func (m *MockRecordStore) Get(ctx context.Context, id string) (*domain.ContentRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return rec, nil
}

func (m *MockRecordStore) List(ctx context.Context, status domain.RecordStatus) ([]*domain.ContentRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.records))
	for id := range m.records {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var out []*domain.ContentRecord
	for _, id := range ids {
		rec := m.records[id]
		if status != "" && rec.Status != status {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (m *MockRecordStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, id)
	return nil
}

func (m *MockRecordStore) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records), nil
}

// MockReportStore is a mock implementation of ReportStore for testing
type MockReportStore struct {
	mu      sync.Mutex
	reports []*domain.ValidationReport
	err     error
}

// NewMockReportStore creates a new MockReportStore
func NewMockReportStore() *MockReportStore {
	return &MockReportStore{}
}

// SetError makes SaveReport fail with the given error
func (m *MockReportStore) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Saved returns all archived reports
func (m *MockReportStore) Saved() []*domain.ValidationReport {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.ValidationReport, len(m.reports))
	copy(out, m.reports)
	return out
}

func (m *MockReportStore) SaveReport(ctx context.Context, report *domain.ValidationReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.reports = append(m.reports, report)
	return nil
}

func (m *MockReportStore) LatestReport(ctx context.Context) (*domain.ValidationReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.reports) == 0 {
		return nil, domain.ErrNotFound
	}
	return m.reports[len(m.reports)-1], nil
}
