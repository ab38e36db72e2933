package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/claro-core/internal/core/domain"
)

// MockContentCache is a mock implementation of ContentCache for testing
type MockContentCache struct {
	mu          sync.Mutex
	entries     map[string]*domain.ResolvedContent
	invalidated int
	getErr      error
}

// NewMockContentCache creates a new MockContentCache
func NewMockContentCache() *MockContentCache {
	return &MockContentCache{entries: make(map[string]*domain.ResolvedContent)}
}

// Invalidations returns how many times Invalidate was called
func (m *MockContentCache) Invalidations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.invalidated
}

// Len returns the number of cached entries
func (m *MockContentCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func cacheKey(id string, level int, locale domain.Locale) string {
	return fmt.Sprintf("%s:%d:%s", id, level, locale)
}

// SetGetError makes GetResolved fail with the given error
func (m *MockContentCache) SetGetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getErr = err
}

func (m *MockContentCache) GetResolved(ctx context.Context, id string, level int, locale domain.Locale) (*domain.ResolvedContent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	rc, ok := m.entries[cacheKey(id, level, locale)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return rc, nil
}

func (m *MockContentCache) SetResolved(ctx context.Context, rc *domain.ResolvedContent, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[cacheKey(rc.ID, rc.Level, rc.Locale)] = rc
	return nil
}

func (m *MockContentCache) Invalidate(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]*domain.ResolvedContent)
	m.invalidated++
	return nil
}
