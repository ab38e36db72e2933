package runtime

import (
	"sync"
	"time"

	"github.com/custodia-labs/claro-core/internal/core/domain"
)

// Snapshot holds the registry currently serving reads. A rebuild never
// mutates the live registry: it constructs a new immutable one and swaps
// the reference here, so in-flight reads always see a complete index.
// Thread-safe for concurrent access.
type Snapshot struct {
	mu sync.RWMutex

	registry *domain.Registry
	report   *domain.ValidationReport
	builtAt  time.Time
	buildID  string
}

// NewSnapshot creates an empty snapshot. Registry() returns nil until
// the first successful build is swapped in.
func NewSnapshot() *Snapshot {
	return &Snapshot{}
}

// Registry returns the current registry (nil before the first build).
func (s *Snapshot) Registry() *domain.Registry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry
}

// Report returns the validation report of the current build (nil before
// the first build).
func (s *Snapshot) Report() *domain.ValidationReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.report
}

// BuildID returns the identifier of the current build.
func (s *Snapshot) BuildID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.buildID
}

// BuiltAt returns when the current build was swapped in.
func (s *Snapshot) BuiltAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.builtAt
}

// Swap atomically replaces the serving registry and its report.
func (s *Snapshot) Swap(reg *domain.Registry, report *domain.ValidationReport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registry = reg
	s.report = report
	s.buildID = report.BuildID
	s.builtAt = time.Now().UTC()
}

// Built reports whether a successful build has been swapped in.
func (s *Snapshot) Built() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry != nil
}
