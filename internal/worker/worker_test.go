package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/custodia-labs/claro-core/internal/core/domain"
	"github.com/custodia-labs/claro-core/internal/core/ports/driven/mocks"
)

// mockRegistryService implements driving.RegistryService for testing
type mockRegistryService struct {
	mu        sync.Mutex
	rebuilds  int
	rebuildFn func() (*domain.BuildResult, error)
}

func (m *mockRegistryService) Rebuild(ctx context.Context) (*domain.BuildResult, error) {
	m.mu.Lock()
	m.rebuilds++
	m.mu.Unlock()
	if m.rebuildFn != nil {
		return m.rebuildFn()
	}
	return &domain.BuildResult{BuildID: "build-1", Loaded: 3, Indexed: 3}, nil
}

func (m *mockRegistryService) Report(ctx context.Context) (*domain.ValidationReport, error) {
	return nil, errors.New("not implemented")
}

func (m *mockRegistryService) Stats(ctx context.Context) (*domain.RegistryStats, error) {
	return nil, errors.New("not implemented")
}

func (m *mockRegistryService) ArchiveRecords(ctx context.Context, recs []*domain.ContentRecord) error {
	return errors.New("not implemented")
}

func (m *mockRegistryService) LatestReport(ctx context.Context) (*domain.ValidationReport, error) {
	return nil, errors.New("not implemented")
}

func (m *mockRegistryService) Rebuilds() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rebuilds
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestWorker_TriggerRebuilds(t *testing.T) {
	registry := &mockRegistryService{}
	w := NewWorker(Config{
		Registry: registry,
		Interval: time.Hour, // Only trigger-driven in this test
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer w.Stop()

	w.Trigger()
	waitFor(t, time.Second, func() bool { return registry.Rebuilds() == 1 })

	health := w.Health()
	if !health.Running {
		t.Error("Health().Running = false, want true")
	}
	if health.LastBuildID != "build-1" {
		t.Errorf("Health().LastBuildID = %q, want %q", health.LastBuildID, "build-1")
	}
	if health.LastError != "" {
		t.Errorf("Health().LastError = %q, want empty", health.LastError)
	}
}

func TestWorker_PeriodicRebuilds(t *testing.T) {
	registry := &mockRegistryService{}
	w := NewWorker(Config{
		Registry: registry,
		Interval: 20 * time.Millisecond,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer w.Stop()

	waitFor(t, time.Second, func() bool { return registry.Rebuilds() >= 2 })
}

func TestWorker_SkipsWhenLockHeld(t *testing.T) {
	registry := &mockRegistryService{}
	lock := mocks.NewMockDistributedLock()
	lock.FailAcquire(true)

	w := NewWorker(Config{
		Registry: registry,
		Lock:     lock,
		Interval: time.Hour,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	w.Trigger()
	time.Sleep(50 * time.Millisecond)
	w.Stop()

	if got := registry.Rebuilds(); got != 0 {
		t.Errorf("Rebuilds() = %d, want 0 when lock is held elsewhere", got)
	}
	if got := lock.Acquisitions(); got != 0 {
		t.Errorf("Acquisitions() = %d, want 0", got)
	}
}

func TestWorker_AcquiresAndReleasesLock(t *testing.T) {
	registry := &mockRegistryService{}
	lock := mocks.NewMockDistributedLock()

	w := NewWorker(Config{
		Registry: registry,
		Lock:     lock,
		Interval: time.Hour,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer w.Stop()

	w.Trigger()
	waitFor(t, time.Second, func() bool { return registry.Rebuilds() == 1 })

	if got := lock.Acquisitions(); got != 1 {
		t.Errorf("Acquisitions() = %d, want 1", got)
	}

	// Lock released after the cycle, so a second trigger acquires again.
	w.Trigger()
	waitFor(t, time.Second, func() bool { return registry.Rebuilds() == 2 })

	if got := lock.Acquisitions(); got != 2 {
		t.Errorf("Acquisitions() = %d, want 2", got)
	}
}

func TestWorker_RebuildErrorRecorded(t *testing.T) {
	registry := &mockRegistryService{
		rebuildFn: func() (*domain.BuildResult, error) {
			return nil, domain.ErrBuildRejected
		},
	}
	w := NewWorker(Config{
		Registry: registry,
		Interval: time.Hour,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer w.Stop()

	w.Trigger()
	waitFor(t, time.Second, func() bool { return registry.Rebuilds() == 1 })
	waitFor(t, time.Second, func() bool { return w.Health().LastError != "" })

	health := w.Health()
	if health.LastError != domain.ErrBuildRejected.Error() {
		t.Errorf("Health().LastError = %q, want %q", health.LastError, domain.ErrBuildRejected.Error())
	}
	if health.LastBuildID != "" {
		t.Errorf("Health().LastBuildID = %q, want empty", health.LastBuildID)
	}
}

func TestWorker_StartIdempotent(t *testing.T) {
	registry := &mockRegistryService{}
	w := NewWorker(Config{Registry: registry, Interval: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := w.Start(ctx); err != nil {
		t.Fatalf("first Start() error = %v", err)
	}
	if err := w.Start(ctx); err != nil {
		t.Fatalf("second Start() error = %v", err)
	}
	w.Stop()
}

func TestWorker_StopBeforeStart(t *testing.T) {
	w := NewWorker(Config{Registry: &mockRegistryService{}})
	// Must not panic or block.
	w.Stop()
}

func TestWorker_ContextCancelStopsLoop(t *testing.T) {
	registry := &mockRegistryService{}
	w := NewWorker(Config{Registry: registry, Interval: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	cancel()

	done := make(chan struct{})
	go func() {
		w.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after context cancellation")
	}
}

func TestWorker_Defaults(t *testing.T) {
	w := NewWorker(Config{Registry: &mockRegistryService{}})
	if w.interval != 5*time.Minute {
		t.Errorf("interval = %v, want 5m", w.interval)
	}
	if w.lockTTL != 2*time.Minute {
		t.Errorf("lockTTL = %v, want 2m", w.lockTTL)
	}
	if w.logger == nil {
		t.Error("logger is nil, want default")
	}
}
