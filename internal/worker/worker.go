package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/custodia-labs/claro-core/internal/core/domain"
	"github.com/custodia-labs/claro-core/internal/core/ports/driven"
	"github.com/custodia-labs/claro-core/internal/core/ports/driving"
)

// rebuildLockName is the distributed lock guarding registry rebuilds.
// All instances compete for the same name so only one rebuilds at a time.
const rebuildLockName = "registry-rebuild"

// Worker rebuilds the content registry on a fixed interval and on demand.
// When a distributed lock is configured, instances that lose the race
// skip the cycle and rely on the winner's build.
type Worker struct {
	registry driving.RegistryService
	lock     driven.DistributedLock
	logger   *slog.Logger

	// Configuration
	interval time.Duration
	lockTTL  time.Duration

	// Internal state
	mu        sync.RWMutex
	running   bool
	lastBuild *domain.BuildResult
	lastErr   error
	stopCh    chan struct{}
	doneCh    chan struct{}
	triggerCh chan struct{}
}

// Config holds configuration for the rebuild worker.
type Config struct {
	Registry driving.RegistryService
	Lock     driven.DistributedLock // optional; nil disables cross-instance coordination
	Logger   *slog.Logger
	Interval time.Duration // Time between periodic rebuilds
	LockTTL  time.Duration // How long the rebuild lock is held before auto-expiry
}

// NewWorker creates a new rebuild worker.
func NewWorker(cfg Config) *Worker {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	interval := cfg.Interval
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	lockTTL := cfg.LockTTL
	if lockTTL <= 0 {
		lockTTL = 2 * time.Minute
	}

	return &Worker{
		registry:  cfg.Registry,
		lock:      cfg.Lock,
		logger:    logger,
		interval:  interval,
		lockTTL:   lockTTL,
		triggerCh: make(chan struct{}, 1),
	}
}

// Start begins the rebuild loop.
// It runs until Stop is called or context is cancelled.
func (w *Worker) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.mu.Unlock()

	w.logger.Info("rebuild worker starting",
		"interval", w.interval,
		"lock_ttl", w.lockTTL,
		"distributed_lock", w.lock != nil,
	)

	go func() {
		defer close(w.doneCh)
		w.loop(ctx)
	}()

	return nil
}

// Stop gracefully stops the worker.
func (w *Worker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	close(w.stopCh)
	w.mu.Unlock()

	<-w.doneCh

	w.mu.Lock()
	w.running = false
	w.mu.Unlock()

	w.logger.Info("rebuild worker stopped")
}

// Wait blocks until the worker stops.
func (w *Worker) Wait() {
	<-w.doneCh
}

// Trigger requests an immediate rebuild cycle.
// If a trigger is already pending the call is a no-op.
func (w *Worker) Trigger() {
	select {
	case w.triggerCh <- struct{}{}:
	default:
	}
}

// loop is the main rebuild loop.
func (w *Worker) loop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("rebuild worker context cancelled")
			return
		case <-w.stopCh:
			w.logger.Info("rebuild worker stop signal received")
			return
		case <-ticker.C:
			w.runOnce(ctx, "interval")
		case <-w.triggerCh:
			w.runOnce(ctx, "trigger")
		}
	}
}

// runOnce performs a single rebuild cycle, acquiring the distributed
// lock first when one is configured.
func (w *Worker) runOnce(ctx context.Context, reason string) {
	logger := w.logger.With("reason", reason)

	if w.lock != nil {
		acquired, err := w.lock.Acquire(ctx, rebuildLockName, w.lockTTL)
		if err != nil {
			logger.Error("failed to acquire rebuild lock", "error", err)
			return
		}
		if !acquired {
			logger.Debug("rebuild lock held elsewhere, skipping cycle")
			return
		}
		defer func() {
			if err := w.lock.Release(ctx, rebuildLockName); err != nil {
				logger.Error("failed to release rebuild lock", "error", err)
			}
		}()
	}

	startTime := time.Now()
	result, err := w.registry.Rebuild(ctx)
	duration := time.Since(startTime)

	w.mu.Lock()
	w.lastBuild = result
	w.lastErr = err
	w.mu.Unlock()

	if err != nil {
		if errors.Is(err, domain.ErrRebuildInProgress) {
			logger.Info("rebuild already in progress, skipping cycle")
			return
		}
		logger.Error("rebuild failed",
			"duration", duration,
			"error", err,
		)
		return
	}

	logger.Info("rebuild completed",
		"build_id", result.BuildID,
		"duration", duration,
		"loaded", result.Loaded,
		"indexed", result.Indexed,
		"excluded", result.Excluded,
		"errors", result.Errors,
		"warnings", result.Warnings,
	)
}

// Health reports the worker's current state and last build outcome.
type Health struct {
	Running     bool   `json:"running"`
	LastBuildID string `json:"last_build_id,omitempty"`
	LastError   string `json:"last_error,omitempty"`
}

// Health returns the health status of the worker.
func (w *Worker) Health() Health {
	w.mu.RLock()
	defer w.mu.RUnlock()

	health := Health{
		Running: w.running,
	}
	if w.lastBuild != nil {
		health.LastBuildID = w.lastBuild.BuildID
	}
	if w.lastErr != nil {
		health.LastError = w.lastErr.Error()
	}
	return health
}
