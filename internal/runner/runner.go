package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"

	"github.com/gofrs/flock"

	"clipforge/internal/config"
	"clipforge/internal/logging"
	"clipforge/internal/queue"
	"clipforge/internal/workflow"
)

// Runner coordinates the processing pipeline and enforces single-instance execution.
type Runner struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    *queue.Store
	workflow *workflow.Manager

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	cancel  context.CancelFunc
}

// Status represents runner runtime information.
type Status struct {
	Running      bool
	Workflow     workflow.StatusSummary
	QueueDBPath  string
	LockFilePath string
}

// New constructs a runner with initialized dependencies.
func New(cfg *config.Config, store *queue.Store, logger *slog.Logger, wf *workflow.Manager) (*Runner, error) {
	if cfg == nil || store == nil || logger == nil || wf == nil {
		return nil, errors.New("runner requires config, store, logger, and workflow manager")
	}

	lockPath := filepath.Join(cfg.Paths.WorkDir, "clipforge.lock")
	return &Runner{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		workflow: wf,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// Start acquires the instance lock and launches the workflow manager.
func (r *Runner) Start(ctx context.Context) error {
	if r.running.Load() {
		return errors.New("runner already running")
	}

	ok, err := r.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another clipforge instance is already processing this dataset")
	}

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	if err := r.workflow.Start(runCtx); err != nil {
		_ = r.lock.Unlock()
		cancel()
		r.cancel = nil
		return fmt.Errorf("start workflow: %w", err)
	}

	r.running.Store(true)
	r.logger.Info("clipforge runner started", logging.String("lock", r.lockPath))
	return nil
}

// RunOnce acquires the instance lock, drains the queue, and releases the lock.
func (r *Runner) RunOnce(ctx context.Context) error {
	ok, err := r.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another clipforge instance is already processing this dataset")
	}
	defer func() {
		if err := r.lock.Unlock(); err != nil {
			r.logger.Warn("failed to release runner lock", logging.Error(err))
		}
	}()

	return r.workflow.RunUntilIdle(ctx)
}

// Stop stops background processing and releases the instance lock.
func (r *Runner) Stop() {
	if !r.running.Load() {
		return
	}

	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.workflow.Stop()
	if err := r.lock.Unlock(); err != nil {
		r.logger.Warn("failed to release runner lock", logging.Error(err))
	}
	r.running.Store(false)
	r.logger.Info("clipforge runner stopped")
}

// Close releases resources held by the runner.
func (r *Runner) Close() error {
	r.Stop()
	if r.store != nil {
		return r.store.Close()
	}
	return nil
}

// ListQueue returns queue jobs filtered by optional statuses.
func (r *Runner) ListQueue(ctx context.Context, statuses []queue.Status) ([]*queue.Job, error) {
	if len(statuses) == 0 {
		return r.store.List(ctx)
	}
	return r.store.List(ctx, statuses...)
}

// ClearQueue removes all queue jobs.
func (r *Runner) ClearQueue(ctx context.Context) (int64, error) {
	return r.store.Clear(ctx)
}

// ClearCompleted removes only completed queue jobs.
func (r *Runner) ClearCompleted(ctx context.Context) (int64, error) {
	return r.store.ClearCompleted(ctx)
}

// ClearFailed removes only failed queue jobs.
func (r *Runner) ClearFailed(ctx context.Context) (int64, error) {
	return r.store.ClearFailed(ctx)
}

// ResetStuck transitions in-flight jobs back to their stage start for retry.
func (r *Runner) ResetStuck(ctx context.Context) (int64, error) {
	return r.store.ResetStuckProcessing(ctx)
}

// RetryFailed resets failed jobs (optionally a subset) back to pending.
func (r *Runner) RetryFailed(ctx context.Context, ids []int64) (int64, error) {
	return r.store.RetryFailed(ctx, ids...)
}

// QueueHealth returns aggregate queue diagnostics.
func (r *Runner) QueueHealth(ctx context.Context) (queue.HealthSummary, error) {
	return r.store.Health(ctx)
}

// DatabaseHealth returns detailed database diagnostics.
func (r *Runner) DatabaseHealth(ctx context.Context) (queue.DatabaseHealth, error) {
	return r.store.CheckHealth(ctx)
}

// Status returns the current runner status.
func (r *Runner) Status(ctx context.Context) Status {
	return Status{
		Running:      r.running.Load(),
		Workflow:     r.workflow.Status(ctx),
		QueueDBPath:  filepath.Join(r.cfg.Paths.WorkDir, "queue.db"),
		LockFilePath: r.lockPath,
	}
}
