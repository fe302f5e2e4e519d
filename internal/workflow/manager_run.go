package workflow

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"clipforge/internal/logging"
	"clipforge/internal/queue"
)

// Start begins background processing.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return errors.New("workflow already running")
	}
	p := m.pipeline
	if p == nil || len(p.statusOrder) == 0 {
		m.mu.Unlock()
		return errors.New("workflow stages not configured")
	}

	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.running = true
	m.wg.Add(1)
	m.mu.Unlock()

	go m.run(runCtx, p)
	return nil
}

// Stop terminates background processing and waits for completion.
func (m *Manager) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	cancel := m.cancel
	m.running = false
	m.cancel = nil
	m.mu.Unlock()

	cancel()
	m.wg.Wait()
}

func (m *Manager) run(ctx context.Context, p *pipeline) {
	defer m.wg.Done()
	logger := m.logger
	if logger == nil {
		logger = logging.NewNop()
	}

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if err := m.heartbeat.ReclaimStaleJobs(ctx, logger); err != nil {
			logger.Warn("reclaim stale processing failed; stuck jobs may remain",
				logging.Error(err),
				logging.String(logging.FieldEventType, "heartbeat_reclaim_failed"),
				logging.String(logging.FieldErrorHint, "check queue database access"),
			)
		}

		job, err := m.store.NextForStatuses(ctx, p.statusOrder...)
		if err != nil {
			m.handleNextJobError(ctx, logger, err)
			continue
		}
		if job == nil {
			m.waitForJobOrShutdown(ctx)
			continue
		}

		if err := m.processJob(ctx, p, logger, job); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
		}
	}
}

func (m *Manager) handleNextJobError(ctx context.Context, logger *slog.Logger, err error) {
	m.setLastError(err)
	logger.Error("failed to fetch next queue job",
		logging.Error(err),
		logging.String(logging.FieldEventType, "queue_fetch_failed"),
		logging.String(logging.FieldErrorHint, "check queue database access"),
	)
	select {
	case <-ctx.Done():
		return
	case <-time.After(time.Duration(m.cfg.Workflow.ErrorRetryInterval) * time.Second):
	}
}

func (m *Manager) waitForJobOrShutdown(ctx context.Context) {
	select {
	case <-ctx.Done():
		return
	case <-time.After(m.pollInterval):
	}
}

// RunUntilIdle processes queue jobs until none remain in a startable
// status. It is used by the one-shot CLI commands; the daemon-style loop
// in Start keeps polling instead.
func (m *Manager) RunUntilIdle(ctx context.Context) error {
	m.mu.RLock()
	p := m.pipeline
	m.mu.RUnlock()
	if p == nil || len(p.statusOrder) == 0 {
		return errors.New("workflow stages not configured")
	}
	logger := m.logger
	if logger == nil {
		logger = logging.NewNop()
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		job, err := m.store.NextForStatuses(ctx, p.statusOrder...)
		if err != nil {
			return err
		}
		if job == nil {
			return nil
		}
		if err := m.processJob(ctx, p, logger, job); err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			// Stage failures are recorded on the job and drained; a job
			// still in a startable status means the failure never
			// persisted, so bail instead of spinning on it.
			if _, startable := p.stageForStatus(job.Status); startable {
				return err
			}
		}
	}
}

// statusOrder exposes the startable statuses for tests.
func (m *Manager) startableStatuses() []queue.Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.pipeline == nil {
		return nil
	}
	return append([]queue.Status(nil), m.pipeline.statusOrder...)
}
