package workflow

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"clipforge/internal/config"
	"clipforge/internal/queue"
)

// Manager coordinates queue processing using registered stage handlers.
type Manager struct {
	cfg          *config.Config
	store        *queue.Store
	logger       *slog.Logger
	pollInterval time.Duration

	heartbeat *HeartbeatMonitor

	mu       sync.RWMutex
	pipeline *pipeline
	running  bool
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	lastErr  error
	lastJob  *queue.Job
}

// NewManager constructs a new workflow manager.
func NewManager(cfg *config.Config, store *queue.Store, logger *slog.Logger) *Manager {
	return &Manager{
		cfg:          cfg,
		store:        store,
		logger:       logger,
		pollInterval: time.Duration(cfg.Workflow.QueuePollInterval) * time.Second,
		heartbeat: NewHeartbeatMonitor(
			store,
			logger,
			time.Duration(cfg.Workflow.HeartbeatInterval)*time.Second,
			time.Duration(cfg.Workflow.HeartbeatTimeout)*time.Second,
		),
	}
}

// ConfigureStages registers the concrete stage handlers the workflow will
// run. The separation stage is skipped when StageSet.Separator is nil; in
// that case the cleaner accepts jobs from both the segmented and separated
// statuses, so jobs rolled back from an interrupted cleaning run resume in
// either configuration.
func (m *Manager) ConfigureStages(set StageSet) {
	p := &pipeline{}

	if set.Fetcher != nil {
		p.stages = append(p.stages, pipelineStage{
			name:             "fetch",
			handler:          set.Fetcher,
			startStatus:      queue.StatusPending,
			processingStatus: queue.StatusFetching,
			doneStatus:       queue.StatusFetched,
		})
	}
	if set.Segmenter != nil {
		p.stages = append(p.stages, pipelineStage{
			name:             "segment",
			handler:          set.Segmenter,
			startStatus:      queue.StatusFetched,
			processingStatus: queue.StatusSegmenting,
			doneStatus:       queue.StatusSegmented,
		})
	}
	if set.Separator != nil {
		p.stages = append(p.stages, pipelineStage{
			name:             "separate",
			handler:          set.Separator,
			startStatus:      queue.StatusSegmented,
			processingStatus: queue.StatusSeparating,
			doneStatus:       queue.StatusSeparated,
		})
	}
	if set.Cleaner != nil {
		if set.Separator == nil {
			p.stages = append(p.stages, pipelineStage{
				name:             "clean",
				handler:          set.Cleaner,
				startStatus:      queue.StatusSegmented,
				processingStatus: queue.StatusCleaning,
				doneStatus:       queue.StatusCompleted,
			})
		}
		p.stages = append(p.stages, pipelineStage{
			name:             "clean",
			handler:          set.Cleaner,
			startStatus:      queue.StatusSeparated,
			processingStatus: queue.StatusCleaning,
			doneStatus:       queue.StatusCompleted,
		})
	}

	p.finalize()

	m.mu.Lock()
	m.pipeline = p
	m.mu.Unlock()
}
