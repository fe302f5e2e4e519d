package separation

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"sort"
	"time"

	"clipforge/internal/config"
	"clipforge/internal/logging"
	"clipforge/internal/queue"
	"clipforge/internal/services"
	"clipforge/internal/services/demucs"
	"clipforge/internal/stage"
)

// VocalSeparator extracts the vocal stem from one clip in place. The
// Demucs client satisfies this.
type VocalSeparator interface {
	SeparateVocals(ctx context.Context, input, workDir string) error
}

// Separator runs vocal separation over every clip of a job's video.
type Separator struct {
	cfg       *config.Config
	store     *queue.Store
	logger    *slog.Logger
	separator VocalSeparator
}

// New constructs the separation stage handler.
func New(cfg *config.Config, store *queue.Store, logger *slog.Logger, separator VocalSeparator) *Separator {
	return &Separator{
		cfg:       cfg,
		store:     store,
		logger:    logging.NewComponentLogger(logger, "separation"),
		separator: separator,
	}
}

// NewDefault wires the separator with its production Demucs client.
func NewDefault(cfg *config.Config, store *queue.Store, logger *slog.Logger) *Separator {
	client := demucs.NewClient(
		cfg.DemucsBinary(),
		cfg.Separation.Model,
		time.Duration(cfg.Separation.Timeout)*time.Second,
	)
	return New(cfg, store, logger, client)
}

func (s *Separator) Prepare(ctx context.Context, job *queue.Job) error {
	job.InitProgress("Separating", "Extracting vocal stems")
	if job.VideoID == "" {
		return services.Wrap(services.ErrValidation, "separate", "validate inputs", "job has no video id", nil)
	}
	return nil
}

func (s *Separator) Execute(ctx context.Context, job *queue.Job) error {
	logger := logging.WithContext(ctx, s.logger)

	clips, err := s.videoClips(job.VideoID)
	if err != nil {
		return services.Wrap(services.ErrTransient, "separate", "list clips", "", err)
	}
	if len(clips) == 0 {
		return services.Wrap(services.ErrNotFound, "separate", "list clips",
			"no clips found for video; rerun the segmentation stage", nil)
	}

	workDir := filepath.Join(s.cfg.Paths.WorkDir, "demucs", job.VideoID)
	for i, clip := range clips {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.separator.SeparateVocals(ctx, clip, workDir); err != nil {
			return services.Wrap(services.ErrExternalTool, "separate", "demucs",
				fmt.Sprintf("vocal separation failed on %s", filepath.Base(clip)), err)
		}
		percent := float64(i+1) / float64(len(clips)) * 100
		job.SetProgress("Separating", fmt.Sprintf("Separated %d/%d clips", i+1, len(clips)), percent)
	}

	job.SetProgressComplete("Separating", fmt.Sprintf("Separated %d clips", len(clips)))
	logger.Info("vocal separation complete",
		logging.String(logging.FieldVideoID, job.VideoID),
		logging.Int(logging.FieldClipCount, len(clips)))
	return nil
}

func (s *Separator) HealthCheck(ctx context.Context) stage.Health {
	if _, err := exec.LookPath(s.cfg.DemucsBinary()); err != nil {
		return stage.Unhealthy("separation", fmt.Sprintf("demucs not found: %v", err))
	}
	return stage.Healthy("separation")
}

func (s *Separator) videoClips(videoID string) ([]string, error) {
	pattern := filepath.Join(s.cfg.WavsDir(), videoID+"_*.wav")
	clips, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}
	sort.Strings(clips)
	return clips, nil
}
