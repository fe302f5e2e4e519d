package cleanup

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"time"

	"clipforge/internal/audio"
	"clipforge/internal/config"
	"clipforge/internal/logging"
	"clipforge/internal/queue"
	"clipforge/internal/services"
	"clipforge/internal/stage"
)

// Cleaner trims silence and reduces residual music in a job's clips.
type Cleaner struct {
	cfg    *config.Config
	store  *queue.Store
	logger *slog.Logger
}

// New constructs the cleanup stage handler.
func New(cfg *config.Config, store *queue.Store, logger *slog.Logger) *Cleaner {
	return &Cleaner{
		cfg:    cfg,
		store:  store,
		logger: logging.NewComponentLogger(logger, "cleanup"),
	}
}

func (c *Cleaner) Prepare(ctx context.Context, job *queue.Job) error {
	job.InitProgress("Cleaning", "Trimming silence")
	if job.VideoID == "" {
		return services.Wrap(services.ErrValidation, "clean", "validate inputs", "job has no video id", nil)
	}
	return nil
}

func (c *Cleaner) Execute(ctx context.Context, job *queue.Job) error {
	logger := logging.WithContext(ctx, c.logger)

	clips, err := c.videoClips(job.VideoID)
	if err != nil {
		return services.Wrap(services.ErrTransient, "clean", "list clips", "", err)
	}
	if len(clips) == 0 {
		return services.Wrap(services.ErrNotFound, "clean", "list clips",
			"no clips found for video; rerun the segmentation stage", nil)
	}

	var trimmed time.Duration
	for i, path := range clips {
		if err := ctx.Err(); err != nil {
			return err
		}
		cut, err := c.cleanClip(path)
		if err != nil {
			return err
		}
		trimmed += cut
		percent := float64(i+1) / float64(len(clips)) * 100
		job.SetProgress("Cleaning", fmt.Sprintf("Cleaned %d/%d clips", i+1, len(clips)), percent)
	}

	job.SetProgressComplete("Cleaning", fmt.Sprintf("Cleaned %d clips", len(clips)))
	logger.Info("cleanup complete",
		logging.String(logging.FieldVideoID, job.VideoID),
		logging.Int(logging.FieldClipCount, len(clips)),
		logging.Duration("silence_trimmed", trimmed))
	return nil
}

func (c *Cleaner) cleanClip(path string) (time.Duration, error) {
	trimmed, err := cleanFile(c.cfg.Clean, path, path)
	if err != nil {
		return 0, services.Wrap(services.ErrTransient, "clean", "clean clip",
			fmt.Sprintf("could not clean %s", filepath.Base(path)), err)
	}
	return trimmed, nil
}

// cleanFile applies the configured trim, fades, and music filter to one
// clip, writing the result to outPath.
func cleanFile(opts config.Clean, inPath, outPath string) (time.Duration, error) {
	clip, err := audio.Load(inPath)
	if err != nil {
		return 0, err
	}

	chunk := time.Duration(opts.ChunkMs) * time.Millisecond
	clip, trim := clip.TrimSilence(opts.SilenceThresholdDB, chunk)

	fade := time.Duration(opts.FadeMs) * time.Millisecond
	if opts.FadeIn {
		clip.FadeIn(fade)
	}
	if opts.FadeOut {
		clip.FadeOut(fade)
	}

	if opts.MusicFilter {
		clip.BandPass(float64(opts.HighpassHz), float64(opts.LowpassHz))
		clip.Gain(opts.GainDB)
	}

	if err := clip.Save(outPath); err != nil {
		return 0, err
	}
	return trim.Leading + trim.Trailing, nil
}

func (c *Cleaner) HealthCheck(ctx context.Context) stage.Health {
	if err := c.cfg.EnsureDirectories(); err != nil {
		return stage.Unhealthy("cleanup", err.Error())
	}
	return stage.Healthy("cleanup")
}

func (c *Cleaner) videoClips(videoID string) ([]string, error) {
	pattern := filepath.Join(c.cfg.WavsDir(), videoID+"_*.wav")
	clips, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}
	sort.Strings(clips)
	return clips, nil
}
