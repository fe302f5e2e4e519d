package segmenter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"clipforge/internal/audio"
	"clipforge/internal/config"
	"clipforge/internal/dataset"
	"clipforge/internal/logging"
	"clipforge/internal/queue"
	"clipforge/internal/segment"
	"clipforge/internal/services"
	"clipforge/internal/stage"
	"clipforge/internal/subtitle"
)

// Segmenter cuts a fetched video into dataset clips.
type Segmenter struct {
	cfg    *config.Config
	store  *queue.Store
	logger *slog.Logger
}

// New constructs the segmentation stage handler.
func New(cfg *config.Config, store *queue.Store, logger *slog.Logger) *Segmenter {
	return &Segmenter{
		cfg:    cfg,
		store:  store,
		logger: logging.NewComponentLogger(logger, "segmenter"),
	}
}

func (s *Segmenter) Prepare(ctx context.Context, job *queue.Job) error {
	job.InitProgress("Segmenting", "Planning clip boundaries")
	if job.AudioPath == "" || job.SubtitlePath == "" {
		return services.Wrap(services.ErrValidation, "segment", "validate inputs",
			"job is missing fetched audio or subtitles; rerun the fetch stage", nil)
	}
	return nil
}

func (s *Segmenter) Execute(ctx context.Context, job *queue.Job) error {
	logger := logging.WithContext(ctx, s.logger)

	captions, err := subtitle.LoadJSON3(job.SubtitlePath)
	if err != nil {
		return services.Wrap(services.ErrValidation, "segment", "parse subtitles", "", err)
	}

	source, err := audio.Load(job.AudioPath)
	if err != nil {
		return services.Wrap(services.ErrValidation, "segment", "load audio", "", err)
	}

	spans := segment.Plan(captions, source.Seconds(), s.cfg.Segment.MinDuration, s.cfg.Segment.MaxDuration)
	if len(spans) == 0 {
		return services.Wrap(services.ErrValidation, "segment", "plan",
			"no caption spans within duration bounds", nil)
	}
	job.SetProgress("Segmenting", fmt.Sprintf("Cutting %d clips", len(spans)), 30)

	clips, err := segment.Cut(source, job.VideoID, s.cfg.WavsDir(), spans)
	if err != nil {
		return services.Wrap(services.ErrTransient, "segment", "cut", "", err)
	}
	if len(clips) == 0 {
		return services.Wrap(services.ErrValidation, "segment", "cut", "all planned spans were empty", nil)
	}

	records := make([]dataset.Record, len(clips))
	for i, clip := range clips {
		records[i] = dataset.NewRecord(clip.Filename, clip.Text)
	}
	if err := dataset.AppendMetadata(s.cfg.MetadataPath(), records); err != nil {
		return services.Wrap(services.ErrTransient, "segment", "append metadata", "", err)
	}
	if err := dataset.WriteTiming(s.timingPath(job.VideoID), clips); err != nil {
		return services.Wrap(services.ErrTransient, "segment", "write timing", "", err)
	}
	if err := dataset.WriteMapping(s.mappingPath(job.VideoID), clips); err != nil {
		return services.Wrap(services.ErrTransient, "segment", "write mapping", "", err)
	}

	// The resampled working copy is no longer needed once clips exist.
	if err := os.Remove(job.AudioPath); err != nil && !os.IsNotExist(err) {
		logger.Warn("could not remove working audio", logging.Error(err))
	}

	job.ClipCount = len(clips)
	job.SetProgressComplete("Segmenting", fmt.Sprintf("Wrote %d clips", len(clips)))
	logger.Info("segmentation complete",
		logging.String(logging.FieldVideoID, job.VideoID),
		logging.Int(logging.FieldClipCount, len(clips)),
		logging.Int("planned", len(spans)))
	return nil
}

func (s *Segmenter) HealthCheck(ctx context.Context) stage.Health {
	if err := s.cfg.EnsureDirectories(); err != nil {
		return stage.Unhealthy("segmenter", err.Error())
	}
	return stage.Healthy("segmenter")
}

func (s *Segmenter) timingPath(videoID string) string {
	return filepath.Join(s.cfg.RawDir(), videoID+".timing.txt")
}

func (s *Segmenter) mappingPath(videoID string) string {
	return filepath.Join(s.cfg.RawDir(), videoID+".mapping.txt")
}
