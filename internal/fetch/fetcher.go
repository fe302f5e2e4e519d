package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"clipforge/internal/config"
	"clipforge/internal/logging"
	"clipforge/internal/media/ffprobe"
	"clipforge/internal/queue"
	"clipforge/internal/services"
	"clipforge/internal/services/ytdlp"
	"clipforge/internal/stage"
	"clipforge/internal/subtitle"
)

// Resampler converts audio to the dataset's sample rate and channel
// count. The ffmpeg client satisfies this.
type Resampler interface {
	Resample(ctx context.Context, input, output string, sampleRate, channels int) error
}

// Downloader retrieves audio and subtitles for one video. The yt-dlp
// client satisfies this.
type Downloader interface {
	DownloadAudioAndSubs(ctx context.Context, url, videoID, rawDir string) (string, error)
}

// Fetcher downloads a job's audio and subtitles and prepares them for
// segmentation.
type Fetcher struct {
	cfg        *config.Config
	store      *queue.Store
	logger     *slog.Logger
	downloader Downloader
	resampler  Resampler

	lastDownload time.Time
}

// New constructs the fetch stage handler with default tool clients.
func New(cfg *config.Config, store *queue.Store, logger *slog.Logger, downloader Downloader, resampler Resampler) *Fetcher {
	return &Fetcher{
		cfg:        cfg,
		store:      store,
		logger:     logging.NewComponentLogger(logger, "fetch"),
		downloader: downloader,
		resampler:  resampler,
	}
}

func (f *Fetcher) Prepare(ctx context.Context, job *queue.Job) error {
	logger := logging.WithContext(ctx, f.logger)
	job.InitProgress("Fetching", "Downloading audio and subtitles")
	if err := f.cfg.EnsureDirectories(); err != nil {
		return services.Wrap(services.ErrConfiguration, "fetch", "ensure directories", "", err)
	}
	logger.Info("starting fetch",
		logging.String(logging.FieldVideoID, job.VideoID),
		logging.String("url", job.URL))
	return nil
}

func (f *Fetcher) Execute(ctx context.Context, job *queue.Job) error {
	logger := logging.WithContext(ctx, f.logger)
	rawDir := f.cfg.RawDir()

	// A transcript on disk means this video was fully fetched and
	// segmented by an earlier run.
	transcriptPath := filepath.Join(rawDir, job.VideoID+".txt")
	if _, err := os.Stat(transcriptPath); err == nil {
		logger.Info("transcript already present, skipping video",
			logging.String(logging.FieldVideoID, job.VideoID))
		job.TranscriptPath = transcriptPath
		job.Status = queue.StatusCompleted
		job.SetProgressComplete("Fetching", "Already downloaded")
		return nil
	}

	if err := f.throttle(ctx); err != nil {
		return err
	}
	downloadCtx := ctx
	if f.cfg.Download.Timeout > 0 {
		var cancel context.CancelFunc
		downloadCtx, cancel = context.WithTimeout(ctx, time.Duration(f.cfg.Download.Timeout)*time.Second)
		defer cancel()
	}
	audioPath, err := f.downloader.DownloadAudioAndSubs(downloadCtx, job.URL, job.VideoID, rawDir)
	f.lastDownload = time.Now()
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "fetch", "download", "yt-dlp failed", err)
	}
	job.SetProgress("Fetching", "Download complete", 40)
	f.inspectSource(ctx, logger, audioPath)

	subtitlePath, lang, err := subtitle.Find(rawDir, job.VideoID, f.cfg.Download.Languages)
	if err != nil {
		return services.Wrap(services.ErrNotFound, "fetch", "locate subtitles", "no subtitle track in requested languages", err)
	}
	captions, err := subtitle.LoadJSON3(subtitlePath)
	if err != nil {
		return services.Wrap(services.ErrValidation, "fetch", "parse subtitles", "", err)
	}
	if len(captions) == 0 {
		return services.Wrap(services.ErrValidation, "fetch", "parse subtitles", "subtitle track has no usable captions", nil)
	}
	job.SubtitlePath = subtitlePath
	job.SubtitleLang = lang
	job.SetProgress("Fetching", fmt.Sprintf("Parsed %d captions (%s)", len(captions), lang), 60)

	if err := subtitle.WriteTranscript(transcriptPath, captions); err != nil {
		return services.Wrap(services.ErrTransient, "fetch", "write transcript", "", err)
	}
	job.TranscriptPath = transcriptPath

	resampled := filepath.Join(f.cfg.Paths.WorkDir, job.VideoID+".wav")
	if err := f.resampler.Resample(ctx, audioPath, resampled, f.cfg.Segment.SampleRate, f.cfg.Segment.Channels); err != nil {
		return services.Wrap(services.ErrExternalTool, "fetch", "resample", "ffmpeg failed", err)
	}
	job.AudioPath = resampled

	job.SetProgressComplete("Fetching", "Audio and subtitles ready")
	logger.Info("fetch complete",
		logging.String(logging.FieldVideoID, job.VideoID),
		logging.String("language", lang),
		logging.Int("captions", len(captions)))
	return nil
}

// inspectSource logs what yt-dlp actually delivered. Purely diagnostic,
// so a missing ffprobe or a probe failure never fails the job.
func (f *Fetcher) inspectSource(ctx context.Context, logger *slog.Logger, path string) {
	binary := f.cfg.FFprobeBinary()
	if _, err := exec.LookPath(binary); err != nil {
		return
	}
	probe, err := ffprobe.Inspect(ctx, binary, path)
	if err != nil {
		logger.Warn("source inspection failed", logging.Error(err))
		return
	}
	attrs := []any{
		logging.String("format", probe.Format.FormatName),
		logging.Float64("duration_seconds", probe.DurationSeconds()),
		logging.Int64("size_bytes", probe.SizeBytes()),
	}
	if stream, ok := probe.FirstAudioStream(); ok {
		attrs = append(attrs,
			logging.String("codec", stream.CodecName),
			logging.Int("source_sample_rate", stream.SampleRateHz()),
			logging.Int("source_channels", stream.Channels))
	}
	logger.Info("source audio", attrs...)
}

// throttle spaces consecutive downloads to stay clear of rate limits.
func (f *Fetcher) throttle(ctx context.Context) error {
	if f.cfg.Download.SleepSeconds <= 0 || f.lastDownload.IsZero() {
		return nil
	}
	wait := time.Duration(f.cfg.Download.SleepSeconds)*time.Second - time.Since(f.lastDownload)
	if wait <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(wait):
		return nil
	}
}

func (f *Fetcher) HealthCheck(ctx context.Context) stage.Health {
	if _, err := exec.LookPath(f.cfg.YtdlpBinary()); err != nil {
		return stage.Unhealthy("fetch", fmt.Sprintf("yt-dlp not found: %v", err))
	}
	if _, err := exec.LookPath(f.cfg.FFmpegBinary()); err != nil {
		return stage.Unhealthy("fetch", fmt.Sprintf("ffmpeg not found: %v", err))
	}
	return stage.Healthy("fetch")
}

// NewDefault wires the fetcher with its production yt-dlp client.
func NewDefault(cfg *config.Config, store *queue.Store, logger *slog.Logger, resampler Resampler) *Fetcher {
	client := ytdlp.NewClient(
		cfg.YtdlpBinary(),
		cfg.Download.CookieBrowser,
		cfg.Download.CookieFile,
		cfg.Download.Languages,
	)
	return New(cfg, store, logger, client, resampler)
}
