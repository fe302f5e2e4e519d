package main

import (
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"clipforge/internal/cleanup"
	"clipforge/internal/config"
	"clipforge/internal/fetch"
	"clipforge/internal/logging"
	"clipforge/internal/media/ffmpeg"
	"clipforge/internal/queue"
	"clipforge/internal/runner"
	"clipforge/internal/segmenter"
	"clipforge/internal/separation"
	"clipforge/internal/services/ytdlp"
	"clipforge/internal/workflow"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) newLogger(cfg *config.Config) (*slog.Logger, error) {
	return logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		OutputPaths: []string{
			"stderr",
			filepath.Join(cfg.Paths.LogDir, "clipforge.log"),
		},
	})
}

func (c *commandContext) openStore(cfg *config.Config) (*queue.Store, error) {
	return queue.Open(cfg)
}

func (c *commandContext) ytdlpClient(cfg *config.Config) *ytdlp.Client {
	return ytdlp.NewClient(
		cfg.YtdlpBinary(),
		cfg.Download.CookieBrowser,
		cfg.Download.CookieFile,
		cfg.Download.Languages,
	)
}

// stageSet builds the full pipeline handler set from the configuration.
// Separation is only registered when enabled.
func (c *commandContext) stageSet(cfg *config.Config, store *queue.Store, logger *slog.Logger) workflow.StageSet {
	ffmpegClient := ffmpeg.NewClient(cfg.FFmpegBinary())
	set := workflow.StageSet{
		Fetcher:   fetch.NewDefault(cfg, store, logger, ffmpegClient),
		Segmenter: segmenter.New(cfg, store, logger),
		Cleaner:   cleanup.New(cfg, store, logger),
	}
	if cfg.Separation.Enabled {
		set.Separator = separation.NewDefault(cfg, store, logger)
	}
	return set
}

// newRunner wires a complete runner over the given stage set.
func (c *commandContext) newRunner(cfg *config.Config, store *queue.Store, logger *slog.Logger, set workflow.StageSet) (*runner.Runner, error) {
	mgr := workflow.NewManager(cfg, store, logger)
	mgr.ConfigureStages(set)
	return runner.New(cfg, store, logger, mgr)
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
