package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"clipforge/internal/cleanup"
	"clipforge/internal/config"
	"clipforge/internal/fetch"
	"clipforge/internal/media/ffmpeg"
	"clipforge/internal/preflight"
	"clipforge/internal/queue"
	"clipforge/internal/segmenter"
	"clipforge/internal/separation"
	"clipforge/internal/services/demucs"
	"clipforge/internal/workflow"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Process queued videos through the full pipeline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := writerIsTerminal(out)
			checks := preflight.RunAll(cmd.Context(), cfg)
			for _, check := range checks {
				kind := statusOK
				if !check.Passed {
					kind = statusError
				}
				fmt.Fprintln(out, renderStatusLine(check.Name, kind, check.Detail, colorize))
			}
			if !preflight.Passed(checks) {
				return fmt.Errorf("preflight checks failed")
			}

			logger, err := ctx.newLogger(cfg)
			if err != nil {
				return err
			}
			store, err := ctx.openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			set := ctx.stageSet(cfg, store, logger)
			r, err := ctx.newRunner(cfg, store, logger, set)
			if err != nil {
				return err
			}

			if !watch {
				return r.RunOnce(cmd.Context())
			}

			if err := r.Start(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "clipforge is watching the queue; press Ctrl-C to stop")
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			select {
			case <-sigCh:
			case <-cmd.Context().Done():
			}
			r.Stop()
			return nil
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "Keep polling the queue instead of exiting when idle")
	return cmd
}

func newDownloadCommand(ctx *commandContext) *cobra.Command {
	return newStageCommand(ctx, "download", "Run only the download stage for queued videos",
		func(ctx *commandContext, deps stageDeps) workflow.StageSet {
			return workflow.StageSet{
				Fetcher: fetch.NewDefault(deps.cfg, deps.store, deps.logger, ffmpeg.NewClient(deps.cfg.FFmpegBinary())),
			}
		})
}

func newSeparateCommand(ctx *commandContext) *cobra.Command {
	var inputDir string
	var outputDir string

	cmd := newStageCommand(ctx, "separate", "Run only vocal separation for segmented videos",
		func(ctx *commandContext, deps stageDeps) workflow.StageSet {
			return workflow.StageSet{
				Separator: separation.NewDefault(deps.cfg, deps.store, deps.logger),
			}
		})

	// With --input the command works on a plain directory of WAV files
	// instead of queued videos.
	queueMode := cmd.RunE
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if inputDir == "" {
			return queueMode(cmd, args)
		}
		cfg, err := ctx.ensureConfig()
		if err != nil {
			return err
		}
		logger, err := ctx.newLogger(cfg)
		if err != nil {
			return err
		}

		client := demucs.NewClient(
			cfg.DemucsBinary(),
			cfg.Separation.Model,
			time.Duration(cfg.Separation.Timeout)*time.Second,
		)
		workDir := filepath.Join(cfg.Paths.WorkDir, "demucs", "batch")
		result, err := separation.Batch(cmd.Context(), client, logger, inputDir, outputDir, workDir)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "separated %d clips (%d skipped)\n", result.Separated, result.Skipped)
		return nil
	}

	cmd.Flags().StringVarP(&inputDir, "input", "i", "", "Separate every WAV in this directory instead of queued videos")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Write separated clips here (default: in place)")
	return cmd
}

func newCleanCommand(ctx *commandContext) *cobra.Command {
	var inputDir string
	var outputDir string

	cmd := newStageCommand(ctx, "clean", "Run only clip cleanup for segmented or separated videos",
		func(ctx *commandContext, deps stageDeps) workflow.StageSet {
			return workflow.StageSet{
				Cleaner: cleanup.New(deps.cfg, deps.store, deps.logger),
			}
		})

	queueMode := cmd.RunE
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if inputDir == "" {
			return queueMode(cmd, args)
		}
		cfg, err := ctx.ensureConfig()
		if err != nil {
			return err
		}
		logger, err := ctx.newLogger(cfg)
		if err != nil {
			return err
		}

		result, err := cleanup.Batch(cmd.Context(), cfg, logger, inputDir, outputDir)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "cleaned %d clips (%d skipped, %s of silence trimmed)\n",
			result.Cleaned, result.Skipped, result.Trimmed.Round(time.Millisecond))
		return nil
	}

	cmd.Flags().StringVarP(&inputDir, "input", "i", "", "Clean every WAV in this directory instead of queued videos")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Write cleaned clips here (default: in place)")
	return cmd
}

// The segment stage rides along with download in single-stage mode so a
// fetched video always ends up as clips.
func newStageCommand(ctx *commandContext, use, short string, build func(*commandContext, stageDeps) workflow.StageSet) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger(cfg)
			if err != nil {
				return err
			}
			store, err := ctx.openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			set := build(ctx, stageDeps{cfg: cfg, store: store, logger: logger})
			if set.Fetcher != nil && set.Segmenter == nil {
				set.Segmenter = segmenter.New(cfg, store, logger)
			}
			r, err := ctx.newRunner(cfg, store, logger, set)
			if err != nil {
				return err
			}
			return r.RunOnce(cmd.Context())
		},
	}
}

type stageDeps struct {
	cfg    *config.Config
	store  *queue.Store
	logger *slog.Logger
}
