package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"clipforge/internal/dataset"
)

func newCombineCommand(ctx *commandContext) *cobra.Command {
	var outDir string
	var clipsPerSegment int
	var maxDuration float64

	cmd := &cobra.Command{
		Use:   "combine",
		Short: "Concatenate consecutive clips into longer training segments",
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

			records, skipped, err := dataset.LoadMetadata(cfg.MetadataPath())
			if err != nil {
				return fmt.Errorf("load metadata: %w", err)
			}
			if skipped > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "skipped %d malformed metadata lines\n", skipped)
			}

			clips := clipsPerSegment
			if clips <= 0 {
				clips = cfg.Combine.ClipsPerSegment
			}
			maxDur := maxDuration
			if maxDur <= 0 {
				maxDur = cfg.Combine.MaxDuration
			}
			target := outDir
			if target == "" {
				target = filepath.Join(cfg.Paths.DatasetDir, "wavs_combined")
			}

			result, err := dataset.Combine(
				cfg.WavsDir(),
				target,
				records,
				clips,
				maxDur,
				time.Duration(cfg.Combine.PauseMs)*time.Millisecond,
				logger,
			)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d combined segments to %s (%d clips skipped)\n",
				result.Combined, target, result.Skipped)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "output", "o", "", "Output directory for combined clips")
	cmd.Flags().IntVarP(&clipsPerSegment, "clips", "n", 0, "Number of clips to combine per segment")
	cmd.Flags().Float64VarP(&maxDuration, "max-duration", "d", 0, "Maximum combined segment duration in seconds")
	return cmd
}
