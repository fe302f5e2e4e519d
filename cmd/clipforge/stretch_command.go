package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"clipforge/internal/dataset"
	"clipforge/internal/media/ffmpeg"
)

func newStretchCommand(ctx *commandContext) *cobra.Command {
	var inDir string
	var outDir string
	var speed float64

	cmd := &cobra.Command{
		Use:   "stretch",
		Short: "Slow dataset audio while preserving pitch",
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

			factor := speed
			if factor <= 0 {
				factor = cfg.Stretch.Speed
			}
			source := inDir
			if source == "" {
				source = cfg.WavsDir()
			}
			target := outDir
			if target == "" {
				target = filepath.Join(cfg.Paths.DatasetDir, fmt.Sprintf("wavs_speed_%g", factor))
			}

			stretcher := ffmpeg.NewClient(cfg.FFmpegBinary())
			result, err := dataset.Stretch(cmd.Context(), stretcher, source, target, factor, logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "stretched %d clips to %s at %gx speed (%d skipped)\n",
				result.Stretched, target, factor, result.Skipped)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inDir, "input", "i", "", "Directory of clips to stretch (default: dataset wavs)")
	cmd.Flags().StringVarP(&outDir, "output", "o", "", "Output directory for stretched clips")
	cmd.Flags().Float64VarP(&speed, "speed", "s", 0, "Playback speed factor, below 1.0 slows audio")
	return cmd
}
