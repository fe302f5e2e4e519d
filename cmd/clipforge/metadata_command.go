package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"clipforge/internal/dataset"
)

func newMetadataCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metadata",
		Short: "Dataset metadata maintenance",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newMetadataRebuildCommand(ctx))
	return cmd
}

func newMetadataRebuildCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rebuild",
		Short: "Rebuild metadata.csv from the stored subtitle files",
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

			result, err := dataset.Rebuild(
				cfg.RawDir(),
				cfg.WavsDir(),
				cfg.MetadataPath(),
				cfg.Download.Languages,
				cfg.Segment.MinDuration,
				cfg.Segment.MaxDuration,
				logger,
			)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rebuilt metadata for %d clips across %d videos (%d skipped)\n",
				result.Clips, result.Videos, result.Skipped)
			return nil
		},
	}
}
