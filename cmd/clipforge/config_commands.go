package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"clipforge/internal/config"
	"clipforge/internal/language"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and create configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newConfigShowCommand(ctx))
	cmd.AddCommand(newConfigInitCommand())
	return cmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			rows := [][]string{
				{"dataset_dir", cfg.Paths.DatasetDir},
				{"work_dir", cfg.Paths.WorkDir},
				{"log_dir", cfg.Paths.LogDir},
				{"languages", describeLanguages(cfg.Download.Languages)},
				{"max_videos", strconv.Itoa(cfg.Download.MaxVideos)},
				{"sample_rate", strconv.Itoa(cfg.Segment.SampleRate)},
				{"channels", strconv.Itoa(cfg.Segment.Channels)},
				{"clip_bounds", fmt.Sprintf("%.1f s - %.1f s", cfg.Segment.MinDuration, cfg.Segment.MaxDuration)},
				{"separation", yesNo(cfg.Separation.Enabled)},
				{"separation_model", cfg.Separation.Model},
				{"silence_threshold", fmt.Sprintf("%.1f dBFS", cfg.Clean.SilenceThresholdDB)},
				{"music_filter", yesNo(cfg.Clean.MusicFilter)},
				{"clips_per_segment", strconv.Itoa(cfg.Combine.ClipsPerSegment)},
				{"stretch_speed", fmt.Sprintf("%g", cfg.Stretch.Speed)},
				{"log_format", cfg.Logging.Format},
				{"log_level", cfg.Logging.Level},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Setting", "Value"}, rows, nil))
			return nil
		},
	}
}

func newConfigInitCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a sample configuration file",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(path)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return err
				}
				target = defaultPath
			}
			if err := config.CreateSample(target); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote sample configuration to %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "", "Where to write the sample configuration")
	return cmd
}

func describeLanguages(codes []string) string {
	normalized := language.NormalizeList(codes)
	parts := make([]string, 0, len(normalized))
	for _, code := range normalized {
		parts = append(parts, fmt.Sprintf("%s (%s)", code, language.DisplayName(code)))
	}
	return strings.Join(parts, ", ")
}
