package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"clipforge/internal/dataset"
)

func newVerifyCommand(ctx *commandContext) *cobra.Command {
	var showProblems bool

	cmd := &cobra.Command{
		Use:   "verify [dataset-dir]",
		Short: "Check dataset clips and metadata for consistency",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			wavsDir := cfg.WavsDir()
			metadataPath := cfg.MetadataPath()
			if len(args) == 1 {
				wavsDir, metadataPath = resolveDatasetDir(args[0])
			}

			report, err := dataset.Verify(wavsDir, metadataPath, cfg.Segment.SampleRate, cfg.Segment.Channels)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			rows := [][]string{
				{"Clips on disk", strconv.Itoa(report.WavCount)},
				{"Metadata entries", strconv.Itoa(report.MetadataCount)},
				{"Skipped metadata lines", strconv.Itoa(report.SkippedLines)},
				{"Missing clips", strconv.Itoa(len(report.MissingClips))},
				{"Orphan clips", strconv.Itoa(len(report.OrphanClips))},
				{"Non-conforming clips", strconv.Itoa(len(report.NonConforming))},
				{"Unreadable clips", strconv.Itoa(len(report.Unreadable))},
				{"Total size", humanize.Bytes(uint64(report.TotalBytes))},
				{"Total audio", fmt.Sprintf("%.2f h", report.Hours())},
				{"Mean clip length", fmt.Sprintf("%.2f s", report.MeanSeconds())},
				{"Clip length range", fmt.Sprintf("%.2f s - %.2f s", report.MinSeconds, report.MaxSeconds)},
			}
			fmt.Fprintln(out, renderTable([]string{"Metric", "Value"}, rows, []columnAlignment{alignLeft, alignRight}))

			colorize := writerIsTerminal(out)
			if report.Clean() {
				fmt.Fprintln(out, renderStatusLine("Dataset", statusOK, "clips and metadata are consistent", colorize))
				return nil
			}
			fmt.Fprintln(out, renderStatusLine("Dataset", statusWarn, "inconsistencies found", colorize))
			if showProblems {
				printNames(out, "missing clip", report.MissingClips)
				printNames(out, "orphan clip", report.OrphanClips)
				printNames(out, "non-conforming", report.NonConforming)
				printNames(out, "unreadable", report.Unreadable)
			} else if total := len(report.MissingClips) + len(report.OrphanClips) + len(report.NonConforming) + len(report.Unreadable); total > 0 {
				fmt.Fprintf(out, "rerun with --problems to list all %d affected clips\n", total)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showProblems, "problems", false, "List every inconsistent clip by name")
	return cmd
}

// resolveDatasetDir accepts either a dataset root (containing wavs/ and
// metadata.csv) or a bare clip directory such as wavs_combined.
func resolveDatasetDir(dir string) (wavsDir, metadataPath string) {
	wavsDir = dir
	if info, err := os.Stat(filepath.Join(dir, "wavs")); err == nil && info.IsDir() {
		wavsDir = filepath.Join(dir, "wavs")
	}
	return wavsDir, filepath.Join(dir, "metadata.csv")
}

func printNames(out io.Writer, label string, names []string) {
	for _, name := range names {
		fmt.Fprintf(out, "  %s: %s\n", label, name)
	}
}
