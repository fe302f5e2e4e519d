package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"clipforge/internal/fileutil"
	"clipforge/internal/logging"
)

// Stretcher applies a pitch-preserving time stretch to a single file.
// The ffmpeg client satisfies this.
type Stretcher interface {
	TimeStretch(ctx context.Context, input, output string, speed float64) error
}

// StretchResult summarizes a stretch run.
type StretchResult struct {
	Stretched int
	Skipped   int
}

// Stretch slows down (or speeds up) every WAV in inDir by the given speed
// factor, writing results under the same names in outDir. The metadata
// file is copied unchanged since filenames and texts do not move.
func Stretch(ctx context.Context, stretcher Stretcher, inDir, outDir string, speed float64, logger *slog.Logger) (*StretchResult, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	entries, err := os.ReadDir(inDir)
	if err != nil {
		return nil, fmt.Errorf("read input directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".wav") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	result := &StretchResult{}
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		in := filepath.Join(inDir, name)
		out := filepath.Join(outDir, name)
		if err := stretcher.TimeStretch(ctx, in, out, speed); err != nil {
			logger.Warn("skipping clip",
				logging.String("filename", name),
				logging.Error(err))
			result.Skipped++
			continue
		}
		result.Stretched++
	}

	metadata := filepath.Join(inDir, "metadata.csv")
	if _, err := os.Stat(metadata); err == nil {
		if err := fileutil.CopyFile(metadata, filepath.Join(outDir, "metadata.csv")); err != nil {
			return result, fmt.Errorf("copy metadata: %w", err)
		}
	}
	return result, nil
}
