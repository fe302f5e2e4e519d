package separation

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"clipforge/internal/fileutil"
	"clipforge/internal/logging"
)

// BatchResult summarizes a directory separation run.
type BatchResult struct {
	Separated int
	Skipped   int
}

// Batch runs vocal separation over every WAV in inDir. When outDir is set
// and differs from inDir, each clip is copied there first and separated in
// place, leaving the originals untouched. A clip Demucs cannot process is
// logged and skipped.
func Batch(ctx context.Context, sep VocalSeparator, logger *slog.Logger, inDir, outDir, workDir string) (*BatchResult, error) {
	if outDir == "" {
		outDir = inDir
	}
	if outDir != inDir {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}

	clips, err := filepath.Glob(filepath.Join(inDir, "*.wav"))
	if err != nil {
		return nil, fmt.Errorf("list clips: %w", err)
	}
	sort.Strings(clips)
	if len(clips) == 0 {
		return nil, fmt.Errorf("no wav files in %s", inDir)
	}

	result := &BatchResult{}
	for _, clip := range clips {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		target := clip
		if outDir != inDir {
			target = filepath.Join(outDir, filepath.Base(clip))
			if err := fileutil.CopyFile(clip, target); err != nil {
				return result, fmt.Errorf("copy %s: %w", filepath.Base(clip), err)
			}
		}
		if err := sep.SeparateVocals(ctx, target, workDir); err != nil {
			logger.Warn("skipping clip",
				logging.String("filename", filepath.Base(clip)),
				logging.Error(err))
			result.Skipped++
			continue
		}
		result.Separated++
	}
	return result, nil
}
