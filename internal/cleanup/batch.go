package cleanup

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"clipforge/internal/config"
	"clipforge/internal/logging"
)

// BatchResult summarizes a directory cleanup run.
type BatchResult struct {
	Cleaned int
	Skipped int
	Trimmed time.Duration
}

// Batch cleans every WAV in inDir with the configured trim, fades, and
// music filter, writing results under the same names in outDir. An empty
// outDir cleans in place. A clip that fails to load or save is logged and
// skipped so the rest of the directory still gets processed.
func Batch(ctx context.Context, cfg *config.Config, logger *slog.Logger, inDir, outDir string) (*BatchResult, error) {
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
		out := filepath.Join(outDir, filepath.Base(clip))
		trimmed, err := cleanFile(cfg.Clean, clip, out)
		if err != nil {
			logger.Warn("skipping clip",
				logging.String("filename", filepath.Base(clip)),
				logging.Error(err))
			result.Skipped++
			continue
		}
		result.Cleaned++
		result.Trimmed += trimmed
	}
	return result, nil
}
