package preflight

import (
	"context"

	"clipforge/internal/config"
	"clipforge/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
// Optional tooling failures are reported but do not fail the run.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	results = append(results, CheckDirectoryAccess("Dataset directory", cfg.Paths.DatasetDir))
	results = append(results, CheckDirectoryAccess("Work directory", cfg.Paths.WorkDir))
	results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))

	for _, status := range CheckSystemDeps(ctx, cfg) {
		result := Result{
			Name:   status.Name,
			Passed: status.Available || status.Optional,
			Detail: status.Detail,
		}
		if status.Available {
			result.Detail = status.Command
		}
		results = append(results, result)
	}
	return results
}

// Passed reports whether every check in the set succeeded.
func Passed(results []Result) bool {
	for _, result := range results {
		if !result.Passed {
			return false
		}
	}
	return true
}

// CheckSystemDeps evaluates the external binaries the pipeline needs.
// Demucs is only required when vocal separation is enabled.
func CheckSystemDeps(ctx context.Context, cfg *config.Config) []deps.Status {
	requirements := []deps.Requirement{
		{
			Name:        "yt-dlp",
			Command:     cfg.YtdlpBinary(),
			Description: "Required for downloading audio and subtitles",
		},
		{
			Name:        "FFmpeg",
			Command:     cfg.FFmpegBinary(),
			Description: "Required for resampling and time stretching",
		},
		{
			Name:        "FFprobe",
			Command:     cfg.FFprobeBinary(),
			Description: "Required for media inspection",
			Optional:    true,
		},
	}
	requirements = append(requirements, deps.Requirement{
		Name:        "Demucs",
		Command:     cfg.DemucsBinary(),
		Description: "Required for vocal separation",
		Optional:    !cfg.Separation.Enabled,
	})
	return deps.CheckBinaries(requirements)
}
