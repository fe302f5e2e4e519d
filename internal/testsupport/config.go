package testsupport

import (
	"path/filepath"
	"testing"

	"clipforge/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DatasetDir = filepath.Join(base, "dataset")
	cfgVal.Paths.WorkDir = filepath.Join(base, "work")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return builder.cfg
}

// WithSeparation enables Demucs vocal separation on the test config.
func WithSeparation(model string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Separation.Enabled = true
		if model != "" {
			b.cfg.Separation.Model = model
		}
	}
}

// WithSegmentBounds overrides the clip duration bounds on the test config.
func WithSegmentBounds(minDuration, maxDuration float64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Segment.MinDuration = minDuration
		b.cfg.Segment.MaxDuration = maxDuration
	}
}
