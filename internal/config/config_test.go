package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"clipforge/internal/config"
)

func TestLoadDefaultsAndExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	if cfg.Paths.DatasetDir != filepath.Join(tempHome, "ljspeech_dataset") {
		t.Fatalf("unexpected dataset dir: %q", cfg.Paths.DatasetDir)
	}
	if got, want := cfg.RawDir(), filepath.Join(cfg.Paths.DatasetDir, "raw"); got != want {
		t.Fatalf("unexpected raw dir: got %q want %q", got, want)
	}
	if got, want := cfg.WavsDir(), filepath.Join(cfg.Paths.DatasetDir, "wavs"); got != want {
		t.Fatalf("unexpected wavs dir: got %q want %q", got, want)
	}
	if cfg.Segment.SampleRate != 22050 {
		t.Fatalf("expected 22050 Hz default, got %d", cfg.Segment.SampleRate)
	}
	if cfg.Segment.Channels != 1 {
		t.Fatalf("expected mono default, got %d channels", cfg.Segment.Channels)
	}
	if len(cfg.Download.Languages) < 2 || cfg.Download.Languages[0] != "bn" || cfg.Download.Languages[1] != "bn-IN" {
		t.Fatalf("unexpected language preference: %v", cfg.Download.Languages)
	}
	if cfg.Separation.Enabled {
		t.Fatal("expected separation disabled by default")
	}
	if cfg.Separation.Model != "htdemucs" {
		t.Fatalf("unexpected separation model: %q", cfg.Separation.Model)
	}
	if !cfg.Clean.FadeOut || cfg.Clean.FadeIn {
		t.Fatalf("unexpected fade defaults: in=%v out=%v", cfg.Clean.FadeIn, cfg.Clean.FadeOut)
	}
	if cfg.Stretch.Speed != 0.9 {
		t.Fatalf("unexpected stretch speed: %v", cfg.Stretch.Speed)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.DatasetDir, cfg.RawDir(), cfg.WavsDir(), cfg.Paths.WorkDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be a directory", dir)
		}
	}
}

func TestLoadParsesConfigFile(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	path := filepath.Join(tempHome, "clipforge.toml")
	content := `
[paths]
dataset_dir = "~/corpus"

[segment]
min_duration = 2.0
max_duration = 8.0

[download]
languages = ["Bengali", "ben", "hin"]
cookies_from_browser = "Firefox"

[separation]
enabled = true
timeout = 240
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected config at %q to be used, got %q exists=%v", path, resolved, exists)
	}
	if cfg.Paths.DatasetDir != filepath.Join(tempHome, "corpus") {
		t.Fatalf("expected ~ expansion, got %q", cfg.Paths.DatasetDir)
	}
	if cfg.Segment.MinDuration != 2.0 || cfg.Segment.MaxDuration != 8.0 {
		t.Fatalf("unexpected segment bounds: %v..%v", cfg.Segment.MinDuration, cfg.Segment.MaxDuration)
	}
	if len(cfg.Download.Languages) != 2 || cfg.Download.Languages[0] != "bn" || cfg.Download.Languages[1] != "hi" {
		t.Fatalf("expected normalized language codes, got %v", cfg.Download.Languages)
	}
	if cfg.Download.CookieBrowser != "firefox" {
		t.Fatalf("expected lowercased browser, got %q", cfg.Download.CookieBrowser)
	}
	if !cfg.Separation.Enabled || cfg.Separation.Timeout != 240 {
		t.Fatalf("unexpected separation config: %+v", cfg.Separation)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{
			name:    "inverted segment bounds",
			mutate:  func(c *config.Config) { c.Segment.MinDuration = 5; c.Segment.MaxDuration = 4 },
			wantErr: "segment.max_duration",
		},
		{
			name:    "stereo output",
			mutate:  func(c *config.Config) { c.Segment.Channels = 2 },
			wantErr: "segment.channels",
		},
		{
			name:    "positive silence threshold",
			mutate:  func(c *config.Config) { c.Clean.SilenceThresholdDB = 10 },
			wantErr: "clean.silence_threshold_db",
		},
		{
			name:    "unknown cookie browser",
			mutate:  func(c *config.Config) { c.Download.CookieBrowser = "netscape" },
			wantErr: "cookies_from_browser",
		},
		{
			name: "both cookie sources",
			mutate: func(c *config.Config) {
				c.Download.CookieBrowser = "firefox"
				c.Download.CookieFile = "/tmp/cookies.txt"
			},
			wantErr: "mutually exclusive",
		},
		{
			name:    "zero stretch speed",
			mutate:  func(c *config.Config) { c.Stretch.Speed = 0 },
			wantErr: "stretch.speed",
		},
		{
			name:    "heartbeat timeout below interval",
			mutate:  func(c *config.Config) { c.Workflow.HeartbeatTimeout = 5 },
			wantErr: "heartbeat_timeout",
		},
		{
			name:    "inverted band-pass",
			mutate:  func(c *config.Config) { c.Clean.MusicFilter = true; c.Clean.LowpassHz = 100 },
			wantErr: "clean.lowpass_hz",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error %q does not mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestCreateSampleWritesParseableConfig(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	path := filepath.Join(tempHome, "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config failed to load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if cfg.Segment.SampleRate != 22050 {
		t.Fatalf("sample config changed defaults: %d", cfg.Segment.SampleRate)
	}
}
