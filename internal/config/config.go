package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	DatasetDir string `toml:"dataset_dir"`
	WorkDir    string `toml:"work_dir"`
	LogDir     string `toml:"log_dir"`
}

// Download contains yt-dlp download settings.
type Download struct {
	// Languages is the subtitle language preference order.
	Languages     []string `toml:"languages"`
	MaxVideos     int      `toml:"max_videos"`
	CookieBrowser string   `toml:"cookies_from_browser"`
	CookieFile    string   `toml:"cookies_file"`
	SleepSeconds  int      `toml:"sleep_seconds"`
	Timeout       int      `toml:"timeout"`
}

// Segment contains clip segmentation settings.
type Segment struct {
	MinDuration float64 `toml:"min_duration"`
	MaxDuration float64 `toml:"max_duration"`
	SampleRate  int     `toml:"sample_rate"`
	Channels    int     `toml:"channels"`
}

// Separation contains Demucs vocal separation settings.
type Separation struct {
	Enabled bool   `toml:"enabled"`
	Model   string `toml:"model"`
	Timeout int    `toml:"timeout"`
}

// Clean contains silence trimming and music reduction settings.
type Clean struct {
	SilenceThresholdDB float64 `toml:"silence_threshold_db"`
	ChunkMs            int     `toml:"chunk_ms"`
	FadeIn             bool    `toml:"fade_in"`
	FadeOut            bool    `toml:"fade_out"`
	FadeMs             int     `toml:"fade_ms"`
	MusicFilter        bool    `toml:"music_filter"`
	HighpassHz         int     `toml:"highpass_hz"`
	LowpassHz          int     `toml:"lowpass_hz"`
	GainDB             float64 `toml:"gain_db"`
}

// Combine contains clip concatenation settings.
type Combine struct {
	ClipsPerSegment int     `toml:"clips_per_segment"`
	MaxDuration     float64 `toml:"max_duration"`
	PauseMs         int     `toml:"pause_ms"`
}

// Stretch contains pitch-preserving speed adjustment settings.
type Stretch struct {
	Speed float64 `toml:"speed"`
}

// Workflow contains runner timing and intervals.
type Workflow struct {
	QueuePollInterval  int `toml:"queue_poll_interval"`
	ErrorRetryInterval int `toml:"error_retry_interval"`
	HeartbeatInterval  int `toml:"heartbeat_interval"`
	HeartbeatTimeout   int `toml:"heartbeat_timeout"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for clipforge.
//
// Configuration sections by subsystem:
//   - Paths: dataset, scratch, and log directories
//   - Download: yt-dlp enumeration and download settings
//   - Segment: caption-aligned clip extraction bounds and output format
//   - Separation: Demucs vocal separation
//   - Clean: silence trimming, fades, and band-pass music reduction
//   - Combine: clip concatenation into longer training segments
//   - Stretch: pitch-preserving time stretch
//   - Workflow: runner polling intervals and heartbeats
//   - Logging: log format and level
type Config struct {
	Paths      Paths      `toml:"paths"`
	Download   Download   `toml:"download"`
	Segment    Segment    `toml:"segment"`
	Separation Separation `toml:"separation"`
	Clean      Clean      `toml:"clean"`
	Combine    Combine    `toml:"combine"`
	Stretch    Stretch    `toml:"stretch"`
	Workflow   Workflow   `toml:"workflow"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/clipforge/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The boolean reports
// whether a config file was found at the resolved path.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("clipforge.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories the pipeline writes into.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DatasetDir, c.RawDir(), c.WavsDir(), c.Paths.WorkDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// RawDir returns the directory holding downloaded full audio and subtitles.
func (c *Config) RawDir() string {
	return filepath.Join(c.Paths.DatasetDir, "raw")
}

// WavsDir returns the directory holding segmented training clips.
func (c *Config) WavsDir() string {
	return filepath.Join(c.Paths.DatasetDir, "wavs")
}

// MetadataPath returns the path of the LJSpeech metadata file.
func (c *Config) MetadataPath() string {
	return filepath.Join(c.Paths.DatasetDir, "metadata.csv")
}

// YtdlpBinary returns the yt-dlp executable name.
func (c *Config) YtdlpBinary() string {
	return "yt-dlp"
}

// DemucsBinary returns the demucs executable name.
func (c *Config) DemucsBinary() string {
	return "demucs"
}

// FFmpegBinary returns the ffmpeg executable name.
func (c *Config) FFmpegBinary() string {
	return "ffmpeg"
}

// FFprobeBinary returns the ffprobe executable name used for media inspection.
func (c *Config) FFprobeBinary() string {
	return "ffprobe"
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
