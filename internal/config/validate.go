package config

import (
	"errors"
	"fmt"
)

var knownCookieBrowsers = map[string]struct{}{
	"chrome": {}, "chromium": {}, "firefox": {}, "brave": {}, "edge": {}, "safari": {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSegment(); err != nil {
		return err
	}
	if err := c.validateDownload(); err != nil {
		return err
	}
	if err := c.validateClean(); err != nil {
		return err
	}
	if err := c.validateCombine(); err != nil {
		return err
	}
	if err := c.validateStretch(); err != nil {
		return err
	}
	if err := c.validateSeparation(); err != nil {
		return err
	}
	return c.validateWorkflow()
}

func (c *Config) validateSegment() error {
	if c.Segment.MinDuration <= 0 {
		return errors.New("segment.min_duration must be positive")
	}
	if c.Segment.MaxDuration <= c.Segment.MinDuration {
		return errors.New("segment.max_duration must be greater than segment.min_duration")
	}
	if c.Segment.SampleRate <= 0 {
		return errors.New("segment.sample_rate must be positive")
	}
	if c.Segment.Channels != 1 {
		return errors.New("segment.channels must be 1 (TTS training expects mono)")
	}
	return nil
}

func (c *Config) validateDownload() error {
	if c.Download.MaxVideos < 0 {
		return errors.New("download.max_videos must be >= 0 (0 means unlimited)")
	}
	if c.Download.SleepSeconds < 0 {
		return errors.New("download.sleep_seconds must be >= 0")
	}
	if c.Download.Timeout <= 0 {
		return errors.New("download.timeout must be positive (seconds)")
	}
	if c.Download.CookieBrowser != "" {
		if _, ok := knownCookieBrowsers[c.Download.CookieBrowser]; !ok {
			return fmt.Errorf("download.cookies_from_browser: unsupported browser %q", c.Download.CookieBrowser)
		}
	}
	if c.Download.CookieBrowser != "" && c.Download.CookieFile != "" {
		return errors.New("download.cookies_from_browser and download.cookies_file are mutually exclusive")
	}
	return nil
}

func (c *Config) validateClean() error {
	if c.Clean.SilenceThresholdDB >= 0 {
		return errors.New("clean.silence_threshold_db must be negative (dBFS)")
	}
	if c.Clean.ChunkMs <= 0 {
		return errors.New("clean.chunk_ms must be positive")
	}
	if c.Clean.FadeMs < 0 {
		return errors.New("clean.fade_ms must be >= 0")
	}
	if c.Clean.MusicFilter {
		if c.Clean.HighpassHz <= 0 || c.Clean.LowpassHz <= 0 {
			return errors.New("clean.highpass_hz and clean.lowpass_hz must be positive when clean.music_filter is true")
		}
		if c.Clean.LowpassHz <= c.Clean.HighpassHz {
			return errors.New("clean.lowpass_hz must be greater than clean.highpass_hz")
		}
	}
	return nil
}

func (c *Config) validateCombine() error {
	if c.Combine.ClipsPerSegment < 1 {
		return errors.New("combine.clips_per_segment must be >= 1")
	}
	if c.Combine.MaxDuration <= 0 {
		return errors.New("combine.max_duration must be positive")
	}
	if c.Combine.PauseMs < 0 {
		return errors.New("combine.pause_ms must be >= 0")
	}
	return nil
}

func (c *Config) validateStretch() error {
	if c.Stretch.Speed <= 0 {
		return errors.New("stretch.speed must be positive")
	}
	return nil
}

func (c *Config) validateSeparation() error {
	if c.Separation.Enabled && c.Separation.Timeout <= 0 {
		return errors.New("separation.timeout must be positive (seconds) when separation.enabled is true")
	}
	return nil
}

func (c *Config) validateWorkflow() error {
	if err := ensurePositiveMap(map[string]int{
		"workflow.queue_poll_interval":  c.Workflow.QueuePollInterval,
		"workflow.error_retry_interval": c.Workflow.ErrorRetryInterval,
	}); err != nil {
		return err
	}
	if c.Workflow.HeartbeatInterval <= 0 {
		return errors.New("workflow.heartbeat_interval must be positive")
	}
	if c.Workflow.HeartbeatTimeout <= c.Workflow.HeartbeatInterval {
		return errors.New("workflow.heartbeat_timeout must be greater than workflow.heartbeat_interval")
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
