package config

import (
	"strings"

	"clipforge/internal/language"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeDownload()
	c.normalizeLogging()
	c.Separation.Model = strings.TrimSpace(c.Separation.Model)
	if c.Separation.Model == "" {
		c.Separation.Model = defaultSeparationModel
	}
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.DatasetDir, err = expandPath(c.Paths.DatasetDir); err != nil {
		return err
	}
	if c.Paths.WorkDir, err = expandPath(c.Paths.WorkDir); err != nil {
		return err
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return err
	}
	if c.Download.CookieFile != "" {
		if c.Download.CookieFile, err = expandPath(c.Download.CookieFile); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) normalizeDownload() {
	// Users write languages in several forms ("ben", "Bengali"); yt-dlp
	// and the subtitle matcher want ISO 639-1 codes.
	languages := language.NormalizeList(c.Download.Languages)
	if len(languages) == 0 {
		languages = Default().Download.Languages
	}
	c.Download.Languages = languages
	c.Download.CookieBrowser = strings.ToLower(strings.TrimSpace(c.Download.CookieBrowser))
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
