// Package ytdlp wraps the yt-dlp binary for video enumeration and
// audio-plus-subtitle downloads.
package ytdlp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// Video is one entry from a flat playlist dump.
type Video struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// URL returns the canonical watch URL for the video.
func (v Video) URL() string {
	return "https://www.youtube.com/watch?v=" + v.ID
}

// Client invokes a configured yt-dlp binary.
type Client struct {
	binary        string
	cookieBrowser string
	cookieFile    string
	languages     []string
	commandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewClient builds a client. Binary defaults to "yt-dlp" on PATH. At most
// one of cookieBrowser and cookieFile should be set; browser cookies win
// when both are.
func NewClient(binary, cookieBrowser, cookieFile string, languages []string) *Client {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "yt-dlp"
	}
	return &Client{
		binary:        binary,
		cookieBrowser: strings.TrimSpace(cookieBrowser),
		cookieFile:    strings.TrimSpace(cookieFile),
		languages:     languages,
	}
}

// WithCommandRunner sets a custom command runner (for testing).
func (c *Client) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) ([]byte, error)) {
	c.commandRunner = runner
}

// VideoID extracts the video ID from a watch or youtu.be URL.
func VideoID(url string) (string, bool) {
	if idx := strings.Index(url, "v="); idx >= 0 {
		id := url[idx+2:]
		if amp := strings.IndexByte(id, '&'); amp >= 0 {
			id = id[:amp]
		}
		return id, id != ""
	}
	if idx := strings.Index(url, "youtu.be/"); idx >= 0 {
		id := url[idx+len("youtu.be/"):]
		if q := strings.IndexByte(id, '?'); q >= 0 {
			id = id[:q]
		}
		return id, id != ""
	}
	return "", false
}

// IsSingleVideo reports whether the URL points at one video rather than a
// channel or playlist.
func IsSingleVideo(url string) bool {
	_, ok := VideoID(url)
	return ok
}

// ListVideos enumerates the videos behind a channel, playlist, or single
// video URL without downloading anything. maxVideos <= 0 means no limit.
func (c *Client) ListVideos(ctx context.Context, url string, maxVideos int) ([]Video, error) {
	if id, ok := VideoID(url); ok {
		return []Video{{ID: id}}, nil
	}

	args := c.cookieArgs()
	args = append(args, "--flat-playlist", "--dump-json", "--no-warnings", url)
	output, err := c.run(ctx, args)
	if err != nil {
		return nil, fmt.Errorf("yt-dlp list: %w", err)
	}

	var videos []Video
	scanner := bufio.NewScanner(bytes.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || !strings.HasPrefix(line, "{") {
			continue
		}
		var video Video
		if err := json.Unmarshal([]byte(line), &video); err != nil || video.ID == "" {
			continue
		}
		videos = append(videos, video)
		if maxVideos > 0 && len(videos) >= maxVideos {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("yt-dlp list: %w", err)
	}
	return videos, nil
}

// DownloadAudioAndSubs downloads the best audio track converted to WAV
// plus json3 subtitles for every configured language into rawDir. It
// returns the path of the downloaded WAV.
func (c *Client) DownloadAudioAndSubs(ctx context.Context, url, videoID, rawDir string) (string, error) {
	template := filepath.Join(rawDir, videoID)
	args := c.cookieArgs()
	args = append(args,
		"-f", "bestaudio[ext=m4a]/bestaudio/best",
		"--extract-audio",
		"--audio-format", "wav",
		"--write-subs",
		"--write-auto-subs",
		"--sub-langs", strings.Join(c.languages, ","),
		"--sub-format", "json3",
		"-o", template,
		url,
	)
	if _, err := c.run(ctx, args); err != nil {
		return "", fmt.Errorf("yt-dlp download: %w", err)
	}
	return template + ".wav", nil
}

func (c *Client) cookieArgs() []string {
	switch {
	case c.cookieBrowser != "":
		return []string{"--cookies-from-browser", c.cookieBrowser}
	case c.cookieFile != "":
		return []string{"--cookies", c.cookieFile}
	default:
		return nil
	}
}

func (c *Client) run(ctx context.Context, args []string) ([]byte, error) {
	if c.commandRunner != nil {
		return c.commandRunner(ctx, c.binary, args...)
	}
	cmd := exec.CommandContext(ctx, c.binary, args...) //nolint:gosec
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
