// Package ffmpeg wraps the ffmpeg binary for the two transformations the
// pipeline delegates rather than doing in-process: resampling downloaded
// audio to the dataset format and pitch-preserving time stretch.
package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Client invokes a configured ffmpeg binary.
type Client struct {
	binary string
}

// NewClient builds a client for the given binary, defaulting to "ffmpeg"
// on PATH.
func NewClient(binary string) *Client {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	return &Client{binary: binary}
}

// Resample converts input to PCM16 WAV at the given sample rate and
// channel count, overwriting output if it exists.
func (c *Client) Resample(ctx context.Context, input, output string, sampleRate, channels int) error {
	if strings.TrimSpace(input) == "" || strings.TrimSpace(output) == "" {
		return errors.New("ffmpeg resample: empty path")
	}
	args := []string{
		"-hide_banner", "-loglevel", "error", "-y",
		"-i", input,
		"-ac", fmt.Sprintf("%d", channels),
		"-ar", fmt.Sprintf("%d", sampleRate),
		"-c:a", "pcm_s16le",
		output,
	}
	return c.run(ctx, "resample", args)
}

// TimeStretch changes playback speed without changing pitch using the
// atempo filter. Factors outside atempo's [0.5, 2.0] range are chained.
func (c *Client) TimeStretch(ctx context.Context, input, output string, speed float64) error {
	if strings.TrimSpace(input) == "" || strings.TrimSpace(output) == "" {
		return errors.New("ffmpeg stretch: empty path")
	}
	filter, err := AtempoChain(speed)
	if err != nil {
		return err
	}
	args := []string{
		"-hide_banner", "-loglevel", "error", "-y",
		"-i", input,
		"-filter:a", filter,
		"-c:a", "pcm_s16le",
		output,
	}
	return c.run(ctx, "stretch", args)
}

// AtempoChain builds the atempo filter expression for a speed factor,
// chaining multiple atempo stages when the factor falls outside the
// filter's supported [0.5, 2.0] range.
func AtempoChain(speed float64) (string, error) {
	if speed <= 0 {
		return "", fmt.Errorf("ffmpeg stretch: invalid speed factor %v", speed)
	}

	var factors []float64
	remaining := speed
	for remaining < 0.5 {
		factors = append(factors, 0.5)
		remaining /= 0.5
	}
	for remaining > 2.0 {
		factors = append(factors, 2.0)
		remaining /= 2.0
	}
	factors = append(factors, remaining)

	parts := make([]string, len(factors))
	for i, f := range factors {
		parts[i] = fmt.Sprintf("atempo=%g", f)
	}
	return strings.Join(parts, ","), nil
}

func (c *Client) run(ctx context.Context, op string, args []string) error {
	cmd := exec.CommandContext(ctx, c.binary, args...) //nolint:gosec
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg %s: %w: %s", op, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}
