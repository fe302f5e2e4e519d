// Package demucs wraps the Demucs binary for two-stem vocal separation.
package demucs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"clipforge/internal/services"
)

// Client invokes a configured demucs binary.
type Client struct {
	binary        string
	model         string
	timeout       time.Duration
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewClient builds a client. Binary defaults to "demucs" on PATH, model to
// "htdemucs".
func NewClient(binary, model string, timeout time.Duration) *Client {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "demucs"
	}
	model = strings.TrimSpace(model)
	if model == "" {
		model = "htdemucs"
	}
	return &Client{binary: binary, model: model, timeout: timeout}
}

// Model returns the configured model name for logging.
func (c *Client) Model() string {
	return c.model
}

// WithCommandRunner sets a custom command runner (for testing). The runner
// is expected to produce the same output layout demucs would.
func (c *Client) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	c.commandRunner = runner
}

// SeparateVocals runs two-stem separation on one file and replaces it with
// the isolated vocal stem. workDir holds the temporary Demucs output tree
// and is removed afterwards.
func (c *Client) SeparateVocals(ctx context.Context, input, workDir string) error {
	if strings.TrimSpace(input) == "" {
		return errors.New("demucs: empty input path")
	}
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return fmt.Errorf("demucs: ensure work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	args := []string{"--two-stems=vocals", "-n", c.model, "-o", workDir, input}
	if err := c.run(ctx, args); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%w: demucs separation of %s", services.ErrTimeout, filepath.Base(input))
		}
		return fmt.Errorf("demucs: %w", err)
	}

	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	vocals := filepath.Join(workDir, c.model, stem, "vocals.wav")
	if _, err := os.Stat(vocals); err != nil {
		return fmt.Errorf("demucs: vocals stem missing: %w", err)
	}
	return replaceFile(vocals, input)
}

func (c *Client) run(ctx context.Context, args []string) error {
	if c.commandRunner != nil {
		return c.commandRunner(ctx, c.binary, args...)
	}
	cmd := exec.CommandContext(ctx, c.binary, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

func replaceFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("demucs: open stem: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("demucs: replace original: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("demucs: copy stem: %w", err)
	}
	return out.Close()
}
