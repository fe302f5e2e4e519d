package dataset

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"clipforge/internal/segment"
)

// WriteTiming writes the per-video timing file, one
// filename|text|start|end|duration line per clip.
func WriteTiming(path string, clips []segment.Clip) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create timing file: %w", err)
	}

	w := bufio.NewWriter(f)
	for _, clip := range clips {
		fmt.Fprintf(w, "%s|%s|%.3f|%.3f|%.3f\n",
			clip.Filename, clip.Text, clip.Start, clip.End, clip.Duration())
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("write timing file: %w", err)
	}
	return f.Close()
}

// WriteMapping writes the per-video filename|text mapping file.
func WriteMapping(path string, clips []segment.Clip) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create mapping file: %w", err)
	}

	w := bufio.NewWriter(f)
	for _, clip := range clips {
		fmt.Fprintf(w, "%s|%s\n", clip.Filename, clip.Text)
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("write mapping file: %w", err)
	}
	return f.Close()
}

// CombinedMapping describes one combined clip and the originals it was
// built from.
type CombinedMapping struct {
	Filename  string
	Originals []string
	Duration  float64
	Text      string
}

// WriteCombinedMapping writes the combine stage's mapping file, one
// combined_filename|original_files|num_clips|duration|text line per
// combined clip.
func WriteCombinedMapping(path string, mappings []CombinedMapping) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create combined mapping: %w", err)
	}

	w := bufio.NewWriter(f)
	for _, m := range mappings {
		fmt.Fprintf(w, "%s|%s|%d|%.3f|%s\n",
			m.Filename, strings.Join(m.Originals, ","), len(m.Originals), m.Duration, m.Text)
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("write combined mapping: %w", err)
	}
	return f.Close()
}
