package subtitle

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Caption is a single timed caption parsed from a subtitle track.
type Caption struct {
	Text     string
	Start    float64
	Duration float64
}

// End returns the caption's nominal end time in seconds.
func (c Caption) End() float64 {
	return c.Start + c.Duration
}

type json3Payload struct {
	Events []json3Event `json:"events"`
}

type json3Event struct {
	StartMs    int64      `json:"tStartMs"`
	DurationMs int64      `json:"dDurationMs"`
	Segs       []json3Seg `json:"segs"`
}

type json3Seg struct {
	UTF8 string `json:"utf8"`
}

// ParseJSON3 decodes a json3 caption payload into captions sorted by start
// time. Events without text segments and whitespace-only captions are
// dropped. YouTube's rolling captions overlap; callers that need
// non-overlapping spans should plan segments with the next caption's start.
func ParseJSON3(data []byte) ([]Caption, error) {
	var payload json3Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse json3: %w", err)
	}

	captions := make([]Caption, 0, len(payload.Events))
	for _, event := range payload.Events {
		if len(event.Segs) == 0 {
			continue
		}
		var sb strings.Builder
		for _, seg := range event.Segs {
			sb.WriteString(seg.UTF8)
		}
		text := CleanText(sb.String())
		if text == "" {
			continue
		}
		captions = append(captions, Caption{
			Text:     text,
			Start:    float64(event.StartMs) / 1000.0,
			Duration: float64(event.DurationMs) / 1000.0,
		})
	}

	sort.SliceStable(captions, func(i, j int) bool {
		return captions[i].Start < captions[j].Start
	})
	return captions, nil
}

// LoadJSON3 reads and parses a json3 subtitle file.
func LoadJSON3(path string) ([]Caption, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read subtitles: %w", err)
	}
	return ParseJSON3(data)
}

// CleanText flattens newlines and collapses repeated whitespace.
func CleanText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// WriteTranscript writes one caption per line to path.
func WriteTranscript(path string, captions []Caption) error {
	var sb strings.Builder
	for _, caption := range captions {
		sb.WriteString(caption.Text)
		sb.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	return nil
}
