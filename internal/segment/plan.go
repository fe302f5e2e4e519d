package segment

import (
	"clipforge/internal/subtitle"
)

// Span is one planned clip: a half-open time window in the source audio
// with its caption text.
type Span struct {
	Text  string
	Start float64
	End   float64
}

// Duration returns the span length in seconds.
func (s Span) Duration() float64 {
	return s.End - s.Start
}

// Plan computes non-overlapping clip spans from an ordered caption list.
// Each caption starts its own span; the span ends at the next caption's
// start, clamped to start + maxDuration. The last caption uses its own
// duration. Spans are clamped to the audio length, and spans outside the
// [minDuration, maxDuration] window or with a degenerate window are
// dropped.
func Plan(captions []subtitle.Caption, audioSeconds, minDuration, maxDuration float64) []Span {
	spans := make([]Span, 0, len(captions))
	for i, c := range captions {
		start := c.Start
		var end float64
		if i+1 < len(captions) {
			end = captions[i+1].Start
		} else {
			end = c.End()
		}
		if end > start+maxDuration {
			end = start + maxDuration
		}
		if audioSeconds > 0 && end > audioSeconds {
			end = audioSeconds
		}
		if end <= start {
			continue
		}
		d := end - start
		if d < minDuration || d > maxDuration {
			continue
		}
		if c.Text == "" {
			continue
		}
		spans = append(spans, Span{Text: c.Text, Start: start, End: end})
	}
	return spans
}
