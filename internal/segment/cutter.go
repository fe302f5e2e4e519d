package segment

import (
	"fmt"
	"path/filepath"
	"time"

	"clipforge/internal/audio"
)

// Clip describes one written dataset clip.
type Clip struct {
	Filename string
	Text     string
	Start    float64
	End      float64
}

// Duration returns the clip length in seconds.
func (c Clip) Duration() float64 {
	return c.End - c.Start
}

// ClipFilename returns the dataset filename for a video's nth clip.
// Numbering is 1-based and zero-padded so lexical and temporal order
// agree.
func ClipFilename(videoID string, seq int) string {
	return fmt.Sprintf("%s_%06d.wav", videoID, seq)
}

// Cut slices each planned span out of the source audio and writes it to
// wavsDir. The source must already be in the dataset's target format.
func Cut(source *audio.Clip, videoID, wavsDir string, spans []Span) ([]Clip, error) {
	clips := make([]Clip, 0, len(spans))
	for i, span := range spans {
		start := secondsToDuration(span.Start)
		end := secondsToDuration(span.End)
		piece := source.Slice(start, end)
		if len(piece.Samples) == 0 {
			continue
		}

		name := ClipFilename(videoID, i+1)
		if err := piece.Save(filepath.Join(wavsDir, name)); err != nil {
			return nil, fmt.Errorf("write clip %s: %w", name, err)
		}
		clips = append(clips, Clip{
			Filename: name,
			Text:     span.Text,
			Start:    span.Start,
			End:      span.End,
		})
	}
	return clips, nil
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
