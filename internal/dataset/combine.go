package dataset

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"clipforge/internal/audio"
	"clipforge/internal/logging"
)

// VideoIDFromFilename extracts the video ID from a clip filename of the
// form <videoID>_<seq>. YouTube IDs may themselves contain underscores, so
// everything before the last underscore is the ID.
func VideoIDFromFilename(filename string) string {
	name := strings.TrimSuffix(filename, ".wav")
	idx := strings.LastIndex(name, "_")
	if idx <= 0 {
		return name
	}
	return name[:idx]
}

// CombineResult summarizes a combine run.
type CombineResult struct {
	Combined int
	Skipped  int
}

// Combine greedily joins consecutive clips from the same video into longer
// segments. A segment closes when it reaches clipsPerSegment clips, when
// the next clip would push it past maxDuration, or when the video changes.
// Clips are never split, so a single oversized clip still becomes its own
// segment. Output WAVs, a combined metadata.csv, and a mapping file are
// written to outDir.
func Combine(wavsDir, outDir string, records []Record, clipsPerSegment int, maxDuration float64, pause time.Duration, logger *slog.Logger) (*CombineResult, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	result := &CombineResult{}
	var (
		combined []Record
		mappings []CombinedMapping

		group      []*audio.Clip
		groupRecs  []Record
		groupVideo string
		groupSecs  float64
		seq        = map[string]int{}
	)

	flush := func() error {
		if len(group) == 0 {
			return nil
		}
		seq[groupVideo]++
		name := fmt.Sprintf("%s_combined_%06d.wav", groupVideo, seq[groupVideo])

		joined, err := audio.Concat(pause, group...)
		if err != nil {
			return fmt.Errorf("combine %s: %w", name, err)
		}
		if err := joined.Save(filepath.Join(outDir, name)); err != nil {
			return fmt.Errorf("combine %s: %w", name, err)
		}

		texts := make([]string, len(groupRecs))
		originals := make([]string, len(groupRecs))
		for i, rec := range groupRecs {
			texts[i] = rec.Text
			originals[i] = rec.Filename
		}
		text := strings.Join(texts, " ")
		combined = append(combined, NewRecord(name, text))
		mappings = append(mappings, CombinedMapping{
			Filename:  name,
			Originals: originals,
			Duration:  joined.Seconds(),
			Text:      text,
		})
		result.Combined++

		group = group[:0]
		groupRecs = groupRecs[:0]
		groupSecs = 0
		return nil
	}

	pauseSecs := pause.Seconds()
	for _, rec := range records {
		clip, err := audio.Load(filepath.Join(wavsDir, rec.Filename+".wav"))
		if err != nil {
			logger.Warn("skipping clip",
				logging.String("filename", rec.Filename),
				logging.Error(err))
			result.Skipped++
			continue
		}

		videoID := VideoIDFromFilename(rec.Filename)
		needed := clip.Seconds()
		if len(group) > 0 {
			needed += groupSecs + pauseSecs
		}
		if len(group) > 0 && (videoID != groupVideo || len(group) >= clipsPerSegment || needed > maxDuration) {
			if err := flush(); err != nil {
				return nil, err
			}
		}

		if len(group) == 0 {
			groupVideo = videoID
			groupSecs = clip.Seconds()
		} else {
			groupSecs += pauseSecs + clip.Seconds()
		}
		group = append(group, clip)
		groupRecs = append(groupRecs, rec)
	}
	if err := flush(); err != nil {
		return nil, err
	}

	if err := SaveMetadata(filepath.Join(outDir, "metadata.csv"), combined); err != nil {
		return nil, err
	}
	if err := WriteCombinedMapping(filepath.Join(outDir, "combined_mapping.txt"), mappings); err != nil {
		return nil, err
	}
	return result, nil
}
