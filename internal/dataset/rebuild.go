package dataset

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"

	"clipforge/internal/logging"
	"clipforge/internal/segment"
	"clipforge/internal/subtitle"
)

// RebuildResult summarizes a metadata rebuild.
type RebuildResult struct {
	Videos  int
	Clips   int
	Skipped int
}

// Rebuild re-derives metadata.csv from the stored json3 subtitle files.
// For each video with clips on disk, the segmentation plan is recomputed
// from its captions and clip sequence numbers are matched back to span
// texts. Clips whose video has no subtitle file, or whose sequence number
// falls outside the recomputed plan, are skipped and counted.
func Rebuild(rawDir, wavsDir, metadataPath string, languages []string, minDuration, maxDuration float64, logger *slog.Logger) (*RebuildResult, error) {
	entries, err := os.ReadDir(wavsDir)
	if err != nil {
		return nil, fmt.Errorf("read wavs directory: %w", err)
	}

	byVideo := make(map[string][]string)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".wav") {
			continue
		}
		id := VideoIDFromFilename(entry.Name())
		byVideo[id] = append(byVideo[id], entry.Name())
	}

	videoIDs := make([]string, 0, len(byVideo))
	for id := range byVideo {
		videoIDs = append(videoIDs, id)
	}
	sort.Strings(videoIDs)

	result := &RebuildResult{}
	var records []Record
	for _, videoID := range videoIDs {
		files := byVideo[videoID]
		sort.Strings(files)

		path, lang, err := subtitle.Find(rawDir, videoID, languages)
		if err != nil {
			logger.Warn("skipping video",
				logging.String("video_id", videoID),
				logging.Error(err))
			result.Skipped += len(files)
			continue
		}
		captions, err := subtitle.LoadJSON3(path)
		if err != nil {
			logger.Warn("skipping video",
				logging.String("video_id", videoID),
				logging.Error(err))
			result.Skipped += len(files)
			continue
		}

		spans := segment.Plan(captions, 0, minDuration, maxDuration)
		matched := 0
		for _, file := range files {
			seq, ok := clipSequence(file)
			if !ok || seq < 1 || seq > len(spans) {
				logger.Warn("clip does not match plan",
					logging.String("filename", file),
					logging.String("video_id", videoID))
				result.Skipped++
				continue
			}
			records = append(records, NewRecord(file, spans[seq-1].Text))
			matched++
		}
		if matched > 0 {
			result.Videos++
			result.Clips += matched
			logger.Info("rebuilt video metadata",
				logging.String("video_id", videoID),
				logging.String("language", lang),
				logging.Int("clips", matched))
		}
	}

	if err := SaveMetadata(metadataPath, records); err != nil {
		return nil, err
	}
	return result, nil
}

func clipSequence(filename string) (int, bool) {
	name := strings.TrimSuffix(filename, ".wav")
	idx := strings.LastIndex(name, "_")
	if idx < 0 || idx == len(name)-1 {
		return 0, false
	}
	seq, err := strconv.Atoi(name[idx+1:])
	if err != nil {
		return 0, false
	}
	return seq, true
}
