package dataset

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-audio/wav"
)

// Report is the result of a verification pass over a dataset directory.
// Verification never mutates the dataset.
type Report struct {
	WavCount      int
	MetadataCount int
	SkippedLines  int

	// Metadata entries with no clip on disk, and clips with no entry.
	MissingClips []string
	OrphanClips  []string

	// Clips that are not in the target format or could not be read.
	NonConforming []string
	Unreadable    []string

	TotalBytes   int64
	TotalSeconds float64
	MinSeconds   float64
	MaxSeconds   float64
}

// Hours returns the total audio duration in hours.
func (r *Report) Hours() float64 {
	return r.TotalSeconds / 3600
}

// MeanSeconds returns the mean clip duration.
func (r *Report) MeanSeconds() float64 {
	if r.WavCount == 0 {
		return 0
	}
	return r.TotalSeconds / float64(r.WavCount)
}

// Clean reports whether the dataset passed every check.
func (r *Report) Clean() bool {
	return len(r.MissingClips) == 0 &&
		len(r.OrphanClips) == 0 &&
		len(r.NonConforming) == 0 &&
		len(r.Unreadable) == 0 &&
		r.SkippedLines == 0
}

// Verify checks a dataset directory: every metadata entry has a clip,
// every clip has an entry, and every clip is PCM16 WAV in the expected
// sample rate and channel count.
func Verify(wavsDir, metadataPath string, sampleRate, channels int) (*Report, error) {
	report := &Report{}

	// A dataset without a metadata file is just one where every clip is
	// an orphan.
	records, skipped, err := LoadMetadata(metadataPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	report.MetadataCount = len(records)
	report.SkippedLines = skipped

	inMetadata := make(map[string]bool, len(records))
	for _, rec := range records {
		inMetadata[rec.Filename] = true
	}

	entries, err := os.ReadDir(wavsDir)
	if err != nil {
		return nil, fmt.Errorf("read wavs directory: %w", err)
	}

	onDisk := make(map[string]bool)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".wav") {
			continue
		}
		report.WavCount++
		stem := strings.TrimSuffix(entry.Name(), ".wav")
		onDisk[stem] = true
		if !inMetadata[stem] {
			report.OrphanClips = append(report.OrphanClips, entry.Name())
		}

		path := filepath.Join(wavsDir, entry.Name())
		if info, err := entry.Info(); err == nil {
			report.TotalBytes += info.Size()
		}
		inspectClip(report, path, entry.Name(), sampleRate, channels)
	}

	for _, rec := range records {
		if !onDisk[rec.Filename] {
			report.MissingClips = append(report.MissingClips, rec.Filename)
		}
	}
	sort.Strings(report.MissingClips)
	sort.Strings(report.OrphanClips)
	sort.Strings(report.NonConforming)
	sort.Strings(report.Unreadable)
	return report, nil
}

func inspectClip(report *Report, path, name string, sampleRate, channels int) {
	f, err := os.Open(path)
	if err != nil {
		report.Unreadable = append(report.Unreadable, name)
		return
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	decoder.ReadInfo()
	if decoder.Err() != nil || decoder.SampleRate == 0 {
		report.Unreadable = append(report.Unreadable, name)
		return
	}
	if int(decoder.SampleRate) != sampleRate || int(decoder.NumChans) != channels {
		report.NonConforming = append(report.NonConforming, name)
	}

	d, err := decoder.Duration()
	if err != nil {
		report.Unreadable = append(report.Unreadable, name)
		return
	}
	secs := d.Seconds()
	report.TotalSeconds += secs
	if report.MinSeconds == 0 || secs < report.MinSeconds {
		report.MinSeconds = secs
	}
	if secs > report.MaxSeconds {
		report.MaxSeconds = secs
	}
}
