package segment_test

import (
	"os"
	"path/filepath"
	"testing"

	"clipforge/internal/audio"
	"clipforge/internal/segment"
)

func TestClipFilename(t *testing.T) {
	if got := segment.ClipFilename("abc123", 7); got != "abc123_000007.wav" {
		t.Fatalf("unexpected filename: %q", got)
	}
}

func TestCutWritesSpans(t *testing.T) {
	dir := t.TempDir()
	rate := 1000
	source := &audio.Clip{Samples: make([]int, 10*rate), Rate: rate}
	for i := range source.Samples {
		source.Samples[i] = 1000
	}

	spans := []segment.Span{
		{Text: "প্রথম", Start: 0, End: 2},
		{Text: "দ্বিতীয়", Start: 2, End: 5.5},
	}

	clips, err := segment.Cut(source, "vid1", dir, spans)
	if err != nil {
		t.Fatalf("Cut failed: %v", err)
	}
	if len(clips) != 2 {
		t.Fatalf("expected 2 clips, got %d", len(clips))
	}
	if clips[0].Filename != "vid1_000001.wav" || clips[1].Filename != "vid1_000002.wav" {
		t.Fatalf("unexpected filenames: %+v", clips)
	}

	first, err := audio.Load(filepath.Join(dir, clips[0].Filename))
	if err != nil {
		t.Fatalf("load first clip: %v", err)
	}
	if len(first.Samples) != 2*rate {
		t.Fatalf("expected %d samples, got %d", 2*rate, len(first.Samples))
	}
	if clips[1].Duration() != 3.5 {
		t.Fatalf("unexpected duration: %v", clips[1].Duration())
	}
}

func TestCutSkipsEmptyWindows(t *testing.T) {
	dir := t.TempDir()
	source := &audio.Clip{Samples: make([]int, 1000), Rate: 1000}

	spans := []segment.Span{
		{Text: "বাইরে", Start: 5, End: 6},
	}
	clips, err := segment.Cut(source, "vid2", dir, spans)
	if err != nil {
		t.Fatalf("Cut failed: %v", err)
	}
	if len(clips) != 0 {
		t.Fatalf("expected no clips, got %d", len(clips))
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("unexpected files written: %v", entries)
	}
}
