package cleanup_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"clipforge/internal/audio"
	"clipforge/internal/cleanup"
	"clipforge/internal/logging"
	"clipforge/internal/services"
	"clipforge/internal/testsupport"
)

// writePaddedClip writes a clip with loud audio surrounded by silence.
func writePaddedClip(t *testing.T, path string, rate int, silentSecs, loudSecs float64) {
	t.Helper()

	silent := int(silentSecs * float64(rate))
	loud := int(loudSecs * float64(rate))
	samples := make([]int, silent*2+loud)
	for i := silent; i < silent+loud; i++ {
		samples[i] = 10000
	}
	clip := &audio.Clip{Samples: samples, Rate: rate}
	if err := clip.Save(path); err != nil {
		t.Fatalf("save %s: %v", path, err)
	}
}

func TestCleanerTrimsSilenceFromClips(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	job := testsupport.NewJob(t, store, "https://www.youtube.com/watch?v=cleanVid001", "cleanVid001", "")

	rate := cfg.Segment.SampleRate
	path := filepath.Join(cfg.WavsDir(), "cleanVid001_000001.wav")
	writePaddedClip(t, path, rate, 0.5, 1.0)

	handler := cleanup.New(cfg, store, logging.NewNop())
	ctx := context.Background()
	if err := handler.Prepare(ctx, job); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if err := handler.Execute(ctx, job); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	cleaned, err := audio.Load(path)
	if err != nil {
		t.Fatalf("load cleaned clip: %v", err)
	}
	if got := cleaned.Seconds(); got > 1.1 {
		t.Fatalf("cleaned clip is %.2fs, silence not trimmed", got)
	}
	if got := cleaned.Seconds(); got < 0.9 {
		t.Fatalf("cleaned clip is %.2fs, audible audio lost", got)
	}
}

func TestCleanerAppliesFades(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	job := testsupport.NewJob(t, store, "https://www.youtube.com/watch?v=fadeVid0001", "fadeVid0001", "")

	rate := cfg.Segment.SampleRate
	path := filepath.Join(cfg.WavsDir(), "fadeVid0001_000001.wav")
	writePaddedClip(t, path, rate, 0, 1.0)

	handler := cleanup.New(cfg, store, logging.NewNop())
	if err := handler.Execute(context.Background(), job); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	cleaned, err := audio.Load(path)
	if err != nil {
		t.Fatalf("load cleaned clip: %v", err)
	}
	if first := cleaned.Samples[0]; first >= 10000 {
		t.Fatalf("first sample = %d, fade-in not applied", first)
	}
	if last := cleaned.Samples[len(cleaned.Samples)-1]; last >= 10000 {
		t.Fatalf("last sample = %d, fade-out not applied", last)
	}
}

func TestCleanerMusicFilterChangesSignal(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Clean.MusicFilter = true
	cfg.Clean.FadeIn = false
	cfg.Clean.FadeOut = false
	store := testsupport.MustOpenStore(t, cfg)
	job := testsupport.NewJob(t, store, "https://www.youtube.com/watch?v=musicVid001", "musicVid001", "")

	rate := cfg.Segment.SampleRate
	path := filepath.Join(cfg.WavsDir(), "musicVid001_000001.wav")
	writePaddedClip(t, path, rate, 0, 1.0)
	before, err := audio.Load(path)
	if err != nil {
		t.Fatal(err)
	}

	handler := cleanup.New(cfg, store, logging.NewNop())
	if err := handler.Execute(context.Background(), job); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	after, err := audio.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	same := len(before.Samples) == len(after.Samples)
	if same {
		for i := range before.Samples {
			if before.Samples[i] != after.Samples[i] {
				same = false
				break
			}
		}
	}
	if same {
		t.Fatal("music filter left clip unchanged")
	}
}

func TestBatchCleansDirectoryToOutput(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	inDir := t.TempDir()
	outDir := t.TempDir()
	rate := cfg.Segment.SampleRate
	writePaddedClip(t, filepath.Join(inDir, "a_000001.wav"), rate, 0.5, 1.0)
	writePaddedClip(t, filepath.Join(inDir, "a_000002.wav"), rate, 0.5, 1.0)

	result, err := cleanup.Batch(context.Background(), cfg, logging.NewNop(), inDir, outDir)
	if err != nil {
		t.Fatalf("Batch: %v", err)
	}
	if result.Cleaned != 2 || result.Skipped != 0 {
		t.Fatalf("result = %+v, want 2 cleaned", result)
	}

	cleaned, err := audio.Load(filepath.Join(outDir, "a_000001.wav"))
	if err != nil {
		t.Fatalf("load cleaned clip: %v", err)
	}
	if got := cleaned.Seconds(); got > 1.1 {
		t.Fatalf("cleaned clip is %.2fs, silence not trimmed", got)
	}

	// Inputs stay untouched when an output directory is given.
	original, err := audio.Load(filepath.Join(inDir, "a_000001.wav"))
	if err != nil {
		t.Fatalf("load original clip: %v", err)
	}
	if got := original.Seconds(); got < 1.9 {
		t.Fatalf("original clip is %.2fs, input was modified", got)
	}
}

func TestBatchSkipsUnreadableClips(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	inDir := t.TempDir()
	writePaddedClip(t, filepath.Join(inDir, "ok_000001.wav"), cfg.Segment.SampleRate, 0.5, 1.0)
	if err := os.WriteFile(filepath.Join(inDir, "bad_000001.wav"), []byte("not a wav"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	result, err := cleanup.Batch(context.Background(), cfg, logging.NewNop(), inDir, "")
	if err != nil {
		t.Fatalf("Batch: %v", err)
	}
	if result.Cleaned != 1 || result.Skipped != 1 {
		t.Fatalf("result = %+v, want 1 cleaned 1 skipped", result)
	}
}

func TestBatchRejectsEmptyDirectory(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if _, err := cleanup.Batch(context.Background(), cfg, logging.NewNop(), t.TempDir(), ""); err == nil {
		t.Fatal("expected error for empty input directory")
	}
}

func TestCleanerFailsWhenVideoHasNoClips(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	job := testsupport.NewJob(t, store, "https://www.youtube.com/watch?v=bareVid0001", "bareVid0001", "")

	handler := cleanup.New(cfg, store, logging.NewNop())
	err := handler.Execute(context.Background(), job)
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}
