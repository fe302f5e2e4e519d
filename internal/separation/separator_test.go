package separation_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"clipforge/internal/logging"
	"clipforge/internal/separation"
	"clipforge/internal/services"
	"clipforge/internal/testsupport"
)

type fakeSeparator struct {
	inputs []string
	fail   error
}

func (f *fakeSeparator) SeparateVocals(ctx context.Context, input, workDir string) error {
	if f.fail != nil {
		return f.fail
	}
	f.inputs = append(f.inputs, filepath.Base(input))
	return nil
}

func TestSeparatorProcessesEveryClipInOrder(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithSeparation(""))
	store := testsupport.MustOpenStore(t, cfg)
	job := testsupport.NewJob(t, store, "https://www.youtube.com/watch?v=sepVideo001", "sepVideo001", "")

	for _, name := range []string{"sepVideo001_000002.wav", "sepVideo001_000001.wav", "otherVideo9_000001.wav"} {
		testsupport.WriteClip(t, filepath.Join(cfg.WavsDir(), name), cfg.Segment.SampleRate, 1, 3000)
	}

	sep := &fakeSeparator{}
	handler := separation.New(cfg, store, logging.NewNop(), sep)
	ctx := context.Background()
	if err := handler.Prepare(ctx, job); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if err := handler.Execute(ctx, job); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	want := []string{"sepVideo001_000001.wav", "sepVideo001_000002.wav"}
	if len(sep.inputs) != len(want) {
		t.Fatalf("separated %d clips, want %d", len(sep.inputs), len(want))
	}
	for i, name := range want {
		if sep.inputs[i] != name {
			t.Fatalf("clip %d = %s, want %s", i, sep.inputs[i], name)
		}
	}
	if job.ProgressPercent != 100 {
		t.Fatalf("progress percent = %.0f, want 100", job.ProgressPercent)
	}
}

func TestSeparatorFailsWhenVideoHasNoClips(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithSeparation(""))
	store := testsupport.MustOpenStore(t, cfg)
	job := testsupport.NewJob(t, store, "https://www.youtube.com/watch?v=noClips0001", "noClips0001", "")

	handler := separation.New(cfg, store, logging.NewNop(), &fakeSeparator{})
	err := handler.Execute(context.Background(), job)
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestBatchSeparatesDirectoryToOutput(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	for _, name := range []string{"b_000001.wav", "a_000001.wav"} {
		testsupport.WriteClip(t, filepath.Join(inDir, name), 22050, 1, 3000)
	}

	sep := &fakeSeparator{}
	result, err := separation.Batch(context.Background(), sep, logging.NewNop(), inDir, outDir, t.TempDir())
	if err != nil {
		t.Fatalf("Batch: %v", err)
	}
	if result.Separated != 2 || result.Skipped != 0 {
		t.Fatalf("result = %+v, want 2 separated", result)
	}

	want := []string{"a_000001.wav", "b_000001.wav"}
	for i, name := range want {
		if sep.inputs[i] != name {
			t.Fatalf("clip %d = %s, want %s", i, sep.inputs[i], name)
		}
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Fatalf("expected copy in output dir: %v", err)
		}
	}
}

func TestBatchSkipsFailedClips(t *testing.T) {
	inDir := t.TempDir()
	testsupport.WriteClip(t, filepath.Join(inDir, "x_000001.wav"), 22050, 1, 3000)

	sep := &fakeSeparator{fail: errors.New("model load failed")}
	result, err := separation.Batch(context.Background(), sep, logging.NewNop(), inDir, "", t.TempDir())
	if err != nil {
		t.Fatalf("Batch: %v", err)
	}
	if result.Separated != 0 || result.Skipped != 1 {
		t.Fatalf("result = %+v, want 1 skipped", result)
	}
}

func TestBatchRejectsEmptyDirectory(t *testing.T) {
	if _, err := separation.Batch(context.Background(), &fakeSeparator{}, logging.NewNop(), t.TempDir(), "", t.TempDir()); err == nil {
		t.Fatal("expected error for empty input directory")
	}
}

func TestSeparatorWrapsDemucsFailure(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithSeparation(""))
	store := testsupport.MustOpenStore(t, cfg)
	job := testsupport.NewJob(t, store, "https://www.youtube.com/watch?v=demucsFail1", "demucsFail1", "")

	testsupport.WriteClip(t, filepath.Join(cfg.WavsDir(), "demucsFail1_000001.wav"), cfg.Segment.SampleRate, 1, 3000)

	sep := &fakeSeparator{fail: errors.New("model load failed")}
	handler := separation.New(cfg, store, logging.NewNop(), sep)
	err := handler.Execute(context.Background(), job)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("error = %v, want ErrExternalTool", err)
	}
}
