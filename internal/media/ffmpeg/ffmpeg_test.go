package ffmpeg_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"clipforge/internal/media/ffmpeg"
)

func TestAtempoChain(t *testing.T) {
	cases := []struct {
		speed float64
		want  string
	}{
		{0.9, "atempo=0.9"},
		{1.5, "atempo=1.5"},
		{0.5, "atempo=0.5"},
		{0.25, "atempo=0.5,atempo=0.5"},
		{0.4, "atempo=0.5,atempo=0.8"},
		{4, "atempo=2,atempo=2"},
	}
	for _, tc := range cases {
		got, err := ffmpeg.AtempoChain(tc.speed)
		if err != nil {
			t.Fatalf("AtempoChain(%v) failed: %v", tc.speed, err)
		}
		if got != tc.want {
			t.Fatalf("AtempoChain(%v) = %q, want %q", tc.speed, got, tc.want)
		}
	}
}

func TestAtempoChainRejectsNonPositive(t *testing.T) {
	if _, err := ffmpeg.AtempoChain(0); err == nil {
		t.Fatal("expected error for zero speed")
	}
	if _, err := ffmpeg.AtempoChain(-1); err == nil {
		t.Fatal("expected error for negative speed")
	}
}

func TestClientRunsBinary(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "ffmpeg-stub")
	stub := "#!/bin/sh\necho \"$@\" > \"" + filepath.Join(dir, "args.txt") + "\"\n"
	if err := os.WriteFile(script, []byte(stub), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	client := ffmpeg.NewClient(script)
	if err := client.Resample(context.Background(), "in.webm", "out.wav", 22050, 1); err != nil {
		t.Fatalf("Resample failed: %v", err)
	}

	args, err := os.ReadFile(filepath.Join(dir, "args.txt"))
	if err != nil {
		t.Fatalf("read recorded args: %v", err)
	}
	for _, want := range []string{"-ar 22050", "-ac 1", "pcm_s16le", "out.wav"} {
		if !strings.Contains(string(args), want) {
			t.Fatalf("missing %q in args: %s", want, args)
		}
	}
}

func TestClientReportsStderr(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "ffmpeg-stub")
	stub := "#!/bin/sh\necho 'boom' >&2\nexit 1\n"
	if err := os.WriteFile(script, []byte(stub), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	client := ffmpeg.NewClient(script)
	err := client.TimeStretch(context.Background(), "in.wav", "out.wav", 0.9)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Fatalf("stderr not surfaced: %v", err)
	}
}

func TestClientRejectsEmptyPaths(t *testing.T) {
	client := ffmpeg.NewClient("")
	if err := client.Resample(context.Background(), "", "out.wav", 22050, 1); err == nil {
		t.Fatal("expected error for empty input")
	}
	if err := client.TimeStretch(context.Background(), "in.wav", "", 0.9); err == nil {
		t.Fatal("expected error for empty output")
	}
}
