package ffprobe

import (
	"context"
	"testing"
)

func TestResultHelpers(t *testing.T) {
	result := Result{
		Streams: []Stream{
			{Index: 0, CodecType: "video", CodecName: "h264"},
			{Index: 1, CodecType: "Audio", CodecName: "opus", SampleRate: "48000", Channels: 2},
			{Index: 2, CodecType: "audio", CodecName: "aac"},
		},
		Format: Format{Duration: "12.5", Size: "1024"},
	}

	stream, ok := result.FirstAudioStream()
	if !ok || stream.CodecName != "opus" {
		t.Fatalf("FirstAudioStream = %+v ok=%v", stream, ok)
	}
	if got := result.AudioStreamCount(); got != 2 {
		t.Fatalf("AudioStreamCount = %d, want 2", got)
	}
	if got := result.DurationSeconds(); got != 12.5 {
		t.Fatalf("DurationSeconds = %v", got)
	}
	if got := result.SizeBytes(); got != 1024 {
		t.Fatalf("SizeBytes = %d", got)
	}
	if got := stream.SampleRateHz(); got != 48000 {
		t.Fatalf("SampleRateHz = %d", got)
	}
}

func TestResultHelpersMissingFields(t *testing.T) {
	var result Result
	if _, ok := result.FirstAudioStream(); ok {
		t.Fatal("expected no audio stream")
	}
	if got := result.DurationSeconds(); got != 0 {
		t.Fatalf("DurationSeconds = %v, want 0", got)
	}
	if got := result.SizeBytes(); got != 0 {
		t.Fatalf("SizeBytes = %d, want 0", got)
	}
	if got := (Stream{SampleRate: "garbage"}).SampleRateHz(); got != 0 {
		t.Fatalf("SampleRateHz = %d, want 0", got)
	}
}

func TestInspectRejectsEmptyPath(t *testing.T) {
	if _, err := Inspect(context.Background(), "", ""); err == nil {
		t.Fatal("expected error for empty path")
	}
}
