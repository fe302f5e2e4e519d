package subtitle_test

import (
	"os"
	"path/filepath"
	"testing"

	"clipforge/internal/language"
	"clipforge/internal/subtitle"
)

const sampleJSON3 = `{
  "events": [
    {"tStartMs": 2500, "dDurationMs": 1800, "segs": [{"utf8": "আমি "}, {"utf8": "ভালো আছি"}]},
    {"tStartMs": 0, "dDurationMs": 2000, "segs": [{"utf8": "নমস্কার"}]},
    {"tStartMs": 5000, "dDurationMs": 1000},
    {"tStartMs": 6000, "dDurationMs": 500, "segs": [{"utf8": "\n"}]},
    {"tStartMs": 7000, "dDurationMs": 1200, "segs": [{"utf8": "ধন্যবাদ\nসবাইকে"}]}
  ]
}`

func TestParseJSON3SortsAndCleans(t *testing.T) {
	captions, err := subtitle.ParseJSON3([]byte(sampleJSON3))
	if err != nil {
		t.Fatalf("ParseJSON3 failed: %v", err)
	}
	if len(captions) != 3 {
		t.Fatalf("expected 3 captions, got %d", len(captions))
	}
	if captions[0].Text != "নমস্কার" || captions[0].Start != 0 {
		t.Fatalf("unexpected first caption: %+v", captions[0])
	}
	if captions[1].Start != 2.5 || captions[1].Duration != 1.8 {
		t.Fatalf("unexpected timing: %+v", captions[1])
	}
	if captions[1].Text != "আমি ভালো আছি" {
		t.Fatalf("segments not joined: %q", captions[1].Text)
	}
	if captions[2].Text != "ধন্যবাদ সবাইকে" {
		t.Fatalf("newline not flattened: %q", captions[2].Text)
	}
	if got := captions[2].End(); got != 8.2 {
		t.Fatalf("unexpected end time: %v", got)
	}
}

func TestParseJSON3RejectsGarbage(t *testing.T) {
	if _, err := subtitle.ParseJSON3([]byte("not json")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestCleanText(t *testing.T) {
	cases := map[string]string{
		"  hello \n world  ": "hello world",
		"a\tb":               "a b",
		"\n":                 "",
		"":                   "",
	}
	for in, want := range cases {
		if got := subtitle.CleanText(in); got != want {
			t.Fatalf("CleanText(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFindHonorsLanguagePreference(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"vid1.en.json3", "vid1.bn.json3"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}

	path, lang, err := subtitle.Find(dir, "vid1", []string{"bn", "bn-IN", "en"})
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if lang != "bn" {
		t.Fatalf("expected bn to win, got %q", lang)
	}
	if filepath.Base(path) != "vid1.bn.json3" {
		t.Fatalf("unexpected path: %q", path)
	}

	if _, _, err := subtitle.Find(dir, "vid2", []string{"bn"}); err == nil {
		t.Fatal("expected ErrNotFound for missing video")
	}
}

func TestFindMatchesRegionTaggedTrack(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "vid1.bn-IN.json3"), []byte("{}"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	languages := language.NormalizeList([]string{"bn", "bn-IN", "en"})
	path, lang, err := subtitle.Find(dir, "vid1", languages)
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if lang != "bn-IN" {
		t.Fatalf("expected bn-IN to match, got %q", lang)
	}
	if filepath.Base(path) != "vid1.bn-IN.json3" {
		t.Fatalf("unexpected path: %q", path)
	}
}

func TestWriteTranscript(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "transcript.txt")
	captions := []subtitle.Caption{
		{Text: "প্রথম লাইন"},
		{Text: "দ্বিতীয় লাইন"},
	}
	if err := subtitle.WriteTranscript(path, captions); err != nil {
		t.Fatalf("WriteTranscript failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read transcript: %v", err)
	}
	if string(data) != "প্রথম লাইন\nদ্বিতীয় লাইন\n" {
		t.Fatalf("unexpected transcript: %q", data)
	}
}
