package ytdlp_test

import (
	"context"
	"strings"
	"testing"

	"clipforge/internal/services/ytdlp"
)

func TestVideoID(t *testing.T) {
	cases := []struct {
		url  string
		want string
		ok   bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/watch?v=abc123&list=PL1", "abc123", true},
		{"https://youtu.be/abc123?t=10", "abc123", true},
		{"https://www.youtube.com/@somechannel", "", false},
		{"https://www.youtube.com/playlist?list=PL1", "", false},
	}
	for _, tc := range cases {
		got, ok := ytdlp.VideoID(tc.url)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("VideoID(%q) = %q, %v; want %q, %v", tc.url, got, ok, tc.want, tc.ok)
		}
	}
}

func TestListVideosSingleURL(t *testing.T) {
	client := ytdlp.NewClient("", "", "", []string{"bn"})
	client.WithCommandRunner(func(ctx context.Context, name string, args ...string) ([]byte, error) {
		t.Fatal("single video URLs must not shell out")
		return nil, nil
	})

	videos, err := client.ListVideos(context.Background(), "https://youtu.be/abc123", 0)
	if err != nil {
		t.Fatalf("ListVideos failed: %v", err)
	}
	if len(videos) != 1 || videos[0].ID != "abc123" {
		t.Fatalf("unexpected videos: %+v", videos)
	}
	if videos[0].URL() != "https://www.youtube.com/watch?v=abc123" {
		t.Fatalf("unexpected URL: %q", videos[0].URL())
	}
}

func TestListVideosParsesFlatPlaylist(t *testing.T) {
	output := `{"id": "vid1", "title": "প্রথম ভিডিও"}
warning: something harmless
{"id": "vid2", "title": "দ্বিতীয় ভিডিও"}
{"id": "vid3", "title": "তৃতীয় ভিডিও"}
`
	var gotArgs []string
	client := ytdlp.NewClient("yt-dlp", "firefox", "", []string{"bn"})
	client.WithCommandRunner(func(ctx context.Context, name string, args ...string) ([]byte, error) {
		gotArgs = args
		return []byte(output), nil
	})

	videos, err := client.ListVideos(context.Background(), "https://www.youtube.com/@channel", 2)
	if err != nil {
		t.Fatalf("ListVideos failed: %v", err)
	}
	if len(videos) != 2 {
		t.Fatalf("max videos not honored: %+v", videos)
	}
	if videos[0].Title != "প্রথম ভিডিও" {
		t.Fatalf("title not parsed: %+v", videos[0])
	}

	joined := strings.Join(gotArgs, " ")
	if !strings.Contains(joined, "--flat-playlist") || !strings.Contains(joined, "--dump-json") {
		t.Fatalf("unexpected args: %v", gotArgs)
	}
	if !strings.Contains(joined, "--cookies-from-browser firefox") {
		t.Fatalf("browser cookies not passed: %v", gotArgs)
	}
}

func TestDownloadAudioAndSubs(t *testing.T) {
	var gotArgs []string
	client := ytdlp.NewClient("yt-dlp", "", "/tmp/cookies.txt", []string{"bn", "bn-IN", "en"})
	client.WithCommandRunner(func(ctx context.Context, name string, args ...string) ([]byte, error) {
		gotArgs = args
		return nil, nil
	})

	path, err := client.DownloadAudioAndSubs(context.Background(), "https://youtu.be/vid1", "vid1", "/data/raw")
	if err != nil {
		t.Fatalf("DownloadAudioAndSubs failed: %v", err)
	}
	if path != "/data/raw/vid1.wav" {
		t.Fatalf("unexpected output path: %q", path)
	}

	joined := strings.Join(gotArgs, " ")
	for _, want := range []string{
		"--cookies /tmp/cookies.txt",
		"--audio-format wav",
		"--sub-langs bn,bn-IN,en",
		"--sub-format json3",
		"--write-auto-subs",
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("missing %q in args: %v", want, gotArgs)
		}
	}
}
