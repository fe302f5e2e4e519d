package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"clipforge/internal/audio"
)

// WriteClip writes a mono 16-bit WAV of the given duration filled with a
// constant non-zero sample value.
func WriteClip(t testing.TB, path string, rate int, seconds float64, value int) {
	t.Helper()

	n := int(seconds * float64(rate))
	if n <= 0 {
		n = 1
	}
	samples := make([]int, n)
	for i := range samples {
		samples[i] = value
	}
	clip := &audio.Clip{Samples: samples, Rate: rate}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := clip.Save(path); err != nil {
		t.Fatalf("save %s: %v", path, err)
	}
}

// CaptionFixture describes one caption event for WriteJSON3.
type CaptionFixture struct {
	Text    string
	StartMs int64
	DurMs   int64
}

// WriteJSON3 writes a json3 subtitle fixture with the given caption events.
func WriteJSON3(t testing.TB, path string, captions []CaptionFixture) {
	t.Helper()

	var events []string
	for _, c := range captions {
		events = append(events, fmt.Sprintf(
			`{"tStartMs":%d,"dDurationMs":%d,"segs":[{"utf8":%q}]}`,
			c.StartMs, c.DurMs, c.Text))
	}
	payload := `{"events":[` + strings.Join(events, ",") + `]}`
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
