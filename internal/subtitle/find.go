package subtitle

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound indicates no subtitle track exists for a video in any of the
// requested languages.
var ErrNotFound = errors.New("no subtitle file found")

// Find locates the json3 subtitle file for a video, trying languages in
// preference order. It returns the path and the matched language.
func Find(rawDir, videoID string, languages []string) (string, string, error) {
	for _, lang := range languages {
		path := filepath.Join(rawDir, fmt.Sprintf("%s.%s.json3", videoID, lang))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, lang, nil
		}
	}
	return "", "", fmt.Errorf("%w for %s (languages %v)", ErrNotFound, videoID, languages)
}
