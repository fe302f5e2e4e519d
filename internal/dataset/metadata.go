package dataset

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Record is one metadata.csv line: filename|text|normalized_text.
// Filename is stored without the .wav extension, matching the LJSpeech
// convention.
type Record struct {
	Filename   string
	Text       string
	Normalized string
}

// NormalizeText produces the normalized_text column: NFC-normalized with
// runs of whitespace collapsed. YouTube serves Bengali text in mixed
// Unicode normalization, so downstream tools need a canonical form.
func NormalizeText(text string) string {
	return norm.NFC.String(strings.Join(strings.Fields(text), " "))
}

// NewRecord builds a metadata record for a clip file.
func NewRecord(filename, text string) Record {
	return Record{
		Filename:   strings.TrimSuffix(filename, ".wav"),
		Text:       text,
		Normalized: NormalizeText(text),
	}
}

// LoadMetadata reads a metadata.csv file. Malformed lines are skipped and
// counted rather than failing the whole file.
func LoadMetadata(path string) ([]Record, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open metadata: %w", err)
	}
	defer f.Close()

	var records []Record
	skipped := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}
		parts := strings.Split(line, "|")
		if len(parts) < 2 || parts[0] == "" {
			skipped++
			continue
		}
		// Some metadata files carry the .wav extension in the filename
		// column; store the stem either way.
		rec := Record{Filename: strings.TrimSuffix(parts[0], ".wav"), Text: parts[1]}
		if len(parts) >= 3 {
			rec.Normalized = parts[2]
		} else {
			rec.Normalized = NormalizeText(parts[1])
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, skipped, fmt.Errorf("read metadata: %w", err)
	}
	return records, skipped, nil
}

// SaveMetadata writes the full metadata file, replacing any existing one.
func SaveMetadata(path string, records []Record) error {
	return writeLines(path, records, os.O_CREATE|os.O_TRUNC|os.O_WRONLY)
}

// AppendMetadata adds records to an existing metadata file, creating it if
// needed. Stages that process one video at a time append their clips as
// they go.
func AppendMetadata(path string, records []Record) error {
	return writeLines(path, records, os.O_CREATE|os.O_APPEND|os.O_WRONLY)
}

func writeLines(path string, records []Record, flags int) error {
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return fmt.Errorf("open metadata: %w", err)
	}

	w := bufio.NewWriter(f)
	for _, rec := range records {
		fmt.Fprintf(w, "%s|%s|%s\n", rec.Filename, rec.Text, rec.Normalized)
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("write metadata: %w", err)
	}
	return f.Close()
}
