package audio

import (
	"errors"
	"fmt"
	"os"
	"time"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	bitDepth     = 16
	maxSampleVal = 32767
	minSampleVal = -32768
	fullScaleInt = 32768
	wavAudioFmt  = 1 // PCM
	monoChannels = 1
)

// Clip is a mono PCM16 audio clip held in memory.
type Clip struct {
	Samples []int
	Rate    int
}

// Load reads a WAV file into a Clip. The file must be a valid mono WAV;
// multi-channel input is rejected so callers notice upstream resampling
// failures instead of silently mixing channels.
func Load(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open wav: %w", err)
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("load %s: not a valid wav file", path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("read pcm: %w", err)
	}
	if buf.Format == nil {
		return nil, errors.New("wav buffer missing format")
	}
	if buf.Format.NumChannels != monoChannels {
		return nil, fmt.Errorf("load %s: expected mono, got %d channels", path, buf.Format.NumChannels)
	}

	return &Clip{Samples: buf.Data, Rate: buf.Format.SampleRate}, nil
}

// Save writes the clip as a PCM16 mono WAV file.
func (c *Clip) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create wav: %w", err)
	}

	encoder := wav.NewEncoder(f, c.Rate, bitDepth, monoChannels, wavAudioFmt)
	buf := &gaudio.IntBuffer{
		Format:         &gaudio.Format{NumChannels: monoChannels, SampleRate: c.Rate},
		Data:           c.Samples,
		SourceBitDepth: bitDepth,
	}
	if err := encoder.Write(buf); err != nil {
		_ = encoder.Close()
		_ = f.Close()
		return fmt.Errorf("write pcm: %w", err)
	}
	if err := encoder.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("finalize wav: %w", err)
	}
	return f.Close()
}

// Duration returns the clip length.
func (c *Clip) Duration() time.Duration {
	if c.Rate <= 0 {
		return 0
	}
	return time.Duration(len(c.Samples)) * time.Second / time.Duration(c.Rate)
}

// Seconds returns the clip length in seconds.
func (c *Clip) Seconds() float64 {
	if c.Rate <= 0 {
		return 0
	}
	return float64(len(c.Samples)) / float64(c.Rate)
}

// Slice returns a copy of the clip between start and end. Bounds are
// clamped to the clip; an empty or inverted window yields an empty clip.
func (c *Clip) Slice(start, end time.Duration) *Clip {
	startIdx := c.sampleIndex(start)
	endIdx := c.sampleIndex(end)
	if startIdx > len(c.Samples) {
		startIdx = len(c.Samples)
	}
	if endIdx > len(c.Samples) {
		endIdx = len(c.Samples)
	}
	if endIdx < startIdx {
		endIdx = startIdx
	}
	out := make([]int, endIdx-startIdx)
	copy(out, c.Samples[startIdx:endIdx])
	return &Clip{Samples: out, Rate: c.Rate}
}

func (c *Clip) sampleIndex(offset time.Duration) int {
	if offset < 0 {
		return 0
	}
	return int(int64(offset) * int64(c.Rate) / int64(time.Second))
}

// Silence returns a clip of silence at the given rate and duration.
func Silence(rate int, d time.Duration) *Clip {
	n := int(int64(d) * int64(rate) / int64(time.Second))
	if n < 0 {
		n = 0
	}
	return &Clip{Samples: make([]int, n), Rate: rate}
}

// Concat joins clips with a pause of silence between each pair. All clips
// must share the first clip's sample rate.
func Concat(pause time.Duration, clips ...*Clip) (*Clip, error) {
	if len(clips) == 0 {
		return nil, errors.New("concat: no clips")
	}
	rate := clips[0].Rate
	gap := Silence(rate, pause)

	total := 0
	for i, clip := range clips {
		if clip.Rate != rate {
			return nil, fmt.Errorf("concat: sample rate mismatch: %d vs %d", clip.Rate, rate)
		}
		total += len(clip.Samples)
		if i > 0 {
			total += len(gap.Samples)
		}
	}

	out := make([]int, 0, total)
	for i, clip := range clips {
		if i > 0 {
			out = append(out, gap.Samples...)
		}
		out = append(out, clip.Samples...)
	}
	return &Clip{Samples: out, Rate: rate}, nil
}
