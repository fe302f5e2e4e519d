package audio

import (
	"math"
	"time"
)

// DBFS returns the RMS level of the samples in decibels relative to full
// scale. An all-zero window returns negative infinity.
func DBFS(samples []int) float64 {
	if len(samples) == 0 {
		return math.Inf(-1)
	}
	var sum float64
	for _, s := range samples {
		v := float64(s)
		sum += v * v
	}
	rms := math.Sqrt(sum / float64(len(samples)))
	if rms == 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(rms/fullScaleInt)
}

// TrimResult reports how much silence TrimSilence removed.
type TrimResult struct {
	Leading  time.Duration
	Trailing time.Duration
}

// TrimSilence removes leading and trailing stretches whose level stays
// below thresholdDB, scanning in chunks of the given size. The clip is
// returned unchanged when it contains no audible chunk at all, so a fully
// silent clip is not reduced to nothing.
func (c *Clip) TrimSilence(thresholdDB float64, chunk time.Duration) (*Clip, TrimResult) {
	chunkSamples := c.sampleIndex(chunk)
	if chunkSamples <= 0 {
		chunkSamples = 1
	}

	leading := leadingSilentSamples(c.Samples, chunkSamples, thresholdDB)
	if leading >= len(c.Samples) {
		return &Clip{Samples: append([]int(nil), c.Samples...), Rate: c.Rate}, TrimResult{}
	}
	trailing := trailingSilentSamples(c.Samples, chunkSamples, thresholdDB)

	trimmed := make([]int, len(c.Samples)-leading-trailing)
	copy(trimmed, c.Samples[leading:len(c.Samples)-trailing])

	return &Clip{Samples: trimmed, Rate: c.Rate}, TrimResult{
		Leading:  c.samplesToDuration(leading),
		Trailing: c.samplesToDuration(trailing),
	}
}

func leadingSilentSamples(samples []int, chunk int, thresholdDB float64) int {
	idx := 0
	for idx < len(samples) {
		end := idx + chunk
		if end > len(samples) {
			end = len(samples)
		}
		if DBFS(samples[idx:end]) >= thresholdDB {
			return idx
		}
		idx = end
	}
	return idx
}

func trailingSilentSamples(samples []int, chunk int, thresholdDB float64) int {
	idx := len(samples)
	for idx > 0 {
		start := idx - chunk
		if start < 0 {
			start = 0
		}
		if DBFS(samples[start:idx]) >= thresholdDB {
			return len(samples) - idx
		}
		idx = start
	}
	return len(samples)
}

func (c *Clip) samplesToDuration(n int) time.Duration {
	if c.Rate <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second / time.Duration(c.Rate)
}

// FadeIn applies a linear volume ramp over the first d of the clip.
// Clips shorter than the fade window are left untouched.
func (c *Clip) FadeIn(d time.Duration) {
	n := c.sampleIndex(d)
	if n <= 0 || n > len(c.Samples) {
		return
	}
	for i := 0; i < n; i++ {
		c.Samples[i] = int(float64(c.Samples[i]) * float64(i) / float64(n))
	}
}

// FadeOut applies a linear volume ramp over the last d of the clip.
// Clips shorter than the fade window are left untouched.
func (c *Clip) FadeOut(d time.Duration) {
	n := c.sampleIndex(d)
	if n <= 0 || n > len(c.Samples) {
		return
	}
	offset := len(c.Samples) - n
	for i := 0; i < n; i++ {
		c.Samples[offset+i] = int(float64(c.Samples[offset+i]) * float64(n-1-i) / float64(n))
	}
}

// Gain scales the clip by db decibels, clamping to the PCM16 range.
func (c *Clip) Gain(db float64) {
	factor := math.Pow(10, db/20)
	for i, s := range c.Samples {
		v := int(math.Round(float64(s) * factor))
		if v > maxSampleVal {
			v = maxSampleVal
		} else if v < minSampleVal {
			v = minSampleVal
		}
		c.Samples[i] = v
	}
}
