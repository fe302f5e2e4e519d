package audio

import "math"

// HighPass applies a first-order high-pass filter with the given cutoff
// frequency. Used to cut low-frequency music and rumble below the speech
// band.
func (c *Clip) HighPass(cutoffHz float64) {
	if cutoffHz <= 0 || c.Rate <= 0 || len(c.Samples) == 0 {
		return
	}
	rc := 1.0 / (2 * math.Pi * cutoffHz)
	dt := 1.0 / float64(c.Rate)
	alpha := rc / (rc + dt)

	prevIn := float64(c.Samples[0])
	prevOut := float64(c.Samples[0])
	for i := 1; i < len(c.Samples); i++ {
		in := float64(c.Samples[i])
		out := alpha * (prevOut + in - prevIn)
		prevIn = in
		prevOut = out
		c.Samples[i] = clampSample(out)
	}
}

// LowPass applies a first-order low-pass filter with the given cutoff
// frequency.
func (c *Clip) LowPass(cutoffHz float64) {
	if cutoffHz <= 0 || c.Rate <= 0 || len(c.Samples) == 0 {
		return
	}
	rc := 1.0 / (2 * math.Pi * cutoffHz)
	dt := 1.0 / float64(c.Rate)
	alpha := dt / (rc + dt)

	prev := float64(c.Samples[0])
	for i := 1; i < len(c.Samples); i++ {
		prev += alpha * (float64(c.Samples[i]) - prev)
		c.Samples[i] = clampSample(prev)
	}
}

// BandPass applies the high-pass and low-pass pair the music reduction
// step uses to isolate the speech band.
func (c *Clip) BandPass(highpassHz, lowpassHz float64) {
	c.HighPass(highpassHz)
	c.LowPass(lowpassHz)
}

func clampSample(v float64) int {
	rounded := int(math.Round(v))
	if rounded > maxSampleVal {
		return maxSampleVal
	}
	if rounded < minSampleVal {
		return minSampleVal
	}
	return rounded
}
