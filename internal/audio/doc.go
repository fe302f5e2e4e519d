// Package audio provides sample-level operations on mono PCM16 WAV clips:
// loading, saving, slicing, silence trimming, fades, gain, and
// concatenation. All operations assume the 22050 Hz mono format the
// pipeline standardizes on after download.
package audio
