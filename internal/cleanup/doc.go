// Package cleanup implements the final processing stage: trimming
// silence from each clip, applying edge fades, and optionally reducing
// residual music with a band-pass filter and gain lift.
package cleanup
