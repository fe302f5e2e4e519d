// Package segment turns a caption track and its source audio into
// individual dataset clips. Planning is pure interval arithmetic over the
// captions; cutting slices the resampled source WAV and writes one file
// per planned span.
package segment
