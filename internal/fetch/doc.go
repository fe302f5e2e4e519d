// Package fetch implements the download stage: yt-dlp audio and subtitle
// retrieval, caption parsing, transcript writing, and resampling to the
// dataset format.
package fetch
