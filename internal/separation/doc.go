// Package separation implements the vocal separation stage: running
// Demucs over each of a video's clips and keeping only the vocal stem.
package separation
