// Package segmenter implements the segmentation stage: cutting the
// fetched audio into caption-aligned dataset clips and recording them in
// the metadata, timing, and mapping files.
package segmenter
