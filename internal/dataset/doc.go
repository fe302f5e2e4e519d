// Package dataset manages the LJSpeech-style on-disk layout: the
// metadata.csv index, per-video timing and mapping files, clip
// combination, time stretching, verification, and metadata rebuild.
package dataset
