// Command clipforge builds an LJSpeech-format speech dataset from
// YouTube videos with subtitles: it downloads audio, cuts it into
// caption-aligned clips, optionally separates vocals, cleans the clips,
// and maintains the dataset metadata.
package main
