// Package language normalizes subtitle language codes.
//
// yt-dlp accepts ISO 639-1 codes but users configure languages in several
// forms ("bn", "ben", "bengali"). Everything language-related funnels
// through here so the downloader, the metadata rebuild, and the CLI agree
// on a single canonical form.
package language
