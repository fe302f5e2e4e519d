// Package subtitle parses the json3 caption tracks yt-dlp downloads and
// locates the preferred subtitle file for a video.
package subtitle
