// Package preflight provides readiness checks for the external binaries
// and filesystem paths the pipeline depends on.
//
// The run command calls RunAll before starting the workflow so a missing
// yt-dlp or unwritable dataset directory surfaces immediately instead of
// hours into a download session. The CLI also reuses the individual
// checks for status output.
package preflight
