// Package logging builds slog loggers for clipforge with console and JSON
// output formats plus shared attribute helpers used across the pipeline.
package logging
