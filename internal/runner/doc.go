// Package runner owns the long-running processing loop: it enforces
// single-instance execution with a lock file, starts the workflow
// manager, and exposes queue administration helpers to the CLI.
package runner
