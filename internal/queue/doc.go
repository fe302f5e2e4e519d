// Package queue persists per-video pipeline jobs in SQLite and exposes
// the status lifecycle the workflow manager drives them through.
package queue
