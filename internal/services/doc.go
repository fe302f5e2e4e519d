// Package services hosts clients for the external tools the pipeline
// shells out to, plus shared error classification and context helpers
// used across stage handlers.
package services
