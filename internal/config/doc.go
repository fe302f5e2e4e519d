// Package config loads, normalizes, and validates clipforge configuration
// from TOML, providing defaults suitable for running without a config file.
package config
