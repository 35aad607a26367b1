// Package config loads, normalizes, and validates the TOML configuration
// file. Loading always starts from repository defaults, then applies the
// file on top, then environment overrides for secrets, so a missing file
// still yields a usable configuration for read-only commands.
package config
