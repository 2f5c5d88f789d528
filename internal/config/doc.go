// Package config loads, normalizes, and validates whisperbatch configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the WHISPERBATCH_NTFY_TOPIC
// environment fallback. Command-line flags are applied on top of the loaded
// Config by the CLI.
package config
