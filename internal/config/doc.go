// Package config loads, normalizes, and validates squeeze configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files from an explicit path, the user config
// directory, or the working directory. The Config type centralizes the codec
// choices, profile ceilings, display preferences, and logging knobs the CLI
// needs so the encoding packages never consult globals.
package config
