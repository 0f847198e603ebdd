// Package logging provides the leveled logger shared by the vaultview
// backend and the vaultctl command line tool.
//
// Levels, from most to least verbose:
//   - DEBUG: per-node renames, cache hits and decoder command lines
//   - INFO: startup, shutdown and completed tree walks
//   - WARN: swallowed cache write failures and aborted walks
//   - ERROR: failures returned to a caller
//
// The level is read once from DEBUG or LOG_LEVEL. SetLevel overrides it,
// which is how settings.toml and the CLI --verbose flag take effect.
package logging
