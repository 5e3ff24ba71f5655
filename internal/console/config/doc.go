// Package config loads console settings from defaults, an optional JSON
// file, environment variables, and command-line flags, in that order of
// increasing precedence.
package config
