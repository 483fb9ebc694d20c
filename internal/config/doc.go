// Package config loads and validates application settings. Values come from
// built-in defaults, an optional config.yaml, and OPENBANK_-prefixed
// environment variables, in increasing order of precedence.
package config
