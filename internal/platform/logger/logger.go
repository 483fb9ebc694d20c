// Package logger provides structured logging functionality for the application
// using Go's standard library log/slog package.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/openbank/openbank-api/internal/config"
)

// RedactedValue replaces the value of any attribute whose key is sensitive.
const RedactedValue = "[REDACTED]"

var sensitiveKeys = map[string]struct{}{
	"password":        {},
	"hashedpassword":  {},
	"hashed_password": {},
	"accesstoken":     {},
	"access_token":    {},
	"token":           {},
	"secret":          {},
	"jwtsecret":       {},
	"jwt_secret":      {},
	"authorization":   {},
}

// Setup initializes and configures the application's logging system based on
// the provided configuration. It creates a structured JSON logger on stdout with
// the configured level and sets it as the default logger for the application.
func Setup(cfg config.ServerConfig) (*slog.Logger, error) {
	level, ok := ParseLevel(cfg.LogLevel)
	if !ok {
		tmpLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		tmpLogger.Warn("invalid log level configured, using default level",
			"configured_level", cfg.LogLevel,
			"default_level", "info")
	}

	logger := New(os.Stdout, level)
	slog.SetDefault(logger)

	return logger, nil
}

// New returns a JSON logger writing to w at the given level. Values of
// sensitive keys (passwords, tokens, secrets) are replaced with RedactedValue.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: redactSensitive,
	}))
}

// ParseLevel maps a case-insensitive level name onto a slog.Level.
// Unknown names yield slog.LevelInfo and false.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

func redactSensitive(_ []string, a slog.Attr) slog.Attr {
	if isSensitiveKey(a.Key) {
		return slog.String(a.Key, RedactedValue)
	}
	return a
}

func isSensitiveKey(key string) bool {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(key), "-", ""))
	_, ok := sensitiveKeys[normalized]
	return ok
}
