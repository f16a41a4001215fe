package sysutil

import (
	"strings"

	"github.com/rs/zerolog"
)

// parseLevel maps a config string to a zerolog level. Unknown or empty input
// falls back to info so a typo in LOG_LEVEL never silences the logs.
// Supported values (case-insensitive): debug, info, warn[ing], error, fatal, panic.
func ParseLevel(lvl string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	default:
		return zerolog.InfoLevel
	}
}

// setLogLevel configures the global zerolog level from a config string.
func SetLogLevel(lvl string) {
	zerolog.SetGlobalLevel(ParseLevel(lvl))
}

// isTruthy reports whether an environment variable string should be considered true.
// Accepted values (case-insensitive): "1", "true", "yes", "y", "on".
func IsTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}

// firstNonEmpty returns the first value that is not blank, or "" when all are.
// Used to accept alternate env variable names (BOT_TOKEN vs TELEGRAM_BOT_TOKEN).
func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
