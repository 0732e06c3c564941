package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New arma el logger zerolog del proceso.
// - level: debug|info|warn|error (default info)
// - format: console|json (default json)
func New(level, format, app string) zerolog.Logger {
	lvl := parseLevel(level)

	var log zerolog.Logger
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "console":
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout})
	default:
		log = zerolog.New(os.Stdout)
	}

	ctx := log.Level(lvl).With().Timestamp()
	if app = strings.TrimSpace(app); app != "" {
		ctx = ctx.Str("app", app)
	}
	return ctx.Logger()
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
