package config

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"debrid-streamer/internal/logx"
)

// SetupLogging wires the global zerolog logger through the logx
// filter/de-dup writer. LOG_FILE (if set) is appended to in addition
// to stdout.
func SetupLogging() {
	var out io.Writer = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	if p := LogFilePath(); p != "" {
		f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Warn().Err(err).Str("path", p).Msg("opening LOG_FILE, logging to stdout only")
		} else {
			out = zerolog.ConsoleWriter{Out: io.MultiWriter(os.Stdout, f), TimeFormat: time.RFC3339, NoColor: true}
		}
	}

	level, err := zerolog.ParseLevel(LogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}

	filtered := logx.New(out, LogDedupWindow(), LogAllowRegex(), LogDenyRegex())
	log.Logger = zerolog.New(filtered).Level(level).With().Timestamp().Logger()

	log.Info().
		Stringer("dedup", LogDedupWindow()).
		Str("allow", LogAllowRegex()).
		Str("deny", LogDenyRegex()).
		Msg("logging configured")
}
