// Package logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LevelFor maps a -v count to a zerolog level.
func LevelFor(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// Setup installs a console logger writing to w at the level selected by verbosity.
// Caller information is added from -vv upwards.
func Setup(verbosity int, w io.Writer) {
	zerolog.SetGlobalLevel(LevelFor(verbosity))

	console := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
		NoColor:    !isTerminal(w),
	}
	ctx := zerolog.New(console).With().Timestamp()
	if verbosity >= 2 {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()

	log.Debug().Int("verbosity", verbosity).Msg("Logger initialized")
}

// Get returns a logger tagged with the given component name.
func Get(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
