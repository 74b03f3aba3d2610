package cli

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// newLogger builds the console logger used by every command. Logs go to
// stderr so that stdout carries nothing but the rendered artifact.
func newLogger(w io.Writer, verbose, quiet, colored bool) zerolog.Logger {
	level := zerolog.InfoLevel
	switch {
	case quiet:
		level = zerolog.Disabled
	case verbose:
		level = zerolog.DebugLevel
	}
	output := zerolog.ConsoleWriter{Out: w, NoColor: !colored, TimeFormat: time.Kitchen}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}
