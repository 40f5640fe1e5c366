package logger

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// New builds a zerolog logger writing to out. format is "console" or "json".
func New(level, format string, out io.Writer) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var w io.Writer
	switch format {
	case "json":
		w = out
	case "console", "":
		w = zerolog.ConsoleWriter{Out: out, NoColor: true}
	default:
		return zerolog.Nop(), fmt.Errorf("invalid log format %q", format)
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}
