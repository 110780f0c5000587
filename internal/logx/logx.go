// Package logx builds the host zerolog logger.
package logx

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// EnvVar selects the output format. "production" logs JSON; anything
// else logs through a console writer.
const EnvVar = "NEO_ENV"

// New returns a logger writing to w at level. An empty level means info.
func New(w io.Writer, level string) (zerolog.Logger, error) {
	lvl := zerolog.InfoLevel
	if level != "" {
		var err error
		lvl, err = zerolog.ParseLevel(level)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("logx: %w", err)
		}
	}
	if os.Getenv(EnvVar) != "production" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}
