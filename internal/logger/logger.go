package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns the service-wide structured logger. Console output is
// human-readable; pipe-friendly JSON needs NewWithWriter.
func New(service string) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).With().Timestamp().Str("service", service).Logger()
}

func NewWithWriter(service string, w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Str("service", service).Logger()
}
