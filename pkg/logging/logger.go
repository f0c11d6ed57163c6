// Package logging wires zerolog for hostlists.
//
// Pipeline code never holds a logger of its own. It pulls one out of the
// context with FromContext and tags it with the stage, service or path it
// is working on:
//
//	ctx = logging.WithStage(ctx, "restore")
//	logging.FromContext(ctx).Warn().Strs("ids", ids).Msg("Restored source files")
//
// Without a logger in the context the package default is used. It writes
// console lines to a terminal and JSON otherwise, so CI logs stay parseable.
package logging

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var defaultLogger = NewLoggerFromConfig(&Config{
	Level:  os.Getenv("LOG_LEVEL"),
	Format: os.Getenv("LOG_FORMAT"),
})

// Default returns the package logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault replaces the package logger and zerolog's global one.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

// Nop returns a logger that drops everything.
func Nop() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
