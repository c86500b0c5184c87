package main

import (
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rustyast/rustyast/errors"
)

// newLogger returns a console logger writing to w at the named level.
func newLogger(w io.Writer, level string, noColor bool) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.Nop(), errors.NewConfigError(errors.E2004, "unknown log level %q", level).
			WithHint("use one of debug, info, warn, error")
	}
	out := zerolog.ConsoleWriter{Out: w, NoColor: noColor || !isTerminal(w), PartsExclude: []string{zerolog.TimestampFieldName}}
	return zerolog.New(out).Level(lvl).With().Str("cmd", "rusty-ast").Logger(), nil
}
