// Package logging builds the CLI logger.
package logging

import (
	"io"
	"strings"

	"github.com/phuslu/log"
)

// New returns a console logger writing to w at the given level.
// Unknown levels fall back to info.
func New(level string, w io.Writer) log.Logger {
	var lvl log.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		lvl = log.DebugLevel
	case "warn":
		lvl = log.WarnLevel
	case "error":
		lvl = log.ErrorLevel
	default:
		lvl = log.InfoLevel
	}
	return log.Logger{
		Level:      lvl,
		TimeFormat: "15:04:05",
		Writer: &log.ConsoleWriter{
			Writer:         w,
			EndWithMessage: true,
		},
	}
}

// Install makes l the package-level logger used by library code.
func Install(l log.Logger) {
	log.DefaultLogger = l
}
