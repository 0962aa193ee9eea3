package cli

import (
	"io"
	"strings"

	"github.com/phuslu/log"
)

// setupLogging routes the default logger to w in console format.
func setupLogging(level string, w io.Writer) {
	log.DefaultLogger = log.Logger{
		Level:      log.ParseLevel(strings.ToLower(level)),
		TimeFormat: "15:04:05",
		Writer: &log.ConsoleWriter{
			Writer:      w,
			ColorOutput: false,
		},
	}
}
