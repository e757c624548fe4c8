// Package log wraps apex/log for the file and directory collaborators.
// Output goes to stderr so it never mixes with rendered rows; the level
// comes from the SIDEDIFF_LOG env variable. The rendering core itself
// never logs.
package log

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/apex/log"
)

// Init installs the stderr handler and the SIDEDIFF_LOG level
// (debug/info/warn/error; default error).
func Init() {
	level := log.ErrorLevel
	switch strings.ToLower(os.Getenv("SIDEDIFF_LOG")) {
	case "debug":
		level = log.DebugLevel
	case "info":
		level = log.InfoLevel
	case "warn":
		level = log.WarnLevel
	case "error", "":
		level = log.ErrorLevel
	}
	log.SetHandler(&stderrHandler{})
	log.SetLevel(level)
}

type stderrHandler struct{}

// HandleLog implements log.Handler.
func (h *stderrHandler) HandleLog(e *log.Entry) error {
	var fields string
	if len(e.Fields) > 0 {
		names := e.Fields.Names()
		sort.Strings(names)
		parts := make([]string, 0, len(names))
		for _, name := range names {
			parts = append(parts, fmt.Sprintf("%s=%v", name, e.Fields.Get(name)))
		}
		fields = " " + strings.Join(parts, " ")
	}
	_, err := fmt.Fprintf(os.Stderr, "sidediff: %s: %s%s\n", e.Level, e.Message, fields)
	return err
}

// Debugf logs at debug level.
func Debugf(format string, args ...any) {
	log.Debugf(format, args...)
}

// Infof logs at info level.
func Infof(format string, args ...any) {
	log.Infof(format, args...)
}

// Warnf logs at warn level.
func Warnf(format string, args ...any) {
	log.Warnf(format, args...)
}

// Errorf logs at error level.
func Errorf(format string, args ...any) {
	log.Errorf(format, args...)
}
