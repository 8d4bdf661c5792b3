// Package logging configures the global zerolog logger for towncrier.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Log is the package-global logger configured by Init.
var Log zerolog.Logger

// Init initializes the global logger. If logFilePath is non-empty, logs are
// written to both stderr and the file. level can be "debug", "info", "warn"
// or "error"; anything else falls back to info. Returns a cleanup func that
// closes the file sink.
func Init(logFilePath, level string) (func(), error) {
	zerolog.SetGlobalLevel(parseLevel(level))

	writers := []io.Writer{os.Stderr}
	var f *os.File
	if logFilePath != "" {
		if err := os.MkdirAll(filepath.Dir(logFilePath), 0o700); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		var err error
		// 0640 keeps log contents out of world-readable reach
		f, err = os.OpenFile(logFilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640)
		if err != nil {
			return nil, err
		}
		writers = append(writers, f)
	}
	Log = zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger()

	return func() {
		if f != nil {
			_ = f.Close()
		}
	}, nil
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Get returns a pointer to the package-global logger.
func Get() *zerolog.Logger {
	return &Log
}
