// Package logger is the process-wide logger used by the CLI and the preview
// server. Debug output only appears with --verbose.
package logger

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// Fields is an alias so callers do not import logrus directly.
type Fields = logrus.Fields

var (
	mu  sync.RWMutex
	log = newLogger(os.Stderr)
)

func newLogger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    true,
	})
	return l
}

// SetVerbose toggles debug output.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	if v {
		log.SetLevel(logrus.DebugLevel)
		return
	}
	log.SetLevel(logrus.InfoLevel)
}

// IsVerbose reports whether debug output is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return log.IsLevelEnabled(logrus.DebugLevel)
}

// SetOutput redirects log output. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	log.SetOutput(w)
}

// SetJSON switches to the JSON formatter, used by the server when its output
// is collected by another process.
func SetJSON(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	if enabled {
		log.SetFormatter(&logrus.JSONFormatter{DisableTimestamp: true})
		return
	}
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})
}

// Logger returns the underlying logrus logger.
func Logger() *logrus.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// WithFields returns an entry carrying structured fields.
func WithFields(fields Fields) *logrus.Entry {
	return Logger().WithFields(fields)
}

func Debug(format string, args ...any) { Logger().Debugf(format, args...) }

func Info(format string, args ...any) { Logger().Infof(format, args...) }

func Warn(format string, args ...any) { Logger().Warnf(format, args...) }

func Error(format string, args ...any) { Logger().Errorf(format, args...) }

// Section marks the start of a pipeline stage in verbose output.
func Section(name string) {
	Logger().WithField("section", name).Debug("===")
}
