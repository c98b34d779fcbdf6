// Package log provides the logging interface used throughout the
// emulator, backed by logrus.
package log

import (
	"github.com/sirupsen/logrus"
)

// Logger is the logging interface that components of the emulator
// write to. A *logrus.Logger satisfies it.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// New returns a Logger that writes plain text at the info level.
func New() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.InfoLevel)
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	}
	return l
}

// NewWithLevel returns a Logger as New, set to the named level
// (e.g. "debug", "warn"). An unknown level name is returned as an error.
func NewWithLevel(level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	l := New()
	l.SetLevel(lvl)
	return l, nil
}
