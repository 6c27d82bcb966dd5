// Package logging provides structured logging for the reminder coordinators.
package logging

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	// global logger instance
	global *logrus.Logger
	once   sync.Once
)

// Init initializes the global logger. Subsequent calls are no-ops.
func Init(out io.Writer, level logrus.Level) {
	once.Do(func() {
		global = logrus.New()
		global.SetOutput(out)
		global.SetLevel(level)
		global.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	})
}

// Get returns the global logger instance, initializing it with defaults
// (stdout, info level) if Init was never called.
func Get() *logrus.Logger {
	if global == nil {
		Init(os.Stdout, logrus.InfoLevel)
	}
	return global
}

// WithComponent returns an entry tagged with the originating component,
// e.g. "notify.lifecycle" or "workflow.account_deletion".
func WithComponent(name string) *logrus.Entry {
	return Get().WithField("component", name)
}
