package logging

import (
	"sync"

	"github.com/pion/logging"
)

var (
	loggerFactory = logging.NewDefaultLoggerFactory()

	mu      sync.Mutex
	loggers []*logging.DefaultLeveledLogger
)

// NewLogger returns a leveled logger for scope. Loggers created here follow
// later SetLevel calls.
func NewLogger(scope string) logging.LeveledLogger {
	l := loggerFactory.NewLogger(scope)

	if dl, ok := l.(*logging.DefaultLeveledLogger); ok {
		mu.Lock()
		loggers = append(loggers, dl)
		mu.Unlock()
	}

	return l
}

// SetLevel changes the level of every logger handed out so far and of the
// ones created afterwards.
func SetLevel(level logging.LogLevel) {
	mu.Lock()
	defer mu.Unlock()

	loggerFactory.DefaultLogLevel = level
	for _, l := range loggers {
		l.SetLevel(level)
	}
}
