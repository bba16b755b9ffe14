package logger

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/ecsfmt/ecslog/core"
)

// EnvFilter is the environment variable Init and TryInit read their
// filter directives from.
const EnvFilter = "ECS_LOG"

var (
	defaultLogger *Logger
	defaultMu     sync.RWMutex
	initialized   bool
)

func init() {
	// ERROR-only to stderr until the application calls Init.
	defaultLogger = NewBuilder().Build()
}

// Default returns the default logger
func Default() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault sets the default logger
func SetDefault(l *Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

// Init installs a default logger configured from the ECS_LOG
// environment variable, writing to stderr. It panics if a logger was
// already installed through Init or TryInit.
func Init() {
	if err := TryInit(); err != nil {
		panic(fmt.Sprintf("logger.Init: %v", err))
	}
}

// TryInit is Init without the panic: it returns an error if a default
// logger was already installed through Init or TryInit.
func TryInit() error {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if initialized {
		return errors.New("default logger already initialized")
	}

	b := NewBuilder()
	if filter, ok := os.LookupEnv(EnvFilter); ok {
		b = b.WithFilter(filter)
	}

	defaultLogger = b.Build()
	initialized = true
	return nil
}

// SetExtraFields stores payload in the default logger's extra-fields
// store. The payload must serialize to a JSON object; on failure the
// store keeps its previous content.
func SetExtraFields(payload interface{}) error {
	return Default().SetExtraFields(payload)
}

// ClearExtraFields empties the default logger's extra-fields store.
func ClearExtraFields() {
	Default().ClearExtraFields()
}

// Package-level convenience functions using the default logger. These
// call the default logger's internal log method directly so the
// reported caller is the user call site, not this file.

// Error logs a message at ERROR level using the default logger
func Error(msg string) {
	l := Default()
	if core.ErrorLevel < l.filter.MinLevel() {
		return
	}
	l.log(core.ErrorLevel, msg)
}

// Warn logs a message at WARN level using the default logger
func Warn(msg string) {
	l := Default()
	if core.WarnLevel < l.filter.MinLevel() {
		return
	}
	l.log(core.WarnLevel, msg)
}

// Info logs a message at INFO level using the default logger
func Info(msg string) {
	l := Default()
	if core.InfoLevel < l.filter.MinLevel() {
		return
	}
	l.log(core.InfoLevel, msg)
}

// Debug logs a message at DEBUG level using the default logger
func Debug(msg string) {
	l := Default()
	if core.DebugLevel < l.filter.MinLevel() {
		return
	}
	l.log(core.DebugLevel, msg)
}

// Trace logs a message at TRACE level using the default logger
func Trace(msg string) {
	l := Default()
	if core.TraceLevel < l.filter.MinLevel() {
		return
	}
	l.log(core.TraceLevel, msg)
}

// Errorf logs a formatted message at ERROR level using the default logger
func Errorf(format string, args ...interface{}) {
	l := Default()
	if core.ErrorLevel < l.filter.MinLevel() {
		return
	}
	l.log(core.ErrorLevel, fmt.Sprintf(format, args...))
}

// Warnf logs a formatted message at WARN level using the default logger
func Warnf(format string, args ...interface{}) {
	l := Default()
	if core.WarnLevel < l.filter.MinLevel() {
		return
	}
	l.log(core.WarnLevel, fmt.Sprintf(format, args...))
}

// Infof logs a formatted message at INFO level using the default logger
func Infof(format string, args ...interface{}) {
	l := Default()
	if core.InfoLevel < l.filter.MinLevel() {
		return
	}
	l.log(core.InfoLevel, fmt.Sprintf(format, args...))
}

// Debugf logs a formatted message at DEBUG level using the default logger
func Debugf(format string, args ...interface{}) {
	l := Default()
	if core.DebugLevel < l.filter.MinLevel() {
		return
	}
	l.log(core.DebugLevel, fmt.Sprintf(format, args...))
}

// Tracef logs a formatted message at TRACE level using the default logger
func Tracef(format string, args ...interface{}) {
	l := Default()
	if core.TraceLevel < l.filter.MinLevel() {
		return
	}
	l.log(core.TraceLevel, fmt.Sprintf(format, args...))
}
