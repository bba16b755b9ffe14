package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/ecsfmt/ecslog/core"
	"github.com/ecsfmt/ecslog/extrafields"
	"github.com/ecsfmt/ecslog/formatter"
)

// syncWriter serializes writes to the underlying sink so that lines
// from concurrent log calls never interleave.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (sw *syncWriter) Write(p []byte) (int, error) {
	sw.mu.Lock()
	n, err := sw.w.Write(p)
	sw.mu.Unlock()
	return n, err
}

// Logger is the main logging interface (immutable). Derived loggers
// from WithTarget share the same writer and extra-fields store.
type Logger struct {
	out           *syncWriter
	formatter     *formatter.ECSFormatter
	filter        Filter
	extra         *extrafields.Store
	includeCaller bool
	callerSkip    int
	target        string
}

// Builder provides a fluent API for building Logger instances
type Builder struct {
	filter     string
	hasFilter  bool
	writer     io.Writer
	extra      *extrafields.Store
	caller     bool
	callerSkip int
}

// NewBuilder creates a new logger builder. Defaults match the package
// contract: "error" filter, stderr writer, caller capture on, and a
// fresh extra-fields store.
func NewBuilder() *Builder {
	return &Builder{
		writer:     os.Stderr,
		caller:     true,
		callerSkip: 2, // Default skip for the level-method call path
	}
}

// WithFilter sets the filter directives (see ParseFilter)
func (b *Builder) WithFilter(spec string) *Builder {
	b.filter = spec
	b.hasFilter = true
	return b
}

// WithWriter sets the sink the formatted lines are written to
func (b *Builder) WithWriter(w io.Writer) *Builder {
	b.writer = w
	return b
}

// WriterStdout directs output to standard output
func (b *Builder) WriterStdout() *Builder {
	return b.WithWriter(os.Stdout)
}

// WriterStderr directs output to standard error (the default)
func (b *Builder) WriterStderr() *Builder {
	return b.WithWriter(os.Stderr)
}

// WithExtraFields sets the store whose payload is merged into every line
func (b *Builder) WithExtraFields(store *extrafields.Store) *Builder {
	b.extra = store
	return b
}

// WithCaller enables or disables caller capture
func (b *Builder) WithCaller(enabled bool) *Builder {
	b.caller = enabled
	return b
}

// WithCallerSkip adjusts the number of stack frames skipped when
// capturing the caller, for wrappers that add their own frames.
func (b *Builder) WithCallerSkip(skip int) *Builder {
	b.callerSkip = skip
	return b
}

// Build creates the Logger instance
func (b *Builder) Build() *Logger {
	filter := "error"
	if b.hasFilter {
		filter = b.filter
	}
	extra := b.extra
	if extra == nil {
		extra = extrafields.NewStore()
	}
	return &Logger{
		out:           &syncWriter{w: b.writer},
		formatter:     formatter.NewECSFormatter(formatter.Config{ExtraFields: extra}),
		filter:        ParseFilter(filter),
		extra:         extra,
		includeCaller: b.caller,
		callerSkip:    b.callerSkip,
	}
}

// WithTarget returns a Logger that records the given target instead of
// the one derived from the call site's package path.
func (l *Logger) WithTarget(target string) *Logger {
	clone := *l
	clone.target = target
	return &clone
}

// ExtraFields returns the logger's extra-fields store.
func (l *Logger) ExtraFields() *extrafields.Store {
	return l.extra
}

// SetExtraFields stores payload in the logger's extra-fields store; it
// is merged into every subsequent line until replaced or cleared. The
// payload must serialize to a JSON object.
func (l *Logger) SetExtraFields(payload interface{}) error {
	return l.extra.Set(payload)
}

// ClearExtraFields empties the logger's extra-fields store.
func (l *Logger) ClearExtraFields() {
	l.extra.Clear()
}

// Emit formats and writes one already-built record, returning any sink
// write failure. It is the integration point for external facades that
// capture their own metadata. The record is only borrowed; the caller
// keeps ownership.
func (l *Logger) Emit(record *core.Record) error {
	if !l.filter.Enabled(record.Level, record.Target) {
		return nil
	}
	return l.formatter.FormatTo(record, l.out)
}

// log builds a record for msg and emits it.
func (l *Logger) log(level core.Level, msg string) {
	record := core.GetRecord()
	record.Level = level
	record.Message = msg
	record.Target = l.target

	if l.includeCaller {
		record.Caller(l.callerSkip)
	}

	if l.filter.Enabled(level, record.Target) {
		// A failed write drops this line only; nothing to recover.
		_ = l.formatter.FormatTo(record, l.out)
	}

	core.PutRecord(record)
}

// Error logs a message at ERROR level
func (l *Logger) Error(msg string) {
	if core.ErrorLevel < l.filter.MinLevel() {
		return
	}
	l.log(core.ErrorLevel, msg)
}

// Warn logs a message at WARN level
func (l *Logger) Warn(msg string) {
	if core.WarnLevel < l.filter.MinLevel() {
		return
	}
	l.log(core.WarnLevel, msg)
}

// Info logs a message at INFO level
func (l *Logger) Info(msg string) {
	if core.InfoLevel < l.filter.MinLevel() {
		return
	}
	l.log(core.InfoLevel, msg)
}

// Debug logs a message at DEBUG level
func (l *Logger) Debug(msg string) {
	if core.DebugLevel < l.filter.MinLevel() {
		return
	}
	l.log(core.DebugLevel, msg)
}

// Trace logs a message at TRACE level
func (l *Logger) Trace(msg string) {
	if core.TraceLevel < l.filter.MinLevel() {
		return
	}
	l.log(core.TraceLevel, msg)
}

// Errorf logs a formatted message at ERROR level
func (l *Logger) Errorf(format string, args ...interface{}) {
	if core.ErrorLevel < l.filter.MinLevel() {
		return
	}
	l.log(core.ErrorLevel, fmt.Sprintf(format, args...))
}

// Warnf logs a formatted message at WARN level
func (l *Logger) Warnf(format string, args ...interface{}) {
	if core.WarnLevel < l.filter.MinLevel() {
		return
	}
	l.log(core.WarnLevel, fmt.Sprintf(format, args...))
}

// Infof logs a formatted message at INFO level
func (l *Logger) Infof(format string, args ...interface{}) {
	if core.InfoLevel < l.filter.MinLevel() {
		return
	}
	l.log(core.InfoLevel, fmt.Sprintf(format, args...))
}

// Debugf logs a formatted message at DEBUG level
func (l *Logger) Debugf(format string, args ...interface{}) {
	if core.DebugLevel < l.filter.MinLevel() {
		return
	}
	l.log(core.DebugLevel, fmt.Sprintf(format, args...))
}

// Tracef logs a formatted message at TRACE level
func (l *Logger) Tracef(format string, args ...interface{}) {
	if core.TraceLevel < l.filter.MinLevel() {
		return
	}
	l.log(core.TraceLevel, fmt.Sprintf(format, args...))
}
