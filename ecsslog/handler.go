// Package ecsslog adapts log/slog to ecslog: a slog.Handler that
// renders every record as one ECS JSON line. This allows slog-based
// code to share a sink, filter, and extra-fields store with the rest
// of the process:
//
//	log := logger.NewBuilder().WithFilter("info").Build()
//	slog.SetDefault(slog.New(ecsslog.NewHandler(log, slog.LevelInfo)))
package ecsslog

import (
	"context"
	"log/slog"
	"time"

	"github.com/ecsfmt/ecslog/core"
	"github.com/ecsfmt/ecslog/logger"
)

// Handler is a slog.Handler that emits ECS JSON lines through a Logger.
type Handler struct {
	logger *logger.Logger
	level  slog.Leveler
	attrs  []core.Field
	group  string
}

// NewHandler creates a slog.Handler adapter writing through l. Records
// below level are rejected before any conversion work.
func NewHandler(l *logger.Logger, level slog.Leveler) *Handler {
	return &Handler{
		logger: l,
		level:  level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle converts a slog.Record into an ECS record and emits it.
func (h *Handler) Handle(_ context.Context, record slog.Record) error {
	rec := core.GetRecord()
	defer core.PutRecord(rec)

	if !record.Time.IsZero() {
		rec.Time = record.Time
	} else {
		rec.Time = time.Now()
	}
	rec.Level = slogLevelToCore(record.Level)
	rec.Message = record.Message
	rec.CallerPC(record.PC)

	// Pre-configured attrs first, then the record's own.
	if len(h.attrs) > 0 {
		rec.Fields = append(rec.Fields, h.attrs...)
	}
	record.Attrs(func(a slog.Attr) bool {
		rec.Fields = appendAttr(rec.Fields, h.group, a)
		return true
	})

	return h.logger.Emit(rec)
}

// WithAttrs returns a new Handler with additional attributes.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]core.Field, len(h.attrs), len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	for _, a := range attrs {
		newAttrs = appendAttr(newAttrs, h.group, a)
	}
	return &Handler{
		logger: h.logger,
		level:  h.level,
		attrs:  newAttrs,
		group:  h.group,
	}
}

// WithGroup returns a new Handler with the given group name. Groups
// become dotted key prefixes, the usual flattening for ECS documents.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	newGroup := name
	if h.group != "" {
		newGroup = h.group + "." + name
	}
	return &Handler{
		logger: h.logger,
		level:  h.level,
		attrs:  h.attrs,
		group:  newGroup,
	}
}

// slogLevelToCore maps slog levels onto the five ECS severities.
// Levels below slog.LevelDebug map to TRACE.
func slogLevelToCore(level slog.Level) core.Level {
	switch {
	case level >= slog.LevelError:
		return core.ErrorLevel
	case level >= slog.LevelWarn:
		return core.WarnLevel
	case level >= slog.LevelInfo:
		return core.InfoLevel
	case level >= slog.LevelDebug:
		return core.DebugLevel
	default:
		return core.TraceLevel
	}
}

// appendAttr appends the fields for one attr, flattening groups into
// dotted key prefixes. Empty attrs are elided per the slog.Handler
// contract.
func appendAttr(fields []core.Field, group string, a slog.Attr) []core.Field {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return fields
	}

	key := a.Key
	if group != "" {
		if key == "" {
			key = group // inline group: keep the current prefix
		} else {
			key = group + "." + a.Key
		}
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			fields = appendAttr(fields, key, ga)
		}
		return fields
	}

	return append(fields, core.AnyField(key, a.Value.Any()))
}
