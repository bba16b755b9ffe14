// Package ecszap adapts go.uber.org/zap to ecslog: a zapcore.Core that
// renders every entry as one ECS JSON line. Use it to give a zap-based
// service ECS output without changing its call sites:
//
//	log := logger.NewBuilder().WithFilter("info").Build()
//	z := zap.New(ecszap.NewCore(log, zapcore.InfoLevel), zap.AddCaller())
package ecszap

import (
	"sort"

	"go.uber.org/zap/zapcore"

	"github.com/ecsfmt/ecslog/core"
	"github.com/ecsfmt/ecslog/logger"
)

// Core is a zapcore.Core that emits ECS JSON lines through a Logger.
type Core struct {
	zapcore.LevelEnabler
	logger *logger.Logger
	fields []core.Field
}

var _ zapcore.Core = (*Core)(nil)

// NewCore creates a zapcore.Core adapter writing through l.
func NewCore(l *logger.Logger, enab zapcore.LevelEnabler) *Core {
	return &Core{
		LevelEnabler: enab,
		logger:       l,
	}
}

// With returns a child core carrying the additional fields.
func (c *Core) With(fields []zapcore.Field) zapcore.Core {
	clone := *c
	clone.fields = appendFields(c.fields, fields)
	return &clone
}

// Check determines whether the entry should be logged.
func (c *Core) Check(e zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(e.Level) {
		return ce.AddCore(e, c)
	}
	return ce
}

// Write converts the entry into an ECS record and emits it.
func (c *Core) Write(e zapcore.Entry, fields []zapcore.Field) error {
	rec := core.GetRecord()
	defer core.PutRecord(rec)

	rec.Time = e.Time
	rec.Level = zapLevelToCore(e.Level)
	rec.Message = e.Message
	rec.Target = e.LoggerName

	if e.Caller.Defined {
		rec.FilePath = e.Caller.File
		rec.Line = e.Caller.Line
		if e.Caller.Function != "" {
			rec.ModulePath = core.PackagePath(e.Caller.Function)
			if rec.Target == "" {
				rec.Target = rec.ModulePath
			}
		}
	}

	rec.Fields = append(rec.Fields, appendFields(c.fields, fields)...)
	if e.Stack != "" {
		rec.Fields = append(rec.Fields, core.StringField("error.stack_trace", e.Stack))
	}

	return c.logger.Emit(rec)
}

// Sync implements zapcore.Core. The logger writes synchronously, so
// there is nothing to flush.
func (c *Core) Sync() error { return nil }

// appendFields encodes zap fields after base, in sorted key order.
// zapcore's map encoder resolves every field type, including
// ObjectMarshaler and Namespace, into plain values.
func appendFields(base []core.Field, fields []zapcore.Field) []core.Field {
	if len(fields) == 0 {
		return base
	}

	enc := zapcore.NewMapObjectEncoder()
	for i := range fields {
		fields[i].AddTo(enc)
	}

	keys := make([]string, 0, len(enc.Fields))
	for k := range enc.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]core.Field, len(base), len(base)+len(keys))
	copy(out, base)
	for _, k := range keys {
		out = append(out, core.AnyField(k, enc.Fields[k]))
	}
	return out
}

// zapLevelToCore maps zap levels onto the five ECS severities.
// DPanic, Panic, and Fatal all map to ERROR.
func zapLevelToCore(level zapcore.Level) core.Level {
	switch {
	case level >= zapcore.ErrorLevel:
		return core.ErrorLevel
	case level == zapcore.WarnLevel:
		return core.WarnLevel
	case level == zapcore.InfoLevel:
		return core.InfoLevel
	case level == zapcore.DebugLevel:
		return core.DebugLevel
	default:
		return core.TraceLevel
	}
}
