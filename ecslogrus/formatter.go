// Package ecslogrus adapts github.com/sirupsen/logrus to ecslog: a
// logrus.Formatter that renders every entry as one ECS JSON line.
// Logrus keeps ownership of the output writer; the formatter only
// produces the line:
//
//	log := logrus.New()
//	log.SetFormatter(ecslogrus.New(nil))
//
// Pass an extra-fields store to merge process-wide context into every
// line, the same way the native logger does.
package ecslogrus

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/ecsfmt/ecslog/core"
	"github.com/ecsfmt/ecslog/extrafields"
	"github.com/ecsfmt/ecslog/formatter"
)

// Formatter is a logrus.Formatter producing ECS JSON lines.
type Formatter struct {
	ecs *formatter.ECSFormatter
}

var _ logrus.Formatter = (*Formatter)(nil)

// New creates a logrus formatter. store may be nil, in which case no
// extra fields are merged.
func New(store *extrafields.Store) *Formatter {
	return &Formatter{
		ecs: formatter.NewECSFormatter(formatter.Config{ExtraFields: store}),
	}
}

// Format renders one logrus entry as an ECS line, including the
// trailing newline logrus expects from its formatter.
func (f *Formatter) Format(e *logrus.Entry) ([]byte, error) {
	rec := core.GetRecord()
	defer core.PutRecord(rec)

	rec.Time = e.Time
	rec.Level = logrusLevelToCore(e.Level)
	rec.Message = e.Message

	if e.Caller != nil {
		rec.FilePath = e.Caller.File
		rec.Line = e.Caller.Line
		if e.Caller.Function != "" {
			rec.ModulePath = core.PackagePath(e.Caller.Function)
			rec.Target = rec.ModulePath
		}
	}

	if len(e.Data) > 0 {
		keys := make([]string, 0, len(e.Data))
		for k := range e.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			rec.Fields = append(rec.Fields, core.AnyField(k, e.Data[k]))
		}
	}

	return f.ecs.Format(rec)
}

// logrusLevelToCore maps logrus levels onto the five ECS severities.
// Panic and Fatal map to ERROR.
func logrusLevelToCore(level logrus.Level) core.Level {
	switch level {
	case logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel:
		return core.ErrorLevel
	case logrus.WarnLevel:
		return core.WarnLevel
	case logrus.InfoLevel:
		return core.InfoLevel
	case logrus.DebugLevel:
		return core.DebugLevel
	default:
		return core.TraceLevel
	}
}
