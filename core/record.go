package core

import (
	"runtime"
	"strings"
	"sync"
	"time"
)

// Record is the descriptor for a single log event. It carries the
// already-rendered message plus the metadata captured at the call site.
// The location fields (ModulePath, FilePath, Line) are optional; their
// zero values mean the call site was not instrumented.
//
// A Record is borrowed by the formatter for the duration of one call and
// must not be mutated while a format call is in flight.
type Record struct {
	Time       time.Time
	Level      Level
	Message    string
	Target     string
	ModulePath string
	FilePath   string
	Line       int

	// Fields are per-record structured values, already JSON-encoded,
	// emitted after the fixed schema. Facade adapters fill them from
	// their own field types.
	Fields []Field
}

// recordPool is a pool of Record objects to reduce allocations
var recordPool = sync.Pool{
	New: func() interface{} {
		return &Record{
			Fields: make([]Field, 0, 8), // Pre-allocate for 8 fields
		}
	},
}

// GetRecord retrieves a Record from the pool with Time set to now.
func GetRecord() *Record {
	r := recordPool.Get().(*Record)
	r.Time = time.Now()
	r.Fields = r.Fields[:0]
	return r
}

// PutRecord returns a Record to the pool
func PutRecord(r *Record) {
	if r == nil {
		return
	}
	fields := r.Fields[:0]
	*r = Record{}
	r.Fields = fields
	recordPool.Put(r)
}

// Caller captures source-location metadata for the calling frame.
// skip is the number of stack frames to ascend, with 0 identifying the
// caller of Caller. It fills FilePath and Line from the frame and derives
// Target and ModulePath from the frame function's package path. On
// failure all fields stay at their zero values.
func (r *Record) Caller(skip int) {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return
	}

	r.FilePath = file
	r.Line = line

	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return
	}
	pkg := PackagePath(fn.Name())
	r.ModulePath = pkg
	if r.Target == "" {
		r.Target = pkg
	}
}

// CallerPC fills the location fields from a program counter captured by
// an external facade (e.g. a slog.Record's PC). A zero pc is ignored.
func (r *Record) CallerPC(pc uintptr) {
	if pc == 0 {
		return
	}
	frames := runtime.CallersFrames([]uintptr{pc})
	frame, _ := frames.Next()
	if frame.File != "" {
		r.FilePath = frame.File
		r.Line = frame.Line
	}
	if frame.Function != "" {
		pkg := PackagePath(frame.Function)
		r.ModulePath = pkg
		if r.Target == "" {
			r.Target = pkg
		}
	}
}

// PackagePath extracts the package import path from a runtime function
// name such as "github.com/ecsfmt/ecslog/logger.(*Logger).Info".
func PackagePath(funcName string) string {
	// Everything before the first dot after the last slash is the package.
	slash := strings.LastIndexByte(funcName, '/')
	dot := strings.IndexByte(funcName[slash+1:], '.')
	if dot < 0 {
		return funcName
	}
	return funcName[:slash+1+dot]
}

// BaseName returns the final path segment of FilePath, or "" if the
// file path is unknown. Both '/' and '\\' are treated as separators so
// records produced on Windows render the same way.
func (r *Record) BaseName() string {
	if r.FilePath == "" {
		return ""
	}
	name := r.FilePath
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	return name
}
