// Package core defines the shared types used across ecslog.
//
// It provides the Level type for the five ECS severities and the Record
// type that describes a single log event: timestamp, level, rendered
// message, dotted target, and optional source-location metadata. The
// formatter only ever borrows a Record; nothing in this package or in
// the formatter mutates one after it is handed over.
//
// Record objects are pooled via sync.Pool to keep the hot path
// allocation-free. Callers get a Record with GetRecord and must return
// it with PutRecord once the formatter has consumed it.
//
// Caller fills a Record's location fields from the runtime call stack.
// The package path of the calling function doubles as the default
// target, mirroring how logging facades derive a target from the module
// that issued the log call. All location fields are optional: a Record
// with none of them set still formats cleanly.
package core
