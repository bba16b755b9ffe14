// Package formatter renders log records as single-line JSON documents
// following the Elastic Common Schema (ECS) logging layout:
// https://github.com/elastic/ecs-logging/tree/master/spec
//
// It exposes two interfaces: Formatter, which returns a []byte, and
// WriterFormatter, which writes directly to an io.Writer. The ECSFormatter
// implements both. Callers that hold a writer should prefer FormatTo,
// which eliminates the intermediate byte slice allocation.
//
// The JSON is built by hand into a pooled bytes.Buffer using Go's
// Append-style functions (time.AppendFormat, strconv.Itoa) so the hot
// path stays allocation-free, and so the top-level key order is fixed:
// @timestamp, log.level, message, ecs.version, log.origin, then the
// record's own fields, then any extra fields sorted by key. ECS does
// not require an order, but a stable one makes lines comparable
// byte-for-byte across builds.
//
// Extra fields come from an extrafields.Store read once per call. Keys
// that collide with the fixed schema are dropped for that line — extra
// fields can never override @timestamp, log.level, message, ecs.version,
// or log.origin. A store key shadowed by a record field of the same
// name is likewise dropped, so a line never carries duplicate keys.
//
// String escaping covers quotes, backslashes, and control characters
// (the latter as \u00XX); non-ASCII text passes through as raw UTF-8.
//
// Buffers larger than 64 KiB are not returned to the pool to prevent
// a single large log line from permanently inflating memory usage.
package formatter
