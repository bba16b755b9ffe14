// Package logger is the public API of ecslog. Most users only need to
// import this package.
//
// A Logger is immutable after construction — the filter, writer, and
// extra-fields store are set once via the Builder and never modified.
// Writes to the sink are serialized internally, so a Logger is safe for
// concurrent use from any number of goroutines; each enabled call
// produces exactly one ECS JSON line or fails, with no buffering and no
// retry.
//
// The package installs a default Logger (ERROR filter, stderr) at load
// time. Init reconfigures it from the ECS_LOG environment variable:
//
//	logger.Init()
//	logger.Info("ready")
//
// ECS_LOG uses env_logger-style directives, e.g. "info" or
// "warn,github.com/acme/app/db=trace". For custom wiring, use the
// Builder:
//
//	log := logger.NewBuilder().
//	    WithFilter("debug").
//	    WriterStdout().
//	    Build()
//
// Extra fields attach process-wide context to every subsequent line:
//
//	err := logger.SetExtraFields(map[string]string{"service.name": "checkout"})
//	...
//	logger.ClearExtraFields()
//
// SetExtraFields rejects payloads that do not serialize to a JSON
// object and keeps the previous payload in that case, so a
// configuration mistake surfaces immediately instead of silently
// degrading every line. A failed sink write drops that one line only.
//
// Filtered-out messages cost a single integer comparison; caller
// capture and formatting happen only for records that can pass the
// filter.
package logger
