// Package extrafields holds the process-wide structured context that is
// merged into every log line until cleared or replaced.
//
// A Store carries at most one payload. Set accepts any value that
// serializes to a JSON object — a map, a struct with exported fields —
// and rejects anything else with ErrNotObject, leaving the previous
// payload in place. The check is eager: serialization happens once at
// Set time, never on the log hot path. The formatter reads the current
// snapshot once per line and copies the pre-encoded bytes straight into
// the output buffer.
//
// The store is safe for concurrent use. A format call racing with Set
// or Clear observes either the old payload or the new one in its
// entirety, never a mix: the snapshot slice is built outside the lock
// and published with a single swap.
package extrafields
