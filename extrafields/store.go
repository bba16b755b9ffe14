package extrafields

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/ecsfmt/ecslog/core"
)

// ErrNotObject is returned by Set when the payload does not serialize
// to a JSON object at the top level (e.g. it serializes to an array,
// a scalar, or null). Only objects can be merged into a log line.
var ErrNotObject = errors.New("extra fields payload does not serialize to a JSON object")

// Store holds at most one extra-fields payload, shared by every
// formatter call in the process. Validation is eager: Set serializes
// and checks the payload immediately, so a bad payload surfaces at
// configuration time instead of degrading every subsequent line.
//
// The snapshot slice is immutable after publication. Writers swap the
// slice under the write lock; readers take the read lock only for the
// pointer read, so concurrent format calls never serialize against
// each other.
type Store struct {
	mu     sync.RWMutex
	fields []core.Field
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Set stores payload, replacing any previous value. The payload must
// serialize to a JSON object; otherwise Set returns an error and the
// previous value (or emptiness) is retained. Keys are sorted at set
// time so formatted output is deterministic.
func (s *Store) Set(payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("extra fields: %w", err)
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return ErrNotObject
	}
	if obj == nil {
		// "null" decodes into a nil map without error.
		return ErrNotObject
	}

	fields := make([]core.Field, 0, len(obj))
	for k, v := range obj {
		fields = append(fields, core.Field{Key: k, Value: v})
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Key < fields[j].Key })

	s.mu.Lock()
	s.fields = fields
	s.mu.Unlock()
	return nil
}

// Clear empties the store. It is idempotent and never fails.
func (s *Store) Clear() {
	s.mu.Lock()
	s.fields = nil
	s.mu.Unlock()
}

// Snapshot returns the current payload as a sorted slice of pre-encoded
// fields, or nil if the store is empty. The returned slice is shared
// and must not be mutated.
func (s *Store) Snapshot() []core.Field {
	s.mu.RLock()
	f := s.fields
	s.mu.RUnlock()
	return f
}

// Len reports the number of top-level keys in the current payload.
func (s *Store) Len() int {
	s.mu.RLock()
	n := len(s.fields)
	s.mu.RUnlock()
	return n
}
