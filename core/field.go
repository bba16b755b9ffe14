package core

import (
	"encoding/json"
	"fmt"
)

// Field is one pre-encoded key/value pair attached to a Record or held
// in an extra-fields store. Value is the compact JSON encoding of the
// field's value; encoding happens once, off the format hot path.
type Field struct {
	Key   string
	Value json.RawMessage
}

// StringField builds a Field from a string value without reflection.
func StringField(key, value string) Field {
	data, _ := json.Marshal(value)
	return Field{Key: key, Value: data}
}

// AnyField builds a Field from an arbitrary value. Errors encode as
// their message; values that cannot be marshaled encode as their
// fmt verb %v rendering, so a bad field never drops the log line.
func AnyField(key string, value interface{}) Field {
	if err, ok := value.(error); ok {
		return StringField(key, err.Error())
	}
	data, err := json.Marshal(value)
	if err != nil {
		return StringField(key, fmt.Sprintf("%v", value))
	}
	return Field{Key: key, Value: data}
}
