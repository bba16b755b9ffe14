package formatter

import (
	"bytes"
	"io"
	"strconv"

	"github.com/ecsfmt/ecslog/core"
	"github.com/ecsfmt/ecslog/extrafields"
)

// timestampLayout renders RFC3339 UTC with a fixed nine-digit
// nanosecond fraction, so every line has the same width and output is
// byte-stable for a given record.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ECSFormatter formats log records as single-line ECS JSON documents.
// Top-level key order is fixed: @timestamp, log.level, message,
// ecs.version, log.origin, the record's own fields, then the store's
// extra fields in sorted key order. The fixed schema wins every key
// collision; a record field wins over a store field with the same key.
type ECSFormatter struct {
	extra *extrafields.Store
}

// Config holds ECS formatter configuration
type Config struct {
	// ExtraFields is the store whose current payload is merged into
	// every line. May be nil, in which case no extra fields are emitted.
	ExtraFields *extrafields.Store
}

// NewECSFormatter creates a new ECS formatter
func NewECSFormatter(cfg Config) *ECSFormatter {
	return &ECSFormatter{extra: cfg.ExtraFields}
}

// Format formats a record as one ECS JSON line, including the trailing
// newline. Rendering the fixed fields cannot fail; the error return
// exists to satisfy Formatter.
func (f *ECSFormatter) Format(record *core.Record) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	f.formatToBuffer(record, buf)

	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}

// FormatTo formats a record and writes the line directly to the writer.
// A writer failure is returned to the caller of this one call; it does
// not affect the store or future calls.
func (f *ECSFormatter) FormatTo(record *core.Record, w io.Writer) error {
	buf := getBuffer()

	f.formatToBuffer(record, buf)

	_, err := w.Write(buf.Bytes())
	putBuffer(buf)
	return err
}

// formatToBuffer builds the JSON line manually into the buffer without
// allocations. The fixed fields come first so that extra fields can
// never displace them.
func (f *ECSFormatter) formatToBuffer(record *core.Record, buf *bytes.Buffer) {
	buf.WriteByte('{')

	buf.WriteString(`"@timestamp":"`)
	buf.Write(record.Time.UTC().AppendFormat(buf.AvailableBuffer(), timestampLayout))
	buf.WriteByte('"')

	buf.WriteString(`,"log.level":"`)
	buf.WriteString(record.Level.String())
	buf.WriteByte('"')

	buf.WriteString(`,"message":"`)
	appendJSONString(buf, record.Message)
	buf.WriteByte('"')

	buf.WriteString(`,"ecs.version":"`)
	buf.WriteString(ECSVersion)
	buf.WriteByte('"')

	f.appendOrigin(record, buf)

	for i, field := range record.Fields {
		// First occurrence wins when a facade repeats a key.
		if isReservedKey(field.Key) || hasField(record.Fields[:i], field.Key) {
			continue
		}
		appendField(buf, field)
	}

	if f.extra != nil {
		for _, field := range f.extra.Snapshot() {
			if isReservedKey(field.Key) || hasField(record.Fields, field.Key) {
				continue
			}
			appendField(buf, field)
		}
	}

	buf.WriteString("}\n")
}

func appendField(buf *bytes.Buffer, field core.Field) {
	buf.WriteString(`,"`)
	appendJSONString(buf, field.Key)
	buf.WriteString(`":`)
	buf.Write(field.Value)
}

func hasField(fields []core.Field, key string) bool {
	for i := range fields {
		if fields[i].Key == key {
			return true
		}
	}
	return false
}

// appendOrigin writes the log.origin object. The file sub-object only
// carries the members that are known; the go sub-object always carries
// the target.
func (f *ECSFormatter) appendOrigin(record *core.Record, buf *bytes.Buffer) {
	buf.WriteString(`,"log.origin":{"file":{`)

	first := true
	if record.Line > 0 {
		buf.WriteString(`"line":`)
		buf.WriteString(strconv.Itoa(record.Line))
		first = false
	}
	if name := record.BaseName(); name != "" {
		if !first {
			buf.WriteByte(',')
		}
		buf.WriteString(`"name":"`)
		appendJSONString(buf, name)
		buf.WriteByte('"')
	}

	buf.WriteString(`},"go":{"target":"`)
	appendJSONString(buf, record.Target)
	buf.WriteByte('"')

	if record.ModulePath != "" {
		buf.WriteString(`,"module_path":"`)
		appendJSONString(buf, record.ModulePath)
		buf.WriteByte('"')
	}
	if record.FilePath != "" {
		buf.WriteString(`,"file_path":"`)
		appendJSONString(buf, record.FilePath)
		buf.WriteByte('"')
	}

	buf.WriteString(`}}`)
}
