package formatter

// ECSVersion is the ECS logging schema version this formatter emits as
// ecs.version. It identifies the schema layout, never the input.
const ECSVersion = "1.12.1"

// Reserved top-level keys of the fixed schema. Extra fields with one of
// these keys are dropped for the line; the fixed field always wins.
const (
	keyTimestamp  = "@timestamp"
	keyLogLevel   = "log.level"
	keyMessage    = "message"
	keyECSVersion = "ecs.version"
	keyLogOrigin  = "log.origin"
)

func isReservedKey(k string) bool {
	switch k {
	case keyTimestamp, keyLogLevel, keyMessage, keyECSVersion, keyLogOrigin:
		return true
	}
	return false
}
