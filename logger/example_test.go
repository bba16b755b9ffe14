package logger_test

import (
	"io"

	"github.com/ecsfmt/ecslog/extrafields"
	"github.com/ecsfmt/ecslog/logger"
)

// Use the package-level default logger for quick, no-setup logging.
func Example() {
	logger.Init() // filter comes from ECS_LOG, output goes to stderr

	logger.Error("this is printed by default")
	logger.Debugf("this is a debug %s, which is NOT printed by default", "message")
}

// Create a custom Logger with the Builder pattern.
func ExampleNewBuilder() {
	log := logger.NewBuilder().
		WithFilter("info,github.com/acme/app/db=trace").
		WithWriter(io.Discard).
		Build()

	log.Info("ready")
}

// Attach process-wide context to every line until it is cleared.
func ExampleLogger_SetExtraFields() {
	log := logger.NewBuilder().
		WithFilter("info").
		WithWriter(io.Discard).
		Build()

	if err := log.SetExtraFields(map[string]string{
		"service.name":        "checkout",
		"service.environment": "production",
	}); err != nil {
		log.Errorf("invalid extra fields: %v", err)
	}

	log.Info("carries service.name and service.environment")

	log.ClearExtraFields()
	log.Info("carries no extra fields")
}

// Share one extra-fields store between the native logger and a facade
// adapter.
func ExampleNewBuilder_sharedStore() {
	store := extrafields.NewStore()

	log := logger.NewBuilder().
		WithFilter("debug").
		WithWriter(io.Discard).
		WithExtraFields(store).
		Build()

	_ = store.Set(map[string]string{"trace.id": "abc123"})
	log.Debug("correlated")
}
