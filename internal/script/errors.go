package script

import "errors"

// Errors for script execution.
var (
	// ErrRuntimeClosed is returned when running code on a closed runtime.
	ErrRuntimeClosed = errors.New("script runtime is closed")

	// ErrHandler wraps a failure raised inside an on_change handler.
	ErrHandler = errors.New("on_change handler failed")

	// ErrHandlerDepth is recorded when handlers nest past the limit.
	ErrHandlerDepth = errors.New("on_change handlers nested too deeply")
)
