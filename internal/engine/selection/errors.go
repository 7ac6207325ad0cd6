package selection

import (
	"errors"
	"fmt"
)

// Errors returned by selection operations.
var (
	// ErrNoRange indicates an operation that needs a primary range.
	ErrNoRange = errors.New("selection has no range")

	// ErrClosed indicates use of a closed selection.
	ErrClosed = errors.New("selection is closed")

	// ErrUnknownKind indicates an unrecognized selection kind name.
	ErrUnknownKind = errors.New("unknown selection kind")

	// ErrCallbackPanic indicates a notifier or listener panicked.
	ErrCallbackPanic = errors.New("callback panicked")
)

// CallbackError records a panic recovered from a notifier or listener.
type CallbackError struct {
	// Callback names the kind of callback: "notifier" or "listener".
	Callback string

	// Value is the value passed to panic().
	Value any
}

// Error implements the error interface.
func (e *CallbackError) Error() string {
	return fmt.Sprintf("%s callback panicked: %v", e.Callback, e.Value)
}

// Unwrap returns the panic value if it was an error.
func (e *CallbackError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Is allows errors.Is to match CallbackError with ErrCallbackPanic.
func (e *CallbackError) Is(target error) bool {
	return target == ErrCallbackPanic
}
