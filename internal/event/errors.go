package event

import (
	"errors"
	"fmt"

	"github.com/dshills/selengine/internal/event/topic"
)

var (
	// ErrInvalidTopic is returned for empty or malformed topics and patterns.
	ErrInvalidTopic = errors.New("invalid topic")

	// ErrNotSubscribed is returned when removing an unknown subscription.
	ErrNotSubscribed = errors.New("not subscribed")

	// ErrNilHandler is returned when subscribing a nil handler.
	ErrNilHandler = errors.New("nil handler")

	// ErrHandlerPanic is wrapped by a DeliveryError for a handler that panicked.
	ErrHandlerPanic = errors.New("handler panicked")
)

// DeliveryError reports one handler failing on one message.
type DeliveryError struct {
	Subscription string
	Topic        topic.Topic
	Err          error

	// Recovered is the panic value when the handler panicked.
	Recovered any
}

func (e *DeliveryError) Error() string {
	if e.Recovered != nil {
		return fmt.Sprintf("deliver %s to %s: panic: %v", e.Topic, e.Subscription, e.Recovered)
	}
	return fmt.Sprintf("deliver %s to %s: %v", e.Topic, e.Subscription, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}
