package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/dshills/selengine/internal/event/topic"
)

// Message is anything the bus can deliver.
type Message interface {
	Header() Header
}

// Header identifies a published message.
type Header struct {
	Topic  topic.Topic
	ID     string
	Time   time.Time
	Source string
}

// Event is a message with a typed payload.
type Event[T any] struct {
	Meta    Header
	Payload T
}

// New stamps payload with a fresh id and the current time.
func New[T any](t topic.Topic, source string, payload T) Event[T] {
	return Event[T]{
		Meta: Header{
			Topic:  t,
			ID:     uuid.NewString(),
			Time:   time.Now(),
			Source: source,
		},
		Payload: payload,
	}
}

// Header implements Message.
func (e Event[T]) Header() Header {
	return e.Meta
}
