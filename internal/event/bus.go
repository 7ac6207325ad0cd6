package event

import (
	"context"
	"errors"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/selengine/internal/event/topic"
)

// Handler processes one message.
type Handler func(ctx context.Context, msg Message) error

// Subscription is a handler registered for a topic pattern.
type Subscription struct {
	id      string
	pattern topic.Pattern
	handler Handler
	active  atomic.Bool
}

// ID returns the subscription's unique id.
func (s *Subscription) ID() string {
	return s.id
}

// Pattern returns the pattern the subscription matches.
func (s *Subscription) Pattern() topic.Pattern {
	return s.pattern
}

// Active returns false once the subscription was removed.
func (s *Subscription) Active() bool {
	return s.active.Load()
}

// Stats holds bus counters.
type Stats struct {
	Published uint64
	Delivered uint64
	Failed    uint64
	Panicked  uint64
}

// Bus delivers messages synchronously to matching subscriptions.
// Bus is safe for concurrent use; handlers may publish or subscribe.
type Bus struct {
	mu   sync.RWMutex
	subs []*Subscription

	published atomic.Uint64
	delivered atomic.Uint64
	failed    atomic.Uint64
	panicked  atomic.Uint64
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn for messages whose topic matches pattern.
func (b *Bus) Subscribe(pattern topic.Pattern, fn Handler) (*Subscription, error) {
	if fn == nil {
		return nil, ErrNilHandler
	}
	if !pattern.Valid() {
		return nil, ErrInvalidTopic
	}

	sub := &Subscription{id: uuid.NewString(), pattern: pattern, handler: fn}
	sub.active.Store(true)

	b.mu.Lock()
	b.subs = append(b.subs, sub)
	b.mu.Unlock()
	return sub, nil
}

// Unsubscribe removes a subscription.
func (b *Bus) Unsubscribe(sub *Subscription) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := slices.Index(b.subs, sub)
	if sub == nil || i < 0 {
		return ErrNotSubscribed
	}
	sub.active.Store(false)
	b.subs = slices.Delete(b.subs, i, i+1)
	return nil
}

// Publish delivers msg to every matching subscription in order. Handler
// failures do not stop delivery; they are joined into the returned error.
// Subscriptions added while publishing wait for the next message.
func (b *Bus) Publish(ctx context.Context, msg Message) error {
	if msg == nil {
		return ErrInvalidTopic
	}
	t := msg.Header().Topic
	if !t.Valid() {
		return ErrInvalidTopic
	}

	b.mu.RLock()
	subs := slices.Clone(b.subs)
	b.mu.RUnlock()

	b.published.Add(1)

	var errs []error
	for _, sub := range subs {
		if !sub.Active() || !sub.pattern.Match(t) {
			continue
		}
		if err := b.deliver(ctx, sub, t, msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (b *Bus) deliver(ctx context.Context, sub *Subscription, t topic.Topic, msg Message) (err error) {
	b.delivered.Add(1)
	defer func() {
		if r := recover(); r != nil {
			b.panicked.Add(1)
			err = &DeliveryError{Subscription: sub.id, Topic: t, Err: ErrHandlerPanic, Recovered: r}
		}
	}()

	if herr := sub.handler(ctx, msg); herr != nil {
		b.failed.Add(1)
		return &DeliveryError{Subscription: sub.id, Topic: t, Err: herr}
	}
	return nil
}

// Stats returns the current counters.
func (b *Bus) Stats() Stats {
	return Stats{
		Published: b.published.Load(),
		Delivered: b.delivered.Load(),
		Failed:    b.failed.Load(),
		Panicked:  b.panicked.Load(),
	}
}

// Len returns the number of active subscriptions.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
