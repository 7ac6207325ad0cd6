package selection

import (
	"slices"

	"github.com/dshills/selengine/internal/engine/boundary"
)

// Notifier is told when a range becomes selected or deselected.
type Notifier interface {
	RangeSelectedStateChanged(r boundary.Range, selected bool)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(r boundary.Range, selected bool)

// RangeSelectedStateChanged implements Notifier.
func (f NotifierFunc) RangeSelectedStateChanged(r boundary.Range, selected bool) {
	f(r, selected)
}

// Notifiers fans notifications out to several notifiers in order.
func Notifiers(ns ...Notifier) Notifier {
	ns = slices.DeleteFunc(slices.Clone(ns), func(n Notifier) bool { return n == nil })
	return NotifierFunc(func(r boundary.Range, selected bool) {
		for _, n := range ns {
			n.RangeSelectedStateChanged(r, selected)
		}
	})
}

// Reason says which operation changed the selection.
type Reason uint8

// Reasons reported in a Change.
const (
	ReasonAdd Reason = iota
	ReasonRemove
	ReasonRemoveAll
	ReasonCollapse
	ReasonExtend
	ReasonSetBaseAndExtent
	ReasonBatch
)

var reasonNames = [...]string{
	ReasonAdd:              "add",
	ReasonRemove:           "remove",
	ReasonRemoveAll:        "remove-all",
	ReasonCollapse:         "collapse",
	ReasonExtend:           "extend",
	ReasonSetBaseAndExtent: "set-base-and-extent",
	ReasonBatch:            "batch",
}

// String returns the reason name.
func (r Reason) String() string {
	if int(r) < len(reasonNames) {
		return reasonNames[r]
	}
	return "unknown"
}

// Change describes a completed mutation.
type Change struct {
	Reason     Reason
	RangeCount int
}

// Listener is called once per mutation, after the set was updated.
type Listener func(Change)

type listenerEntry struct {
	id int
	fn Listener
}

// AddListener registers l and returns a function that removes it.
func (s *Selection) AddListener(l Listener) (remove func()) {
	s.nextListener++
	id := s.nextListener
	s.listeners = append(s.listeners, listenerEntry{id: id, fn: l})
	return func() {
		s.listeners = slices.DeleteFunc(s.listeners, func(e listenerEntry) bool { return e.id == id })
	}
}

// LastCallbackError returns the most recent recovered callback panic, or nil.
func (s *Selection) LastCallbackError() error {
	return s.lastErr
}

// BeginBatch suppresses listener dispatch until the returned function is
// called. Batches nest; the outermost release dispatches a single
// ReasonBatch change if anything changed. Calling the release function more
// than once has no effect.
func (s *Selection) BeginBatch() (release func()) {
	s.batchDepth++
	released := false
	return func() {
		if released {
			return
		}
		released = true
		s.batchDepth--
		if s.batchDepth == 0 && s.pending {
			s.pending = false
			s.dispatch(ReasonBatch)
		}
	}
}

// Batch runs fn inside a batch. The batch ends however fn exits.
func (s *Selection) Batch(fn func() error) error {
	release := s.BeginBatch()
	defer release()
	return fn()
}

func (s *Selection) notify(r boundary.Range, selected bool) {
	if s.notifier == nil || r.Collapsed() {
		return
	}
	s.guard("notifier", func() {
		s.notifier.RangeSelectedStateChanged(r, selected)
	})
}

func (s *Selection) changed(reason Reason) {
	if s.batchDepth > 0 {
		s.pending = true
		return
	}
	s.dispatch(reason)
}

func (s *Selection) dispatch(reason Reason) {
	if len(s.listeners) == 0 {
		return
	}
	c := Change{Reason: reason, RangeCount: s.set.Len()}
	for _, l := range slices.Clone(s.listeners) {
		s.guard("listener", func() {
			l.fn(c)
		})
	}
}

// guard runs a callback, recovering any panic it raises.
func (s *Selection) guard(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			s.lastErr = &CallbackError{Callback: name, Value: r}
			s.log.Warn("recovered %s panic: %v", name, r)
		}
	}()
	fn()
}
