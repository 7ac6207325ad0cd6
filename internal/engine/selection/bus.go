package selection

import (
	"context"

	"github.com/dshills/selengine/internal/engine/boundary"
	"github.com/dshills/selengine/internal/event"
	"github.com/dshills/selengine/internal/event/topic"
	"github.com/dshills/selengine/internal/logging"
)

// Topics published by the bus adapters.
const (
	TopicRangeSelected   topic.Topic = "selection.range.selected"
	TopicRangeDeselected topic.Topic = "selection.range.deselected"
	TopicChanged         topic.Topic = "selection.changed"
)

const eventSource = "selection"

// RangeState is the payload of range selected and deselected events.
type RangeState struct {
	Range    boundary.Range
	Selected bool
}

// BusNotifier returns a notifier publishing range state changes on bus.
// Handler failures are logged.
func BusNotifier(bus *event.Bus, log *logging.Logger) Notifier {
	log = logging.OrNull(log)
	return NotifierFunc(func(r boundary.Range, selected bool) {
		t := TopicRangeDeselected
		if selected {
			t = TopicRangeSelected
		}
		ev := event.New(t, eventSource, RangeState{Range: r, Selected: selected})
		if err := bus.Publish(context.Background(), ev); err != nil {
			log.Warn("publishing %s: %v", t, err)
		}
	})
}

// BusListener returns a listener publishing every Change on bus.
// Handler failures are logged.
func BusListener(bus *event.Bus, log *logging.Logger) Listener {
	log = logging.OrNull(log)
	return func(c Change) {
		ev := event.New(TopicChanged, eventSource, c)
		if err := bus.Publish(context.Background(), ev); err != nil {
			log.Warn("publishing %s: %v", TopicChanged, err)
		}
	}
}
