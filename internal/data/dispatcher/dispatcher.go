package dispatcher

import (
	"github.com/atomicstack/eventdesk/internal/backend"
	"github.com/atomicstack/eventdesk/internal/dashboard"
	"github.com/atomicstack/eventdesk/internal/state"
)

// Result reports which stores changed while handling an event.
type Result struct {
	EventsUpdated bool
	Failed        bool
}

// Dispatcher applies watcher events to the state stores.
type Dispatcher struct {
	events state.EventStore
}

func New(events state.EventStore) *Dispatcher {
	return &Dispatcher{events: events}
}

func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	switch evt.Kind {
	case backend.KindEvents:
		if evt.Err != nil {
			d.events.SetErr(evt.Err)
			res.Failed = true
			return res
		}
		if rows, ok := evt.Data.([]dashboard.Event); ok {
			d.events.SetEntries(rows)
			res.EventsUpdated = true
		}
	}
	return res
}
