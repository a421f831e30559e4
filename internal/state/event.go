package state

import (
	"time"

	"github.com/atomicstack/eventdesk/internal/dashboard"
)

// EventStore holds the latest event list fetched from the dashboard.
type EventStore interface {
	Entries() []dashboard.Event
	SetEntries([]dashboard.Event)
	Lookup(id string) (dashboard.Event, bool)
	Loaded() bool
	UpdatedAt() time.Time
	Err() error
	SetErr(error)
}

type eventStore struct {
	entries []dashboard.Event
	loaded  bool
	updated time.Time
	err     error
	now     func() time.Time
}

func NewEventStore() EventStore {
	return &eventStore{now: time.Now}
}

func (s *eventStore) Entries() []dashboard.Event {
	return cloneEvents(s.entries)
}

// SetEntries replaces the list and clears any earlier fetch error.
func (s *eventStore) SetEntries(entries []dashboard.Event) {
	s.entries = cloneEvents(entries)
	s.loaded = true
	s.updated = s.now()
	s.err = nil
}

func (s *eventStore) Lookup(id string) (dashboard.Event, bool) {
	for _, e := range s.entries {
		if e.ID == id {
			return e, true
		}
	}
	return dashboard.Event{}, false
}

func (s *eventStore) Loaded() bool         { return s.loaded }
func (s *eventStore) UpdatedAt() time.Time { return s.updated }
func (s *eventStore) Err() error           { return s.err }

// SetErr records a failed refresh. The previous entries are kept.
func (s *eventStore) SetErr(err error) {
	s.err = err
}

func cloneEvents(entries []dashboard.Event) []dashboard.Event {
	if len(entries) == 0 {
		return nil
	}
	dup := make([]dashboard.Event, len(entries))
	copy(dup, entries)
	return dup
}
