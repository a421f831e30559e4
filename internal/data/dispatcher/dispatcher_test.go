package dispatcher

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/atomicstack/eventdesk/internal/backend"
	"github.com/atomicstack/eventdesk/internal/dashboard"
	"github.com/atomicstack/eventdesk/internal/state"
)

func TestHandleEvents(t *testing.T) {
	store := state.NewEventStore()
	d := New(store)

	res := d.Handle(backend.Event{Kind: backend.KindEvents, Data: []dashboard.Event{{ID: "1"}, {ID: "2"}}})
	assert.True(t, res.EventsUpdated)
	assert.False(t, res.Failed)
	assert.Len(t, store.Entries(), 2)

	res = d.Handle(backend.Event{Kind: backend.KindEvents, Err: errors.New("down")})
	assert.False(t, res.EventsUpdated)
	assert.True(t, res.Failed)
	assert.EqualError(t, store.Err(), "down")
	assert.Len(t, store.Entries(), 2)

	res = d.Handle(backend.Event{Kind: backend.KindEvents, Data: "unexpected"})
	assert.Equal(t, Result{}, res)
}
