package backend

import (
	"context"
	"sync"
	"time"

	"github.com/atomicstack/eventdesk/internal/dashboard"
	"github.com/atomicstack/eventdesk/internal/logging/events"
)

// Kind identifies the data carried by an Event.
type Kind int

const (
	KindEvents Kind = iota
)

func (k Kind) String() string {
	switch k {
	case KindEvents:
		return "events"
	default:
		return "unknown"
	}
}

// Event carries the result of one poll.
type Event struct {
	Kind Kind
	Data interface{}
	Err  error
}

// Lister fetches the event list. *dashboard.Client satisfies it.
type Lister interface {
	ListEvents(ctx context.Context) ([]dashboard.Event, error)
}

// minGap is the shortest time allowed between two list requests.
const minGap = 250 * time.Millisecond

// Watcher polls the dashboard's event list and publishes the results.
type Watcher struct {
	lister   Lister
	interval time.Duration
	throttle *throttle

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher starts polling lister. The first poll runs immediately; later
// polls run every interval. With an interval of zero or less only the
// first poll runs and the events channel is closed afterwards.
func NewWatcher(parent context.Context, lister Lister, interval time.Duration) *Watcher {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	w := &Watcher{
		lister:   lister,
		interval: interval,
		throttle: newThrottle(minGap),
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 4),
	}

	w.wg.Add(1)
	go w.poll(KindEvents, func(ctx context.Context) (interface{}, error) {
		if err := w.throttle.wait(ctx); err != nil {
			return nil, err
		}
		rows, err := w.lister.ListEvents(ctx)
		events.Watcher.Poll(KindEvents.String(), len(rows), err)
		return rows, err
	})

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns the channel results are published on. It is closed once
// the watcher stops.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels polling, including a request in flight.
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the poller has exited and the events channel is closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) poll(kind Kind, fetch func(context.Context) (interface{}, error)) {
	defer w.wg.Done()

	emit := func() bool {
		data, err := fetch(w.ctx)
		if w.ctx.Err() != nil {
			return false
		}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- Event{Kind: kind, Data: data, Err: err}:
			return true
		}
	}

	if !emit() || w.interval <= 0 {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		}
	}
}
