package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/eventdesk/internal/backend"
	"github.com/atomicstack/eventdesk/internal/dashboard"
	"github.com/atomicstack/eventdesk/internal/ui/command"
	uistate "github.com/atomicstack/eventdesk/internal/ui/state"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

// eventsReloadedMsg carries a list fetch requested from the UI.
type eventsReloadedMsg struct {
	seq   int
	event backend.Event
}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(msg tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

// reloadCmd fetches the event list once, outside the watcher's schedule.
func (m *Model) reloadCmd() tea.Cmd {
	if m.client == nil {
		return nil
	}
	m.reloadSeq++
	seq := m.reloadSeq
	client := m.client
	return m.bus.Execute(m.ctx, command.Request{
		ID:    "events:reload",
		Label: "events",
		Run: func(ctx context.Context) tea.Msg {
			rows, err := client.ListEvents(ctx)
			return eventsReloadedMsg{seq: seq, event: backend.Event{Kind: backend.KindEvents, Data: rows, Err: err}}
		},
	})
}

func (m *Model) handleEventsReloadedMsg(msg tea.Msg) tea.Cmd {
	reloaded, ok := msg.(eventsReloadedMsg)
	if !ok || reloaded.seq != m.reloadSeq {
		return nil
	}
	if m.infoMsg == "Reloading events…" {
		m.forceClearInfo()
	}
	m.applyBackendEvent(reloaded.event)
	return nil
}

func (m *Model) applyBackendEvent(evt backend.Event) {
	res := m.dispatcher.Handle(evt)
	if res.Failed {
		m.backendErr = "Failed to load events: " + dashboard.ErrorMessage(evt.Err)
		return
	}
	if !res.EventsUpdated {
		return
	}
	m.backendErr = ""
	m.events.UpdateItems(eventItems(m.store.Entries()))
	m.syncViewport()
}

func eventItems(rows []dashboard.Event) []uistate.Item {
	items := make([]uistate.Item, 0, len(rows))
	for _, e := range rows {
		items = append(items, uistate.Item{
			ID:      e.ID,
			Label:   e.Name,
			Columns: []string{e.Name, e.Date, e.Time, e.Location, e.Registrations, e.Status},
		})
	}
	return items
}
