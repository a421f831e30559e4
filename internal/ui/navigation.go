package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/eventdesk/internal/logging/events"
)

const panelScrollStep = 3

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.mode != ModeEvents {
		return nil
	}
	if handled, cmd := m.handleTextInput(keyMsg); handled {
		return cmd
	}
	k := m.keys
	switch {
	case key.Matches(keyMsg, k.Quit):
		return m.quit()
	case key.Matches(keyMsg, k.Back):
		return m.handleEscapeKey()
	case key.Matches(keyMsg, k.Activate):
		return m.activateRow()
	case key.Matches(keyMsg, k.Create):
		return m.startCreateForm()
	case key.Matches(keyMsg, k.Reload):
		m.setInfo("Reloading events…")
		return m.reloadCmd()
	case key.Matches(keyMsg, k.Copy):
		return m.copyDetailsURL()
	case key.Matches(keyMsg, k.Dismiss):
		m.notices.DismissCurrent()
	case key.Matches(keyMsg, k.ScrollUp):
		m.scrollPanel(-panelScrollStep)
	case key.Matches(keyMsg, k.ScrollDown):
		m.scrollPanel(panelScrollStep)
	case key.Matches(keyMsg, k.Up):
		m.moveCursor(-1)
	case key.Matches(keyMsg, k.Down):
		m.moveCursor(1)
	case key.Matches(keyMsg, k.PageUp):
		m.moveCursorWith(m.events.MoveCursorPageUp)
	case key.Matches(keyMsg, k.PageDown):
		m.moveCursorWith(m.events.MoveCursorPageDown)
	case key.Matches(keyMsg, k.Home):
		m.moveCursorWith(func(int) bool { return m.events.MoveCursorHome() })
	case key.Matches(keyMsg, k.End):
		m.moveCursorWith(func(int) bool { return m.events.MoveCursorEnd() })
	}
	return nil
}

// handleEscapeKey clears the filter first and quits on a second press.
func (m *Model) handleEscapeKey() tea.Cmd {
	if m.events.Filter != "" {
		before := m.events.FilterCursorPos()
		m.events.ClearFilter()
		m.noteFilterCursorChange(before)
		events.Filter.Cleared()
		m.syncViewport()
		return nil
	}
	return m.quit()
}

// moveCursor wraps around at either end of the list.
func (m *Model) moveCursor(delta int) {
	n := len(m.events.Items)
	if n == 0 {
		return
	}
	next := m.events.Cursor + delta
	switch {
	case next < 0:
		next = n - 1
	case next >= n:
		next = 0
	}
	m.events.Cursor = next
	events.UI.RowCursor(next)
	m.syncViewport()
}

func (m *Model) moveCursorWith(move func(maxVisible int) bool) {
	if move(m.maxVisibleRows()) {
		events.UI.RowCursor(m.events.Cursor)
	}
	m.syncViewport()
}

func (m *Model) syncViewport() {
	m.events.EnsureCursorVisible(m.maxVisibleRows())
}

// activateRow selects the row under the cursor and loads its details.
// Any detail request still in flight is cancelled and its result ignored.
func (m *Model) activateRow() tea.Cmd {
	item, ok := m.events.SelectCurrent()
	if !ok {
		return nil
	}
	events.UI.RowActivate(item.ID, item.Label, m.events.Filter)
	m.errMsg = ""
	return tea.Batch(m.loadDetails(item.ID), m.startSpinner())
}
