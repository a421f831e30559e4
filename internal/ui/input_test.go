package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/eventdesk/internal/testutil"
)

func TestTypingFiltersRows(t *testing.T) {
	d := testutil.NewDashboard(t)
	h := newTestHarness(t, d, 120, 30)
	m := h.Model()

	h.Send(runes("2"))
	require.Len(t, m.Events().Items, 1)
	assert.Equal(t, "2", m.Events().Items[0].ID)
	assert.Equal(t, "2", m.Events().Filter)
	assert.Contains(t, h.View(), "1 of 3 events")

	h.Send(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Len(t, m.Events().Items, 3)
}

func TestFilterWithoutMatches(t *testing.T) {
	d := testutil.NewDashboard(t)
	h := newTestHarness(t, d, 120, 30)

	h.Send(runes("zzz"))
	assert.Empty(t, h.Model().Events().Items)
	assert.Contains(t, h.View(), `No matches for "zzz"`)

	h.Send(tea.KeyMsg{Type: tea.KeyCtrlU})
	assert.Len(t, h.Model().Events().Items, 3)
}

func TestFilterCursorEditing(t *testing.T) {
	d := testutil.NewDashboard(t)
	h := newTestHarness(t, d, 120, 30)
	l := h.Model().Events()

	h.Send(runes("vent"))
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlA})
	assert.Equal(t, 0, l.FilterCursorPos())
	h.Send(runes("E"))
	assert.Equal(t, "Event", l.Filter)
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlE})
	assert.Equal(t, 5, l.FilterCursorPos())
	h.Send(tea.KeyMsg{Type: tea.KeySpace})
	h.Send(runes("3"))
	assert.Equal(t, "Event 3", l.Filter)

	h.Send(tea.KeyMsg{Type: tea.KeyCtrlW})
	assert.Equal(t, "Event ", l.Filter)
}

func TestFilterPromptPlaceholder(t *testing.T) {
	m := NewModel(Options{})
	assert.Contains(t, m.filterPrompt(), "type to filter events")

	m.events.SetFilter("fair", 4)
	prompt := m.filterPrompt()
	assert.Contains(t, prompt, "fair")
	assert.NotContains(t, prompt, "type to filter")
}

func TestEscapeClearsFilterBeforeQuitting(t *testing.T) {
	d := testutil.NewDashboard(t)
	h := newTestHarness(t, d, 120, 30)

	h.Send(runes("2"))
	h.Send(keyEsc)
	assert.Equal(t, "", h.Model().Events().Filter)
	assert.False(t, h.Quitting())

	h.Send(keyEsc)
	assert.True(t, h.Quitting())
}
