package ui

import (
	"unicode"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/eventdesk/internal/logging/events"
)

func (m *Model) noteFilterCursorChange(before int) {
	if before != m.events.FilterCursorPos() {
		m.filterCursorDirty = true
	}
}

// handleTextInput routes filter editing keys. It reports whether the key
// was consumed.
func (m *Model) handleTextInput(msg tea.KeyMsg) (bool, tea.Cmd) {
	l := m.events
	before := l.FilterCursorPos()
	switch msg.String() {
	case "ctrl+u":
		if !l.ClearFilter() {
			return false, nil
		}
		events.Filter.Cleared()
		return true, m.afterFilterEdit(before)
	case "ctrl+w":
		if !l.DeleteFilterWordBackward() {
			return false, nil
		}
		events.Filter.WordBackspace(l.Filter)
		return true, m.afterFilterEdit(before)
	case "ctrl+a":
		return m.moveFilterCursor(l.MoveFilterCursorStart(), before), nil
	case "ctrl+e":
		return m.moveFilterCursor(l.MoveFilterCursorEnd(), before), nil
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		if !l.DeleteFilterRuneBackward() {
			return false, nil
		}
		events.Filter.Backspace(l.Filter)
		return true, m.afterFilterEdit(before)
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return false, nil
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return false, nil
			}
		}
		return m.appendToFilter(string(msg.Runes), before)
	case tea.KeySpace:
		return m.appendToFilter(" ", before)
	case tea.KeyLeft:
		return m.moveFilterCursor(l.MoveFilterCursor(-1), before), nil
	case tea.KeyRight:
		return m.moveFilterCursor(l.MoveFilterCursor(1), before), nil
	}
	return false, nil
}

func (m *Model) appendToFilter(text string, before int) (bool, tea.Cmd) {
	if !m.events.InsertFilterText(text) {
		return false, nil
	}
	events.Filter.Append(m.events.Filter)
	return true, m.afterFilterEdit(before)
}

func (m *Model) moveFilterCursor(moved bool, before int) bool {
	if !moved {
		return false
	}
	m.noteFilterCursorChange(before)
	events.Filter.Cursor(m.events.FilterCursor)
	return true
}

func (m *Model) afterFilterEdit(before int) tea.Cmd {
	m.noteFilterCursorChange(before)
	m.forceClearInfo()
	m.errMsg = ""
	m.syncViewport()
	return nil
}

// filterPrompt renders the filter line with its caret.
func (m *Model) filterPrompt() string {
	prompt := "» "
	if styles.FilterPrompt != nil {
		prompt = styles.FilterPrompt.Render(prompt)
	}
	text := m.events.Filter
	if text == "" {
		placeholder := []rune("(type to filter events)")
		rest := string(placeholder[1:])
		if styles.FilterPlaceholder != nil {
			rest = styles.FilterPlaceholder.Render(rest)
		}
		return prompt + m.renderFilterCursor(string(placeholder[0])) + rest
	}
	runes := []rune(text)
	pos := m.events.FilterCursorPos()
	render := func(s string) string {
		if styles.Filter == nil || s == "" {
			return s
		}
		return styles.Filter.Render(s)
	}
	caret := " "
	after := ""
	if pos < len(runes) {
		caret = string(runes[pos])
		after = render(string(runes[pos+1:]))
	}
	return prompt + render(string(runes[:pos])) + m.renderFilterCursor(caret) + after
}

func (m *Model) renderFilterCursor(char string) string {
	m.filterCursor.SetChar(char)
	return m.filterCursor.View()
}
