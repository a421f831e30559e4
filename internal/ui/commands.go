package ui

import (
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/eventdesk/internal/logging/events"
)

var clipboardWrite = clipboard.WriteAll

type clipboardResultMsg struct {
	text string
	err  error
}

// copyDetailsURL copies the detail URL of the selected row, or of the row
// under the cursor when nothing is selected yet.
func (m *Model) copyDetailsURL() tea.Cmd {
	if m.client == nil {
		return nil
	}
	id := m.events.SelectedID()
	if id == "" {
		item, ok := m.events.Current()
		if !ok {
			return nil
		}
		id = item.ID
	}
	url := m.client.DetailsURL(id)
	return func() tea.Msg {
		return clipboardResultMsg{text: url, err: clipboardWrite(url)}
	}
}

func (m *Model) handleClipboardResultMsg(msg tea.Msg) tea.Cmd {
	res, ok := msg.(clipboardResultMsg)
	if !ok {
		return nil
	}
	events.UI.Copy(res.text, res.err)
	if res.err != nil {
		m.errMsg = "Copy failed: " + res.err.Error()
		return nil
	}
	m.setInfo("Copied " + res.text)
	return nil
}

const infoTTL = 5 * time.Second

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(infoTTL)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

// currentInfo returns the status message until it expires.
func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.forceClearInfo()
	}
	return m.infoMsg
}
