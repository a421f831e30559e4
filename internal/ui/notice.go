package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/eventdesk/internal/notify"
)

var noticeIcons = map[notify.Kind]string{
	notify.Success: "✓",
	notify.Warning: "!",
	notify.Danger:  "✗",
	notify.Info:    "i",
}

func (m *Model) handleDismissMsg(msg tea.Msg) tea.Cmd {
	dismiss, ok := msg.(notify.DismissMsg)
	if !ok {
		return nil
	}
	m.notices.Dismiss(dismiss.Seq)
	return nil
}

// noticeLine renders the visible notification, if any.
func (m *Model) noticeLine() (styledLine, bool) {
	n, ok := m.notices.Current()
	if !ok {
		return styledLine{}, false
	}
	icon := noticeIcons[n.Kind]
	if icon == "" {
		icon = noticeIcons[notify.Info]
	}
	return styledLine{
		text:  icon + " " + n.Message + "  (ctrl+x to dismiss)",
		style: styles.Notice(string(n.Kind)),
	}, true
}
