package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/eventdesk/internal/dashboard"
	"github.com/atomicstack/eventdesk/internal/form"
	"github.com/atomicstack/eventdesk/internal/logging/events"
	"github.com/atomicstack/eventdesk/internal/notify"
	"github.com/atomicstack/eventdesk/internal/ui/command"
)

const createFormTitle = "Create Event"

type createResultMsg struct {
	result dashboard.CreateResult
	err    error
}

func (m *Model) startCreateForm() tea.Cmd {
	m.errMsg = ""
	m.forceClearInfo()
	m.setMode(ModeCreate)
	return nil
}

// handleCreateForm feeds messages to the form while it is on screen.
// Messages the form does not own fall through to the regular handlers.
func (m *Model) handleCreateForm(msg tea.Msg) (bool, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return false, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return true, m.quit()
	case key.Matches(keyMsg, m.keys.Dismiss):
		m.notices.DismissCurrent()
		return true, nil
	}
	cmd, submit, cancel := m.form.Update(keyMsg)
	if cancel {
		m.setMode(ModeEvents)
		return true, cmd
	}
	if submit {
		return true, m.submitCreate()
	}
	if msg := m.form.FirstError(); msg != "" {
		m.errMsg = msg
	} else {
		m.errMsg = ""
	}
	return true, cmd
}

// submitCreate disables the submit control and posts the form.
func (m *Model) submitCreate() tea.Cmd {
	m.errMsg = ""
	m.form.SetBusy(true)
	if m.client == nil {
		return func() tea.Msg {
			return createResultMsg{err: &dashboard.TransportError{Message: dashboard.GenericServerMessage}}
		}
	}
	payload := m.form.Payload()
	action := m.form.Action()
	client := m.client
	run := m.bus.Execute(m.ctx, command.Request{
		ID:    "event:create",
		Label: payload["title"],
		Run: func(ctx context.Context) tea.Msg {
			res, err := client.CreateEvent(ctx, action, payload)
			return createResultMsg{result: res, err: err}
		},
	})
	return tea.Batch(run, m.startSpinner())
}

// handleCreateResultMsg reports the outcome and always re-enables the
// submit control.
func (m *Model) handleCreateResultMsg(msg tea.Msg) tea.Cmd {
	res, ok := msg.(createResultMsg)
	if !ok {
		return nil
	}
	m.form.SetBusy(false)

	var cmds []tea.Cmd
	kind, text := form.Outcome(res.result, res.err)
	if kind == notify.Success {
		m.form.Reset()
		cmds = append(cmds, m.reloadCmd())
	}
	events.Form.Complete(string(kind), text)
	_, dismiss := m.notices.Show(kind, text)
	cmds = append(cmds, dismiss)
	return tea.Batch(cmds...)
}

func (m *Model) viewCreateForm() []styledLine {
	lines := []styledLine{{text: createFormTitle, style: styles.Header}, {}}
	f := m.form
	labelWidth := 0
	for _, field := range f.Fields() {
		labelWidth = max(labelWidth, len([]rune(field.Label)))
	}
	errs := f.Errors()
	for i, field := range f.Fields() {
		label := field.Label
		if field.Required {
			label += "*"
		}
		label += strings.Repeat(" ", labelWidth+1-len([]rune(label))) + " "
		style := styles.FormLabel
		if i == f.Focused() {
			style = styles.FormFocusedLabel
		}
		if style != nil {
			label = style.Render(label)
		}
		lines = append(lines, styledLine{text: label + f.InputView(i), raw: true})
		if msg, ok := errs[field.Name]; ok {
			lines = append(lines, styledLine{
				text:  strings.Repeat(" ", labelWidth+2) + msg,
				style: styles.FormFieldError,
			})
		}
	}
	lines = append(lines, styledLine{})
	button := "[ " + f.SubmitLabel() + " ]"
	if f.Busy() {
		button = m.spinner.View() + " " + styles.SubmitBusy.Render(button)
	} else {
		button = styles.SubmitIdle.Render(button)
	}
	lines = append(lines, styledLine{text: button, raw: true})
	return lines
}
