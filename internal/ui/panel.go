package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/eventdesk/internal/dashboard"
	"github.com/atomicstack/eventdesk/internal/fragment"
	"github.com/atomicstack/eventdesk/internal/logging"
	"github.com/atomicstack/eventdesk/internal/ui/command"
	uistate "github.com/atomicstack/eventdesk/internal/ui/state"
)

const (
	panelMinWidth  = 40  // below this the panel moves under the list
	panelFraction  = 0.6 // share of the width given to the side panel
	panelMinHeight = 6

	placeholderText = "Select an event to view details."
	loadingText     = "Loading details…"
)

type detailLoadedMsg struct {
	ticket   uistate.Ticket
	fragment dashboard.Fragment
	err      error
}

// panelRender caches the wrapped panel body for one panel state and width.
type panelRender struct {
	seq   int
	state uistate.PanelState
	width int
	lines []string
}

// loadDetails moves the panel to loading and returns the fetch command.
func (m *Model) loadDetails(id string) tea.Cmd {
	ticket := m.panel.Begin(id)
	if m.client == nil {
		m.panel.Resolve(ticket, "", &dashboard.TransportError{Message: dashboard.DetailsFailedMessage})
		return nil
	}
	ctx, cancel := context.WithCancel(m.ctx)
	m.panel.Attach(ticket, cancel)
	client := m.client
	return m.bus.Execute(ctx, command.Request{
		ID:    "details:" + id,
		Label: id,
		Run: func(ctx context.Context) tea.Msg {
			frag, err := client.FetchDetails(ctx, ticket.EventID)
			return detailLoadedMsg{ticket: ticket, fragment: frag, err: err}
		},
	})
}

func (m *Model) handleDetailLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(detailLoadedMsg)
	if !ok {
		return nil
	}
	if !m.panel.Resolve(loaded.ticket, loaded.fragment.HTML, loaded.err) {
		return nil
	}
	if loaded.err != nil {
		log := logging.Component("ui")
		log.Warn().Err(loaded.err).Str("event", loaded.ticket.EventID).Msg("detail request failed")
	}
	return nil
}

// panelBody returns the wrapped body lines for the current panel state.
func (m *Model) panelBody(width int) []string {
	p := m.panel
	switch p.State() {
	case uistate.PanelLoading:
		return []string{m.spinner.View() + " " + loadingText}
	case uistate.PanelPlaceholder:
		return []string{placeholderText}
	}
	c := m.panelCache
	if c.seq == p.Seq() && c.state == p.State() && c.width == width && c.lines != nil {
		return c.lines
	}
	var lines []string
	if p.State() == uistate.PanelError {
		lines = fragment.Render(p.Err(), width)
		if len(lines) == 0 {
			lines = []string{dashboard.DetailsFailedMessage}
		}
	} else {
		lines = fragment.Render(p.Content(), width)
		if len(lines) == 0 {
			lines = []string{""}
		}
	}
	m.panelCache = panelRender{seq: p.Seq(), state: p.State(), width: width, lines: lines}
	return lines
}

func (m *Model) panelTitle() string {
	id := m.panel.EventID()
	if id == "" {
		return "Details"
	}
	label := id
	if evt, ok := m.store.Lookup(id); ok && evt.Name != "" {
		label = evt.Name
	}
	return "Details: " + label
}

func (m *Model) panelBodyStyle() *lipgloss.Style {
	switch m.panel.State() {
	case uistate.PanelError:
		return styles.PanelError
	case uistate.PanelPlaceholder:
		return styles.PanelPlaceholder
	case uistate.PanelLoading:
		return styles.Loading
	default:
		return styles.PanelBody
	}
}

// sidePanelWidth is the width of the right-hand panel, or 0 when the
// terminal is too narrow to split.
func (m *Model) sidePanelWidth() int {
	w := int(float64(m.viewWidth()) * panelFraction)
	if w < panelMinWidth {
		return 0
	}
	return w
}

// renderPanel draws the bordered detail panel with exactly height rows and
// width columns.
func (m *Model) renderPanel(width, height int) string {
	const (
		tlc = "╭"
		trc = "╮"
		blc = "╰"
		brc = "╯"
		hz  = "─"
		vt  = "│"
	)
	innerW := max(width-2, 1)
	innerH := max(height-2, 1)

	body := m.panelBody(innerW)
	m.panel.ClampOffset(len(body), innerH)
	start := m.panel.Offset()
	end := min(start+innerH, len(body))
	visible := body[start:end]

	scrollSeg := ""
	if len(body) > innerH {
		scrollSeg = fmt.Sprintf(" %d/%d ", end, len(body))
	}
	titleSeg := " " + m.panelTitle() + " "
	dashes := width - 4 - lipgloss.Width(titleSeg) - len([]rune(scrollSeg))
	if dashes < 0 {
		scrollSeg = ""
		dashes = width - 4 - lipgloss.Width(titleSeg)
	}
	if dashes < 0 {
		titleSeg = truncate.StringWithTail(titleSeg, uint(max(width-4, 1)), "…")
		dashes = max(width-4-lipgloss.Width(titleSeg), 0)
	}
	border := *styles.PanelBorder
	title := titleSeg
	if styles.PanelTitle != nil {
		title = styles.PanelTitle.Render(titleSeg)
	}

	bodyStyle := m.panelBodyStyle()
	rows := make([]string, 0, innerH+2)
	rows = append(rows, border.Render(tlc+hz)+title+border.Render(strings.Repeat(hz, dashes))+border.Render(scrollSeg+hz+trc))
	for i := 0; i < innerH; i++ {
		var content string
		if i < len(visible) {
			content = visible[i]
		}
		w := lipgloss.Width(content)
		if w > innerW {
			content = truncate.StringWithTail(content, uint(innerW-1), "…")
			w = lipgloss.Width(content)
		}
		if w < innerW {
			content += strings.Repeat(" ", innerW-w)
		}
		if bodyStyle != nil && m.panel.State() != uistate.PanelLoading {
			content = bodyStyle.Render(content)
		}
		rows = append(rows, border.Render(vt)+content+border.Render(vt))
	}
	rows = append(rows, border.Render(blc+strings.Repeat(hz, innerW)+brc))
	return strings.Join(rows, "\n")
}

// panelInnerHeight is the number of body rows the panel shows in the
// current layout.
func (m *Model) panelInnerHeight() int {
	if m.sidePanelWidth() > 0 {
		return max(m.viewHeight()-m.bottomBarRows()-2, 1)
	}
	return max(m.stackedPanelHeight()-2, 1)
}

func (m *Model) panelInnerWidth() int {
	if w := m.sidePanelWidth(); w > 0 {
		return max(w-2, 1)
	}
	return max(m.viewWidth()-2, 1)
}

func (m *Model) scrollPanel(delta int) {
	switch m.panel.State() {
	case uistate.PanelContent, uistate.PanelError:
	default:
		return
	}
	total := len(m.panelBody(m.panelInnerWidth()))
	m.panel.Scroll(delta, total, m.panelInnerHeight())
}

// handleMouseMsg scrolls the panel with the mouse wheel.
func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok || m.mode != ModeEvents {
		return nil
	}
	switch ev.Button {
	case tea.MouseButtonWheelUp:
		m.scrollPanel(-panelScrollStep)
	case tea.MouseButtonWheelDown:
		m.scrollPanel(panelScrollStep)
	}
	return nil
}
