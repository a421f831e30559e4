package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/eventdesk/internal/format/table"
	uistate "github.com/atomicstack/eventdesk/internal/ui/state"
)

const (
	defaultViewWidth  = 100
	defaultViewHeight = 30

	rowPrefixWidth = 3 // cursor indicator, selection marker, space
)

var (
	columnTitles     = []string{"Name", "Date", "Time", "Location", "Registrations", "Status"}
	columnAlignments = []table.Alignment{
		table.AlignLeft, table.AlignLeft, table.AlignLeft,
		table.AlignLeft, table.AlignRight, table.AlignLeft,
	}
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

func (m *Model) viewWidth() int {
	if m.width > 0 {
		return m.width
	}
	return defaultViewWidth
}

func (m *Model) viewHeight() int {
	if m.height > 0 {
		return m.height
	}
	return defaultViewHeight
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.mode == ModeCreate {
		return m.viewCreate()
	}
	if w := m.sidePanelWidth(); w > 0 {
		return m.viewSideBySide(w)
	}
	return m.viewStacked()
}

func (m *Model) viewCreate() string {
	width := m.viewWidth()
	lines := m.viewCreateForm()
	lines = limitHeight(lines, m.viewHeight()-m.bottomBarRows(), width)
	lines = applyWidth(lines, width)
	return renderLines(append(lines, m.bottomBar(width)...))
}

// viewSideBySide renders the event table on the left and the detail panel
// on the right.
func (m *Model) viewSideBySide(panelW int) string {
	width := m.viewWidth()
	listW := width - panelW
	topH := max(m.viewHeight()-m.bottomBarRows(), 1)

	left := m.listLines(listW)
	if len(left) > topH {
		left = left[:topH]
	}
	for len(left) < topH {
		left = append(left, styledLine{})
	}
	left = applyWidth(left, listW)
	leftRows := strings.Split(renderLines(left), "\n")
	for i, row := range leftRows {
		leftRows[i] = fitWidth(row, listW)
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(leftRows, "\n"), m.renderPanel(panelW, topH))
	return top + "\n" + renderLines(m.bottomBar(width))
}

// viewStacked places the panel under the table when the terminal is too
// narrow to split.
func (m *Model) viewStacked() string {
	width := m.viewWidth()
	listH := max(m.viewHeight()-m.bottomBarRows()-m.stackedPanelHeight(), 1)
	lines := limitHeight(m.listLines(width), listH, width)
	lines = applyWidth(lines, width)
	out := renderLines(lines) + "\n" + m.renderPanel(width, m.stackedPanelHeight())
	return out + "\n" + renderLines(m.bottomBar(width))
}

func (m *Model) stackedPanelHeight() int {
	avail := m.viewHeight() - m.bottomBarRows()
	return max(avail/2, panelMinHeight)
}

// bottomBarRows counts the full-width rows under the main area.
func (m *Model) bottomBarRows() int {
	rows := 1 // status line
	if _, ok := m.notices.Current(); ok {
		rows++
	}
	if m.mode == ModeEvents {
		rows++ // filter prompt
	}
	if m.showFooter {
		rows++
	}
	return rows
}

// maxVisibleRows is the number of event rows that fit in the table area.
func (m *Model) maxVisibleRows() int {
	h := m.viewHeight() - m.bottomBarRows()
	if m.sidePanelWidth() == 0 {
		h -= m.stackedPanelHeight()
	}
	h -= 2 // title and column header
	return max(h, 1)
}

func (m *Model) listTitle() string {
	l := m.events
	title := fmt.Sprintf("%s · %d events", appTitle, len(l.Full))
	if l.Filter != "" {
		title = fmt.Sprintf("%s · %d of %d events", appTitle, len(l.Items), len(l.Full))
	}
	return title
}

// listLines renders the title, the column header and the visible rows.
func (m *Model) listLines(width int) []styledLine {
	lines := []styledLine{{text: m.listTitle(), style: styles.Header}}
	l := m.events
	if len(l.Items) == 0 {
		msg := "(no events)"
		switch {
		case !m.store.Loaded() && m.backendErr == "":
			msg = "Loading events…"
		case l.Filter != "":
			msg = fmt.Sprintf("No matches for %q", l.Filter)
		}
		return append(lines, styledLine{}, styledLine{text: msg, style: styles.Info})
	}

	cols := visibleColumns(l.Items)
	rows := make([][]string, 0, len(l.Items)+1)
	rows = append(rows, pickColumns(columnTitles, cols))
	for _, item := range l.Items {
		rows = append(rows, pickColumns(item.Columns, cols))
	}
	aligns := make([]table.Alignment, len(cols))
	for i, c := range cols {
		aligns[i] = columnAlignments[c]
	}
	formatted := table.Fit(rows, aligns, max(width-rowPrefixWidth, 1))
	lines = append(lines, styledLine{
		text:          strings.Repeat(" ", rowPrefixWidth) + formatted[0],
		style:         styles.ColumnHeader,
		highlightFrom: rowPrefixWidth,
	})

	m.syncViewport()
	start := l.ViewportOffset
	end := min(start+m.maxVisibleRows(), len(l.Items))
	for idx := start; idx < end; idx++ {
		lines = append(lines, m.rowLine(idx, formatted[idx+1], width))
	}
	return lines
}

func (m *Model) rowLine(idx int, text string, width int) styledLine {
	l := m.events
	item := l.Items[idx]
	indicator := " "
	marker := " "
	style := styles.Item
	prefixStyle := styles.ItemIndicator
	if l.IsSelected(item.ID) {
		marker = "●"
		style = styles.SelectedItem
		prefixStyle = styles.SelectedMarker
	}
	if idx == l.Cursor {
		indicator = "▌"
		if !l.IsSelected(item.ID) {
			style = styles.CursorItem
		}
	}
	full := indicator + marker + " " + text
	if pad := width - lipgloss.Width(full); pad > 0 {
		full += strings.Repeat(" ", pad)
	}
	return styledLine{text: full, style: style, prefixStyle: prefixStyle, highlightFrom: 2}
}

// visibleColumns lists the columns holding a value in at least one row.
// The name column is always shown.
func visibleColumns(items []uistate.Item) []int {
	cols := []int{0}
	for c := 1; c < len(columnTitles); c++ {
		for _, item := range items {
			if c < len(item.Columns) && strings.TrimSpace(item.Columns[c]) != "" {
				cols = append(cols, c)
				break
			}
		}
	}
	return cols
}

func pickColumns(values []string, cols []int) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		if c < len(values) {
			out[i] = values[c]
		}
	}
	return out
}

// bottomBar renders the notice, status, filter prompt and help rows.
func (m *Model) bottomBar(width int) []styledLine {
	lines := make([]styledLine, 0, 4)
	if notice, ok := m.noticeLine(); ok {
		lines = append(lines, notice)
	}
	lines = append(lines, m.statusLine())
	if m.mode == ModeEvents {
		lines = append(lines, styledLine{text: m.filterPrompt(), raw: true})
	}
	if m.showFooter {
		var footer string
		if m.mode == ModeCreate {
			footer = m.help.View(formHelp{m.keys})
		} else {
			footer = m.help.View(eventsHelp{m.keys})
		}
		lines = append(lines, styledLine{text: footer, raw: true})
	}
	return applyWidth(lines, width)
}

func (m *Model) statusLine() styledLine {
	switch {
	case m.errMsg != "":
		return styledLine{text: "Error: " + m.errMsg, style: styles.Error}
	case m.backendErr != "":
		return styledLine{text: m.backendErr, style: styles.Error}
	}
	if info := m.currentInfo(); info != "" {
		return styledLine{text: info, style: styles.Info}
	}
	return styledLine{}
}

// fitWidth pads or truncates an ANSI string to exactly width columns.
func fitWidth(row string, width int) string {
	w := lipgloss.Width(row)
	if w > width {
		return truncate.StringWithTail(row, uint(max(width, 0)), "…")
	}
	if w < width {
		return row + strings.Repeat(" ", width-w)
	}
	return row
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			if lipgloss.Width(text) > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		line.text = text
		result[i] = line
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

// truncateText cuts text to width display cells.
func truncateText(text string, width int) string {
	if width <= 0 || lipgloss.Width(text) <= width {
		return text
	}
	if width == 1 {
		return string([]rune(text)[:1])
	}
	return truncate.StringWithTail(text, uint(width), "…")
}
