package state

import (
	"context"

	"github.com/atomicstack/eventdesk/internal/dashboard"
	"github.com/atomicstack/eventdesk/internal/logging/events"
)

// PanelState is the mode of the detail panel.
type PanelState int

const (
	PanelPlaceholder PanelState = iota
	PanelLoading
	PanelContent
	PanelError
)

func (s PanelState) String() string {
	switch s {
	case PanelLoading:
		return "loading"
	case PanelContent:
		return "content"
	case PanelError:
		return "error"
	default:
		return "placeholder"
	}
}

// Ticket identifies one detail request. Only the ticket returned by the
// most recent Begin can change the panel.
type Ticket struct {
	Seq     int
	EventID string
}

// Panel is the detail panel state machine. It is always in exactly one of
// the placeholder, loading, content or error states.
type Panel struct {
	state   PanelState
	seq     int
	eventID string
	content string
	errMsg  string
	status  int
	offset  int
	cancel  context.CancelFunc
}

// NewPanel returns a panel showing the placeholder.
func NewPanel() *Panel {
	return &Panel{}
}

func (p *Panel) State() PanelState { return p.state }
func (p *Panel) EventID() string   { return p.eventID }
func (p *Panel) Seq() int          { return p.seq }
func (p *Panel) Loading() bool     { return p.state == PanelLoading }

// Content returns the fragment markup while in the content state.
func (p *Panel) Content() string {
	if p.state != PanelContent {
		return ""
	}
	return p.content
}

// Err returns the message shown in the error state.
func (p *Panel) Err() string {
	if p.state != PanelError {
		return ""
	}
	return p.errMsg
}

// Status is the HTTP status of the failed request, or 0 for network
// failures and non-error states.
func (p *Panel) Status() int {
	if p.state != PanelError {
		return 0
	}
	return p.status
}

// Begin switches to loading for id and supersedes any earlier request.
func (p *Panel) Begin(id string) Ticket {
	p.stop()
	p.seq++
	p.state = PanelLoading
	p.eventID = id
	p.content = ""
	p.errMsg = ""
	p.status = 0
	p.offset = 0
	events.Panel.Begin(id, p.seq)
	return Ticket{Seq: p.seq, EventID: id}
}

// Attach records the cancel func of the request behind t. It is called
// right away when t is already stale.
func (p *Panel) Attach(t Ticket, cancel context.CancelFunc) {
	if cancel == nil {
		return
	}
	if t.Seq != p.seq || p.state != PanelLoading {
		cancel()
		return
	}
	p.cancel = cancel
}

// Current reports whether t belongs to the latest request.
func (p *Panel) Current(t Ticket) bool {
	return t.Seq == p.seq && t.EventID == p.eventID
}

// Resolve applies the outcome of the request behind t. Results of
// superseded requests are dropped and Resolve returns false.
func (p *Panel) Resolve(t Ticket, html string, err error) bool {
	if !p.Current(t) || p.state != PanelLoading {
		events.Panel.Stale(t.EventID, t.Seq, p.seq)
		return false
	}
	p.cancel = nil
	if err != nil {
		p.state = PanelError
		p.errMsg = dashboard.ErrorMessage(err)
		if p.errMsg == "" {
			p.errMsg = dashboard.DetailsFailedMessage
		}
		if te, ok := dashboard.AsTransport(err); ok {
			p.status = te.Status
		}
	} else {
		p.state = PanelContent
		p.content = html
	}
	events.Panel.Applied(p.eventID, p.seq, p.state.String())
	return true
}

// Reset cancels any request in flight and shows the placeholder.
func (p *Panel) Reset() {
	p.stop()
	p.seq++
	p.state = PanelPlaceholder
	p.eventID = ""
	p.content = ""
	p.errMsg = ""
	p.status = 0
	p.offset = 0
	events.Panel.Reset()
}

func (p *Panel) stop() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

// Offset is the first visible line of the panel body.
func (p *Panel) Offset() int { return p.offset }

// Scroll moves the panel body by delta lines within total lines of which
// visible fit on screen.
func (p *Panel) Scroll(delta, total, visible int) bool {
	old := p.offset
	p.offset = clamp(p.offset+delta, 0, max(total-visible, 0))
	return p.offset != old
}

// ClampOffset keeps the offset valid after the body is re-rendered.
func (p *Panel) ClampOffset(total, visible int) {
	p.offset = clamp(p.offset, 0, max(total-visible, 0))
}
