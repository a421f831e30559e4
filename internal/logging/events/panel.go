package events

import "github.com/atomicstack/eventdesk/internal/logging"

type PanelTracer struct{}

var Panel = PanelTracer{}

func (PanelTracer) Begin(eventID string, seq int) {
	logging.Trace("panel.begin", map[string]interface{}{"event": eventID, "seq": seq})
}

func (PanelTracer) Applied(eventID string, seq int, state string) {
	logging.Trace("panel.applied", map[string]interface{}{"event": eventID, "seq": seq, "state": state})
}

// Stale records a response that arrived after a newer activation.
func (PanelTracer) Stale(eventID string, seq, latest int) {
	logging.Trace("panel.stale", map[string]interface{}{"event": eventID, "seq": seq, "latest": latest})
}

func (PanelTracer) Reset() {
	logging.Trace("panel.reset", nil)
}
