package events

import "github.com/atomicstack/eventdesk/internal/logging"

type FormTracer struct{}

type formReason string

const (
	FormReasonEscape  formReason = "escape"
	FormReasonInvalid formReason = "invalid"
	FormReasonBusy    formReason = "busy"
)

var Form = FormTracer{}

func (FormTracer) Open(action string) {
	logging.Trace("form.open", map[string]interface{}{"action": action})
}

func (FormTracer) Focus(field string) {
	logging.Trace("form.focus", map[string]interface{}{"field": field})
}

func (FormTracer) Submit(action string, fields int) {
	logging.Trace("form.submit", map[string]interface{}{"action": action, "fields": fields})
}

func (FormTracer) Reject(reason formReason, detail string) {
	logging.Trace("form.reject", map[string]interface{}{"reason": string(reason), "detail": detail})
}

func (FormTracer) Close(reason formReason) {
	logging.Trace("form.close", map[string]interface{}{"reason": string(reason)})
}

func (FormTracer) Complete(kind, message string) {
	logging.Trace("form.complete", map[string]interface{}{"kind": kind, "message": message})
}
