package events

import "github.com/atomicstack/eventdesk/internal/logging"

type NoticeTracer struct{}

var Notice = NoticeTracer{}

func (NoticeTracer) Show(kind, message string, seq int) {
	logging.Trace("notice.show", map[string]interface{}{"kind": kind, "message": message, "seq": seq})
}

func (NoticeTracer) Dismiss(seq int, auto bool) {
	logging.Trace("notice.dismiss", map[string]interface{}{"seq": seq, "auto": auto})
}
