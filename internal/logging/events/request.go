package events

import (
	"time"

	"github.com/atomicstack/eventdesk/internal/logging"
)

type RequestTracer struct{}

var Request = RequestTracer{}

func (RequestTracer) Start(requestID, method, url string) {
	logging.Trace("request.start", map[string]interface{}{"id": requestID, "method": method, "url": url})
}

func (RequestTracer) Done(requestID string, status int, elapsed time.Duration) {
	logging.Trace("request.done", map[string]interface{}{
		"id":      requestID,
		"status":  status,
		"elapsed": elapsed.String(),
	})
}

func (RequestTracer) Failed(requestID string, err error) {
	if err == nil {
		return
	}
	logging.Trace("request.failed", map[string]interface{}{"id": requestID, "error": err.Error()})
}
