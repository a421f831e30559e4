package events

import "github.com/atomicstack/eventdesk/internal/logging"

type WatcherTracer struct{}

var Watcher = WatcherTracer{}

func (WatcherTracer) Poll(kind string, count int, err error) {
	payload := map[string]interface{}{"kind": kind, "count": count}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("watcher.poll", payload)
}
