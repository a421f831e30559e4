package form

import (
	"strings"

	"github.com/atomicstack/eventdesk/internal/dashboard"
	"github.com/atomicstack/eventdesk/internal/notify"
)

// DefaultSuccessMessage is shown when the server confirms without a message.
const DefaultSuccessMessage = "Event scheduled successfully!"

// Outcome maps a submission result to the notification the user sees.
// A rejection the server reported in its body is a warning; anything
// that failed on the way there is danger.
func Outcome(res dashboard.CreateResult, err error) (notify.Kind, string) {
	switch dashboard.KindOf(err) {
	case dashboard.KindNone:
		if msg := strings.TrimSpace(res.Message); msg != "" {
			return notify.Success, msg
		}
		return notify.Success, DefaultSuccessMessage
	case dashboard.KindLogical:
		msg := strings.TrimSpace(dashboard.ErrorMessage(err))
		if msg == "" {
			msg = dashboard.GenericServerMessage
		}
		return notify.Warning, "Error: " + msg
	}
	msg := strings.TrimSpace(dashboard.ErrorMessage(err))
	if msg == "" {
		msg = dashboard.GenericServerMessage
	}
	return notify.Danger, msg
}
