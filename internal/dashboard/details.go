package dashboard

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Fragment is the server-rendered detail markup for one event. HTML is kept
// exactly as received.
type Fragment struct {
	EventID   string
	HTML      string
	RequestID string
}

// ErrMissingID is returned when a detail request has no event id.
var ErrMissingID = errors.New("event id required")

// FetchDetails requests the detail fragment for id.
func (c *Client) FetchDetails(ctx context.Context, id string) (Fragment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Fragment{}, &TransportError{Message: DetailsFailedMessage, Err: ErrMissingID}
	}
	target, err := c.resolve(strings.ReplaceAll(c.detailsPath, idPlaceholder, escapeID(id)))
	if err != nil {
		return Fragment{}, &TransportError{Message: DetailsFailedMessage, Err: err}
	}
	header := http.Header{}
	header.Set("Accept", "text/html")
	resp, err := c.send(ctx, http.MethodGet, target, nil, header)
	if err != nil {
		return Fragment{}, &TransportError{Message: DetailsFailedMessage, Err: err}
	}
	if !resp.ok() {
		return Fragment{}, detailsError(resp)
	}
	return Fragment{EventID: id, HTML: string(resp.body), RequestID: resp.requestID}, nil
}

func detailsError(resp response) *TransportError {
	body := string(resp.body)
	msg := strings.TrimSpace(body)
	if msg == "" {
		msg = fmt.Sprintf("Error %d: %s", resp.status, DetailsFailedMessage)
	}
	return &TransportError{Status: resp.status, Message: msg, Body: body}
}
