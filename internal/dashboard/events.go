package dashboard

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/net/html"

	"github.com/atomicstack/eventdesk/internal/fragment"
)

// Event is one row of the manage-events table.
type Event struct {
	ID            string
	Name          string
	Date          string
	Time          string
	Location      string
	Registrations string
	Status        string
	// Cells holds every labelled cell keyed by its data-label, including
	// the ones copied into the named fields above.
	Cells map[string]string
}

const eventsFailedMessage = "Failed to load events."

// ListEvents fetches and parses the event table fragment.
func (c *Client) ListEvents(ctx context.Context) ([]Event, error) {
	target, err := c.resolve(c.eventsPath)
	if err != nil {
		return nil, &TransportError{Message: eventsFailedMessage, Err: err}
	}
	header := http.Header{}
	header.Set("Accept", "text/html")
	resp, err := c.send(ctx, http.MethodGet, target, nil, header)
	if err != nil {
		return nil, &TransportError{Message: eventsFailedMessage, Err: err}
	}
	if !resp.ok() {
		body := string(resp.body)
		msg := strings.TrimSpace(fragment.PlainText(body))
		if msg == "" {
			msg = eventsFailedMessage
		}
		return nil, &TransportError{Status: resp.status, Message: msg, Body: body}
	}
	return ParseEvents(string(resp.body))
}

// ParseEvents extracts rows carrying a data-event-id attribute. Cells are
// read from td elements with a data-label attribute; rows without an id
// are skipped.
func ParseEvents(markup string) ([]Event, error) {
	if !strings.Contains(strings.ToLower(markup), "<table") {
		markup = "<table>" + markup + "</table>"
	}
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, &LogicalError{Message: "unreadable event list: " + err.Error()}
	}
	var out []Event
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			if id := strings.TrimSpace(attr(n, "data-event-id")); id != "" {
				out = append(out, parseRow(id, n))
				return
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return out, nil
}

func parseRow(id string, row *html.Node) Event {
	evt := Event{ID: id, Cells: map[string]string{}}
	for cell := row.FirstChild; cell != nil; cell = cell.NextSibling {
		if cell.Type != html.ElementNode || (cell.Data != "td" && cell.Data != "th") {
			continue
		}
		label := strings.TrimSpace(attr(cell, "data-label"))
		if label == "" {
			continue
		}
		value := fragment.NodeText(cell)
		evt.Cells[label] = value
		switch strings.ToLower(label) {
		case "event name", "name", "title":
			evt.Name = value
		case "date":
			evt.Date = value
		case "time":
			evt.Time = value
		case "location":
			evt.Location = value
		case "registrations":
			evt.Registrations = value
		case "status":
			evt.Status = value
		}
	}
	if evt.Name == "" {
		evt.Name = id
	}
	return evt
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
