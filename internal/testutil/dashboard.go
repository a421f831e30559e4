package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"
)

// Reply describes a canned response from the fake dashboard.
type Reply struct {
	Status int
	Body   string
	// ContentType defaults to text/html for fragments and application/json
	// for form submissions.
	ContentType string
	Delay       time.Duration
	// Gate, when set, blocks the handler until it is closed or the request
	// is cancelled.
	Gate <-chan struct{}
}

// Recorded is a request seen by the fake dashboard.
type Recorded struct {
	Method      string
	Path        string
	EscapedPath string
	Header      http.Header
	Form        url.Values
}

// Dashboard is an httptest server that mimics the admin dashboard endpoints.
type Dashboard struct {
	*httptest.Server

	mu        sync.Mutex
	details   map[string]Reply
	events    Reply
	create    Reply
	csrfToken string
	requests  []Recorded
}

const (
	detailsPrefix = "/manage/event/"
	detailsSuffix = "/details/"
	eventsPath    = "/manage/events/"
	createPath    = "/events/create/"
)

// DetailMarkup is the fragment served for ids without an explicit reply.
func DetailMarkup(id string) string {
	return fmt.Sprintf(`<div class="event-details"><h4>Event %s</h4><p><strong>Location:</strong> Hall %s</p></div>`, id, id)
}

// EventRowsMarkup renders a manage-events table for the given ids.
func EventRowsMarkup(ids ...string) string {
	var b strings.Builder
	b.WriteString(`<table class="events"><thead><tr><th>Event Name</th><th>Date</th><th>Registrations</th><th>Status</th></tr></thead><tbody>`)
	for _, id := range ids {
		fmt.Fprintf(&b, `<tr class="clickable-row" data-event-id="%s"><td data-label="Event Name">Event %s</td><td data-label="Date">March %s, 2025</td><td data-label="Registrations">0</td><td data-label="Status">Upcoming</td></tr>`, id, id, id)
	}
	b.WriteString(`</tbody></table>`)
	return b.String()
}

// NewDashboard starts a fake dashboard that is closed when the test ends.
func NewDashboard(t *testing.T) *Dashboard {
	t.Helper()
	d := &Dashboard{
		details: map[string]Reply{},
		events:  Reply{Status: http.StatusOK, Body: EventRowsMarkup("1", "2", "3")},
		create:  Reply{Status: http.StatusOK, Body: `{"status":"success","message":"Event scheduled successfully!"}`},
	}
	d.Server = httptest.NewServer(http.HandlerFunc(d.serve))
	t.Cleanup(d.Close)
	return d
}

// SetDetail overrides the reply for one event id.
func (d *Dashboard) SetDetail(id string, reply Reply) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.details[id] = reply
}

// SetEvents overrides the event list reply.
func (d *Dashboard) SetEvents(reply Reply) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = reply
}

// SetCreate overrides the form submission reply.
func (d *Dashboard) SetCreate(reply Reply) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.create = reply
}

// RequireCSRF makes the create endpoint issue token on GET and reject
// submissions that do not echo it.
func (d *Dashboard) RequireCSRF(token string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.csrfToken = token
}

// Requests returns every request received so far.
func (d *Dashboard) Requests() []Recorded {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Recorded, len(d.requests))
	copy(out, d.requests)
	return out
}

// RequestsTo returns the recorded requests whose path starts with prefix.
func (d *Dashboard) RequestsTo(method, prefix string) []Recorded {
	var out []Recorded
	for _, req := range d.Requests() {
		if req.Method == method && strings.HasPrefix(req.Path, prefix) {
			out = append(out, req)
		}
	}
	return out
}

func (d *Dashboard) serve(w http.ResponseWriter, r *http.Request) {
	rec := Recorded{
		Method:      r.Method,
		Path:        r.URL.Path,
		EscapedPath: r.URL.EscapedPath(),
		Header:      r.Header.Clone(),
	}
	if r.Method == http.MethodPost {
		_ = r.ParseForm()
		rec.Form = r.PostForm
	}
	d.mu.Lock()
	d.requests = append(d.requests, rec)
	d.mu.Unlock()

	escaped := r.URL.EscapedPath()
	switch {
	case strings.HasPrefix(escaped, detailsPrefix) && strings.HasSuffix(escaped, detailsSuffix):
		raw := strings.TrimSuffix(strings.TrimPrefix(escaped, detailsPrefix), detailsSuffix)
		id, err := url.PathUnescape(raw)
		if err != nil {
			http.Error(w, "bad id", http.StatusBadRequest)
			return
		}
		d.mu.Lock()
		reply, ok := d.details[id]
		d.mu.Unlock()
		if !ok {
			reply = Reply{Status: http.StatusOK, Body: DetailMarkup(id)}
		}
		d.write(w, r, reply, "text/html; charset=utf-8")
	case escaped == eventsPath:
		d.mu.Lock()
		reply := d.events
		d.mu.Unlock()
		d.write(w, r, reply, "text/html; charset=utf-8")
	case escaped == createPath:
		d.serveCreate(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (d *Dashboard) serveCreate(w http.ResponseWriter, r *http.Request) {
	d.mu.Lock()
	token := d.csrfToken
	reply := d.create
	d.mu.Unlock()

	if r.Method == http.MethodGet {
		if token != "" {
			http.SetCookie(w, &http.Cookie{Name: "csrftoken", Value: token, Path: "/"})
		}
		d.write(w, r, Reply{Status: http.StatusOK, Body: `<form id="create-event-form" action="/events/create/"></form>`}, "text/html; charset=utf-8")
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if token != "" {
		cookie, err := r.Cookie("csrftoken")
		if err != nil || cookie.Value != token || r.Header.Get("X-CSRFToken") != token {
			http.Error(w, "CSRF verification failed.", http.StatusForbidden)
			return
		}
	}
	d.write(w, r, reply, "application/json")
}

func (d *Dashboard) write(w http.ResponseWriter, r *http.Request, reply Reply, contentType string) {
	if reply.Gate != nil {
		select {
		case <-reply.Gate:
		case <-r.Context().Done():
			return
		}
	}
	if reply.Delay > 0 {
		select {
		case <-time.After(reply.Delay):
		case <-r.Context().Done():
			return
		}
	}
	if reply.ContentType != "" {
		contentType = reply.ContentType
	}
	status := reply.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write([]byte(reply.Body))
}
