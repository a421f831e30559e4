package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"

	"github.com/atomicstack/eventdesk/internal/logging/events"
)

const (
	DefaultDetailsPath  = "/manage/event/{id}/details/"
	DefaultEventsPath   = "/manage/events/?is_ajax=true"
	DefaultCreateAction = "/events/create/"

	idPlaceholder     = "{id}"
	sessionCookieName = "sessionid"
	maxBodyBytes      = 4 << 20
)

// Options configures a Client.
type Options struct {
	BaseURL      string
	SessionID    string
	DetailsPath  string
	EventsPath   string
	CreateAction string
	// Timeout bounds each request. Zero leaves requests bounded only by the
	// caller's context.
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client talks to the dashboard's fragment and form endpoints.
type Client struct {
	base         *url.URL
	detailsPath  string
	eventsPath   string
	createAction string
	timeout      time.Duration
	http         *http.Client
	newID        func() string
}

// New validates opts and returns a ready client.
func New(opts Options) (*Client, error) {
	raw := strings.TrimSpace(opts.BaseURL)
	if raw == "" {
		return nil, errors.New("dashboard: base url required")
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("dashboard: parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("dashboard: base url %q must be absolute", raw)
	}
	details := strings.TrimSpace(opts.DetailsPath)
	if details == "" {
		details = DefaultDetailsPath
	}
	if !strings.Contains(details, idPlaceholder) {
		return nil, fmt.Errorf("dashboard: details path %q must contain %s", details, idPlaceholder)
	}
	eventsPath := strings.TrimSpace(opts.EventsPath)
	if eventsPath == "" {
		eventsPath = DefaultEventsPath
	}
	action := strings.TrimSpace(opts.CreateAction)
	if action == "" {
		action = DefaultCreateAction
	}

	hc := &http.Client{}
	if opts.HTTPClient != nil {
		copied := *opts.HTTPClient
		hc = &copied
	}
	if hc.Jar == nil {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("dashboard: cookie jar: %w", err)
		}
		hc.Jar = jar
	}
	if session := strings.TrimSpace(opts.SessionID); session != "" {
		hc.Jar.SetCookies(base, []*http.Cookie{{Name: sessionCookieName, Value: session, Path: "/"}})
	}

	return &Client{
		base:         base,
		detailsPath:  details,
		eventsPath:   eventsPath,
		createAction: action,
		timeout:      opts.Timeout,
		http:         hc,
		newID:        uuid.NewString,
	}, nil
}

// BaseURL returns the dashboard root the client was configured with.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// CreateAction returns the configured form action.
func (c *Client) CreateAction() string {
	return c.createAction
}

// DetailsURL returns the absolute detail fragment URL for id. The id is path
// escaped so it cannot address any other resource.
func (c *Client) DetailsURL(id string) string {
	path := strings.ReplaceAll(c.detailsPath, idPlaceholder, escapeID(id))
	u, err := c.resolve(path)
	if err != nil {
		return path
	}
	return u.String()
}

// escapeID path-escapes id as a single segment. Dot segments are
// percent-encoded so reference resolution cannot collapse them.
func escapeID(id string) string {
	escaped := url.PathEscape(strings.TrimSpace(id))
	if escaped == "." || escaped == ".." {
		return strings.ReplaceAll(escaped, ".", "%2E")
	}
	return escaped
}

func (c *Client) resolve(ref string) (*url.URL, error) {
	parsed, err := url.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("dashboard: parse %q: %w", ref, err)
	}
	return c.base.ResolveReference(parsed), nil
}

type response struct {
	status    int
	header    http.Header
	body      []byte
	requestID string
}

func (r response) ok() bool {
	return r.status >= 200 && r.status < 300
}

// send performs one request. Errors are returned only when no response was
// received; status handling is left to the caller.
func (c *Client) send(ctx context.Context, method string, target *url.URL, body io.Reader, header http.Header) (response, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return response{}, err
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	requestID := c.newID()
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	req.Header.Set("X-Request-ID", requestID)

	events.Request.Start(requestID, method, req.URL.String())
	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		events.Request.Failed(requestID, err)
		return response{requestID: requestID}, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		events.Request.Failed(requestID, err)
		return response{requestID: requestID}, fmt.Errorf("read body: %w", err)
	}
	events.Request.Done(requestID, resp.StatusCode, time.Since(started))
	return response{
		status:    resp.StatusCode,
		header:    resp.Header,
		body:      data,
		requestID: requestID,
	}, nil
}
