package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"sort"
	"strings"
)

const (
	csrfCookieName = "csrftoken"
	csrfHeader     = "X-CSRFToken"
)

// Payload is the flat field map of one form submission.
type Payload map[string]string

// Values encodes the payload for a form-urlencoded body.
func (p Payload) Values() url.Values {
	values := make(url.Values, len(p))
	for k, v := range p {
		values.Set(k, v)
	}
	return values
}

// Keys returns the payload field names in sorted order.
func (p Payload) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// CreateResult is the decoded body of a successful submission.
type CreateResult struct {
	Message     string
	RedirectURL string
	RequestID   string
}

type createResponse struct {
	Status      string `json:"status"`
	Success     *bool  `json:"success"`
	Message     string `json:"message"`
	RedirectURL string `json:"redirect_url"`
}

// succeeded treats an explicit status as authoritative and falls back to the
// boolean success flag when no status is present.
func (r createResponse) succeeded() bool {
	if r.Status != "" {
		return r.Status == "success"
	}
	return r.Success != nil && *r.Success
}

// CreateEvent posts payload to action, or to the configured create action
// when action is empty.
func (c *Client) CreateEvent(ctx context.Context, action string, payload Payload) (CreateResult, error) {
	action = strings.TrimSpace(action)
	if action == "" {
		action = c.createAction
	}
	target, err := c.resolve(action)
	if err != nil {
		return CreateResult{}, &TransportError{Message: GenericServerMessage, Err: err}
	}

	header := http.Header{}
	header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")
	header.Set("Accept", "application/json")
	header.Set("Referer", c.base.String())
	if token := c.csrfToken(ctx, target); token != "" {
		header.Set(csrfHeader, token)
	}

	resp, err := c.send(ctx, http.MethodPost, target, strings.NewReader(payload.Values().Encode()), header)
	if err != nil {
		return CreateResult{}, &TransportError{Message: GenericServerMessage, Err: err}
	}

	var decoded createResponse
	decodeErr := json.Unmarshal(resp.body, &decoded)
	if !resp.ok() {
		msg := GenericServerMessage
		if decodeErr == nil && strings.TrimSpace(decoded.Message) != "" {
			msg = decoded.Message
		}
		return CreateResult{}, &TransportError{Status: resp.status, Message: msg, Body: string(resp.body)}
	}
	if decodeErr != nil {
		return CreateResult{}, &TransportError{Status: resp.status, Message: GenericServerMessage, Body: string(resp.body), Err: decodeErr}
	}
	if !decoded.succeeded() {
		return CreateResult{}, &LogicalError{Message: decoded.Message}
	}
	return CreateResult{
		Message:     decoded.Message,
		RedirectURL: decoded.RedirectURL,
		RequestID:   resp.requestID,
	}, nil
}

// csrfToken returns the token cookie for target, priming the jar with a GET
// of the form fragment when none is stored yet. An empty result means the
// server did not issue one.
func (c *Client) csrfToken(ctx context.Context, target *url.URL) string {
	if token := c.cookie(target, csrfCookieName); token != "" {
		return token
	}
	prime := *target
	query := prime.Query()
	query.Set("is_ajax", "true")
	prime.RawQuery = query.Encode()
	header := http.Header{}
	header.Set("Accept", "text/html")
	if _, err := c.send(ctx, http.MethodGet, &prime, nil, header); err != nil {
		return ""
	}
	return c.cookie(target, csrfCookieName)
}

func (c *Client) cookie(target *url.URL, name string) string {
	if c.http.Jar == nil {
		return ""
	}
	for _, ck := range c.http.Jar.Cookies(target) {
		if ck.Name == name {
			return ck.Value
		}
	}
	return ""
}
