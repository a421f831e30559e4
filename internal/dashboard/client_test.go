package dashboard

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/eventdesk/internal/testutil"
)

func newTestClient(t *testing.T, d *testutil.Dashboard, mutate ...func(*Options)) *Client {
	t.Helper()
	opts := Options{BaseURL: d.URL}
	for _, fn := range mutate {
		fn(&opts)
	}
	c, err := New(opts)
	require.NoError(t, err)
	return c
}

func TestNewValidatesOptions(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)

	_, err = New(Options{BaseURL: "/relative"})
	assert.Error(t, err)

	_, err = New(Options{BaseURL: "http://example.test", DetailsPath: "/manage/event/details/"})
	assert.Error(t, err)

	c, err := New(Options{BaseURL: "http://example.test"})
	require.NoError(t, err)
	assert.Equal(t, DefaultCreateAction, c.CreateAction())
}

func TestDetailsURLTargetsOnlyTheRequestedID(t *testing.T) {
	c, err := New(Options{BaseURL: "http://example.test/"})
	require.NoError(t, err)

	assert.Equal(t, "http://example.test/manage/event/42/details/", c.DetailsURL("42"))
	assert.Equal(t, "http://example.test/manage/event/a%2F..%2F7/details/", c.DetailsURL("a/../7"))
	assert.Equal(t, "http://example.test/manage/event/%2E%2E/details/", c.DetailsURL(".."))
	assert.Equal(t, "http://example.test/manage/event/%2E/details/", c.DetailsURL(" . "))
	assert.Equal(t, "http://example.test/manage/event/1.5/details/", c.DetailsURL("1.5"))
}

func TestFetchDetailsReturnsFragmentVerbatim(t *testing.T) {
	d := testutil.NewDashboard(t)
	body := "  <div><h4>Spring Fair</h4></div>\n"
	d.SetDetail("42", testutil.Reply{Status: http.StatusOK, Body: body})
	c := newTestClient(t, d)

	frag, err := c.FetchDetails(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "42", frag.EventID)
	assert.Equal(t, body, frag.HTML)
	assert.NotEmpty(t, frag.RequestID)

	reqs := d.RequestsTo(http.MethodGet, "/manage/event/")
	require.Len(t, reqs, 1)
	assert.Equal(t, "/manage/event/42/details/", reqs[0].Path)
	assert.Equal(t, "XMLHttpRequest", reqs[0].Header.Get("X-Requested-With"))
	assert.Equal(t, frag.RequestID, reqs[0].Header.Get("X-Request-ID"))
}

func TestFetchDetailsErrorUsesBody(t *testing.T) {
	d := testutil.NewDashboard(t)
	d.SetDetail("9", testutil.Reply{Status: http.StatusNotFound, Body: "Event not found"})
	c := newTestClient(t, d)

	_, err := c.FetchDetails(context.Background(), "9")
	require.Error(t, err)
	assert.Equal(t, KindTransport, KindOf(err))
	assert.Equal(t, "Event not found", ErrorMessage(err))

	var transport *TransportError
	require.True(t, errors.As(err, &transport))
	assert.Equal(t, http.StatusNotFound, transport.Status)
}

func TestFetchDetailsErrorFallsBackToStatus(t *testing.T) {
	d := testutil.NewDashboard(t)
	d.SetDetail("9", testutil.Reply{Status: http.StatusInternalServerError})
	c := newTestClient(t, d)

	_, err := c.FetchDetails(context.Background(), "9")
	require.Error(t, err)
	assert.Equal(t, "Error 500: Failed to load event details.", ErrorMessage(err))
}

func TestFetchDetailsNetworkFailure(t *testing.T) {
	d := testutil.NewDashboard(t)
	c := newTestClient(t, d)
	d.Close()

	_, err := c.FetchDetails(context.Background(), "1")
	require.Error(t, err)
	assert.Equal(t, KindTransport, KindOf(err))
	assert.Equal(t, "Failed to load event details.", ErrorMessage(err))
}

func TestFetchDetailsHonoursCancellation(t *testing.T) {
	d := testutil.NewDashboard(t)
	gate := make(chan struct{})
	defer close(gate)
	d.SetDetail("slow", testutil.Reply{Gate: gate})
	c := newTestClient(t, d)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := c.FetchDetails(ctx, "slow")
		done <- err
	}()
	cancel()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(5 * time.Second):
		t.Fatal("request was not cancelled")
	}
}

func TestFetchDetailsTimeout(t *testing.T) {
	d := testutil.NewDashboard(t)
	d.SetDetail("slow", testutil.Reply{Delay: 2 * time.Second})
	c := newTestClient(t, d, func(o *Options) { o.Timeout = 50 * time.Millisecond })

	_, err := c.FetchDetails(context.Background(), "slow")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestFetchDetailsRequiresID(t *testing.T) {
	c, err := New(Options{BaseURL: "http://example.test"})
	require.NoError(t, err)
	_, err = c.FetchDetails(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrMissingID)
}

func TestSessionCookieIsSent(t *testing.T) {
	d := testutil.NewDashboard(t)
	c := newTestClient(t, d, func(o *Options) { o.SessionID = "abc123" })

	_, err := c.FetchDetails(context.Background(), "1")
	require.NoError(t, err)
	reqs := d.Requests()
	require.NotEmpty(t, reqs)
	assert.True(t, strings.Contains(reqs[0].Header.Get("Cookie"), "sessionid=abc123"))
}

func TestListEventsParsesRows(t *testing.T) {
	d := testutil.NewDashboard(t)
	c := newTestClient(t, d)

	rows, err := c.ListEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "1", rows[0].ID)
	assert.Equal(t, "Event 1", rows[0].Name)
	assert.Equal(t, "March 1, 2025", rows[0].Date)
	assert.Equal(t, "Upcoming", rows[0].Status)
	assert.Equal(t, "0", rows[0].Cells["Registrations"])

	reqs := d.RequestsTo(http.MethodGet, "/manage/events/")
	require.Len(t, reqs, 1)
	assert.Equal(t, "XMLHttpRequest", reqs[0].Header.Get("X-Requested-With"))
}

func TestListEventsTransportError(t *testing.T) {
	d := testutil.NewDashboard(t)
	d.SetEvents(testutil.Reply{Status: http.StatusInternalServerError, Body: "<p>Failed to load events due to a critical server error.</p>"})
	c := newTestClient(t, d)

	_, err := c.ListEvents(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Failed to load events due to a critical server error.", ErrorMessage(err))
}

func TestParseEventsHandlesBareRows(t *testing.T) {
	rows, err := ParseEvents(`<tr data-event-id="x1"><td data-label="Event Name"> Tech
	Talk </td><td data-label="Location">Hall B</td></tr><tr><td>no id</td></tr>`)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Tech Talk", rows[0].Name)
	assert.Equal(t, "Hall B", rows[0].Location)
}

func TestParseEventsFallsBackToIDForName(t *testing.T) {
	rows, err := ParseEvents(`<table><tr data-event-id="x2"><td data-label="Date">Today</td></tr></table>`)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "x2", rows[0].Name)
}
