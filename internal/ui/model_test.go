package ui

import (
	"context"
	"net/http"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/eventdesk/internal/dashboard"
	"github.com/atomicstack/eventdesk/internal/form"
	"github.com/atomicstack/eventdesk/internal/notify"
	"github.com/atomicstack/eventdesk/internal/testutil"
	uistate "github.com/atomicstack/eventdesk/internal/ui/state"
)

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestHarness(t *testing.T, d *testutil.Dashboard, width, height int) *Harness {
	t.Helper()
	client, err := dashboard.New(dashboard.Options{BaseURL: d.URL})
	require.NoError(t, err)
	m := NewModel(Options{
		Context:     context.Background(),
		Client:      client,
		Width:       width,
		Height:      height,
		NoticeDelay: notify.DefaultDelay,
	})
	h := NewHarness(m)
	h.Init()
	return h
}

func TestInitLoadsEvents(t *testing.T) {
	d := testutil.NewDashboard(t)
	h := newTestHarness(t, d, 120, 30)

	items := h.Model().Events().Items
	require.Len(t, items, 3)
	assert.Equal(t, "1", items[0].ID)
	assert.Equal(t, "Event 1", items[0].Label)
	assert.Contains(t, h.View(), "Event 2")
	assert.Contains(t, h.View(), "3 events")
}

func TestActivateShowsLoadingThenContent(t *testing.T) {
	d := testutil.NewDashboard(t)
	h := newTestHarness(t, d, 120, 30)
	m := h.Model()

	_, cmd := m.Update(keyEnter)
	assert.Equal(t, uistate.PanelLoading, m.Panel().State())
	assert.Contains(t, h.View(), loadingText)

	h.processCmd(cmd)
	assert.Equal(t, uistate.PanelContent, m.Panel().State())
	assert.Equal(t, "1", m.Panel().EventID())
	assert.Contains(t, h.View(), "Hall 1")
	assert.Contains(t, h.View(), "Details: Event 1")
	assert.Equal(t, 1, m.Events().SelectedCount())
}

func TestDetailRequestTargetsActivatedRow(t *testing.T) {
	d := testutil.NewDashboard(t)
	d.SetEvents(testutil.Reply{Status: http.StatusOK, Body: testutil.EventRowsMarkup("7", "42")})
	h := newTestHarness(t, d, 120, 30)

	h.Send(keyDown)
	h.Send(keyEnter)

	reqs := d.RequestsTo(http.MethodGet, "/manage/event/")
	require.Len(t, reqs, 1)
	assert.Equal(t, "/manage/event/42/details/", reqs[0].Path)
	assert.Contains(t, h.View(), "Hall 42")
}

func TestOnlyOneRowSelected(t *testing.T) {
	d := testutil.NewDashboard(t)
	h := newTestHarness(t, d, 120, 30)
	m := h.Model()

	h.Send(keyEnter)
	h.Send(keyDown)
	h.Send(keyEnter)

	assert.Equal(t, 1, m.Events().SelectedCount())
	assert.Equal(t, "2", m.Events().SelectedID())
	assert.False(t, m.Events().IsSelected("1"))
	assert.Equal(t, 1, strings.Count(h.View(), "●"))
}

func TestDetailErrorShowsServerBody(t *testing.T) {
	d := testutil.NewDashboard(t)
	d.SetDetail("1", testutil.Reply{Status: http.StatusInternalServerError, Body: "<p>Boom</p>"})
	h := newTestHarness(t, d, 120, 30)

	h.Send(keyEnter)
	p := h.Model().Panel()
	assert.Equal(t, uistate.PanelError, p.State())
	assert.Equal(t, http.StatusInternalServerError, p.Status())
	assert.Contains(t, h.View(), "Boom")
}

func TestDetailErrorWithoutBodyFallsBack(t *testing.T) {
	d := testutil.NewDashboard(t)
	d.SetDetail("1", testutil.Reply{Status: http.StatusNotFound})
	h := newTestHarness(t, d, 120, 30)

	h.Send(keyEnter)
	assert.Contains(t, h.Model().Panel().Err(), "Error 404")
	assert.Contains(t, h.View(), "Error 404")
}

func TestStaleDetailResultIsIgnored(t *testing.T) {
	d := testutil.NewDashboard(t)
	h := newTestHarness(t, d, 120, 30)
	m := h.Model()

	_, first := m.Update(keyEnter)
	m.Update(keyDown)
	_, second := m.Update(keyEnter)

	h.processCmd(second)
	h.processCmd(first)

	assert.Equal(t, uistate.PanelContent, m.Panel().State())
	assert.Equal(t, "2", m.Panel().EventID())
	assert.Contains(t, m.Panel().Content(), "Event 2")
}

func TestLateResultForOldTicketIsDropped(t *testing.T) {
	d := testutil.NewDashboard(t)
	h := newTestHarness(t, d, 120, 30)
	m := h.Model()

	h.Send(keyEnter)
	h.Send(detailLoadedMsg{
		ticket:   uistate.Ticket{Seq: m.Panel().Seq() - 1, EventID: "9"},
		fragment: dashboard.Fragment{EventID: "9", HTML: "<p>old</p>"},
	})
	assert.Equal(t, "1", m.Panel().EventID())
	assert.NotContains(t, m.Panel().Content(), "old")
}

func fillForm(m *Model) {
	f := m.Form()
	f.SetValue("title", "Tech Talk")
	f.SetValue("description", "Talks")
	f.SetValue("date", "2025-03-01")
	f.SetValue("location", "Hall A")
	f.SetValue("start_time", "10:00")
}

func TestCreateSuccessShowsNoticeAndResetsForm(t *testing.T) {
	d := testutil.NewDashboard(t)
	h := newTestHarness(t, d, 120, 30)
	m := h.Model()

	h.Send(tea.KeyMsg{Type: tea.KeyCtrlN})
	require.Equal(t, ModeCreate, m.Mode())
	fillForm(m)
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlS})

	posts := d.RequestsTo(http.MethodPost, "/events/create/")
	require.Len(t, posts, 1)
	assert.Equal(t, "Tech Talk", posts[0].Form.Get("title"))
	assert.Equal(t, "AUTO", posts[0].Form.Get("manual_status_override"))

	n, ok := m.Notices().Current()
	require.True(t, ok)
	assert.Equal(t, notify.Success, n.Kind)
	assert.Equal(t, "Event scheduled successfully!", n.Message)
	assert.False(t, m.Form().Busy())
	assert.Equal(t, form.IdleLabel, m.Form().SubmitLabel())
	assert.Equal(t, "", m.Form().Value("title"))
	assert.Contains(t, h.View(), "Event scheduled successfully!")

	require.Equal(t, 1, h.PendingTimers())
	h.FireTimers()
	_, ok = m.Notices().Current()
	assert.False(t, ok)
	assert.NotContains(t, h.View(), "Event scheduled successfully!")
}

func TestCreateLogicalFailureShowsWarning(t *testing.T) {
	d := testutil.NewDashboard(t)
	d.SetCreate(testutil.Reply{Status: http.StatusOK, Body: `{"status":"error","message":"Duplicate"}`})
	h := newTestHarness(t, d, 120, 30)
	m := h.Model()

	h.Send(tea.KeyMsg{Type: tea.KeyCtrlN})
	fillForm(m)
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlS})

	n, ok := m.Notices().Current()
	require.True(t, ok)
	assert.Equal(t, notify.Warning, n.Kind)
	assert.Equal(t, "Error: Duplicate", n.Message)
	assert.False(t, m.Form().Busy())
	assert.Equal(t, "Tech Talk", m.Form().Value("title"), "form keeps input after a failure")
}

func TestCreateTransportFailureShowsDanger(t *testing.T) {
	d := testutil.NewDashboard(t)
	d.SetCreate(testutil.Reply{Status: http.StatusConflict, Body: `{"message":"X"}`})
	h := newTestHarness(t, d, 120, 30)
	m := h.Model()

	h.Send(tea.KeyMsg{Type: tea.KeyCtrlN})
	fillForm(m)
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlS})

	n, ok := m.Notices().Current()
	require.True(t, ok)
	assert.Equal(t, notify.Danger, n.Kind)
	assert.Equal(t, "X", n.Message)
	assert.False(t, m.Form().Busy())
}

func TestCreateTransportFailureWithoutMessage(t *testing.T) {
	d := testutil.NewDashboard(t)
	d.SetCreate(testutil.Reply{Status: http.StatusInternalServerError, Body: "oops"})
	h := newTestHarness(t, d, 120, 30)
	m := h.Model()

	h.Send(tea.KeyMsg{Type: tea.KeyCtrlN})
	fillForm(m)
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlS})

	n, ok := m.Notices().Current()
	require.True(t, ok)
	assert.Equal(t, dashboard.GenericServerMessage, n.Message)
}

func TestSubmitWhileBusyIsIgnored(t *testing.T) {
	d := testutil.NewDashboard(t)
	h := newTestHarness(t, d, 120, 30)
	m := h.Model()

	h.Send(tea.KeyMsg{Type: tea.KeyCtrlN})
	fillForm(m)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.True(t, m.Form().Busy())
	assert.Contains(t, h.View(), form.BusyLabel)

	_, again := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Nil(t, again)

	h.processCmd(cmd)
	assert.Len(t, d.RequestsTo(http.MethodPost, "/events/create/"), 1)
	assert.False(t, m.Form().Busy())
}

func TestInvalidFormDoesNotSubmit(t *testing.T) {
	d := testutil.NewDashboard(t)
	h := newTestHarness(t, d, 120, 30)

	h.Send(tea.KeyMsg{Type: tea.KeyCtrlN})
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.Empty(t, d.RequestsTo(http.MethodPost, "/events/create/"))
	assert.Contains(t, h.View(), "Title required")
}

func TestEscapeLeavesForm(t *testing.T) {
	d := testutil.NewDashboard(t)
	h := newTestHarness(t, d, 120, 30)

	h.Send(tea.KeyMsg{Type: tea.KeyCtrlN})
	assert.Contains(t, h.View(), createFormTitle)
	h.Send(keyEsc)
	assert.Equal(t, ModeEvents, h.Model().Mode())
	assert.False(t, h.Quitting())
}

func TestDismissKeyClosesNotice(t *testing.T) {
	d := testutil.NewDashboard(t)
	h := newTestHarness(t, d, 120, 30)
	m := h.Model()

	m.Notices().Show(notify.Info, "hello")
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlX})
	_, ok := m.Notices().Current()
	assert.False(t, ok)
}

func TestReloadFailureKeepsRows(t *testing.T) {
	d := testutil.NewDashboard(t)
	h := newTestHarness(t, d, 120, 30)

	d.SetEvents(testutil.Reply{Status: http.StatusInternalServerError, Body: "<p>down</p>"})
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlR})

	assert.Len(t, h.Model().Events().Items, 3)
	assert.Contains(t, h.View(), "Failed to load events: down")
}

func TestCtrlCQuits(t *testing.T) {
	d := testutil.NewDashboard(t)
	h := newTestHarness(t, d, 120, 30)

	h.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, h.Quitting())
	assert.Equal(t, "", h.View())
}
