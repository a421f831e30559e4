package ui

import (
	"context"
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/eventdesk/internal/backend"
	"github.com/atomicstack/eventdesk/internal/dashboard"
	"github.com/atomicstack/eventdesk/internal/data/dispatcher"
	"github.com/atomicstack/eventdesk/internal/form"
	"github.com/atomicstack/eventdesk/internal/logging/events"
	"github.com/atomicstack/eventdesk/internal/notify"
	"github.com/atomicstack/eventdesk/internal/state"
	"github.com/atomicstack/eventdesk/internal/theme"
	"github.com/atomicstack/eventdesk/internal/ui/command"
	uistate "github.com/atomicstack/eventdesk/internal/ui/state"
)

type level = uistate.Level

type Mode int

const (
	ModeEvents Mode = iota
	ModeCreate
)

func (m Mode) String() string {
	if m == ModeCreate {
		return "create"
	}
	return "events"
}

const (
	eventsLevelID = "events"
	appTitle      = "Event Desk"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Client is the part of the dashboard client the UI talks to.
type Client interface {
	FetchDetails(ctx context.Context, id string) (dashboard.Fragment, error)
	ListEvents(ctx context.Context) ([]dashboard.Event, error)
	CreateEvent(ctx context.Context, action string, payload dashboard.Payload) (dashboard.CreateResult, error)
	DetailsURL(id string) string
	CreateAction() string
}

// Options configures a Model.
type Options struct {
	Context     context.Context
	Client      Client
	Watcher     *backend.Watcher
	Width       int
	Height      int
	ShowFooter  bool
	NoticeDelay time.Duration
}

// Model implements the Bubble Tea model for the event desk.
type Model struct {
	events     *level
	panel      *uistate.Panel
	panelCache panelRender
	form       *form.EventForm
	notices    *notify.Center
	spinner    spinner.Model
	spinning   bool
	keys       keyMap
	help       help.Model

	errMsg      string
	infoMsg     string
	infoExpire  time.Time
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	mode        Mode
	quitting    bool

	filterCursor      cursor.Model
	filterCursorDirty bool

	handlers map[reflect.Type]msgHandler

	ctx        context.Context
	cancel     context.CancelFunc
	client     Client
	bus        *command.Bus
	backend    *backend.Watcher
	backendErr string
	store      state.EventStore
	dispatcher *dispatcher.Dispatcher
	reloadSeq  int
}

// NewModel builds the UI around a dashboard client.
func NewModel(opts Options) *Model {
	parent := opts.Context
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	store := state.NewEventStore()
	action := ""
	if opts.Client != nil {
		action = opts.Client.CreateAction()
	}
	sp := spinner.New(spinner.WithSpinner(spinner.MiniDot))
	if styles.Loading != nil {
		sp.Style = *styles.Loading
	}
	m := &Model{
		events:     uistate.NewLevel(eventsLevelID, "Events", nil),
		panel:      uistate.NewPanel(),
		form:       form.New(action),
		notices:    notify.NewCenter(opts.NoticeDelay),
		spinner:    sp,
		keys:       defaultKeyMap(),
		help:       help.New(),
		showFooter: opts.ShowFooter,
		mode:       ModeEvents,
		ctx:        ctx,
		cancel:     cancel,
		client:     opts.Client,
		bus:        command.New(),
		backend:    opts.Watcher,
		store:      store,
		dispatcher: dispatcher.New(store),
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	c := cursor.New()
	c.SetMode(cursor.CursorStatic)
	if styles.Cursor != nil {
		c.Style = *styles.Cursor
	}
	if styles.Filter != nil {
		c.TextStyle = *styles.Filter
	}
	c.SetChar(" ")
	m.filterCursor = c
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	} else if cmd := m.reloadCmd(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if m.mode == ModeCreate {
		if handled, cmd := m.handleCreateForm(msg); handled {
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
			return m, m.finishUpdate(cmds)
		}
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):         m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):       m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):  m.handleWindowSizeMsg,
		reflect.TypeOf(spinner.TickMsg{}):    m.handleSpinnerTick,
		reflect.TypeOf(detailLoadedMsg{}):    m.handleDetailLoadedMsg,
		reflect.TypeOf(createResultMsg{}):    m.handleCreateResultMsg,
		reflect.TypeOf(notify.DismissMsg{}):  m.handleDismissMsg,
		reflect.TypeOf(eventsReloadedMsg{}):  m.handleEventsReloadedMsg,
		reflect.TypeOf(backendEventMsg{}):    m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):     m.handleBackendDoneMsg,
		reflect.TypeOf(clipboardResultMsg{}): m.handleClipboardResultMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) setMode(mode Mode) {
	if m.mode == mode {
		return
	}
	m.mode = mode
	events.UI.Mode(mode.String())
}

// quit cancels outstanding requests and stops the program.
func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.cancel()
	if m.backend != nil {
		m.backend.Stop()
	}
	return tea.Quit
}

// startSpinner returns the first spinner tick unless one is already
// running.
func (m *Model) startSpinner() tea.Cmd {
	if m.spinning {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

func (m *Model) handleSpinnerTick(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(spinner.TickMsg)
	if !ok {
		return nil
	}
	if !m.panel.Loading() && !m.form.Busy() {
		m.spinning = false
		return nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(tick)
	return cmd
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.help.Width = m.viewWidth()
	m.syncViewport()
	return nil
}

// Mode reports the active screen.
func (m *Model) Mode() Mode { return m.mode }

// Panel exposes the detail panel state.
func (m *Model) Panel() *uistate.Panel { return m.panel }

// Form exposes the create-event form.
func (m *Model) Form() *form.EventForm { return m.form }

// Notices exposes the notification center.
func (m *Model) Notices() *notify.Center { return m.notices }

// Events exposes the event list level.
func (m *Model) Events() *level { return m.events }
