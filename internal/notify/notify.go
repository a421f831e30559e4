// Package notify holds the single transient notification shown to the user.
package notify

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/eventdesk/internal/logging/events"
)

// Kind selects how a notice is presented.
type Kind string

const (
	Success Kind = "success"
	Warning Kind = "warning"
	Danger  Kind = "danger"
	Info    Kind = "info"
)

// DefaultDelay is how long a notice stays up before it is dismissed.
const DefaultDelay = 4 * time.Second

// Notice is one notification. Every notice can be dismissed by the user.
type Notice struct {
	Seq     int
	Kind    Kind
	Message string
	Shown   time.Time
}

// DismissMsg asks the model to close the notice with the given sequence.
type DismissMsg struct {
	Seq int
}

// ScheduleFunc arranges for fn to be delivered after d. tea.Tick satisfies it.
type ScheduleFunc func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd

// Center keeps at most one notice on screen.
type Center struct {
	delay    time.Duration
	seq      int
	current  *Notice
	now      func() time.Time
	schedule ScheduleFunc
}

// NewCenter returns a center whose notices close after delay. A delay of
// zero or less keeps notices until dismissed by hand.
func NewCenter(delay time.Duration) *Center {
	return &Center{delay: delay, now: time.Now, schedule: tea.Tick}
}

// SetSchedule replaces the timer used for auto-dismissal.
func (c *Center) SetSchedule(fn ScheduleFunc) {
	if fn == nil {
		fn = tea.Tick
	}
	c.schedule = fn
}

// Delay reports the auto-dismiss delay.
func (c *Center) Delay() time.Duration {
	return c.delay
}

// Show replaces the current notice and returns the command that will
// dismiss it.
func (c *Center) Show(kind Kind, message string) (Notice, tea.Cmd) {
	c.seq++
	n := Notice{Seq: c.seq, Kind: kind, Message: message, Shown: c.now()}
	c.current = &n
	events.Notice.Show(string(kind), message, n.Seq)
	if c.delay <= 0 {
		return n, nil
	}
	seq := n.Seq
	return n, c.schedule(c.delay, func(time.Time) tea.Msg {
		return DismissMsg{Seq: seq}
	})
}

// Dismiss closes the current notice if it still has sequence seq. Timers
// belonging to replaced notices therefore have no effect.
func (c *Center) Dismiss(seq int) bool {
	if c.current == nil || c.current.Seq != seq {
		return false
	}
	c.current = nil
	events.Notice.Dismiss(seq, true)
	return true
}

// DismissCurrent closes whatever notice is showing.
func (c *Center) DismissCurrent() bool {
	if c.current == nil {
		return false
	}
	seq := c.current.Seq
	c.current = nil
	events.Notice.Dismiss(seq, false)
	return true
}

// Current returns the visible notice.
func (c *Center) Current() (Notice, bool) {
	if c.current == nil {
		return Notice{}, false
	}
	return *c.current, true
}
