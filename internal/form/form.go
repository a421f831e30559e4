// Package form implements the create-event form.
package form

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/atomicstack/eventdesk/internal/dashboard"
	"github.com/atomicstack/eventdesk/internal/logging/events"
)

const (
	IdleLabel = "Schedule Event"
	BusyLabel = "Scheduling…"

	statusAuto = "AUTO"
)

// Field describes one input of the form.
type Field struct {
	Name        string
	Label       string
	Placeholder string
	Default     string
	Required    bool
	CharLimit   int
	check       func(string) string
}

var (
	timePattern   = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
	digitsPattern = regexp.MustCompile(`^\d+$`)
	titleCaser    = cases.Title(language.English)
)

func checkDate(v string) string {
	if _, err := time.Parse("2006-01-02", v); err != nil {
		return "must be YYYY-MM-DD"
	}
	return ""
}

func checkTime(v string) string {
	if !timePattern.MatchString(v) {
		return "must be HH:MM"
	}
	return ""
}

func checkDigits(v string) string {
	if !digitsPattern.MatchString(v) {
		return "must be a whole number"
	}
	return ""
}

func checkStatus(v string) string {
	switch strings.ToUpper(v) {
	case statusAuto, "OPEN_MANUAL", "CLOSED_MANUAL", "ONGOING":
		return ""
	}
	return "must be AUTO, OPEN_MANUAL, CLOSED_MANUAL or ONGOING"
}

func label(name string) string {
	return titleCaser.String(strings.ReplaceAll(name, "_", " "))
}

// Fields returns the inputs of the create-event form in display order.
func Fields() []Field {
	return []Field{
		{Name: "title", Required: true, CharLimit: 200, Placeholder: "Spring Fair"},
		{Name: "description", Required: true, CharLimit: 2000},
		{Name: "date", Required: true, Placeholder: "2025-03-01", check: checkDate},
		{Name: "location", Required: true, CharLimit: 200},
		{Name: "start_time", Required: true, Placeholder: "10:00", check: checkTime},
		{Name: "end_time", Placeholder: "12:00", check: checkTime},
		{Name: "max_attendees", Placeholder: "100", check: checkDigits},
		{Name: "manual_status_override", Default: statusAuto, check: checkStatus},
		{Name: "manual_close_date", Placeholder: "2025-02-28", check: checkDate},
		{Name: "manual_close_time", Placeholder: "18:00", check: checkTime},
	}
}

// EventForm is the create-event form. Keys move focus between fields and
// ctrl+s or enter on the last field submits.
type EventForm struct {
	fields []Field
	inputs []textinput.Model
	focus  int
	action string
	busy   bool
	errs   map[string]string
}

// New returns a form posting to action.
func New(action string) *EventForm {
	f := &EventForm{fields: Fields(), action: action, errs: map[string]string{}}
	f.inputs = make([]textinput.Model, len(f.fields))
	for i := range f.fields {
		field := &f.fields[i]
		if field.Label == "" {
			field.Label = label(field.Name)
		}
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = field.Placeholder
		if field.CharLimit > 0 {
			ti.CharLimit = field.CharLimit
		}
		ti.Cursor.SetMode(cursor.CursorStatic)
		ti.SetValue(field.Default)
		f.inputs[i] = ti
	}
	f.inputs[0].Focus()
	events.Form.Open(action)
	return f
}

func (f *EventForm) Action() string            { return f.action }
func (f *EventForm) Busy() bool                { return f.busy }
func (f *EventForm) Focused() int              { return f.focus }
func (f *EventForm) FocusedField() Field       { return f.fields[f.focus] }
func (f *EventForm) Fields() []Field           { return f.fields }
func (f *EventForm) Errors() map[string]string { return f.errs }

// SubmitLabel is the text of the submit control.
func (f *EventForm) SubmitLabel() string {
	if f.busy {
		return BusyLabel
	}
	return IdleLabel
}

// SetBusy toggles the submit control.
func (f *EventForm) SetBusy(busy bool) {
	f.busy = busy
}

// Value returns the trimmed value of the named field.
func (f *EventForm) Value(name string) string {
	for i, field := range f.fields {
		if field.Name == name {
			return strings.TrimSpace(f.inputs[i].Value())
		}
	}
	return ""
}

// SetValue overwrites the named field.
func (f *EventForm) SetValue(name, value string) bool {
	for i, field := range f.fields {
		if field.Name == name {
			f.inputs[i].SetValue(value)
			delete(f.errs, name)
			return true
		}
	}
	return false
}

// InputView renders the input at index i.
func (f *EventForm) InputView(i int) string {
	if i < 0 || i >= len(f.inputs) {
		return ""
	}
	return f.inputs[i].View()
}

// Payload serializes every field.
func (f *EventForm) Payload() dashboard.Payload {
	p := make(dashboard.Payload, len(f.fields))
	for i, field := range f.fields {
		v := strings.TrimSpace(f.inputs[i].Value())
		if field.Name == "manual_status_override" {
			v = strings.ToUpper(v)
		}
		p[field.Name] = v
	}
	return p
}

// Validate checks required fields and formats. It returns the per-field
// messages and records them for display.
func (f *EventForm) Validate() map[string]string {
	errs := map[string]string{}
	for i, field := range f.fields {
		v := strings.TrimSpace(f.inputs[i].Value())
		if v == "" {
			if field.Required {
				errs[field.Name] = "required"
			}
			continue
		}
		if field.check != nil {
			if msg := field.check(v); msg != "" {
				errs[field.Name] = msg
			}
		}
	}
	f.errs = errs
	return errs
}

// FirstError returns the first validation message in field order.
func (f *EventForm) FirstError() string {
	for _, field := range f.fields {
		if msg, ok := f.errs[field.Name]; ok {
			return fmt.Sprintf("%s %s", field.Label, msg)
		}
	}
	return ""
}

// Reset clears every field and restores defaults.
func (f *EventForm) Reset() {
	for i, field := range f.fields {
		f.inputs[i].SetValue(field.Default)
	}
	f.errs = map[string]string{}
	f.setFocus(0)
}

func (f *EventForm) setFocus(i int) {
	n := len(f.inputs)
	i = ((i % n) + n) % n
	f.inputs[f.focus].Blur()
	f.focus = i
	f.inputs[f.focus].Focus()
	events.Form.Focus(f.fields[f.focus].Name)
}

// Update handles a message. It reports whether the user asked to submit
// or to leave the form.
func (f *EventForm) Update(msg tea.Msg) (tea.Cmd, bool, bool) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			events.Form.Close(events.FormReasonEscape)
			return nil, false, true
		case "tab", "down":
			f.setFocus(f.focus + 1)
			return nil, false, false
		case "shift+tab", "up":
			f.setFocus(f.focus - 1)
			return nil, false, false
		case "ctrl+s":
			return nil, f.trySubmit(), false
		case "enter":
			if f.focus == len(f.inputs)-1 {
				return nil, f.trySubmit(), false
			}
			f.setFocus(f.focus + 1)
			return nil, false, false
		}
		if f.busy {
			return nil, false, false
		}
	}

	updated, cmd := f.inputs[f.focus].Update(msg)
	f.inputs[f.focus] = updated
	delete(f.errs, f.fields[f.focus].Name)
	return cmd, false, false
}

func (f *EventForm) trySubmit() bool {
	if f.busy {
		events.Form.Reject(events.FormReasonBusy, "")
		return false
	}
	if errs := f.Validate(); len(errs) > 0 {
		events.Form.Reject(events.FormReasonInvalid, f.FirstError())
		return false
	}
	events.Form.Submit(f.action, len(f.fields))
	return true
}
