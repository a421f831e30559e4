package form

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeText(f *EventForm, text string) {
	f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func fillRequired(f *EventForm) {
	f.SetValue("title", "Tech Talk")
	f.SetValue("description", "Talks")
	f.SetValue("date", "2025-03-01")
	f.SetValue("location", "Hall A")
	f.SetValue("start_time", "10:00")
}

func TestNewFormDefaults(t *testing.T) {
	f := New("/events/create/")
	assert.Equal(t, "/events/create/", f.Action())
	assert.Equal(t, IdleLabel, f.SubmitLabel())
	assert.Equal(t, "AUTO", f.Value("manual_status_override"))
	assert.Equal(t, "title", f.FocusedField().Name)
	assert.Equal(t, "Manual Status Override", f.Fields()[7].Label)
	assert.Equal(t, "Start Time", f.Fields()[4].Label)
}

func TestTypingEditsFocusedField(t *testing.T) {
	f := New("")
	typeText(f, "Tech Talk")
	assert.Equal(t, "Tech Talk", f.Value("title"))

	f.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "description", f.FocusedField().Name)
	typeText(f, "Talks")
	assert.Equal(t, "Talks", f.Value("description"))

	f.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	f.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, "manual_close_time", f.FocusedField().Name, "focus wraps")
}

func TestPayloadSerializesEveryField(t *testing.T) {
	f := New("")
	fillRequired(f)
	f.SetValue("manual_status_override", " open_manual ")

	p := f.Payload()
	assert.Len(t, p, len(Fields()))
	assert.Equal(t, "Tech Talk", p["title"])
	assert.Equal(t, "OPEN_MANUAL", p["manual_status_override"])
	assert.Equal(t, "", p["end_time"])
}

func TestValidate(t *testing.T) {
	f := New("")
	errs := f.Validate()
	for _, name := range []string{"title", "description", "date", "location", "start_time"} {
		assert.Equal(t, "required", errs[name], name)
	}
	assert.NotContains(t, errs, "end_time")
	assert.Equal(t, "Title required", f.FirstError())

	fillRequired(f)
	f.SetValue("date", "03/01/2025")
	f.SetValue("end_time", "25:00")
	f.SetValue("max_attendees", "ten")
	errs = f.Validate()
	assert.Equal(t, "must be YYYY-MM-DD", errs["date"])
	assert.Equal(t, "must be HH:MM", errs["end_time"])
	assert.Equal(t, "must be a whole number", errs["max_attendees"])

	f.SetValue("date", "2025-03-01")
	f.SetValue("end_time", "12:30")
	f.SetValue("max_attendees", "50")
	assert.Empty(t, f.Validate())
}

func TestValidateStatusOverride(t *testing.T) {
	cases := []struct {
		value string
		want  string
	}{
		{"AUTO", ""},
		{"OPEN_MANUAL", ""},
		{"closed_manual", ""},
		{"ONGOING", ""},
		{"OPEN", "must be AUTO, OPEN_MANUAL, CLOSED_MANUAL or ONGOING"},
		{"CLOSED", "must be AUTO, OPEN_MANUAL, CLOSED_MANUAL or ONGOING"},
	}
	for _, tc := range cases {
		t.Run(tc.value, func(t *testing.T) {
			f := New("")
			fillRequired(f)
			f.SetValue("manual_status_override", tc.value)
			errs := f.Validate()
			if tc.want == "" {
				assert.NotContains(t, errs, "manual_status_override")
				return
			}
			assert.Equal(t, tc.want, errs["manual_status_override"])
		})
	}
}

func TestSubmitKeys(t *testing.T) {
	f := New("")
	_, submit, cancel := f.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.False(t, submit, "invalid form must not submit")
	assert.False(t, cancel)
	assert.NotEmpty(t, f.Errors())

	fillRequired(f)
	_, submit, _ = f.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.True(t, submit)

	_, submit, _ = f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, submit, "enter before the last field advances focus")
	assert.Equal(t, "description", f.FocusedField().Name)

	f.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	f.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	_, submit, _ = f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, submit)
}

func TestBusyBlocksEditsAndSubmits(t *testing.T) {
	f := New("")
	fillRequired(f)
	f.SetBusy(true)
	assert.Equal(t, BusyLabel, f.SubmitLabel())
	assert.True(t, f.Busy())

	typeText(f, "more")
	assert.Equal(t, "Tech Talk", f.Value("title"))

	_, submit, _ := f.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.False(t, submit)

	f.SetBusy(false)
	assert.Equal(t, IdleLabel, f.SubmitLabel())
}

func TestEscapeCancels(t *testing.T) {
	f := New("")
	_, submit, cancel := f.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, submit)
	assert.True(t, cancel)
}

func TestReset(t *testing.T) {
	f := New("")
	fillRequired(f)
	f.SetValue("manual_status_override", "CLOSED_MANUAL")
	f.Update(tea.KeyMsg{Type: tea.KeyTab})
	f.Validate()

	f.Reset()
	for _, field := range Fields() {
		require.Equal(t, field.Default, f.Value(field.Name), field.Name)
	}
	assert.Equal(t, 0, f.Focused())
	assert.Empty(t, f.Errors())
}
