package notify

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scheduled struct {
	delay time.Duration
	fn    func(time.Time) tea.Msg
}

func recordingCenter(delay time.Duration) (*Center, *[]scheduled) {
	var pending []scheduled
	c := NewCenter(delay)
	c.SetSchedule(func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
		pending = append(pending, scheduled{delay: d, fn: fn})
		return func() tea.Msg { return fn(time.Time{}) }
	})
	return c, &pending
}

func TestShowSchedulesDismissal(t *testing.T) {
	c, pending := recordingCenter(DefaultDelay)

	n, cmd := c.Show(Success, "Event scheduled")
	require.NotNil(t, cmd)
	require.Len(t, *pending, 1)
	assert.Equal(t, 4*time.Second, (*pending)[0].delay)

	cur, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, n, cur)
	assert.Equal(t, Success, cur.Kind)

	msg := cmd()
	assert.Equal(t, DismissMsg{Seq: n.Seq}, msg)
	assert.True(t, c.Dismiss(msg.(DismissMsg).Seq))
	_, ok = c.Current()
	assert.False(t, ok)
}

func TestStaleDismissIsIgnored(t *testing.T) {
	c, _ := recordingCenter(DefaultDelay)

	first, firstCmd := c.Show(Warning, "Error: Duplicate")
	second, _ := c.Show(Danger, "X")
	require.NotEqual(t, first.Seq, second.Seq)

	assert.False(t, c.Dismiss(firstCmd().(DismissMsg).Seq))
	cur, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, "X", cur.Message)
}

func TestDismissCurrent(t *testing.T) {
	c := NewCenter(0)
	assert.False(t, c.DismissCurrent())

	_, cmd := c.Show(Info, "hello")
	assert.Nil(t, cmd, "zero delay disables auto-dismiss")
	assert.True(t, c.DismissCurrent())
	_, ok := c.Current()
	assert.False(t, ok)
}
