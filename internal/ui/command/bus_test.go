package command

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type doneMsg struct{ value string }

func TestExecuteRunsWithContext(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "v")
	cmd := New().Execute(ctx, Request{ID: "x", Run: func(ctx context.Context) tea.Msg {
		return doneMsg{value: ctx.Value(key{}).(string)}
	}})
	assert.Equal(t, doneMsg{value: "v"}, cmd())
}

func TestExecuteWithoutRun(t *testing.T) {
	cmd := New().Execute(context.Background(), Request{ID: "noop"})
	assert.Nil(t, cmd())
}

func TestExecuteSkipsCancelledRequest(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ran := false
	cmd := New().Execute(ctx, Request{ID: "late", Run: func(context.Context) tea.Msg {
		ran = true
		return doneMsg{}
	}})
	cancel()
	assert.Nil(t, cmd())
	assert.False(t, ran)
}
