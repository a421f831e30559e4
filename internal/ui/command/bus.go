package command

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/eventdesk/internal/logging/events"
)

// Request is one unit of asynchronous work started by the UI.
type Request struct {
	ID    string
	Label string
	Run   func(ctx context.Context) tea.Msg
}

// Bus turns requests into Bubble Tea commands and traces their lifecycle.
type Bus struct{}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Execute wraps req into a command that runs it with ctx. A request whose
// context is already done by the time the command runs is skipped.
func (b *Bus) Execute(ctx context.Context, req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		if req.Run == nil || ctx.Err() != nil {
			events.Command.Skip(req.ID, req.Label)
			return nil
		}
		msg := req.Run(ctx)
		events.Command.Result(req.ID, req.Label, fmt.Sprintf("%T", msg))
		return msg
	}
}
