package app

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/eventdesk/internal/backend"
	"github.com/atomicstack/eventdesk/internal/dashboard"
	"github.com/atomicstack/eventdesk/internal/logging/events"
	"github.com/atomicstack/eventdesk/internal/ui"
)

// Config describes the interactive session.
type Config struct {
	Width       int
	Height      int
	ShowFooter  bool
	Refresh     time.Duration
	NoticeDelay time.Duration
}

// NewModel wires the UI model to client. A positive refresh interval
// starts a watcher that keeps the event list current; the caller owns its
// shutdown through ctx.
func NewModel(ctx context.Context, cfg Config, client ui.Client) *ui.Model {
	var watcher *backend.Watcher
	if cfg.Refresh > 0 && client != nil {
		watcher = backend.NewWatcher(ctx, client, cfg.Refresh)
	}
	return ui.NewModel(ui.Options{
		Context:     ctx,
		Client:      client,
		Watcher:     watcher,
		Width:       cfg.Width,
		Height:      cfg.Height,
		ShowFooter:  cfg.ShowFooter,
		NoticeDelay: cfg.NoticeDelay,
	})
}

// Run bootstraps and executes the Bubble Tea program.
func Run(ctx context.Context, cfg Config, client *dashboard.Client) error {
	if client == nil {
		return errors.New("dashboard client required")
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := NewModel(ctx, cfg, client)
	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		err = nil
	}
	events.App.Exit(err)
	return err
}
