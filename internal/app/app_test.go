package app

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/eventdesk/internal/dashboard"
	"github.com/atomicstack/eventdesk/internal/testutil"
	"github.com/atomicstack/eventdesk/internal/ui"
)

func TestRunRequiresClient(t *testing.T) {
	assert.Error(t, Run(context.Background(), Config{}, nil))
}

func TestNewModelLoadsEventsWithoutWatcher(t *testing.T) {
	d := testutil.NewDashboard(t)
	client, err := dashboard.New(dashboard.Options{BaseURL: d.URL})
	require.NoError(t, err)

	m := NewModel(context.Background(), Config{Width: 100, Height: 30}, client)
	h := ui.NewHarness(m)
	h.Init()
	assert.Len(t, m.Events().Items, 3)
}

func TestNewModelFeedsFromWatcher(t *testing.T) {
	d := testutil.NewDashboard(t)
	client, err := dashboard.New(dashboard.Options{BaseURL: d.URL})
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	m := NewModel(ctx, Config{Refresh: time.Hour}, client)
	cmd := m.Init()
	require.NotNil(t, cmd)
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		msg = batch[0]()
	}
	m.Update(msg)
	assert.Len(t, m.Events().Items, 3)
}
