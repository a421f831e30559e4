package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLevel(ids ...string) *Level {
	items := make([]Item, len(ids))
	for i, id := range ids {
		items[i] = Item{ID: id, Label: id}
	}
	return NewLevel("events", "Events", items)
}

func TestCursorMovement(t *testing.T) {
	l := newTestLevel("a", "b", "c", "d", "e")
	assert.Equal(t, 0, l.Cursor)

	assert.True(t, l.MoveCursor(1))
	assert.Equal(t, 1, l.Cursor)
	assert.True(t, l.MoveCursor(-5))
	assert.Equal(t, 0, l.Cursor)

	assert.True(t, l.MoveCursorEnd())
	assert.Equal(t, 4, l.Cursor)
	assert.False(t, l.MoveCursorEnd())
	assert.True(t, l.MoveCursorHome())
	assert.Equal(t, 0, l.Cursor)

	assert.True(t, l.MoveCursorPageDown(2))
	assert.Equal(t, 2, l.Cursor)
	assert.True(t, l.MoveCursorPageDown(2))
	assert.False(t, l.MoveCursorPageDown(2))
	assert.Equal(t, 4, l.Cursor)
	assert.True(t, l.MoveCursorPageUp(10))
	assert.Equal(t, 0, l.Cursor)

	empty := newTestLevel()
	empty.Cursor = 3
	assert.False(t, empty.MoveCursorHome())
	assert.Equal(t, 0, empty.Cursor)
}

func TestEnsureCursorVisible(t *testing.T) {
	l := newTestLevel("a", "b", "c", "d", "e")
	l.Cursor = 4
	l.EnsureCursorVisible(2)
	assert.Equal(t, 3, l.ViewportOffset)

	l.Cursor = 1
	l.EnsureCursorVisible(3)
	assert.Equal(t, 1, l.ViewportOffset)

	l.ViewportOffset = 4
	l.EnsureCursorVisible(0)
	assert.Equal(t, 0, l.ViewportOffset)
}

func TestSingleSelection(t *testing.T) {
	l := newTestLevel("1", "2", "3")
	assert.Equal(t, 0, l.SelectedCount())

	require.True(t, l.Select("1"))
	require.True(t, l.Select("3"))
	assert.Equal(t, "3", l.SelectedID())
	assert.Equal(t, 1, l.SelectedCount())
	assert.False(t, l.IsSelected("1"))
	assert.True(t, l.IsSelected("3"))

	assert.False(t, l.Select("missing"))
	assert.Equal(t, "3", l.SelectedID())

	l.MoveCursor(1)
	item, ok := l.SelectCurrent()
	require.True(t, ok)
	assert.Equal(t, "2", item.ID)
	assert.Equal(t, "2", l.SelectedID())
	assert.Equal(t, 1, l.SelectedCount())

	l.ClearSelection()
	assert.Equal(t, 0, l.SelectedCount())
}

func TestSelectionSurvivesFilterButNotRemoval(t *testing.T) {
	l := newTestLevel("alpha", "beta", "gamma")
	l.Select("beta")

	l.SetFilter("gam", 3)
	assert.Equal(t, "beta", l.SelectedID(), "hidden rows stay selected")

	l.UpdateItems([]Item{{ID: "alpha", Label: "alpha"}, {ID: "gamma", Label: "gamma"}})
	assert.Equal(t, "", l.SelectedID())
}

func TestUpdateItemsKeepsCursorOnRow(t *testing.T) {
	l := newTestLevel("1", "2", "3")
	l.MoveCursor(2)

	l.UpdateItems([]Item{{ID: "0", Label: "0"}, {ID: "1", Label: "1"}, {ID: "2", Label: "2"}, {ID: "3", Label: "3"}})
	item, ok := l.Current()
	require.True(t, ok)
	assert.Equal(t, "3", item.ID)

	l.UpdateItems(nil)
	_, ok = l.Current()
	assert.False(t, ok)
	assert.Equal(t, 0, l.Cursor)
}
