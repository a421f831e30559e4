package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetFilterRestoresCursor(t *testing.T) {
	l := newTestLevel("one", "two", "three")
	l.Cursor = 2

	l.SetFilter("two", 3)
	require.Len(t, l.Items, 1)
	assert.Equal(t, "two", l.Items[0].ID)
	assert.Equal(t, 0, l.Cursor)
	assert.Equal(t, 3, l.FilterCursor)

	assert.True(t, l.ClearFilter())
	assert.Equal(t, 2, l.Cursor)
	assert.Equal(t, -1, l.LastCursor)
	assert.False(t, l.ClearFilter())
}

func TestFilterEditing(t *testing.T) {
	l := newTestLevel("alpha")

	require.True(t, l.InsertFilterText("ab"))
	assert.Equal(t, "ab", l.Filter)
	assert.Equal(t, 2, l.FilterCursor)

	l.FilterCursor = 1
	require.True(t, l.InsertFilterText("z"))
	assert.Equal(t, "azb", l.Filter)
	assert.Equal(t, 2, l.FilterCursor)

	require.True(t, l.DeleteFilterRuneBackward())
	assert.Equal(t, "ab", l.Filter)
	assert.Equal(t, 1, l.FilterCursor)

	l.SetFilter("abc def", 7)
	require.True(t, l.DeleteFilterWordBackward())
	assert.Equal(t, "abc ", l.Filter)

	l.SetFilter("abc", 0)
	assert.False(t, l.DeleteFilterRuneBackward())
	assert.False(t, l.InsertFilterText(""))
}

func TestFilterCursorMovement(t *testing.T) {
	l := newTestLevel("x")
	l.SetFilter("héllo", 5)

	assert.True(t, l.MoveFilterCursor(-1))
	assert.Equal(t, 4, l.FilterCursorPos())
	assert.True(t, l.MoveFilterCursorStart())
	assert.False(t, l.MoveFilterCursor(-1))
	assert.True(t, l.MoveFilterCursorEnd())
	assert.Equal(t, 5, l.FilterCursorPos())
}

func TestFilterItems(t *testing.T) {
	items := []Item{{ID: "1", Label: "Spring Fair"}, {ID: "2", Label: "Tech Talk"}, {ID: "3", Label: "Spring Gala"}}

	got := FilterItems(items, "spr")
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[1].ID)

	got = FilterItems(items, "tt")
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)

	assert.Empty(t, FilterItems(items, "zzz"))
	assert.Len(t, FilterItems(items, "  "), 3)

	clone := CloneItems(items)
	clone[0].Label = "changed"
	assert.Equal(t, "Spring Fair", items[0].Label)
}

func TestBestMatchIndex(t *testing.T) {
	items := []Item{{ID: "one", Label: "First"}, {ID: "two", Label: "Second"}, {ID: "three", Label: "Third"}}
	assert.Equal(t, 1, BestMatchIndex(items, "second"))
	assert.Equal(t, 1, BestMatchIndex(items, "two"))
	assert.Equal(t, 2, BestMatchIndex(items, "th"))
	assert.Equal(t, 0, BestMatchIndex(items, "zzz"))
	assert.Equal(t, -1, BestMatchIndex(nil, "x"))
}
