package state

// Level holds the list shown to the user: the full item set, the filtered
// view of it, the cursor and viewport, and the single selected row.
type Level struct {
	ID             string
	Title          string
	Items          []Item
	Full           []Item
	Filter         string
	FilterCursor   int
	Cursor         int
	LastCursor     int
	ViewportOffset int

	selected string
}

// NewLevel builds a level over items with the cursor on the first row.
func NewLevel(id, title string, items []Item) *Level {
	l := &Level{ID: id, Title: title, LastCursor: -1}
	l.UpdateItems(items)
	return l
}

// IndexOf returns the position of id among the visible items, or -1.
func (l *Level) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, item := range l.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Current returns the item under the cursor.
func (l *Level) Current() (Item, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return Item{}, false
	}
	return l.Items[l.Cursor], true
}

// UpdateItems replaces the item set. The cursor follows the row it was on
// when that row is still visible, and the selection is dropped when its
// row has gone.
func (l *Level) UpdateItems(items []Item) {
	var currentID string
	if item, ok := l.Current(); ok {
		currentID = item.ID
	}
	l.Full = CloneItems(items)
	l.pruneSelection()
	l.applyFilter()
	if idx := l.IndexOf(currentID); idx >= 0 {
		l.Cursor = idx
	}
	if l.ViewportOffset < 0 || l.ViewportOffset >= len(l.Items) {
		l.ViewportOffset = 0
	}
}

// Select marks id as the only selected row. It returns false when id is
// not part of the level.
func (l *Level) Select(id string) bool {
	for _, item := range l.Full {
		if item.ID == id {
			l.selected = id
			return true
		}
	}
	return false
}

// SelectCurrent selects the row under the cursor.
func (l *Level) SelectCurrent() (Item, bool) {
	item, ok := l.Current()
	if !ok {
		return Item{}, false
	}
	l.selected = item.ID
	return item, true
}

// SelectedID returns the selected row's id, or "" when nothing is selected.
func (l *Level) SelectedID() string { return l.selected }

// IsSelected reports whether id is the selected row.
func (l *Level) IsSelected(id string) bool {
	return id != "" && l.selected == id
}

// SelectedCount is zero or one.
func (l *Level) SelectedCount() int {
	if l.selected == "" {
		return 0
	}
	return 1
}

// ClearSelection unmarks the selected row.
func (l *Level) ClearSelection() {
	l.selected = ""
}

func (l *Level) pruneSelection() {
	if l.selected == "" {
		return
	}
	for _, item := range l.Full {
		if item.ID == l.selected {
			return
		}
	}
	l.selected = ""
}
