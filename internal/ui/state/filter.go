package state

import (
	"sort"
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// SetFilter sets the filter query and the rune offset of its cursor. When
// a filter starts the cursor position is remembered and restored once the
// filter is cleared again.
func (l *Level) SetFilter(query string, cursor int) {
	was := strings.TrimSpace(l.Filter) != ""
	now := strings.TrimSpace(query) != ""
	l.Filter = query
	l.FilterCursor = clamp(cursor, 0, len([]rune(query)))

	switch {
	case now && !was:
		l.LastCursor = l.Cursor
	case !now && was:
		restore := l.LastCursor
		l.LastCursor = -1
		l.applyFilter()
		if restore >= 0 && restore < len(l.Items) {
			l.Cursor = restore
		}
		return
	}
	l.applyFilter()
	if now {
		l.Cursor = max(BestMatchIndex(l.Items, query), 0)
	}
}

// ClearFilter empties the filter. It reports whether anything changed.
func (l *Level) ClearFilter() bool {
	if l.Filter == "" {
		return false
	}
	l.SetFilter("", 0)
	return true
}

func (l *Level) applyFilter() {
	l.Items = FilterItems(l.Full, l.Filter)
	if len(l.Items) == 0 {
		l.Cursor = 0
		l.ViewportOffset = 0
		return
	}
	l.Cursor = clamp(l.Cursor, 0, len(l.Items)-1)
	if l.ViewportOffset >= len(l.Items) {
		l.ViewportOffset = 0
	}
}

// FilterCursorPos returns the clamped rune offset of the filter cursor.
func (l *Level) FilterCursorPos() int {
	return clamp(l.FilterCursor, 0, len([]rune(l.Filter)))
}

func (l *Level) editFilter(fn func(runes []rune, pos int) ([]rune, int, bool)) bool {
	runes, pos, ok := fn([]rune(l.Filter), l.FilterCursorPos())
	if !ok {
		return false
	}
	l.SetFilter(string(runes), pos)
	return true
}

// InsertFilterText inserts text at the filter cursor.
func (l *Level) InsertFilterText(text string) bool {
	insert := []rune(text)
	return l.editFilter(func(runes []rune, pos int) ([]rune, int, bool) {
		if len(insert) == 0 {
			return nil, 0, false
		}
		out := make([]rune, 0, len(runes)+len(insert))
		out = append(out, runes[:pos]...)
		out = append(out, insert...)
		out = append(out, runes[pos:]...)
		return out, pos + len(insert), true
	})
}

// DeleteFilterRuneBackward removes the rune before the filter cursor.
func (l *Level) DeleteFilterRuneBackward() bool {
	return l.editFilter(func(runes []rune, pos int) ([]rune, int, bool) {
		if pos == 0 {
			return nil, 0, false
		}
		return append(runes[:pos-1:pos-1], runes[pos:]...), pos - 1, true
	})
}

// DeleteFilterWordBackward removes the word before the filter cursor along
// with any spaces between it and the cursor.
func (l *Level) DeleteFilterWordBackward() bool {
	return l.editFilter(func(runes []rune, pos int) ([]rune, int, bool) {
		if pos == 0 {
			return nil, 0, false
		}
		start := wordStart(runes, pos)
		return append(runes[:start:start], runes[pos:]...), start, true
	})
}

func wordStart(runes []rune, pos int) int {
	i := pos
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	return i
}

// MoveFilterCursor moves the filter cursor by delta runes.
func (l *Level) MoveFilterCursor(delta int) bool {
	pos := l.FilterCursorPos()
	next := clamp(pos+delta, 0, len([]rune(l.Filter)))
	l.FilterCursor = next
	return next != pos
}

// MoveFilterCursorStart moves the filter cursor to the beginning.
func (l *Level) MoveFilterCursorStart() bool {
	return l.MoveFilterCursor(-len([]rune(l.Filter)))
}

// MoveFilterCursorEnd moves the filter cursor past the last rune.
func (l *Level) MoveFilterCursorEnd() bool {
	return l.MoveFilterCursor(len([]rune(l.Filter)))
}

func labels(items []Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Label
	}
	return out
}

// FilterItems returns the items whose label fuzzily matches query, in
// their original order. Without a fuzzy hit it falls back to a substring
// match over labels and ids.
func FilterItems(items []Item, query string) []Item {
	q := strings.TrimSpace(query)
	if q == "" {
		return CloneItems(items)
	}
	var out []Item
	if ranks := fuzzy.RankFindNormalizedFold(q, labels(items)); len(ranks) > 0 {
		idx := make([]int, 0, len(ranks))
		for _, r := range ranks {
			idx = append(idx, r.OriginalIndex)
		}
		sort.Ints(idx)
		for _, i := range idx {
			out = append(out, items[i])
		}
		return out
	}
	lower := strings.ToLower(q)
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Label), lower) || strings.Contains(strings.ToLower(item.ID), lower) {
			out = append(out, item)
		}
	}
	return out
}

// BestMatchIndex picks the row the cursor should land on for query: an
// exact label or id match first, then a label prefix, then the closest
// fuzzy match. It returns -1 for an empty list.
func BestMatchIndex(items []Item, query string) int {
	if len(items) == 0 {
		return -1
	}
	q := strings.TrimSpace(query)
	if q == "" {
		return 0
	}
	for i, item := range items {
		if strings.EqualFold(item.Label, q) || strings.EqualFold(item.ID, q) {
			return i
		}
	}
	lower := strings.ToLower(q)
	for i, item := range items {
		if strings.HasPrefix(strings.ToLower(item.Label), lower) {
			return i
		}
	}
	ranks := fuzzy.RankFindNormalizedFold(q, labels(items))
	if len(ranks) == 0 {
		return 0
	}
	sort.SliceStable(ranks, func(a, b int) bool {
		if ranks[a].Distance != ranks[b].Distance {
			return ranks[a].Distance < ranks[b].Distance
		}
		return ranks[a].OriginalIndex < ranks[b].OriginalIndex
	})
	return ranks[0].OriginalIndex
}
