package state

// Item is one row of a list level. Label is what the filter matches
// against; Columns carries the cells shown in the table.
type Item struct {
	ID      string
	Label   string
	Columns []string
}

// CloneItems returns a copy of items that does not share the backing array.
func CloneItems(items []Item) []Item {
	dup := make([]Item, len(items))
	copy(dup, items)
	return dup
}
