// Package table lays out rows of text into aligned columns.
package table

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

const gap = "  "

// Format pads every cell to the widest entry of its column.
func Format(rows [][]string, alignments []Alignment) []string {
	return Fit(rows, alignments, 0)
}

// Fit is Format with the total line width limited to maxWidth display
// cells. The widest columns give way first and overflowing cells end in
// an ellipsis. A maxWidth of zero or less means no limit.
func Fit(rows [][]string, alignments []Alignment, maxWidth int) []string {
	if len(rows) == 0 {
		return nil
	}
	widths := columnWidths(rows)
	if maxWidth > 0 {
		shrink(widths, maxWidth-len(gap)*(len(widths)-1))
	}
	out := make([]string, len(rows))
	for i, row := range rows {
		var b strings.Builder
		for c := range widths {
			if c > 0 {
				b.WriteString(gap)
			}
			cell := ""
			if c < len(row) {
				cell = row[c]
			}
			if runewidth.StringWidth(cell) > widths[c] {
				cell = truncate.StringWithTail(cell, uint(widths[c]), "…")
			}
			pad := strings.Repeat(" ", max(widths[c]-runewidth.StringWidth(cell), 0))
			if c < len(alignments) && alignments[c] == AlignRight {
				b.WriteString(pad)
				b.WriteString(cell)
			} else {
				b.WriteString(cell)
				if c < len(widths)-1 {
					b.WriteString(pad)
				}
			}
		}
		out[i] = b.String()
	}
	return out
}

func columnWidths(rows [][]string) []int {
	cols := 0
	for _, row := range rows {
		cols = max(cols, len(row))
	}
	widths := make([]int, cols)
	for _, row := range rows {
		for c, cell := range row {
			widths[c] = max(widths[c], runewidth.StringWidth(cell))
		}
	}
	return widths
}

// shrink narrows the widest column one cell at a time until the widths
// sum to at most budget. No column drops below one cell.
func shrink(widths []int, budget int) {
	total := 0
	for _, w := range widths {
		total += w
	}
	for total > budget {
		widest := 0
		for i, w := range widths {
			if w > widths[widest] {
				widest = i
			}
		}
		if widths[widest] <= 1 {
			return
		}
		widths[widest]--
		total--
	}
}
