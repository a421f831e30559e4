package table

import (
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAligns(t *testing.T) {
	rows := [][]string{
		{"Event Name", "Date", "Registrations"},
		{"Spring Fair", "March 1, 2025", "12"},
		{"Tech Talk", "May 2, 2025", "3"},
	}
	got := Format(rows, []Alignment{AlignLeft, AlignLeft, AlignRight})
	assert.Equal(t, []string{
		"Event Name   Date           Registrations",
		"Spring Fair  March 1, 2025             12",
		"Tech Talk    May 2, 2025                3",
	}, got)
	assert.Nil(t, Format(nil, nil))
}

func TestFitTruncatesWidestColumn(t *testing.T) {
	rows := [][]string{
		{"A very long event name indeed", "Hall"},
		{"Short", "Hall B"},
	}
	got := Fit(rows, nil, 20)
	require.Len(t, got, 2)
	for _, line := range got {
		assert.LessOrEqual(t, runewidth.StringWidth(line), 20)
	}
	assert.Contains(t, got[0], "…")
	assert.Contains(t, got[1], "Hall B")
}

func TestFitCountsWideRunes(t *testing.T) {
	rows := [][]string{{"日本", "x"}, {"ab", "y"}}
	got := Format(rows, nil)
	assert.Equal(t, "日本  x", got[0])
	assert.Equal(t, "ab    y", got[1])
}
