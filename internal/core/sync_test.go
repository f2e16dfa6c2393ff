package core

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fiveLines = "def a\ndef b\ndef c\ndef d\ndef e"

func TestApplyEdit(t *testing.T) {
	cells := Cells{code("c1", 1, 3), code("c2", 4, 5)}

	var tests = []struct {
		name          string
		id            string
		content       string
		expectedCells Cells
		expectedText  string
	}{
		{
			name:          "Shrink the first cell",
			id:            "c1",
			content:       "def a\ndef b",
			expectedCells: Cells{code("c1", 1, 2), code("c2", 3, 4)},
			expectedText:  "def a\ndef b\ndef d\ndef e",
		},
		{
			name:          "Grow the last cell",
			id:            "c2",
			content:       "def d\ndef e\ndef f\ndef g",
			expectedCells: Cells{code("c1", 1, 3), code("c2", 4, 7)},
			expectedText:  "def a\ndef b\ndef c\ndef d\ndef e\ndef f\ndef g",
		},
		{
			name:          "Same line count",
			id:            "c1",
			content:       "def x\ndef y\ndef z",
			expectedCells: Cells{code("c1", 1, 3), code("c2", 4, 5)},
			expectedText:  "def x\ndef y\ndef z\ndef d\ndef e",
		},
		{
			name:          "No-op",
			id:            "c2",
			content:       "def d\ndef e",
			expectedCells: cells,
			expectedText:  fiveLines,
		},
		{
			name:          "Empty content",
			id:            "c1",
			content:       "",
			expectedCells: Cells{code("c1", 1, 1), code("c2", 2, 3)},
			expectedText:  "\ndef d\ndef e",
		},
		{
			name:          "Trailing newline",
			id:            "c1",
			content:       "def a\n",
			expectedCells: Cells{code("c1", 1, 2), code("c2", 3, 4)},
			expectedText:  "def a\n\ndef d\ndef e",
		},
		{
			name:          "Windows newlines",
			id:            "c2",
			content:       "def d\r\ndef e\r\ndef f",
			expectedCells: Cells{code("c1", 1, 3), code("c2", 4, 6)},
			expectedText:  "def a\ndef b\ndef c\ndef d\ndef e\ndef f",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := NewDocument(fiveLines)
			newCells, newDoc, err := ApplyEdit(doc, cells, tt.id, tt.content)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedCells, newCells, spew.Sdump(newCells))
			assert.Equal(t, tt.expectedText, newDoc.FullText())
			assert.NoError(t, newCells.ValidateCoverage(newDoc.LineCount()))

			// Inputs are untouched
			assert.Equal(t, fiveLines, doc.FullText())
			assert.Equal(t, Cells{code("c1", 1, 3), code("c2", 4, 5)}, cells)
		})
	}
}

func TestApplyEditKeepsEarlierCells(t *testing.T) {
	doc := NewDocument("a\nb\nc\nd\ne\nf")
	cells := Cells{md("c1", 1, 2), code("c2", 3, 4), code("c3", 5, 6)}

	newCells, newDoc, err := ApplyEdit(doc, cells, "c2", "x")
	require.NoError(t, err)
	assert.Equal(t, Cells{md("c1", 1, 2), code("c2", 3, 3), code("c3", 4, 5)}, newCells)
	assert.Equal(t, "a\nb\nx\ne\nf", newDoc.FullText())

	content, err := newDoc.Slice(newCells[1].Range.Start, newCells[1].Range.End)
	require.NoError(t, err)
	assert.Equal(t, "x", content)
}

func TestApplyEditRoundTrip(t *testing.T) {
	doc := NewDocument(fiveLines)
	cells := Cells{code("c1", 1, 3), code("c2", 4, 5)}

	for _, cell := range cells {
		content, err := doc.Slice(cell.Range.Start, cell.Range.End)
		require.NoError(t, err)
		newCells, newDoc, err := ApplyEdit(doc, cells, cell.ID, content)
		require.NoError(t, err)
		assert.Equal(t, cells, newCells)
		assert.Equal(t, doc.FullText(), newDoc.FullText())
	}
}

func TestApplyEditErrors(t *testing.T) {
	doc := NewDocument(fiveLines)

	_, _, err := ApplyEdit(doc, Cells{code("c1", 1, 3), code("c2", 4, 5)}, "c3", "def z")
	assert.ErrorIs(t, err, ErrNotFound)

	// Duplicate start lines are rejected before anything is shifted
	_, _, err = ApplyEdit(doc, Cells{code("c1", 1, 3), code("c2", 1, 5)}, "c1", "def z")
	assert.ErrorIs(t, err, ErrInvariant)
}
