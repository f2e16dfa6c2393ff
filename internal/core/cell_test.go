package core

import (
	"errors"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func code(id string, start, end int) Cell {
	return Cell{ID: id, Kind: KindCode, Range: NewLineRange(start, end)}
}

func md(id string, start, end int) Cell {
	return Cell{ID: id, Kind: KindMarkdown, Range: NewLineRange(start, end)}
}

func TestParseKind(t *testing.T) {
	kind, err := ParseKind("Markdown")
	require.NoError(t, err)
	assert.Equal(t, KindMarkdown, kind)

	kind, err = ParseKind("md")
	require.NoError(t, err)
	assert.Equal(t, KindMarkdown, kind)

	kind, err = ParseKind("")
	require.NoError(t, err)
	assert.Equal(t, KindCode, kind)

	_, err = ParseKind("raw")
	assert.Error(t, err)
}

func TestLineRange(t *testing.T) {
	r := NewLineRange(4, 7)
	assert.Equal(t, 4, r.Len())
	assert.True(t, r.IsValid())
	assert.True(t, r.Contains(4))
	assert.True(t, r.Contains(7))
	assert.False(t, r.Contains(8))
	assert.True(t, r.Overlaps(NewLineRange(7, 9)))
	assert.False(t, r.Overlaps(NewLineRange(8, 9)))
	assert.Equal(t, "[4,7]", r.String())

	assert.False(t, NewLineRange(0, 2).IsValid())
	assert.False(t, NewLineRange(3, 2).IsValid())
	assert.True(t, NewLineRange(3, 3).IsValid())
}

func TestCells(t *testing.T) {
	cells := Cells{code("c1", 1, 3), md("c2", 4, 5)}
	assert.Equal(t, 1, cells.IndexOf("c2"))
	assert.Equal(t, -1, cells.IndexOf("c3"))
	assert.Equal(t, []string{"c1", "c2"}, cells.IDs())
	assert.Equal(t, "c1(code)[1,3] c2(markdown)[4,5]", cells.String())

	cell, ok := cells.Find("c2")
	require.True(t, ok)
	assert.Equal(t, KindMarkdown, cell.Kind)
	_, ok = cells.Find("c3")
	assert.False(t, ok)

	clone := cells.Clone()
	clone[0].Range.End = 10
	assert.Equal(t, 3, cells[0].Range.End)
}

func TestValidate(t *testing.T) {
	var tests = []struct {
		name       string
		cells      Cells
		lineCount  int
		valid      bool
		contiguous bool
	}{
		{
			name:       "Reference layout",
			cells:      Cells{code("c1", 1, 3), md("c2", 4, 5)},
			lineCount:  5,
			valid:      true,
			contiguous: true,
		},
		{
			name:       "No cells",
			cells:      nil,
			lineCount:  0,
			valid:      true,
			contiguous: true,
		},
		{
			name:       "Gap",
			cells:      Cells{code("c1", 1, 2), md("c2", 4, 5)},
			lineCount:  5,
			valid:      true,
			contiguous: false,
		},
		{
			name:       "Not covering the last lines",
			cells:      Cells{code("c1", 1, 3)},
			lineCount:  5,
			valid:      true,
			contiguous: false,
		},
		{
			name:       "Not starting at line 1",
			cells:      Cells{code("c1", 2, 5)},
			lineCount:  5,
			valid:      true,
			contiguous: false,
		},
		{
			name:      "Overlap",
			cells:     Cells{code("c1", 1, 3), md("c2", 3, 5)},
			lineCount: 5,
		},
		{
			name:      "Unsorted",
			cells:     Cells{md("c2", 4, 5), code("c1", 1, 3)},
			lineCount: 5,
		},
		{
			name:      "Same start",
			cells:     Cells{code("c1", 1, 1), md("c2", 1, 5)},
			lineCount: 5,
		},
		{
			name:      "Outside document",
			cells:     Cells{code("c1", 1, 3), md("c2", 4, 6)},
			lineCount: 5,
		},
		{
			name:      "Before first line",
			cells:     Cells{code("c1", 0, 3)},
			lineCount: 5,
		},
		{
			name:      "Inverted",
			cells:     Cells{code("c1", 3, 2)},
			lineCount: 5,
		},
		{
			name:      "Duplicate ids",
			cells:     Cells{code("c1", 1, 3), md("c1", 4, 5)},
			lineCount: 5,
		},
		{
			name:      "Missing id",
			cells:     Cells{code("", 1, 5)},
			lineCount: 5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cells.Validate(tt.lineCount)
			if tt.valid {
				assert.NoError(t, err)
				assert.True(t, RangesValid(tt.cells, tt.lineCount))
			} else {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvariant)
				var violation *InvariantViolation
				require.True(t, errors.As(err, &violation))
				assert.Equal(t, tt.cells, violation.Cells)
				assert.False(t, RangesValid(tt.cells, tt.lineCount))
			}

			err = tt.cells.ValidateCoverage(tt.lineCount)
			if tt.contiguous {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvariant)
			}
		})
	}
}

func TestShift(t *testing.T) {
	cells := Cells{code("c1", 1, 3), md("c2", 4, 5), code("c3", 6, 8)}

	t.Run("Grow", func(t *testing.T) {
		actual, err := Shift(cells, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, Cells{code("c1", 1, 3), md("c2", 4, 7), code("c3", 8, 10)}, actual, spew.Sdump(actual))
		// Input is untouched
		assert.Equal(t, 5, cells[1].Range.End)
	})

	t.Run("Shrink", func(t *testing.T) {
		actual, err := Shift(cells, 0, -2)
		require.NoError(t, err)
		assert.Equal(t, Cells{code("c1", 1, 1), md("c2", 2, 3), code("c3", 4, 6)}, actual)
	})

	t.Run("Zero", func(t *testing.T) {
		actual, err := Shift(cells, 2, 0)
		require.NoError(t, err)
		assert.Equal(t, cells, actual)
	})

	t.Run("All", func(t *testing.T) {
		actual, err := Shift(cells, -1, 3)
		require.NoError(t, err)
		assert.Equal(t, Cells{code("c1", 4, 6), md("c2", 7, 8), code("c3", 9, 11)}, actual)
	})

	t.Run("Degenerate", func(t *testing.T) {
		_, err := Shift(cells, 1, -2)
		assert.ErrorIs(t, err, ErrDegenerateRange)

		_, err = Shift(cells, -1, -1)
		assert.ErrorIs(t, err, ErrDegenerateRange)
	})

	t.Run("Out of range", func(t *testing.T) {
		_, err := Shift(cells, 3, 1)
		assert.ErrorIs(t, err, ErrRange)
		_, err = Shift(cells, -2, 1)
		assert.ErrorIs(t, err, ErrRange)
	})

	t.Run("Empty", func(t *testing.T) {
		actual, err := Shift(nil, -1, 2)
		require.NoError(t, err)
		assert.Empty(t, actual)
	})
}
