package core

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

type Kind string

const (
	KindCode     Kind = "code"
	KindMarkdown Kind = "markdown"
)

// ParseKind converts a string (case-insensitive) to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "code", "":
		return KindCode, nil
	case "markdown", "md":
		return KindMarkdown, nil
	}
	return "", fmt.Errorf("unknown cell kind %q", s)
}

// LineRange is an inclusive range of lines. Lines start at 1.
type LineRange struct {
	Start int `yaml:"start" json:"start"`
	End   int `yaml:"end" json:"end"`
}

func NewLineRange(start, end int) LineRange {
	return LineRange{Start: start, End: end}
}

// Len returns the number of lines in the range.
func (r LineRange) Len() int {
	return r.End - r.Start + 1
}

// IsValid returns true for a non-empty range starting at line 1 or later.
func (r LineRange) IsValid() bool {
	return r.Start >= 1 && r.Start <= r.End
}

// Contains returns true if the given line is inside the range.
func (r LineRange) Contains(line int) bool {
	return line >= r.Start && line <= r.End
}

// Overlaps returns true if both ranges share at least one line.
func (r LineRange) Overlaps(other LineRange) bool {
	return r.Start <= other.End && other.Start <= r.End
}

func (r LineRange) String() string {
	return fmt.Sprintf("[%d,%d]", r.Start, r.End)
}

// Cell is a contiguous range of lines of the shared document.
// Markdown cells are simply spans interpreted as Markdown instead of code.
type Cell struct {
	ID    string
	Kind  Kind
	Range LineRange
}

func (c Cell) String() string {
	return fmt.Sprintf("%s(%s)%s", c.ID, c.Kind, c.Range)
}

// Cells is an ordered list of cells sorted by start line.
type Cells []Cell

func (c Cells) String() string {
	var parts []string
	for _, cell := range c {
		parts = append(parts, cell.String())
	}
	return strings.Join(parts, " ")
}

// IndexOf returns the position of the cell with the given id, or -1.
func (c Cells) IndexOf(id string) int {
	return slices.IndexFunc(c, func(cell Cell) bool {
		return cell.ID == id
	})
}

// Find returns the cell with the given id.
func (c Cells) Find(id string) (Cell, bool) {
	i := c.IndexOf(id)
	if i == -1 {
		return Cell{}, false
	}
	return c[i], true
}

// IDs returns the identifiers in range order.
func (c Cells) IDs() []string {
	ids := make([]string, len(c))
	for i, cell := range c {
		ids[i] = cell.ID
	}
	return ids
}

// Clone returns an independent copy. Cells are values so a shallow copy is enough.
func (c Cells) Clone() Cells {
	return slices.Clone(c)
}

// Validate checks ranges are well-formed, sorted, non-overlapping, inside the document
// and that identifiers are unique.
func (c Cells) Validate(lineCount int) error {
	seen := make(map[string]struct{}, len(c))
	for i, cell := range c {
		if cell.ID == "" {
			return violation(c, "cell #%d has no id", i+1)
		}
		if _, ok := seen[cell.ID]; ok {
			return violation(c, "id %q used by several cells", cell.ID)
		}
		seen[cell.ID] = struct{}{}

		if cell.Range.Start < 1 {
			return violation(c, "cell %q starts before line 1", cell.ID)
		}
		if cell.Range.End < cell.Range.Start {
			return violation(c, "cell %q has an inverted range %s", cell.ID, cell.Range)
		}
		if cell.Range.End > lineCount {
			return violation(c, "cell %q ends after the last line %d", cell.ID, lineCount)
		}
		if i > 0 {
			previous := c[i-1]
			if previous.Range.Start == cell.Range.Start {
				return violation(c, "cells %q and %q start on the same line", previous.ID, cell.ID)
			}
			if previous.Range.Start > cell.Range.Start {
				return violation(c, "cells %q and %q are not sorted", previous.ID, cell.ID)
			}
			if previous.Range.Overlaps(cell.Range) {
				return violation(c, "cells %q and %q overlap", previous.ID, cell.ID)
			}
		}
	}
	return nil
}

// ValidateCoverage is Validate plus the reference layout rule: cells are adjacent
// and cover every line of the document.
func (c Cells) ValidateCoverage(lineCount int) error {
	if err := c.Validate(lineCount); err != nil {
		return err
	}
	if len(c) == 0 {
		if lineCount > 0 {
			return violation(c, "%d line(s) not covered by any cell", lineCount)
		}
		return nil
	}
	if c[0].Range.Start != 1 {
		return violation(c, "first cell %q does not start at line 1", c[0].ID)
	}
	for i := 1; i < len(c); i++ {
		if c[i-1].Range.End+1 != c[i].Range.Start {
			return violation(c, "gap between cells %q and %q", c[i-1].ID, c[i].ID)
		}
	}
	if last := c[len(c)-1]; last.Range.End != lineCount {
		return violation(c, "last cell %q does not end at line %d", last.ID, lineCount)
	}
	return nil
}

// RangesValid returns if cells satisfy the model invariants for a document of lineCount lines.
func RangesValid(cells Cells, lineCount int) bool {
	return cells.Validate(lineCount) == nil
}

// Shift returns a new list where the cell at afterIndex has its end moved by delta
// and every following cell is moved by delta. Use afterIndex -1 to move every cell.
//
// A shift producing an inverted range or a range starting before line 1 fails with
// ErrDegenerateRange. Removing a cell is a separate operation.
func Shift(cells Cells, afterIndex, delta int) (Cells, error) {
	if afterIndex < -1 || afterIndex >= len(cells) {
		return nil, fmt.Errorf("shift after cell #%d of %d: %w", afterIndex, len(cells), ErrRange)
	}
	result := cells.Clone()
	if delta == 0 {
		return result, nil
	}
	if afterIndex >= 0 {
		result[afterIndex].Range.End += delta
	}
	for i := afterIndex + 1; i < len(result); i++ {
		result[i].Range.Start += delta
		result[i].Range.End += delta
	}
	for i := max(afterIndex, 0); i < len(result); i++ {
		if !result[i].Range.IsValid() {
			return nil, fmt.Errorf("shift by %d leaves cell %q with range %s: %w", delta, result[i].ID, result[i].Range, ErrDegenerateRange)
		}
	}
	return result, nil
}
