package core

import (
	"fmt"

	"github.com/julien-sobczak/the-notebook/pkg/text"
)

// ApplyEdit replaces the content of a cell inside the shared document.
//
// The edited cell keeps its start line and its end moves by the difference of line
// counts. Every later cell is shifted by the same difference. Earlier cells never move.
// The input document and cells are not modified: the new state is returned as a
// whole so that callers commit both or neither.
//
// An empty content leaves the cell with a single blank line.
func ApplyEdit(doc *Document, cells Cells, id string, content string) (Cells, *Document, error) {
	index := cells.IndexOf(id)
	if index == -1 {
		return nil, nil, &NotFoundError{ID: id}
	}
	if err := cells.Validate(doc.LineCount()); err != nil {
		return nil, nil, err
	}

	cell := cells[index]
	newLines := text.SplitLines(content)
	diff := len(newLines) - cell.Range.Len()

	newCells, err := Shift(cells, index, diff)
	if err != nil {
		// Cannot happen as the edited cell keeps at least one line
		return nil, nil, fmt.Errorf("edit cell %q: %w", id, err)
	}
	newDoc := doc.splice(cell.Range.Start, cell.Range.End, newLines)
	return newCells, newDoc, nil
}
