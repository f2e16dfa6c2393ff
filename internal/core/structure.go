package core

import (
	"fmt"

	"github.com/julien-sobczak/the-notebook/pkg/oid"
	"github.com/julien-sobczak/the-notebook/pkg/text"
)

// Structural operations change the set of cells.
// Identifiers of removed cells are retired and never reused.

// InsertCell inserts a new cell after the given one ("" inserts at the top).
// The content is added to the document and the following cells are shifted down.
func (n *Notebook) InsertCell(afterID string, kind Kind, content string) (Cell, error) {
	return n.InsertCellWithID(oid.New(), afterID, kind, content)
}

// InsertCellWithID is the same as InsertCell using a chosen identifier.
func (n *Notebook) InsertCellWithID(id, afterID string, kind Kind, content string) (Cell, error) {
	if !oid.IsValid(id) {
		return Cell{}, fmt.Errorf("invalid cell id %q", id)
	}
	var inserted Cell
	_, err := n.mutate(OpInsert, id, func(doc *Document, cells Cells) (Cells, *Document, error) {
		if err := n.checkNewID(id, cells); err != nil {
			return nil, nil, err
		}
		newLines := text.SplitLines(content)

		// Line before which the content is inserted
		at := 1
		index := 0
		if afterID != "" {
			i := cells.IndexOf(afterID)
			if i == -1 {
				return nil, nil, &NotFoundError{ID: afterID}
			}
			at = cells[i].Range.End + 1
			index = i + 1
		}

		tail, err := Shift(cells[index:], -1, len(newLines))
		if err != nil {
			return nil, nil, err
		}
		inserted = Cell{
			ID:    id,
			Kind:  kind,
			Range: NewLineRange(at, at+len(newLines)-1),
		}
		newCells := make(Cells, 0, len(cells)+1)
		newCells = append(newCells, cells[:index]...)
		newCells = append(newCells, inserted)
		newCells = append(newCells, tail...)
		return newCells, doc.splice(at, at-1, newLines), nil
	})
	if err != nil {
		return Cell{}, err
	}
	return inserted, nil
}

// SplitCell splits a cell in two. The line at (1-based, relative to the cell) becomes
// the first line of a new cell of the given kind. The document is left unchanged.
func (n *Notebook) SplitCell(id string, at int, kind Kind) (Cell, error) {
	var created Cell
	_, err := n.mutate(OpSplit, id, func(doc *Document, cells Cells) (Cells, *Document, error) {
		index := cells.IndexOf(id)
		if index == -1 {
			return nil, nil, &NotFoundError{ID: id}
		}
		cell := cells[index]
		if at < 2 || at > cell.Range.Len() {
			return nil, nil, fmt.Errorf("split cell %q of %d line(s) at line %d: %w", id, cell.Range.Len(), at, ErrDegenerateRange)
		}
		newID := oid.New()
		if err := n.checkNewID(newID, cells); err != nil {
			return nil, nil, err
		}

		// Shrink the cell then give the freed lines to the new one
		removed := cell.Range.Len() - at + 1
		shrunk, err := Shift(cells[:index+1], index, -removed)
		if err != nil {
			return nil, nil, err
		}
		created = Cell{
			ID:    newID,
			Kind:  kind,
			Range: NewLineRange(cell.Range.Start+at-1, cell.Range.End),
		}
		newCells := make(Cells, 0, len(cells)+1)
		newCells = append(newCells, shrunk...)
		newCells = append(newCells, created)
		newCells = append(newCells, cells[index+1:]...)
		return newCells, doc, nil
	})
	if err != nil {
		return Cell{}, err
	}
	return created, nil
}

// MergeCells merges a cell with the following one. The following cell is removed
// and its lines are added to the first cell. The document is left unchanged.
func (n *Notebook) MergeCells(id string) (Cell, error) {
	var merged Cell
	_, err := n.mutate(OpMerge, id, func(doc *Document, cells Cells) (Cells, *Document, error) {
		index := cells.IndexOf(id)
		if index == -1 {
			return nil, nil, &NotFoundError{ID: id}
		}
		if index == len(cells)-1 {
			return nil, nil, fmt.Errorf("cell %q is the last cell and cannot be merged", id)
		}
		next := cells[index+1]
		grown, err := Shift(cells[:index+1], index, next.Range.End-cells[index].Range.End)
		if err != nil {
			return nil, nil, err
		}
		merged = grown[index]
		newCells := make(Cells, 0, len(cells)-1)
		newCells = append(newCells, grown...)
		newCells = append(newCells, cells[index+2:]...)
		return newCells, doc, nil
	})
	if err != nil {
		return Cell{}, err
	}
	return merged, nil
}

// DeleteCell removes a cell.
//
// When keepLines is false, the lines of the cell are deleted from the document and
// the following cells are shifted up. When keepLines is true, only the range is
// unregistered: the previous cell (or the next one when the cell is the first one)
// is extended to cover them, including any uncovered lines in between.
// The last remaining cell cannot be deleted.
func (n *Notebook) DeleteCell(id string, keepLines bool) error {
	_, err := n.mutate(OpDelete, id, func(doc *Document, cells Cells) (Cells, *Document, error) {
		index := cells.IndexOf(id)
		if index == -1 {
			return nil, nil, &NotFoundError{ID: id}
		}
		if len(cells) == 1 {
			return nil, nil, fmt.Errorf("cell %q is the only cell and cannot be deleted", id)
		}
		cell := cells[index]

		if !keepLines {
			tail, err := Shift(cells[index+1:], -1, -cell.Range.Len())
			if err != nil {
				return nil, nil, err
			}
			newCells := make(Cells, 0, len(cells)-1)
			newCells = append(newCells, cells[:index]...)
			newCells = append(newCells, tail...)
			return newCells, doc.splice(cell.Range.Start, cell.Range.End, nil), nil
		}

		newCells := make(Cells, 0, len(cells)-1)
		if index > 0 {
			// The previous cell absorbs the lines
			grown, err := Shift(cells[:index], index-1, cell.Range.End-cells[index-1].Range.End)
			if err != nil {
				return nil, nil, err
			}
			newCells = append(newCells, grown...)
			newCells = append(newCells, cells[index+1:]...)
		} else {
			// The next cell absorbs the lines
			next := cells[1]
			next.Range.Start = cell.Range.Start
			newCells = append(newCells, next)
			newCells = append(newCells, cells[2:]...)
		}
		return newCells, doc, nil
	})
	return err
}

// ConvertCell changes the kind of a cell. The document is left unchanged.
func (n *Notebook) ConvertCell(id string, kind Kind) (Cell, error) {
	var converted Cell
	_, err := n.mutate(OpConvert, id, func(doc *Document, cells Cells) (Cells, *Document, error) {
		index := cells.IndexOf(id)
		if index == -1 {
			return nil, nil, &NotFoundError{ID: id}
		}
		newCells := cells.Clone()
		newCells[index].Kind = kind
		converted = newCells[index]
		return newCells, doc, nil
	})
	if err != nil {
		return Cell{}, err
	}
	return converted, nil
}
