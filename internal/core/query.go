package core

import (
	"fmt"

	"github.com/itchyny/gojq"
	"github.com/julien-sobczak/the-notebook/pkg/markdown"
	"github.com/julien-sobczak/the-notebook/pkg/text"
)

// CellInfo is a cell with information extracted from its content.
type CellInfo struct {
	Cell
	Content string
	Title   string
	Slug    string
}

// Describe extracts information from the content of every cell.
func Describe(doc *Document, cells Cells) ([]CellInfo, error) {
	var result []CellInfo
	for _, cell := range cells {
		content, err := doc.Slice(cell.Range.Start, cell.Range.End)
		if err != nil {
			return nil, fmt.Errorf("cell %q: %w", cell.ID, err)
		}
		info := CellInfo{
			Cell:    cell,
			Content: content,
		}
		if cell.Kind == KindMarkdown {
			info.Title = markdown.Title(content)
		} else {
			info.Title = text.FirstNonBlankLine(content)
		}
		info.Slug = markdown.Slug(info.Title)
		result = append(result, info)
	}
	return result, nil
}

// Value returns a generic representation that jq expressions can process.
func (c CellInfo) Value() map[string]any {
	return map[string]any{
		"id":      c.ID,
		"kind":    string(c.Kind),
		"start":   c.Range.Start,
		"end":     c.Range.End,
		"lines":   c.Range.Len(),
		"title":   c.Title,
		"slug":    c.Slug,
		"content": c.Content,
	}
}

// QueryCells evaluates a jq expression on the array of cells.
//
// Ex: `.[] | select(.kind == "markdown") | .id`
func QueryCells(doc *Document, cells Cells, expr string) ([]any, error) {
	query, err := gojq.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid query %q: %w", expr, err)
	}
	infos, err := Describe(doc, cells)
	if err != nil {
		return nil, err
	}
	input := make([]any, 0, len(infos))
	for _, info := range infos {
		input = append(input, info.Value())
	}

	iter := query.Run(input)
	var values []any
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := v.(error); ok {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// Query evaluates a jq expression on the current cells.
func (n *Notebook) Query(expr string) ([]any, error) {
	snapshot := n.Snapshot()
	return QueryCells(snapshot.Document, snapshot.Cells, expr)
}

// Describe returns the current cells with information extracted from their content.
func (n *Notebook) Describe() ([]CellInfo, error) {
	snapshot := n.Snapshot()
	return Describe(snapshot.Document, snapshot.Cells)
}
