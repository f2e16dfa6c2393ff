package core

import (
	"github.com/julien-sobczak/the-notebook/pkg/text"
)

// Document is the canonical full text shared by all cells.
// Lines are addressed starting at 1 and joined by a single \n.
//
// A zero Document has no line. Any text, including the empty string,
// holds at least one line.
type Document struct {
	lines []string
}

// NewDocument creates a document from a text. Line endings are normalized to \n.
func NewDocument(content string) *Document {
	return &Document{lines: text.SplitLines(content)}
}

func newDocumentFromLines(lines []string) *Document {
	return &Document{lines: lines}
}

// FullText returns the current document.
func (d *Document) FullText() string {
	return text.JoinLines(d.lines)
}

// SetFullText replaces the whole content.
func (d *Document) SetFullText(content string) {
	d.lines = text.SplitLines(content)
}

// LineCount returns the number of lines.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// Slice returns the inclusive line range as text.
func (d *Document) Slice(start, end int) (string, error) {
	lines, err := d.Lines(start, end)
	if err != nil {
		return "", err
	}
	return text.JoinLines(lines), nil
}

// Lines returns a copy of the inclusive line range.
func (d *Document) Lines(start, end int) ([]string, error) {
	if err := d.checkRange(start, end); err != nil {
		return nil, err
	}
	result := make([]string, end-start+1)
	copy(result, d.lines[start-1:end])
	return result, nil
}

// Line returns a single line.
func (d *Document) Line(n int) (string, error) {
	if err := d.checkRange(n, n); err != nil {
		return "", err
	}
	return d.lines[n-1], nil
}

// Clone returns an independent copy of the document.
func (d *Document) Clone() *Document {
	lines := make([]string, len(d.lines))
	copy(lines, d.lines)
	return newDocumentFromLines(lines)
}

func (d *Document) checkRange(start, end int) error {
	if start < 1 || end > len(d.lines) || start > end {
		return &RangeError{Start: start, End: end, LineCount: len(d.lines)}
	}
	return nil
}

// splice returns a new document where the lines [start,end] are replaced.
// The receiver is left untouched. Callers validate the range first.
func (d *Document) splice(start, end int, replacement []string) *Document {
	lines := make([]string, 0, len(d.lines)-(end-start+1)+len(replacement))
	lines = append(lines, d.lines[:start-1]...)
	lines = append(lines, replacement...)
	lines = append(lines, d.lines[end:]...)
	return newDocumentFromLines(lines)
}
