package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// Table prints aligned rows truncated to a maximum line length.
type Table struct {
	output        io.Writer
	separator     string
	maxCharacters int
	rows          [][]string
}

func NewTable(options ...func(*Table)) *Table {
	result := &Table{
		output:        os.Stdout,
		separator:     "  ",
		maxCharacters: 80,
	}
	for _, option := range options {
		option(result)
	}
	return result
}

func ToWriter(w io.Writer) func(*Table) {
	return func(t *Table) {
		t.output = w
	}
}

func LineLength(characters int) func(*Table) {
	return func(t *Table) {
		t.maxCharacters = characters
	}
}

func Separator(separator string) func(*Table) {
	return func(t *Table) {
		t.separator = separator
	}
}

// Append adds a new row. Rows may have different numbers of columns.
func (t *Table) Append(columns ...string) {
	t.rows = append(t.rows, columns)
}

// Flush prints all rows and resets the table.
func (t *Table) Flush() {
	var widths []int
	for _, row := range t.rows {
		for i, column := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if n := utf8.RuneCountInString(column); n > widths[i] {
				widths[i] = n
			}
		}
	}

	for _, row := range t.rows {
		var sb strings.Builder
		for i, column := range row {
			if i > 0 {
				sb.WriteString(t.separator)
			}
			sb.WriteString(column)
			if i < len(row)-1 {
				sb.WriteString(strings.Repeat(" ", widths[i]-utf8.RuneCountInString(column)))
			}
		}
		fmt.Fprintln(t.output, truncate(sb.String(), t.maxCharacters))
	}
	t.rows = nil
}

func truncate(line string, max int) string {
	if max <= 0 || utf8.RuneCountInString(line) <= max {
		return line
	}
	runes := []rune(line)
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}
