package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const notebookWithMarkdown = `-- Lean file example
def add (a b : Nat) := a + b
## Markdown Example
This is a markdown cell.
#eval add 2 3`

func TestDescribe(t *testing.T) {
	nb := NewTestNotebook(t, notebookWithMarkdown, code("c1", 1, 2), md("c2", 3, 4), code("c3", 5, 5))

	infos, err := nb.Describe()
	require.NoError(t, err)
	require.Len(t, infos, 3)
	assert.Equal(t, "-- Lean file example", infos[0].Title)
	assert.Equal(t, "lean-file-example", infos[0].Slug)
	assert.Equal(t, "Markdown Example", infos[1].Title)
	assert.Equal(t, "markdown-example", infos[1].Slug)
	assert.Equal(t, "## Markdown Example\nThis is a markdown cell.", infos[1].Content)
	assert.Equal(t, "#eval add 2 3", infos[2].Title)
}

func TestQueryCells(t *testing.T) {
	nb := NewTestNotebook(t, notebookWithMarkdown, code("c1", 1, 2), md("c2", 3, 4), code("c3", 5, 5))

	var tests = []struct {
		name     string
		expr     string
		expected []any
	}{
		{"Select", `.[] | select(.kind == "markdown") | .id`, []any{"c2"}},
		{"Count", `length`, []any{3}},
		{"Sum", `map(.lines) | add`, []any{5}},
		{"Ranges", `.[] | [.start, .end]`, []any{[]any{1, 2}, []any{3, 4}, []any{5, 5}}},
		{"Empty", `.[] | select(.lines > 10)`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := nb.Query(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestQueryCellsErrors(t *testing.T) {
	nb := NewTestNotebook(t, fiveLines, code("c1", 1, 5))

	_, err := nb.Query(`.[] |`)
	assert.Error(t, err)

	_, err = nb.Query(`.[] | error("boom")`)
	assert.Error(t, err)
}
