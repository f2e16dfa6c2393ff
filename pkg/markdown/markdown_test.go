package markdown_test

import (
	"testing"

	"github.com/julien-sobczak/the-notebook/pkg/markdown"
	"github.com/julien-sobczak/the-notebook/pkg/text"
	"github.com/stretchr/testify/assert"
)

func TestIsHeading(t *testing.T) {
	ok, _, _ := markdown.IsHeading("Some text")
	assert.False(t, ok)

	ok, _, _ = markdown.IsHeading("#eval add 2 3")
	assert.False(t, ok)

	ok, title, level := markdown.IsHeading("# Heading 1")
	assert.True(t, ok)
	assert.Equal(t, "Heading 1", title)
	assert.Equal(t, 1, level)

	ok, title, level = markdown.IsHeading("###### Heading 6")
	assert.True(t, ok)
	assert.Equal(t, "Heading 6", title)
	assert.Equal(t, 6, level)

	// Sub levels are not supported
	ok, _, _ = markdown.IsHeading("####### Heading 7")
	assert.False(t, ok)
}

func TestTitle(t *testing.T) {
	var tests = []struct {
		name     string
		input    string
		expected string
	}{
		{"Heading", "\n## Markdown Example\nThis is a markdown cell.", "Markdown Example"},
		{"NoHeading", "\n\n-- Lean file example\ndef add", "-- Lean file example"},
		{"HeadingInCode", "”””\n# not a title\n”””\n# Title", "Title"},
		{"Blank", "  \n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, markdown.Title(text.UnescapeTestContent(tt.input)))
		})
	}
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "markdown-example", markdown.Slug("Markdown Example"))
	assert.Equal(t, "lean-file-example", markdown.Slug("-- Lean file example"))
	assert.Equal(t, "", markdown.Slug(""))
}
