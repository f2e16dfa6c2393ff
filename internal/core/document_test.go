package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument(t *testing.T) {
	doc := NewDocument("def a\ndef b\ndef c\ndef d\ndef e")
	assert.Equal(t, 5, doc.LineCount())
	assert.Equal(t, "def a\ndef b\ndef c\ndef d\ndef e", doc.FullText())

	actual, err := doc.Slice(2, 4)
	require.NoError(t, err)
	assert.Equal(t, "def b\ndef c\ndef d", actual)

	actual, err = doc.Slice(5, 5)
	require.NoError(t, err)
	assert.Equal(t, "def e", actual)

	line, err := doc.Line(1)
	require.NoError(t, err)
	assert.Equal(t, "def a", line)

	lines, err := doc.Lines(1, 2)
	require.NoError(t, err)
	lines[0] = "changed"
	line, _ = doc.Line(1)
	assert.Equal(t, "def a", line)

	doc.SetFullText("x\ny")
	assert.Equal(t, 2, doc.LineCount())
	assert.Equal(t, "x\ny", doc.FullText())
}

func TestDocumentLineSplitting(t *testing.T) {
	var tests = []struct {
		name     string
		input    string
		count    int
		fullText string
	}{
		{"Empty", "", 1, ""},
		{"Single line", "def a", 1, "def a"},
		{"Trailing newline", "def a\n", 2, "def a\n"},
		{"Windows", "def a\r\ndef b\r\n", 3, "def a\ndef b\n"},
		{"Blank lines", "\n\n", 3, "\n\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := NewDocument(tt.input)
			assert.Equal(t, tt.count, doc.LineCount())
			assert.Equal(t, tt.fullText, doc.FullText())
		})
	}

	var zero Document
	assert.Equal(t, 0, zero.LineCount())
	assert.Equal(t, "", zero.FullText())
}

func TestDocumentSliceOutOfRange(t *testing.T) {
	doc := NewDocument("def a\ndef b\ndef c")
	for _, r := range []LineRange{
		{Start: 0, End: 1},
		{Start: 2, End: 4},
		{Start: 3, End: 2},
		{Start: 4, End: 4},
	} {
		_, err := doc.Slice(r.Start, r.End)
		require.Error(t, err, "slice %s", r)
		assert.ErrorIs(t, err, ErrRange)
		var rangeErr *RangeError
		require.True(t, errors.As(err, &rangeErr))
		assert.Equal(t, 3, rangeErr.LineCount)
	}
}

func TestDocumentSplice(t *testing.T) {
	doc := NewDocument("a\nb\nc\nd")

	// Replace
	actual := doc.splice(2, 3, []string{"x"})
	assert.Equal(t, "a\nx\nd", actual.FullText())
	// The original is untouched
	assert.Equal(t, "a\nb\nc\nd", doc.FullText())

	// Insert before line 3
	actual = doc.splice(3, 2, []string{"x", "y"})
	assert.Equal(t, "a\nb\nx\ny\nc\nd", actual.FullText())

	// Append
	actual = doc.splice(5, 4, []string{"e"})
	assert.Equal(t, "a\nb\nc\nd\ne", actual.FullText())

	// Delete
	actual = doc.splice(1, 2, nil)
	assert.Equal(t, "c\nd", actual.FullText())
}
