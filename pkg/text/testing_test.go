package text_test

import (
	"testing"

	"github.com/julien-sobczak/the-notebook/pkg/text"
	"github.com/stretchr/testify/assert"
)

func TestUnescapeTestContent(t *testing.T) {
	var tests = []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Code fence with ”",
			input:    "”””lean",
			expected: "```lean",
		},
		{
			name:     "Inline code with ‛",
			input:    "use ‛nb ls‛",
			expected: "use `nb ls`",
		},
		{
			name:     "No special characters",
			input:    "def a",
			expected: "def a",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, text.UnescapeTestContent(tt.input))
		})
	}
}
