package text

import (
	"strings"
)

// Newline is the single newline convention used inside documents.
const Newline = "\n"

// NormalizeNewlines converts Windows and old Mac line endings to \n.
func NormalizeNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// SplitLines splits a text into lines.
// A trailing newline produces an empty last line and the empty text is one empty line.
func SplitLines(text string) []string {
	return strings.Split(NormalizeNewlines(text), Newline)
}

// JoinLines is the inverse of SplitLines.
func JoinLines(lines []string) string {
	return strings.Join(lines, Newline)
}

// IsBlank returns if a text is blank.
func IsBlank(text string) bool {
	return len(strings.TrimSpace(text)) == 0
}

// FirstNonBlankLine returns the first line containing something else than spaces.
func FirstNonBlankLine(text string) string {
	for _, line := range SplitLines(text) {
		if !IsBlank(line) {
			return strings.TrimSpace(line)
		}
	}
	return ""
}
