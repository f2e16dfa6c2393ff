package markdown

import (
	"strings"

	"github.com/gosimple/slug"
	"github.com/julien-sobczak/the-notebook/pkg/text"
)

// IsHeading returns if a given line is a Markdown heading and its level.
func IsHeading(line string) (bool, string, int) {
	if !strings.HasPrefix(line, "#") {
		return false, "", 0
	}
	level := len(line) - len(strings.TrimLeft(line, "#"))
	if level > 6 {
		return false, "", 0
	}
	rest := line[level:]
	if !strings.HasPrefix(rest, " ") {
		return false, "", 0
	}
	return true, strings.TrimSpace(rest), level
}

// Title returns the first heading of a Markdown source.
// The first non-blank line is used when no heading is present.
func Title(md string) string {
	insideCodeBlock := false
	for _, line := range text.SplitLines(md) {
		if strings.HasPrefix(line, "```") {
			insideCodeBlock = !insideCodeBlock
			continue
		}
		if insideCodeBlock {
			continue
		}
		if ok, title, _ := IsHeading(line); ok {
			return title
		}
	}
	return text.FirstNonBlankLine(md)
}

// Slug returns a URL-friendly version of a text.
//
// Ex: "## Markdown Example" => "markdown-example"
func Slug(txt string) string {
	return slug.Make(txt)
}
