package text

import "strings"

// UnescapeTestContent supports content using a special character instead of backticks.
func UnescapeTestContent(content string) string {
	// We support a special syntax for backticks in content.
	// Backticks are used to define Markdown code fences but
	// multiline strings in Golang cannot contains backticks.

	// We allow the ” character instead as suggested here: https://stackoverflow.com/a/59900008
	//
	// Example: ”””go will become ```go
	result := strings.ReplaceAll(content, "”", "`")

	// We allow the ‛ character
	// Example: ‛x‛ will become `x`
	result = strings.ReplaceAll(result, "‛", "`")

	return result
}
