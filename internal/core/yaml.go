package core

import (
	"bytes"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Indent is the number of spaces used when writing YAML files.
const Indent int = 2

var reSequenceItem = regexp.MustCompile(`^(\s*)  (- .*)$`)

// CompactYAML removes leading spaces in front of sequences.
//
// Ex:
//
//	doc:
//	  - toto: tata
//
// Becomes
//
//	doc:
//	- toto: tata
func CompactYAML(doc string) string {
	// Identing sequences using zero-space (compact form) is not supported:
	// https://github.com/go-yaml/yaml/issues/661
	var buf bytes.Buffer
	insideSequence := false
	var leadingSpaces string // the spaces prefix for successive lines in the sequence
	for _, line := range strings.Split(strings.TrimSuffix(doc, "\n"), "\n") {
		if reSequenceItem.MatchString(line) {
			rs := reSequenceItem.FindStringSubmatch(line)
			buf.WriteString(rs[1] + rs[2])
			buf.WriteString("\n")
			insideSequence = true
			leadingSpaces = rs[1] + "    "
		} else if insideSequence && strings.HasPrefix(line, leadingSpaces) {
			buf.WriteString(line[Indent:])
			buf.WriteString("\n")
		} else {
			buf.WriteString(line)
			buf.WriteString("\n")
			insideSequence = false
			leadingSpaces = ""
		}
	}
	return buf.String()
}

// encodeYAML marshals a value using the compact form.
func encodeYAML(value any) (string, error) {
	var buf bytes.Buffer
	bufEncoder := yaml.NewEncoder(&buf)
	bufEncoder.SetIndent(Indent)
	if err := bufEncoder.Encode(value); err != nil {
		return "", err
	}
	if err := bufEncoder.Close(); err != nil {
		return "", err
	}
	return CompactYAML(buf.String()), nil
}
