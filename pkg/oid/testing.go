package oid

import "testing"

// UseNext configures a predefined list of identifiers.
func UseNext(t *testing.T, ids ...string) {
	generator = NewSuiteGenerator(ids...)
	t.Cleanup(Reset)
}

// UseSequence configures a predictable sequence (0000000000000001, 0000000000000002, ...).
func UseSequence(t *testing.T) {
	generator = &SequenceGenerator{}
	t.Cleanup(Reset)
}
