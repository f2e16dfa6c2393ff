// Package oid generates identifiers for cells.
//
// A cell identifier must stay stable for the whole lifetime of a notebook
// and must never be reused once the cell is gone.
package oid

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Length of generated identifiers.
const Length = 16

var reID = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_.-]*$`)

var generator Generator = &UniqueGenerator{}

// New returns a new identifier using the current generator.
func New() string {
	return generator.New()
}

// IsValid checks if a string can be used as a cell identifier.
// Identifiers written by hand in layout files ("intro", "cell1") are accepted.
func IsValid(id string) bool {
	return reID.MatchString(id)
}

/* Generators */

type Generator interface {
	New() string
}

// Reset restores the original unique generator.
// Useful in tests with a defer after overriding the default generator.
func Reset() {
	generator = &UniqueGenerator{}
}

// UniqueGenerator is a production-grade Generator returning random identifiers.
type UniqueGenerator struct{}

func (g *UniqueGenerator) New() string {
	// Ex: 123e4567-e89b-12d3-a456-426655440000 => 123e4567e89b12d3
	return strings.ReplaceAll(uuid.New().String(), "-", "")[0:Length]
}

// SuiteGenerator returns a predefined suite of identifiers.
type SuiteGenerator struct {
	nextIDs []string
}

func NewSuiteGenerator(nextIDs ...string) *SuiteGenerator {
	return &SuiteGenerator{nextIDs: nextIDs}
}

func (g *SuiteGenerator) New() string {
	if len(g.nextIDs) == 0 {
		panic("No more identifiers")
	}
	id := g.nextIDs[0]
	g.nextIDs = g.nextIDs[1:]
	return id
}

// SequenceGenerator returns numbered identifiers in a predictable format.
type SequenceGenerator struct {
	count int
}

func (g *SequenceGenerator) New() string {
	g.count++
	return fmt.Sprintf("%0*d", Length, g.count)
}
