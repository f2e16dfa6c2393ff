package core

import (
	"errors"
	"fmt"
)

// Errors returned by notebook operations.
var (
	ErrRange           = errors.New("range out of bounds")
	ErrNotFound        = errors.New("cell not found")
	ErrInvariant       = errors.New("invariant violation")
	ErrDegenerateRange = errors.New("degenerate range")
	ErrDuplicateID     = errors.New("duplicate cell id")
	ErrRetiredID       = errors.New("cell id already used")
	ErrNoActiveCell    = errors.New("no active cell")
)

// RangeError reports a read outside the current document bounds.
type RangeError struct {
	Start     int
	End       int
	LineCount int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("lines [%d,%d] outside document of %d line(s)", e.Start, e.End, e.LineCount)
}

func (e *RangeError) Is(target error) bool {
	return target == ErrRange
}

// NotFoundError reports a cell id absent from the current range set.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("cell %q not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// InvariantViolation reports a range set breaking one of the model invariants.
// It signals a programming error, not a transient fault.
type InvariantViolation struct {
	Reason string
	Cells  Cells
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violation: %s (cells: %s)", e.Reason, e.Cells)
}

func (e *InvariantViolation) Is(target error) bool {
	return target == ErrInvariant
}

func violation(cells Cells, format string, args ...any) *InvariantViolation {
	return &InvariantViolation{
		Reason: fmt.Sprintf(format, args...),
		Cells:  cells,
	}
}
