package core

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/julien-sobczak/the-notebook/pkg/clock"
	"golang.org/x/exp/slices"
)

// Notebook is the synchronization context owned by the notebook root.
//
// It holds the shared document and the cell ranges. Both are replaced together
// under a single lock so readers never observe a document without its matching ranges.
// Writes are serialized: a change is fully applied before the next one is accepted.
type Notebook struct {
	mu         sync.RWMutex
	doc        *Document
	cells      Cells
	retired    map[string]struct{}
	revision   int
	updatedAt  time.Time
	strict     bool
	contiguous bool
	logger     *Logger
	// name of the document used in patches
	name string

	// notifyMu keeps listeners called in commit order
	notifyMu  sync.Mutex
	listeners []*listener
}

type listener struct {
	fn func(Change)
}

// Option configures a Notebook.
type Option func(*Notebook)

// WithStrictInvariants makes invariant violations fatal (panic) instead of logged and rejected.
func WithStrictInvariants(strict bool) Option {
	return func(n *Notebook) {
		n.strict = strict
	}
}

// WithContiguousCells requires cells to be adjacent and to cover the whole document.
func WithContiguousCells(contiguous bool) Option {
	return func(n *Notebook) {
		n.contiguous = contiguous
	}
}

// WithLogger overrides the logger (default to CurrentLogger()).
func WithLogger(logger *Logger) Option {
	return func(n *Notebook) {
		n.logger = logger
	}
}

// WithName sets the name of the document (default to "document").
func WithName(name string) Option {
	return func(n *Notebook) {
		n.name = name
	}
}

// WithRetiredIDs declares identifiers used by cells removed in the past.
func WithRetiredIDs(ids ...string) Option {
	return func(n *Notebook) {
		for _, id := range ids {
			n.retired[id] = struct{}{}
		}
	}
}

// Snapshot is a consistent view of a notebook at a given revision.
type Snapshot struct {
	Revision  int
	UpdatedAt time.Time
	Document  *Document
	Cells     Cells
	Retired   []string
}

// Operation names the mutation behind a Change.
type Operation string

const (
	OpEdit    Operation = "edit"
	OpInsert  Operation = "insert"
	OpSplit   Operation = "split"
	OpMerge   Operation = "merge"
	OpDelete  Operation = "delete"
	OpConvert Operation = "convert"
)

// Change describes a committed mutation.
type Change struct {
	Operation Operation
	CellID    string
	// Delta is the difference of document line count
	Delta    int
	Revision int
	Cells    Cells
}

// NewNotebook creates a notebook from a document and its initial layout.
func NewNotebook(content string, cells Cells, options ...Option) (*Notebook, error) {
	n := &Notebook{
		doc:        NewDocument(content),
		cells:      cells.Clone(),
		retired:    make(map[string]struct{}),
		contiguous: true,
		name:       "document",
		updatedAt:  clock.Now(),
	}
	for _, option := range options {
		option(n)
	}
	if n.logger == nil {
		n.logger = CurrentLogger()
	}
	if err := n.validate(n.cells, n.doc); err != nil {
		return nil, err
	}
	for _, cell := range n.cells {
		if _, ok := n.retired[cell.ID]; ok {
			return nil, fmt.Errorf("cell %q: %w", cell.ID, ErrRetiredID)
		}
	}
	return n, nil
}

/* Readers */

// Snapshot returns the current document and cells.
func (n *Notebook) Snapshot() Snapshot {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return Snapshot{
		Revision:  n.revision,
		UpdatedAt: n.updatedAt,
		Document:  n.doc.Clone(),
		Cells:     n.cells.Clone(),
		Retired:   n.retiredIDs(),
	}
}

// Cells returns a copy of the current cells.
func (n *Notebook) Cells() Cells {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.cells.Clone()
}

// Cell returns the cell with the given id.
func (n *Notebook) Cell(id string) (Cell, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	cell, ok := n.cells.Find(id)
	if !ok {
		return Cell{}, &NotFoundError{ID: id}
	}
	return cell, nil
}

// Text returns the full document.
func (n *Notebook) Text() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.doc.FullText()
}

// LineCount returns the number of lines of the document.
func (n *Notebook) LineCount() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.doc.LineCount()
}

// Name returns the name of the document.
func (n *Notebook) Name() string {
	return n.name
}

// Revision returns the number of committed changes.
func (n *Notebook) Revision() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.revision
}

// Content returns the current text of a cell.
func (n *Notebook) Content(id string) (string, error) {
	projection, err := n.Project(id)
	if err != nil {
		return "", err
	}
	return projection.VisibleText, nil
}

// Project returns the projection of a cell on the current document.
func (n *Notebook) Project(id string) (Projection, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	cell, ok := n.cells.Find(id)
	if !ok {
		return Projection{}, &NotFoundError{ID: id}
	}
	return Project(n.doc, cell.Range)
}

// Retired returns the identifiers that can no longer be used.
func (n *Notebook) Retired() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.retiredIDs()
}

func (n *Notebook) retiredIDs() []string {
	var ids []string
	for id := range n.retired {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// OnChange registers a function called after every committed change.
// Listeners are called serially in commit order and must not mutate the notebook.
// The returned function unregisters the listener.
func (n *Notebook) OnChange(fn func(Change)) func() {
	l := &listener{fn: fn}
	n.notifyMu.Lock()
	n.listeners = append(n.listeners, l)
	n.notifyMu.Unlock()
	return func() {
		n.notifyMu.Lock()
		defer n.notifyMu.Unlock()
		n.listeners = slices.DeleteFunc(n.listeners, func(other *listener) bool {
			return other == l
		})
	}
}

/* Writers */

// ApplyEdit replaces the content of a cell and shifts the following cells.
func (n *Notebook) ApplyEdit(id, content string) (Change, error) {
	return n.mutate(OpEdit, id, func(doc *Document, cells Cells) (Cells, *Document, error) {
		return ApplyEdit(doc, cells, id, content)
	})
}

// mutation computes the next state from the current one without modifying it.
type mutation func(doc *Document, cells Cells) (Cells, *Document, error)

// mutate runs a mutation and commits its result atomically.
// A result breaking an invariant is never committed.
func (n *Notebook) mutate(op Operation, id string, fn mutation) (Change, error) {
	n.mu.Lock()
	newCells, newDoc, err := fn(n.doc, n.cells)
	if err == nil {
		err = n.validate(newCells, newDoc)
	}
	if err != nil {
		n.mu.Unlock()
		var v *InvariantViolation
		if errors.As(err, &v) {
			if n.strict {
				panic(v)
			}
			n.logger.Warnf("Rejected %s of cell %q: %v", op, id, v)
		}
		return Change{}, err
	}

	change := Change{
		Operation: op,
		CellID:    id,
		Delta:     newDoc.LineCount() - n.doc.LineCount(),
		Revision:  n.revision + 1,
		Cells:     newCells.Clone(),
	}
	for _, cell := range n.cells {
		if newCells.IndexOf(cell.ID) == -1 {
			n.retired[cell.ID] = struct{}{}
		}
	}
	n.doc = newDoc
	n.cells = newCells
	n.revision = change.Revision
	n.updatedAt = clock.Now()
	n.logger.Debugf("Committed %s of cell %q (revision %d, delta %+d)", op, id, change.Revision, change.Delta)

	// Acquire notifyMu before releasing mu to preserve commit order
	n.notifyMu.Lock()
	n.mu.Unlock()
	defer n.notifyMu.Unlock()
	for _, l := range n.listeners {
		l.fn(change)
	}
	return change, nil
}

func (n *Notebook) validate(cells Cells, doc *Document) error {
	if n.contiguous {
		return cells.ValidateCoverage(doc.LineCount())
	}
	return cells.Validate(doc.LineCount())
}

// checkNewID ensures an identifier was never used in this notebook.
// Must be called with the lock held.
func (n *Notebook) checkNewID(id string, cells Cells) error {
	if cells.IndexOf(id) != -1 {
		return fmt.Errorf("cell %q: %w", id, ErrDuplicateID)
	}
	if _, ok := n.retired[id]; ok {
		return fmt.Errorf("cell %q: %w", id, ErrRetiredID)
	}
	return nil
}
