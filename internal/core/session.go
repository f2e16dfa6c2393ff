package core

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Strategy decides how many cell views are materialized at once.
type Strategy string

const (
	// StrategySingle uses one editing surface. Other cells are static previews.
	StrategySingle Strategy = "single"
	// StrategyShared materializes one masked view per cell, all editing the shared document.
	StrategyShared Strategy = "shared"
)

// ParseStrategy converts a configuration value to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategySingle, "":
		return StrategySingle, nil
	case StrategyShared:
		return StrategyShared, nil
	}
	return "", fmt.Errorf("unknown editor strategy %q", s)
}

type CellState int

const (
	StatePreview CellState = iota
	StateActive
)

func (s CellState) String() string {
	if s == StateActive {
		return "active"
	}
	return "preview"
}

// Preview is the static representation of a cell.
type Preview struct {
	Cell  Cell
	State CellState
	Text  string
	// HTML is only set for Markdown cells
	HTML string
}

type view struct {
	cellID  string
	handle  Handle
	pending *string
}

// Session drives the Preview/Active state of every cell of a notebook.
//
// With StrategySingle, activating a cell first deactivates the previous one so that
// its pending content is applied before the switch. Edits are applied on deactivation.
// With StrategyShared, every change notification is applied immediately.
type Session struct {
	notebook *Notebook
	surface  Surface
	renderer MarkdownRenderer
	strategy Strategy
	onError  func(id string, err error)

	// mu protects views and active. Never held while calling the notebook.
	mu          sync.Mutex
	views       map[string]*view
	active      string
	unsubscribe func()
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithErrorHandler receives the errors of edits applied from change notifications.
func WithErrorHandler(fn func(id string, err error)) SessionOption {
	return func(s *Session) {
		s.onError = fn
	}
}

func NewSession(notebook *Notebook, surface Surface, renderer MarkdownRenderer, strategy Strategy, options ...SessionOption) *Session {
	s := &Session{
		notebook: notebook,
		surface:  surface,
		renderer: renderer,
		strategy: strategy,
		views:    make(map[string]*view),
	}
	s.onError = func(id string, err error) {
		notebook.logger.Warnf("Failed to apply change of cell %q: %v", id, err)
	}
	for _, option := range options {
		option(s)
	}
	s.unsubscribe = notebook.OnChange(s.refresh)
	return s
}

// Strategy returns the strategy in use.
func (s *Session) Strategy() Strategy {
	return s.strategy
}

// State returns the state of a cell.
func (s *Session) State(id string) CellState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.views[id]; ok {
		return StateActive
	}
	return StatePreview
}

// ActiveCells returns the identifiers of active cells in range order.
func (s *Session) ActiveCells() []string {
	cells := s.notebook.Cells()
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []string
	for _, cell := range cells {
		if _, ok := s.views[cell.ID]; ok {
			ids = append(ids, cell.ID)
		}
	}
	return ids
}

// Activate renders a cell on the editing surface.
func (s *Session) Activate(id string) error {
	if _, err := s.notebook.Cell(id); err != nil {
		return err
	}

	s.mu.Lock()
	if _, ok := s.views[id]; ok {
		s.mu.Unlock()
		return nil
	}
	previous := s.active
	s.mu.Unlock()

	if s.strategy == StrategySingle && previous != "" {
		// Flush before switch
		if err := s.Deactivate(previous); err != nil {
			return fmt.Errorf("deactivate cell %q: %w", previous, err)
		}
	}

	projection, err := s.notebook.Project(id)
	if err != nil {
		return err
	}
	v := &view{cellID: id}
	handle, err := s.surface.Render(projection.VisibleText, func(text string) {
		s.changed(v, text)
	})
	if err != nil {
		return fmt.Errorf("render cell %q: %w", id, err)
	}
	v.handle = handle
	if masker, ok := handle.(Masker); ok {
		masker.Mask(projection)
	}

	s.mu.Lock()
	s.views[id] = v
	if s.strategy == StrategySingle {
		s.active = id
	}
	s.mu.Unlock()
	return nil
}

// OpenAll activates every cell. Only supported with StrategyShared.
func (s *Session) OpenAll() error {
	if s.strategy != StrategyShared {
		return fmt.Errorf("cannot open all cells with strategy %q", s.strategy)
	}
	for _, cell := range s.notebook.Cells() {
		if err := s.Activate(cell.ID); err != nil {
			return err
		}
	}
	return nil
}

// Flush applies the pending content of an active cell without deactivating it.
func (s *Session) Flush(id string) error {
	s.mu.Lock()
	v, ok := s.views[id]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("cell %q: %w", id, ErrNoActiveCell)
	}
	pending := v.pending
	v.pending = nil
	s.mu.Unlock()

	if pending == nil {
		return nil
	}
	current, err := s.notebook.Content(id)
	if err != nil {
		return err
	}
	if current == *pending {
		return nil
	}
	if _, err := s.notebook.ApplyEdit(id, *pending); err != nil {
		s.mu.Lock()
		if v.pending == nil {
			// Keep the content to retry later
			v.pending = pending
		}
		s.mu.Unlock()
		return err
	}
	return nil
}

// Deactivate applies the pending content of a cell, releases its view and
// returns the cell to the preview state. The cell stays active on failure.
func (s *Session) Deactivate(id string) error {
	if err := s.Flush(id); err != nil {
		return err
	}
	s.mu.Lock()
	v, ok := s.views[id]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("cell %q: %w", id, ErrNoActiveCell)
	}
	delete(s.views, id)
	if s.active == id {
		s.active = ""
	}
	s.mu.Unlock()
	return v.handle.Dispose()
}

// Preview returns the static representation of a cell.
func (s *Session) Preview(id string) (Preview, error) {
	cell, err := s.notebook.Cell(id)
	if err != nil {
		return Preview{}, err
	}
	content, err := s.notebook.Content(id)
	if err != nil {
		return Preview{}, err
	}
	result := Preview{
		Cell:  cell,
		State: s.State(id),
		Text:  content,
	}
	if cell.Kind == KindMarkdown && s.renderer != nil {
		result.HTML = s.renderer.RenderToSafeHTML(content)
	}
	return result, nil
}

// Close deactivates every cell and stops listening to the notebook.
func (s *Session) Close() error {
	s.mu.Lock()
	var ids []string
	for id := range s.views {
		ids = append(ids, id)
	}
	s.mu.Unlock()
	sort.Strings(ids)

	var errs []error
	for _, id := range ids {
		if err := s.Deactivate(id); err != nil {
			errs = append(errs, err)
		}
	}
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	return errors.Join(errs...)
}

func (s *Session) changed(v *view, text string) {
	if s.strategy == StrategyShared {
		if _, err := s.notebook.ApplyEdit(v.cellID, text); err != nil {
			s.onError(v.cellID, err)
		}
		return
	}
	s.mu.Lock()
	v.pending = &text
	s.mu.Unlock()
}

// refresh masks again the open views after a change and drops the views of removed cells.
func (s *Session) refresh(change Change) {
	s.mu.Lock()
	var masked []*view
	var removed []*view
	for id, v := range s.views {
		if change.Cells.IndexOf(id) == -1 {
			removed = append(removed, v)
			delete(s.views, id)
			if s.active == id {
				s.active = ""
			}
			continue
		}
		if _, ok := v.handle.(Masker); ok {
			masked = append(masked, v)
		}
	}
	s.mu.Unlock()

	for _, v := range removed {
		if err := v.handle.Dispose(); err != nil {
			s.onError(v.cellID, err)
		}
	}
	for _, v := range masked {
		projection, err := s.notebook.Project(v.cellID)
		if err != nil {
			s.onError(v.cellID, err)
			continue
		}
		v.handle.(Masker).Mask(projection)
	}
}
