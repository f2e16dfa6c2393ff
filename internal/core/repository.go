package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julien-sobczak/the-notebook/internal/helpers"
	"github.com/julien-sobczak/the-notebook/pkg/resync"
	"github.com/julien-sobczak/the-notebook/pkg/text"
)

var (
	// Lazy-load the notebook and ensure a single read
	repositoryOnce      resync.Once
	repositorySingleton *Repository
	notebookOnce        resync.Once
	notebookSingleton   *Notebook
)

// Repository reads and writes the files of a notebook directory.
type Repository struct {
	Path   string
	config *Config
}

func CurrentRepository() *Repository {
	repositoryOnce.Do(func() {
		var err error
		repositorySingleton, err = NewRepository(CurrentConfig())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to init current repository: %v\n", err)
			os.Exit(1)
		}
	})
	return repositorySingleton
}

// CurrentNotebook returns the notebook of the current repository.
func CurrentNotebook() *Notebook {
	notebookOnce.Do(func() {
		var err error
		notebookSingleton, err = CurrentRepository().LoadNotebook()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to load current notebook: %v\n", err)
			os.Exit(1)
		}
	})
	return notebookSingleton
}

func NewRepository(config *Config) (*Repository, error) {
	if err := config.Check(); err != nil {
		return nil, err
	}
	absolutePath, err := filepath.Abs(config.RootDirectory)
	if err != nil {
		return nil, err
	}
	return &Repository{
		Path:   absolutePath,
		config: config,
	}, nil
}

// LoadNotebook reads the document and its layout.
// The layout is detected from the document when never saved before.
func (r *Repository) LoadNotebook() (*Notebook, error) {
	content, err := os.ReadFile(r.config.DocumentPath())
	if err != nil {
		return nil, fmt.Errorf("unable to read document: %w", err)
	}

	layoutFile := r.config.LayoutFile
	if layoutFile != nil && layoutFile.IsOutdated(NewDocument(string(content))) {
		CurrentLogger().Warnf("Document %q was modified outside the notebook. Detecting cells again.", r.config.ConfigFile.Core.Document)
		layoutFile = nil
	}

	var cells Cells
	if layoutFile != nil {
		cells, err = layoutFile.ToCells()
		if err != nil {
			return nil, err
		}
	} else {
		detection, err := ParseDetection(r.config.ConfigFile.Layout.Detect)
		if err != nil {
			return nil, err
		}
		cells, err = DetectLayout(string(content), detection, r.config.ConfigFile.Layout.Marker)
		if err != nil {
			return nil, err
		}
		CurrentLogger().Debugf("Detected %d cell(s) in %q using %s", len(cells), r.config.ConfigFile.Core.Document, detection)
	}

	nb, err := NewNotebook(string(content), cells, r.config.NotebookOptions()...)
	if err != nil {
		return nil, fmt.Errorf("invalid layout for %q: %w", r.config.ConfigFile.Core.Document, err)
	}
	return nb, nil
}

// SaveNotebook writes back the document and its layout.
func (r *Repository) SaveNotebook(nb *Notebook) error {
	if r.config.DryRun {
		CurrentLogger().Infof("Skipping save of %q (dry-run)", r.config.ConfigFile.Core.Document)
		return nil
	}

	// Use a snapshot to write a document with its matching layout
	snapshot := nb.Snapshot()
	content := snapshot.Document.FullText()
	if newline := r.config.Newline(); newline != text.Newline {
		content = strings.ReplaceAll(content, text.Newline, newline)
	}
	if err := os.WriteFile(r.config.DocumentPath(), []byte(content), 0644); err != nil {
		return fmt.Errorf("unable to write document: %w", err)
	}

	layoutFile := NewLayoutFile(snapshot.Cells, snapshot.Retired)
	layoutFile.Digest = helpers.HashText(snapshot.Document.FullText())
	layout, err := layoutFile.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(r.config.LayoutPath(), []byte(layout), 0644); err != nil {
		return fmt.Errorf("unable to write layout: %w", err)
	}
	r.config.LayoutFile = layoutFile
	CurrentLogger().Debugf("Saved %d cell(s) of %q (revision %d)", len(snapshot.Cells), r.config.ConfigFile.Core.Document, snapshot.Revision)
	return nil
}

// SaveNotebook writes back the current notebook.
func SaveNotebook() error {
	return CurrentRepository().SaveNotebook(CurrentNotebook())
}
