package core

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/julien-sobczak/the-notebook/internal/helpers"
	"github.com/julien-sobczak/the-notebook/pkg/oid"
	"github.com/julien-sobczak/the-notebook/pkg/text"
	"gopkg.in/yaml.v3"
)

// Detection is the method used to find the initial cells of a document.
type Detection string

const (
	// DetectMarkers starts a new cell on every marker line (ex: "-- %%").
	DetectMarkers Detection = "markers"
	// DetectFences uses fenced code blocks as code cells and the text between as Markdown cells.
	DetectFences Detection = "fences"
	// DetectSingle uses a single code cell.
	DetectSingle Detection = "single"
)

// DefaultMarker is the prefix of lines starting a new cell.
const DefaultMarker = "-- %%"

// Ex: "-- %% [markdown]", "# %% [md] Introduction"
var reMarkdownMarker = regexp.MustCompile(`^\s*\[(markdown|md)\]`)

func ParseDetection(s string) (Detection, error) {
	switch Detection(strings.ToLower(strings.TrimSpace(s))) {
	case DetectMarkers, "":
		return DetectMarkers, nil
	case DetectFences:
		return DetectFences, nil
	case DetectSingle:
		return DetectSingle, nil
	}
	return "", fmt.Errorf("unknown layout detection %q", s)
}

// DetectLayout splits a document into contiguous cells covering every line.
// New identifiers are generated for every cell.
func DetectLayout(content string, detection Detection, marker string) (Cells, error) {
	lines := text.NewLineIteratorFromText(content)
	var cells Cells
	switch detection {
	case DetectSingle:
		cells = append(cells, newDetectedCell(KindCode, 1, lines.Len()))
	case DetectMarkers, "":
		cells = detectMarkers(lines, marker)
	case DetectFences:
		cells = detectFences(lines)
	default:
		return nil, fmt.Errorf("unknown layout detection %q", detection)
	}
	if err := cells.ValidateCoverage(lines.Len()); err != nil {
		// Must not happen
		return nil, err
	}
	return cells, nil
}

func newDetectedCell(kind Kind, start, end int) Cell {
	return Cell{
		ID:    oid.New(),
		Kind:  kind,
		Range: NewLineRange(start, end),
	}
}

func detectMarkers(lines *text.LineIterator, marker string) Cells {
	if marker == "" {
		marker = DefaultMarker
	}
	var cells Cells
	start := 1
	kind := KindCode
	for lines.HasNext() {
		line := lines.Next()
		if !strings.HasPrefix(line.Text, marker) {
			continue
		}
		if line.Number > start {
			cells = append(cells, newDetectedCell(kind, start, line.Number-1))
		}
		// The marker line belongs to the cell it opens
		start = line.Number
		kind = KindCode
		if reMarkdownMarker.MatchString(strings.TrimPrefix(line.Text, marker)) {
			kind = KindMarkdown
		}
	}
	cells = append(cells, newDetectedCell(kind, start, lines.Len()))
	return cells
}

func detectFences(lines *text.LineIterator) Cells {
	var cells Cells
	start := 1
	insideFence := false
	for lines.HasNext() {
		line := lines.Next()
		if !strings.HasPrefix(strings.TrimSpace(line.Text), "```") {
			continue
		}
		if !insideFence {
			if line.Number > start {
				cells = append(cells, newDetectedCell(KindMarkdown, start, line.Number-1))
			}
			start = line.Number
			insideFence = true
			continue
		}
		// Closing fence is part of the code cell
		cells = append(cells, newDetectedCell(KindCode, start, line.Number))
		start = line.Number + 1
		insideFence = false
	}
	if start <= lines.Len() {
		kind := KindMarkdown
		if insideFence {
			// Unclosed fence
			kind = KindCode
		}
		cells = append(cells, newDetectedCell(kind, start, lines.Len()))
	}
	return cells
}

/* Layout file */

// LayoutFile is the persisted list of cells (.nb/layout).
type LayoutFile struct {
	Cells   []LayoutCell `yaml:"cells"`
	Retired []string     `yaml:"retired,omitempty"`
	// Digest of the document when the layout was saved
	Digest string `yaml:"digest,omitempty"`
}

type LayoutCell struct {
	ID    string `yaml:"id"`
	Kind  string `yaml:"kind"`
	Start int    `yaml:"start"`
	End   int    `yaml:"end"`
}

// NewLayoutFile creates the file content for the given cells.
func NewLayoutFile(cells Cells, retired []string) *LayoutFile {
	result := &LayoutFile{
		Retired: retired,
	}
	for _, cell := range cells {
		result.Cells = append(result.Cells, LayoutCell{
			ID:    cell.ID,
			Kind:  string(cell.Kind),
			Start: cell.Range.Start,
			End:   cell.Range.End,
		})
	}
	return result
}

// ParseLayoutFile reads a layout file. Unknown fields are rejected.
func ParseLayoutFile(content string) (*LayoutFile, error) {
	d := yaml.NewDecoder(strings.NewReader(content))
	d.KnownFields(true)
	var result LayoutFile
	if err := d.Decode(&result); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &result, nil
}

// ToCells converts the file content. Ranges are validated later against the document.
func (l *LayoutFile) ToCells() (Cells, error) {
	var cells Cells
	for i, c := range l.Cells {
		if !oid.IsValid(c.ID) {
			return nil, fmt.Errorf("invalid id %q for cell #%d", c.ID, i+1)
		}
		kind, err := ParseKind(c.Kind)
		if err != nil {
			return nil, fmt.Errorf("cell %q: %w", c.ID, err)
		}
		cells = append(cells, Cell{
			ID:    c.ID,
			Kind:  kind,
			Range: NewLineRange(c.Start, c.End),
		})
	}
	return cells, nil
}

// IsOutdated returns if the document was modified since the layout was saved.
// Layouts without digest are trusted.
func (l *LayoutFile) IsOutdated(doc *Document) bool {
	return l.Digest != "" && l.Digest != helpers.HashText(doc.FullText())
}

// Encode formats the layout in YAML.
func (l *LayoutFile) Encode() (string, error) {
	return encodeYAML(l)
}
