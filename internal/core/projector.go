package core

// Projection is what a scoped editor view needs to display one range of the shared document.
type Projection struct {
	Range       LineRange
	VisibleText string
	// HiddenSpans are the document regions to suppress (at most two, before and after the range).
	HiddenSpans []LineRange
	TotalLines  int
}

// Project computes the visible text and the hidden spans of a range.
// The same projection is used whether one or many views are materialized at once.
func Project(doc *Document, r LineRange) (Projection, error) {
	visible, err := doc.Slice(r.Start, r.End)
	if err != nil {
		return Projection{}, err
	}
	total := doc.LineCount()
	var hidden []LineRange
	if r.Start > 1 {
		hidden = append(hidden, NewLineRange(1, r.Start-1))
	}
	if r.End < total {
		hidden = append(hidden, NewLineRange(r.End+1, total))
	}
	return Projection{
		Range:       r,
		VisibleText: visible,
		HiddenSpans: hidden,
		TotalLines:  total,
	}, nil
}

// IsHidden returns if a document line is masked in this projection.
func (p Projection) IsHidden(line int) bool {
	for _, span := range p.HiddenSpans {
		if span.Contains(line) {
			return true
		}
	}
	return false
}
