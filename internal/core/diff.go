package core

import (
	godiffpatch "github.com/sourcegraph/go-diff-patch"
)

// PreviewEdit computes an edit without committing it and returns the patch of the document.
// An empty patch is returned when the edit changes nothing.
func (n *Notebook) PreviewEdit(id, content string) (string, error) {
	snapshot := n.Snapshot()
	newCells, newDoc, err := ApplyEdit(snapshot.Document, snapshot.Cells, id, content)
	if err != nil {
		return "", err
	}
	if err := n.validate(newCells, newDoc); err != nil {
		return "", err
	}
	before := snapshot.Document.FullText()
	after := newDoc.FullText()
	if before == after {
		return "", nil
	}
	return godiffpatch.GeneratePatch(n.name, before, after), nil
}
