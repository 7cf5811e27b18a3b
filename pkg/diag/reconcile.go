package diag

import "strings"

// TextEdit is one replacement from a document-change notification: the
// half-open range that was replaced and the text that replaced it.
type TextEdit struct {
	Range   Range
	NewText string
}

// ReconcileEdits updates every diagnostic on file for a document-change
// notification, processing edits in the order the host reported them.
//
// For each diagnostic and edit:
//   - any overlap marks the diagnostic stale, permanently — only a fresh
//     scan replaces it with a non-stale one;
//   - a diagnostic starting at or after the edit's end is shifted by the
//     net line delta of the edit, and by the column delta when the edit
//     stayed within a single line;
//   - a diagnostic entirely before the edit is untouched.
//
// Re-running the scanner on every keystroke is too expensive, so this
// keeps positions approximately right and staleness acts as the write
// guard: fix application must refuse stale diagnostics, display may dim
// them. Stale diagnostics keep receiving position shifts.
func (s *Store) ReconcileEdits(file string, edits []TextEdit) {
	s.mu.Lock()
	defer s.mu.Unlock()

	diags := s.files[file]
	for _, edit := range edits {
		for _, d := range diags {
			reconcileOne(d, edit)
		}
	}
}

func reconcileOne(d *Diagnostic, edit TextEdit) {
	if d.Range.Overlaps(edit.Range) {
		d.Stale = true
		return
	}

	// Entirely before the edit.
	if d.Range.Start.Compare(edit.Range.End) < 0 {
		return
	}

	lineDelta := strings.Count(edit.NewText, "\n") -
		(edit.Range.End.Line - edit.Range.Start.Line)
	if lineDelta != 0 {
		d.Range.Start.Line += lineDelta
		d.Range.End.Line += lineDelta
		return
	}

	// Single-line edit: shift columns for diagnostics further along the
	// same line.
	if edit.Range.Start.Line != edit.Range.End.Line {
		return
	}
	colDelta := len(edit.NewText) - (edit.Range.End.Column - edit.Range.Start.Column)
	if colDelta == 0 {
		return
	}
	if d.Range.Start.Line == edit.Range.End.Line {
		d.Range.Start.Column += colDelta
		if d.Range.End.Line == edit.Range.End.Line && d.Range.End.Column != MaxColumn {
			d.Range.End.Column += colDelta
		}
	}
}
