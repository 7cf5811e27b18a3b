package editor

import (
	"fmt"
	"strings"

	"github.com/yaklabco/codewatch/pkg/diag"
)

// TextDocument is an in-memory Document. The CLI and tests use it
// directly; editor integrations supply their own Document backed by the
// host's buffer.
type TextDocument struct {
	path       string
	languageID string
	lines      []string
}

// NewTextDocument creates a document from its full text. Line endings
// are normalized to LF.
func NewTextDocument(path, languageID, text string) *TextDocument {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return &TextDocument{
		path:       path,
		languageID: languageID,
		lines:      strings.Split(text, "\n"),
	}
}

// Path implements Document.
func (d *TextDocument) Path() string { return d.path }

// LanguageID implements Document.
func (d *TextDocument) LanguageID() string { return d.languageID }

// Text implements Document.
func (d *TextDocument) Text() string {
	return strings.Join(d.lines, "\n")
}

// LineCount implements Document.
func (d *TextDocument) LineCount() int { return len(d.lines) }

// Line implements Document.
func (d *TextDocument) Line(i int) string {
	if i < 0 || i >= len(d.lines) {
		return ""
	}
	return d.lines[i]
}

// TextInRange implements Document. Columns past a line's end clamp to
// the line end, which makes the MaxColumn sentinel read "rest of line".
func (d *TextDocument) TextInRange(r diag.Range) string {
	startLine, endLine := r.Start.Line, r.End.Line
	if startLine < 0 || startLine >= len(d.lines) || endLine < startLine {
		return ""
	}
	if endLine >= len(d.lines) {
		endLine = len(d.lines) - 1
	}

	if startLine == endLine {
		line := d.lines[startLine]
		return line[clampCol(r.Start.Column, line):clampCol(r.End.Column, line)]
	}

	var b strings.Builder
	first := d.lines[startLine]
	b.WriteString(first[clampCol(r.Start.Column, first):])
	for i := startLine + 1; i < endLine; i++ {
		b.WriteByte('\n')
		b.WriteString(d.lines[i])
	}
	last := d.lines[endLine]
	b.WriteByte('\n')
	b.WriteString(last[:clampCol(r.End.Column, last)])
	return b.String()
}

// ApplyEdit implements Document.
func (d *TextDocument) ApplyEdit(r diag.Range, newText string) error {
	startLine, endLine := r.Start.Line, r.End.Line
	if startLine < 0 || startLine >= len(d.lines) {
		return fmt.Errorf("edit start line %d out of range (document has %d lines)",
			startLine, len(d.lines))
	}
	if endLine < startLine {
		return fmt.Errorf("edit end line %d before start line %d", endLine, startLine)
	}
	if endLine >= len(d.lines) {
		endLine = len(d.lines) - 1
	}

	first := d.lines[startLine]
	last := d.lines[endLine]
	prefix := first[:clampCol(r.Start.Column, first)]
	suffix := last[clampCol(r.End.Column, last):]

	replaced := strings.Split(prefix+newText+suffix, "\n")

	rebuilt := make([]string, 0, len(d.lines)-(endLine-startLine+1)+len(replaced))
	rebuilt = append(rebuilt, d.lines[:startLine]...)
	rebuilt = append(rebuilt, replaced...)
	rebuilt = append(rebuilt, d.lines[endLine+1:]...)
	d.lines = rebuilt
	return nil
}

func clampCol(col int, line string) int {
	if col < 0 {
		return 0
	}
	if col > len(line) {
		return len(line)
	}
	return col
}
