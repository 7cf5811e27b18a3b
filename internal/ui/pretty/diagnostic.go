package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/codewatch/pkg/diag"
)

// FormatDiagnostic formats a single diagnostic for terminal output.
// Positions render 1-based, matching what editors show. Stale
// diagnostics are dimmed and tagged so their positions are read as
// approximate.
func (s *Styles) FormatDiagnostic(d *diag.Diagnostic, sourceLine string) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(d.File),
		d.Range.Start.Line+1,
		d.Range.Start.Column+1,
	)

	message := s.Message.Render(d.Message)
	if d.Stale {
		message = s.Stale.Render(d.Message) + " " + s.Dim.Render("[stale]")
	}

	builder.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
		location,
		s.FormatBucket(d.Bucket),
		message,
		s.RuleID.Render("("+d.Rule()+")"),
	))

	if sourceLine != "" && !d.Stale {
		builder.WriteString(s.FormatSourceContext(sourceLine, d.Range.Start.Column))
	}

	for _, rel := range d.Related {
		builder.WriteString(fmt.Sprintf("    %s %s %s\n",
			s.Dim.Render(fmt.Sprintf("related %d:%d", rel.Range.Start.Line+1, rel.Range.Start.Column+1)),
			s.Dim.Render("-"),
			s.Related.Render(rel.Message),
		))
	}

	return builder.String()
}

// FormatBucket returns a styled severity-bucket string.
func (s *Styles) FormatBucket(b diag.Bucket) string {
	switch b {
	case diag.BucketError:
		return s.Error.Render("error")
	case diag.BucketWarning:
		return s.Warning.Render("warning")
	case diag.BucketInfo:
		return s.Info.Render("info")
	default:
		return string(b)
	}
}

// FormatSourceContext formats the source line with a caret marker under
// the 0-based column.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	// Indent to align with diagnostic output
	const indent = "        "

	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	if column >= 0 && column <= len(line) {
		padding := indent + strings.Repeat(" ", column)
		builder.WriteString(padding + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, diagnosticCount int) string {
	header := s.FilePath.Render(path)
	if diagnosticCount > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d diagnostics)", diagnosticCount))
	}
	return header
}
