// Package editor defines the contracts the surrounding editor host must
// satisfy: document access, user-facing notifications, and diff
// presentation. The core never talks to a concrete editor directly.
package editor

import (
	"context"

	"github.com/yaklabco/codewatch/pkg/diag"
)

// Document is a read/write view of one open text document.
type Document interface {
	// Path is the file identity used by the diagnostic store.
	Path() string

	// LanguageID identifies the document language (e.g. "apex",
	// "javascript"), as language servers label them.
	LanguageID() string

	// Text returns the full current document text.
	Text() string

	// LineCount returns the number of lines in the document.
	LineCount() int

	// Line returns line i without its trailing newline. Out-of-range
	// indices return the empty string.
	Line(i int) string

	// TextInRange returns the text currently under r. Columns past the
	// end of a line clamp to the line end.
	TextInRange(r diag.Range) string

	// ApplyEdit replaces the text under r with newText.
	ApplyEdit(r diag.Range, newText string) error
}

// Notifier surfaces user-visible messages. Implementations must not
// block on user interaction.
type Notifier interface {
	Info(message string)
	Error(message string)
}

// Decision is the user's verdict on a presented diff.
type Decision int

const (
	// DecisionRejected discards the proposed change.
	DecisionRejected Decision = iota

	// DecisionAccepted applies the proposed change.
	DecisionAccepted
)

// DiffRequest describes one proposed change to present to the user.
type DiffRequest struct {
	// Document is the target of the proposed change.
	Document Document

	// Range is the span the replacement applies to.
	Range diag.Range

	// Replacement is the proposed new text for Range.
	Replacement string

	// Title labels the diff view (typically the rule name).
	Title string
}

// DiffTool renders a proposed change and blocks until the user accepts
// or rejects it. A returned error means the diff could not be presented
// at all; the proposed change is then discarded.
type DiffTool interface {
	Present(ctx context.Context, req DiffRequest) (Decision, error)
}
