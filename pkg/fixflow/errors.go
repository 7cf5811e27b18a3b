package fixflow

import (
	"errors"
	"fmt"
)

// ErrConsolidationUnsupported is returned by generators when a
// diagnostic carries more than one candidate fix location. Merging
// multiple engine fixes into one edit is not implemented; failing loudly
// beats silently picking one.
var ErrConsolidationUnsupported = errors.New(
	"multiple fix locations require consolidation, which is not supported")

// StaleDiagnosticError reports a fix refused because the diagnostic's
// text changed after analysis.
type StaleDiagnosticError struct {
	Rule string
}

func (e *StaleDiagnosticError) Error() string {
	return fmt.Sprintf("diagnostic for rule %q is stale: the code changed since it was analyzed", e.Rule)
}

// DiffPresentationError reports that the diff tool failed to render a
// proposed change. The diagnostic stays in the store untouched.
type DiffPresentationError struct {
	Err error
}

func (e *DiffPresentationError) Error() string {
	return fmt.Sprintf("unable to present fix diff: %v", e.Err)
}

func (e *DiffPresentationError) Unwrap() error { return e.Err }
