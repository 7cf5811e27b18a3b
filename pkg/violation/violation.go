// Package violation defines the data model for findings produced by
// external scanning engines, before they are projected into editor
// diagnostics.
package violation

import "fmt"

// Severity bounds for engine findings. 1 is most severe.
const (
	SeverityMin = 1
	SeverityMax = 5
)

// CodeLocation is a 1-indexed source position reported by an engine.
// Start is inclusive; the end fields are inclusive when present and may
// be zero when the engine reports only a point.
type CodeLocation struct {
	// File is the path of the file the location refers to.
	File string `json:"file"`

	// StartLine is the 1-based line where the finding starts.
	StartLine int `json:"startLine"`

	// StartColumn is the 1-based column where the finding starts.
	StartColumn int `json:"startColumn"`

	// EndLine is the 1-based line where the finding ends, or 0 if unknown.
	EndLine int `json:"endLine,omitempty"`

	// EndColumn is the 1-based column where the finding ends, or 0 if unknown.
	EndColumn int `json:"endColumn,omitempty"`
}

// HasEnd reports whether the engine supplied an explicit end position.
func (l CodeLocation) HasEnd() bool {
	return l.EndLine > 0 && l.EndColumn > 0
}

// Suggestion is a human-readable hint attached to a violation, anchored
// at its own location rather than the violation's primary location.
type Suggestion struct {
	Location CodeLocation `json:"location"`
	Message  string       `json:"message"`
}

// Fix is an engine-proposed replacement for the code at Location.
type Fix struct {
	Location  CodeLocation `json:"location"`
	FixedCode string       `json:"fixedCode"`
}

// Violation is one finding from a scanning engine. It is produced once
// by a scan and never mutated afterwards; exactly one Diagnostic wraps it.
type Violation struct {
	// Rule is the identifier of the rule that fired (e.g. "ApexCRUDViolation").
	Rule string `json:"rule"`

	// Engine labels the scanning engine that produced the finding.
	Engine string `json:"engine"`

	// Message is the human-readable description of the finding.
	Message string `json:"message"`

	// Severity is the engine-reported severity, 1 (worst) through 5.
	Severity int `json:"severity"`

	// Locations holds every source location the finding refers to.
	// Must be non-empty.
	Locations []CodeLocation `json:"locations"`

	// PrimaryLocationIndex selects the location the diagnostic range is
	// built from.
	PrimaryLocationIndex int `json:"primaryLocationIndex"`

	// Tags carries engine-specific categorization labels.
	Tags []string `json:"tags,omitempty"`

	// Resources lists documentation URLs for the rule.
	Resources []string `json:"resources,omitempty"`

	// Suggestions holds optional human-readable hints.
	Suggestions []Suggestion `json:"suggestions,omitempty"`

	// Fixes holds optional engine-proposed code replacements.
	Fixes []Fix `json:"fixes,omitempty"`
}

// PrimaryLocation returns the location selected by PrimaryLocationIndex.
// Callers must Validate first; out-of-range access panics like any slice.
func (v *Violation) PrimaryLocation() CodeLocation {
	return v.Locations[v.PrimaryLocationIndex]
}

// MalformedViolationError reports a violation that cannot be turned into
// a diagnostic. It blocks that one violation from reaching the store; the
// rest of the scan batch continues.
type MalformedViolationError struct {
	Rule    string
	Message string
}

func (e *MalformedViolationError) Error() string {
	return fmt.Sprintf("malformed violation for rule %q: %s", e.Rule, e.Message)
}

// Validate checks the structural invariants a violation must satisfy
// before a diagnostic can be built from it.
func (v *Violation) Validate() error {
	if len(v.Locations) == 0 {
		return &MalformedViolationError{Rule: v.Rule, Message: "no locations"}
	}
	if v.PrimaryLocationIndex < 0 || v.PrimaryLocationIndex >= len(v.Locations) {
		return &MalformedViolationError{
			Rule: v.Rule,
			Message: fmt.Sprintf("primary location index %d out of range for %d locations",
				v.PrimaryLocationIndex, len(v.Locations)),
		}
	}
	return nil
}
