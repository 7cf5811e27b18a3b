// Package diag projects engine violations into live editor diagnostics
// and keeps them consistent, or explicitly stale, as the underlying text
// is edited.
package diag

import "github.com/yaklabco/codewatch/pkg/violation"

// Bucket is the display severity of a diagnostic.
type Bucket string

const (
	BucketError   Bucket = "error"
	BucketWarning Bucket = "warning"
	BucketInfo    Bucket = "info"
)

// SeverityPolicy maps an engine severity (1..5) to a display bucket.
// Supplied by the embedding product so configuration can override the
// conventional thresholds.
type SeverityPolicy interface {
	BucketFor(severity int) Bucket
}

// ThresholdPolicy is the conventional severity policy: severities at or
// below ErrorMax are errors, at or below WarningMax are warnings, and
// everything else is informational.
type ThresholdPolicy struct {
	ErrorMax   int
	WarningMax int
}

// DefaultPolicy returns the conventional 1-2/3-4/5 mapping.
func DefaultPolicy() ThresholdPolicy {
	return ThresholdPolicy{ErrorMax: 2, WarningMax: 4}
}

// BucketFor implements SeverityPolicy.
func (p ThresholdPolicy) BucketFor(severity int) Bucket {
	switch {
	case severity <= p.ErrorMax:
		return BucketError
	case severity <= p.WarningMax:
		return BucketWarning
	default:
		return BucketInfo
	}
}

// RelatedInfo is a rendered violation suggestion, anchored at the
// suggestion's own location rather than the diagnostic's primary range.
type RelatedInfo struct {
	File    string
	Range   Range
	Message string
}

// Diagnostic is the editor-facing projection of exactly one Violation.
// Its range and staleness flag are mutated by the reconciler as the
// document is edited; everything else is fixed at construction.
//
// Diagnostics are compared by identity, never by value: two diagnostics
// built from equal violations are distinct entries in the store.
type Diagnostic struct {
	// File is the document the diagnostic is attached to.
	File string

	// Range is the current 0-indexed half-open span. Updated by the
	// reconciler when edits shift the text below them.
	Range Range

	// Bucket is the display severity.
	Bucket Bucket

	// Source labels the engine that produced the finding.
	Source string

	// Message is the human-readable description.
	Message string

	// Related holds rendered suggestions, one per violation suggestion.
	Related []RelatedInfo

	// Stale is set once the text under Range has been edited since the
	// scan. A stale diagnostic may still be displayed, but fixes must
	// refuse to apply. Never cleared; a fresh scan replaces the
	// diagnostic instead.
	Stale bool

	v *violation.Violation
}

// Violation returns the finding this diagnostic was built from.
func (d *Diagnostic) Violation() *violation.Violation {
	return d.v
}

// Rule returns the rule identifier of the underlying violation.
func (d *Diagnostic) Rule() string {
	return d.v.Rule
}
