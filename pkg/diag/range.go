package diag

import (
	"math"

	"github.com/yaklabco/codewatch/pkg/violation"
)

// MaxColumn is the sentinel end column meaning "rest of the line". It is
// used when an engine reports only a point location. Kept at MaxInt32 so
// it is stable across architectures.
const MaxColumn = math.MaxInt32

// ruleApexSharingViolations marks the one rule whose engine reports
// misleading multi-line spans. See RangeFromLocation.
const ruleApexSharingViolations = "ApexSharingViolations"

// Position is a 0-indexed line/column pair.
type Position struct {
	Line   int
	Column int
}

// Compare returns -1, 0, or 1 as p sorts before, equal to, or after q.
func (p Position) Compare(q Position) int {
	if p.Line != q.Line {
		if p.Line < q.Line {
			return -1
		}
		return 1
	}
	if p.Column != q.Column {
		if p.Column < q.Column {
			return -1
		}
		return 1
	}
	return 0
}

// Range is a half-open [Start, End) span in 0-indexed positions.
type Range struct {
	Start Position
	End   Position
}

// Contains reports whether pos falls inside the half-open range.
func (r Range) Contains(pos Position) bool {
	return r.Start.Compare(pos) <= 0 && pos.Compare(r.End) < 0
}

// Overlaps reports whether two half-open ranges share any position.
// Touching ranges (one ends where the other starts) do not overlap.
func (r Range) Overlaps(o Range) bool {
	return r.Start.Compare(o.End) < 0 && o.Start.Compare(r.End) < 0
}

// SameLines reports whether both ranges start and end on the same lines.
// This is deliberately line-based rather than overlap-based; see
// Store.ClearInRange.
func (r Range) SameLines(o Range) bool {
	return r.Start.Line == o.Start.Line && r.End.Line == o.End.Line
}

// RangeFromLocation converts a 1-indexed inclusive engine location into a
// 0-indexed half-open range.
//
// Engines occasionally emit 0 where 1 is meant, so degenerate start
// fields clamp to 0 instead of failing. A missing end collapses to
// "rest of the start line".
//
// ApexSharingViolations quirk: the producing engine returns multi-line
// end positions that mislead more than they inform, so explicit ends for
// that rule are collapsed onto the start line. Remove once the upstream
// engine reports accurate spans.
func RangeFromLocation(loc violation.CodeLocation, rule string) Range {
	start := Position{
		Line:   clampIndex(loc.StartLine),
		Column: clampIndex(loc.StartColumn),
	}

	if !loc.HasEnd() || rule == ruleApexSharingViolations && loc.EndLine != loc.StartLine {
		return Range{
			Start: start,
			End:   Position{Line: start.Line, Column: MaxColumn},
		}
	}

	// Inclusive end column becomes exclusive without adjustment.
	return Range{
		Start: start,
		End:   Position{Line: loc.EndLine - 1, Column: loc.EndColumn},
	}
}

func clampIndex(oneBased int) int {
	if oneBased <= 0 {
		return 0
	}
	return oneBased - 1
}
