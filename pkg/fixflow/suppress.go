package fixflow

import (
	"context"
	"strings"

	"github.com/yaklabco/codewatch/pkg/declscan"
	"github.com/yaklabco/codewatch/pkg/diag"
	"github.com/yaklabco/codewatch/pkg/editor"
)

// EngineFixGenerator proposes the replacement code the scanning engine
// attached to the violation itself.
type EngineFixGenerator struct{}

// ComputeFix implements Generator. Violations without engine fixes yield
// nothing; more than one fix location yields ErrConsolidationUnsupported
// rather than an arbitrary pick.
func (EngineFixGenerator) ComputeFix(
	_ context.Context, d *diag.Diagnostic, doc editor.Document,
) (*Fix, error) {
	fixes := d.Violation().Fixes
	switch {
	case len(fixes) == 0:
		return nil, nil
	case len(fixes) > 1:
		return nil, ErrConsolidationUnsupported
	}

	f := fixes[0]
	if f.Location.File != "" && f.Location.File != doc.Path() {
		return nil, nil
	}
	return &Fix{
		Range:       diag.RangeFromLocation(f.Location, d.Rule()),
		Replacement: f.FixedCode,
	}, nil
}

// SuppressionGenerator proposes an in-source suppression annotation on
// the declaration enclosing the diagnostic, so the engine stops
// reporting the rule there.
type SuppressionGenerator struct{}

// ComputeFix implements Generator. Documents in languages without a
// suppression convention, and rules already suppressed at the enclosing
// declaration, yield nothing.
func (SuppressionGenerator) ComputeFix(
	_ context.Context, d *diag.Diagnostic, doc editor.Document,
) (*Fix, error) {
	lang, ok := declscan.ForLanguageID(doc.LanguageID())
	if !ok {
		return nil, nil
	}

	lines := strings.Split(doc.Text(), "\n")
	scanner := declscan.NewScanner(lang)
	declLine := scanner.FindEnclosingDeclarationStart(lines, d.Range.Start.Line)

	edit := lang.SuppressionFor(lines, declLine, d.Rule())
	switch edit.Action {
	case declscan.SuppressionReplaceLine:
		return &Fix{
			Range: diag.Range{
				Start: diag.Position{Line: edit.Line, Column: 0},
				End:   diag.Position{Line: edit.Line, Column: len(lines[edit.Line])},
			},
			Replacement: edit.Text,
		}, nil
	case declscan.SuppressionInsertLine:
		return &Fix{
			Range: diag.Range{
				Start: diag.Position{Line: edit.Line, Column: 0},
				End:   diag.Position{Line: edit.Line, Column: 0},
			},
			Replacement: edit.Text + "\n",
		}, nil
	default:
		return nil, nil
	}
}
