package fixflow

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/yaklabco/codewatch/internal/telemetry"
	"github.com/yaklabco/codewatch/pkg/diag"
	"github.com/yaklabco/codewatch/pkg/editor"
)

// Outcome is the terminal state of one workflow run. Every run ends in
// exactly one outcome; errors never escape the workflow boundary.
type Outcome string

const (
	// OutcomeSkipped means validation failed and nothing visible
	// happened. Callers pre-filter, so this is a safety net.
	OutcomeSkipped Outcome = "skipped"

	// OutcomeNoFix means the generator produced nothing actionable.
	OutcomeNoFix Outcome = "no_fix_available"

	// OutcomeAccepted means the user accepted and the edit was applied.
	OutcomeAccepted Outcome = "accepted"

	// OutcomeRejected means the user discarded the proposed edit.
	OutcomeRejected Outcome = "rejected"

	// OutcomeStale means the diagnostic went stale while the diff was
	// open; the edit was not applied.
	OutcomeStale Outcome = "stale"

	// OutcomeError means the generator or diff tool failed. The
	// diagnostic stays in the store untouched.
	OutcomeError Outcome = "error"
)

// RelevancePredicate decides whether a diagnostic is structurally
// applicable to a document before any fix is computed.
type RelevancePredicate func(d *diag.Diagnostic, doc editor.Document) bool

// Workflow coordinates fix suggestion and application for one store.
// Safe for concurrent use; runs on the same diagnostic are serialized by
// ignoring triggers that arrive while one is in flight.
type Workflow struct {
	store     *diag.Store
	diffTool  editor.DiffTool
	notifier  editor.Notifier
	sink      telemetry.Sink
	relevant  RelevancePredicate
	inFlight  map[*diag.Diagnostic]struct{}
	inFlightM sync.Mutex
}

// NewWorkflow creates a Workflow. A nil relevance predicate uses
// DefaultRelevance; a nil sink discards telemetry.
func NewWorkflow(
	store *diag.Store,
	diffTool editor.DiffTool,
	notifier editor.Notifier,
	sink telemetry.Sink,
	relevant RelevancePredicate,
) *Workflow {
	if sink == nil {
		sink = telemetry.Nop{}
	}
	if relevant == nil {
		relevant = DefaultRelevance
	}
	return &Workflow{
		store:    store,
		diffTool: diffTool,
		notifier: notifier,
		sink:     sink,
		relevant: relevant,
		inFlight: make(map[*diag.Diagnostic]struct{}),
	}
}

// DefaultRelevance accepts non-stale diagnostics whose file and fix
// locations all belong to the document.
func DefaultRelevance(d *diag.Diagnostic, doc editor.Document) bool {
	if d.Stale || d.File != doc.Path() {
		return false
	}
	for _, f := range d.Violation().Fixes {
		if f.Location.File != "" && f.Location.File != doc.Path() {
			return false
		}
	}
	return true
}

// Run executes the workflow for one diagnostic: validate, compute a fix
// through gen, present it as a diff, and apply or discard it based on
// the user's decision. All failure modes are converted into telemetry
// plus user-visible messages; the returned Outcome is the terminal state.
func (w *Workflow) Run(
	ctx context.Context,
	d *diag.Diagnostic,
	doc editor.Document,
	gen Generator,
) Outcome {
	if !w.begin(d) {
		return OutcomeSkipped
	}
	defer w.end(d)

	if !w.relevant(d, doc) {
		return OutcomeSkipped
	}

	fix, err := gen.ComputeFix(ctx, d, doc)
	if err != nil {
		w.notifier.Error(err.Error())
		w.sink.Exception(telemetry.ExceptionFixGenerator, err.Error(), w.props(d, doc))
		return OutcomeError
	}
	if fix == nil {
		w.sink.Event(telemetry.EventFixNone,
			w.propsWith(d, doc, telemetry.PropReason, telemetry.ReasonEmpty))
		return OutcomeNoFix
	}

	// A replacement identical to the current text would present an empty
	// diff; report it as no fix instead.
	if fix.Replacement == doc.TextInRange(fix.Range) {
		w.sink.Event(telemetry.EventFixNone,
			w.propsWith(d, doc, telemetry.PropReason, telemetry.ReasonSameCode))
		return OutcomeNoFix
	}

	w.sink.Event(telemetry.EventFixSuggested, w.props(d, doc))

	decision, err := w.diffTool.Present(ctx, editor.DiffRequest{
		Document:    doc,
		Range:       fix.Range,
		Replacement: fix.Replacement,
		Title:       d.Rule(),
	})
	if err != nil {
		perr := &DiffPresentationError{Err: err}
		w.notifier.Error(perr.Error())
		w.sink.Exception(telemetry.ExceptionDiffTool, perr.Error(), w.props(d, doc))
		return OutcomeError
	}

	if decision != editor.DecisionAccepted {
		w.sink.Event(telemetry.EventFixRejected, w.props(d, doc))
		return OutcomeRejected
	}

	// The user may have edited the document while the diff was open;
	// staleness here is an implicit cancellation.
	if d.Stale {
		serr := &StaleDiagnosticError{Rule: d.Rule()}
		w.notifier.Error(serr.Error())
		w.sink.Event(telemetry.EventFixStale, w.props(d, doc))
		return OutcomeStale
	}

	if err := doc.ApplyEdit(fix.Range, fix.Replacement); err != nil {
		w.notifier.Error(err.Error())
		w.sink.Exception(telemetry.ExceptionEditApply, err.Error(), w.props(d, doc))
		return OutcomeError
	}
	w.store.ClearDiagnostic(d)
	w.sink.Event(telemetry.EventFixAccepted, w.propsWith(d, doc,
		telemetry.PropLineCount, strconv.Itoa(strings.Count(fix.Replacement, "\n")+1)))
	return OutcomeAccepted
}

func (w *Workflow) begin(d *diag.Diagnostic) bool {
	w.inFlightM.Lock()
	defer w.inFlightM.Unlock()
	if _, busy := w.inFlight[d]; busy {
		return false
	}
	w.inFlight[d] = struct{}{}
	return true
}

func (w *Workflow) end(d *diag.Diagnostic) {
	w.inFlightM.Lock()
	defer w.inFlightM.Unlock()
	delete(w.inFlight, d)
}

func (w *Workflow) props(d *diag.Diagnostic, doc editor.Document) map[string]string {
	return map[string]string{
		telemetry.PropRuleName: d.Rule(),
		telemetry.PropEngine:   d.Source,
		telemetry.PropLanguage: doc.LanguageID(),
	}
}

func (w *Workflow) propsWith(
	d *diag.Diagnostic, doc editor.Document, extra ...string,
) map[string]string {
	props := w.props(d, doc)
	for i := 0; i+1 < len(extra); i += 2 {
		props[extra[i]] = extra[i+1]
	}
	return props
}
