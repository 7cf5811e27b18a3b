package fixflow_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/codewatch/pkg/diag"
	"github.com/yaklabco/codewatch/pkg/editor"
	"github.com/yaklabco/codewatch/pkg/fixflow"
	"github.com/yaklabco/codewatch/pkg/violation"
)

// mockDiffTool returns a fixed decision, optionally running a hook while
// the diff is "open".
type mockDiffTool struct {
	decision   editor.Decision
	err        error
	whileOpen  func()
	presented  int
	lastTitle  string
	lastChange string
}

func (m *mockDiffTool) Present(_ context.Context, req editor.DiffRequest) (editor.Decision, error) {
	m.presented++
	m.lastTitle = req.Title
	m.lastChange = req.Replacement
	if m.whileOpen != nil {
		m.whileOpen()
	}
	return m.decision, m.err
}

type mockNotifier struct {
	infos  []string
	errors []string
}

func (m *mockNotifier) Info(msg string)  { m.infos = append(m.infos, msg) }
func (m *mockNotifier) Error(msg string) { m.errors = append(m.errors, msg) }

// recordingSink captures events for assertion.
type recordingSink struct {
	mu         sync.Mutex
	events     []string
	props      []map[string]string
	exceptions []string
}

func (s *recordingSink) Event(name string, properties map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, name)
	s.props = append(s.props, properties)
}

func (s *recordingSink) Exception(name, _ string, _ map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exceptions = append(s.exceptions, name)
}

// staticGenerator returns a canned fix or error.
type staticGenerator struct {
	fix *fixflow.Fix
	err error
}

func (g staticGenerator) ComputeFix(context.Context, *diag.Diagnostic, editor.Document) (*fixflow.Fix, error) {
	return g.fix, g.err
}

func mustDiagnostic(t *testing.T, v *violation.Violation) *diag.Diagnostic {
	t.Helper()
	d, err := diag.NewFactory(nil).FromViolation(v)
	require.NoError(t, err)
	return d
}

func pointViolation(file string, line, col int) *violation.Violation {
	return &violation.Violation{
		Rule:      "ApexCRUDViolation",
		Engine:    "pmd",
		Message:   "CRUD check missing",
		Severity:  3,
		Locations: []violation.CodeLocation{{File: file, StartLine: line, StartColumn: col}},
	}
}

func TestWorkflowAcceptedFix(t *testing.T) {
	t.Parallel()

	doc := editor.NewTextDocument("Foo.cls", "apex", "bad();\nok();")
	d := mustDiagnostic(t, pointViolation("Foo.cls", 1, 1))
	store := diag.NewStore()
	store.Add(d)

	diff := &mockDiffTool{decision: editor.DecisionAccepted}
	sink := &recordingSink{}
	w := fixflow.NewWorkflow(store, diff, &mockNotifier{}, sink, nil)

	fix := &fixflow.Fix{
		Range: diag.Range{
			Start: diag.Position{Line: 0, Column: 0},
			End:   diag.Position{Line: 0, Column: diag.MaxColumn},
		},
		Replacement: "good();",
	}

	outcome := w.Run(context.Background(), d, doc, staticGenerator{fix: fix})

	assert.Equal(t, fixflow.OutcomeAccepted, outcome)
	assert.Equal(t, "good();\nok();", doc.Text())
	assert.Empty(t, store.ForFile("Foo.cls"), "accepted fix clears the diagnostic")
	assert.Equal(t, []string{"fix_suggested", "fix_accepted"}, sink.events)
	assert.Equal(t, "ApexCRUDViolation", diff.lastTitle)

	accepted := sink.props[1]
	assert.Equal(t, "1", accepted["lineCount"])
	assert.Equal(t, "pmd", accepted["engine"])
	assert.Equal(t, "apex", accepted["languageType"])
}

func TestWorkflowRejectedFix(t *testing.T) {
	t.Parallel()

	doc := editor.NewTextDocument("Foo.cls", "apex", "bad();")
	d := mustDiagnostic(t, pointViolation("Foo.cls", 1, 1))
	store := diag.NewStore()
	store.Add(d)

	sink := &recordingSink{}
	w := fixflow.NewWorkflow(store, &mockDiffTool{decision: editor.DecisionRejected}, &mockNotifier{}, sink, nil)

	fix := &fixflow.Fix{
		Range: diag.Range{
			Start: diag.Position{Line: 0, Column: 0},
			End:   diag.Position{Line: 0, Column: 3},
		},
		Replacement: "ok",
	}

	outcome := w.Run(context.Background(), d, doc, staticGenerator{fix: fix})

	assert.Equal(t, fixflow.OutcomeRejected, outcome)
	assert.Equal(t, "bad();", doc.Text(), "rejected fix leaves the document alone")
	assert.Len(t, store.ForFile("Foo.cls"), 1, "rejected fix keeps the diagnostic")
	assert.Equal(t, []string{"fix_suggested", "fix_rejected"}, sink.events)
}

func TestWorkflowNoFix(t *testing.T) {
	t.Parallel()

	doc := editor.NewTextDocument("Foo.cls", "apex", "bad();")
	d := mustDiagnostic(t, pointViolation("Foo.cls", 1, 1))
	store := diag.NewStore()
	store.Add(d)

	diff := &mockDiffTool{decision: editor.DecisionAccepted}
	sink := &recordingSink{}
	w := fixflow.NewWorkflow(store, diff, &mockNotifier{}, sink, nil)

	outcome := w.Run(context.Background(), d, doc, staticGenerator{})

	assert.Equal(t, fixflow.OutcomeNoFix, outcome)
	assert.Zero(t, diff.presented, "no diff is shown when there is nothing to fix")
	require.Equal(t, []string{"fix_none_available"}, sink.events)
	assert.Equal(t, "empty", sink.props[0]["reason"])
}

func TestWorkflowSameCodeIsNoFix(t *testing.T) {
	t.Parallel()

	doc := editor.NewTextDocument("Foo.cls", "apex", "already fine;")
	d := mustDiagnostic(t, pointViolation("Foo.cls", 1, 1))
	store := diag.NewStore()
	store.Add(d)

	diff := &mockDiffTool{decision: editor.DecisionAccepted}
	sink := &recordingSink{}
	w := fixflow.NewWorkflow(store, diff, &mockNotifier{}, sink, nil)

	fix := &fixflow.Fix{
		Range: diag.Range{
			Start: diag.Position{Line: 0, Column: 0},
			End:   diag.Position{Line: 0, Column: diag.MaxColumn},
		},
		Replacement: "already fine;",
	}

	outcome := w.Run(context.Background(), d, doc, staticGenerator{fix: fix})

	assert.Equal(t, fixflow.OutcomeNoFix, outcome)
	assert.Zero(t, diff.presented, "an identical replacement would present an empty diff")
	require.Equal(t, []string{"fix_none_available"}, sink.events)
	assert.Equal(t, "same_code", sink.props[0]["reason"])
}

func TestWorkflowGeneratorError(t *testing.T) {
	t.Parallel()

	doc := editor.NewTextDocument("Foo.cls", "apex", "bad();")
	d := mustDiagnostic(t, pointViolation("Foo.cls", 1, 1))
	store := diag.NewStore()
	store.Add(d)

	notifier := &mockNotifier{}
	sink := &recordingSink{}
	w := fixflow.NewWorkflow(store, &mockDiffTool{}, notifier, sink, nil)

	outcome := w.Run(context.Background(), d, doc,
		staticGenerator{err: fixflow.ErrConsolidationUnsupported})

	assert.Equal(t, fixflow.OutcomeError, outcome)
	assert.Len(t, store.ForFile("Foo.cls"), 1, "diagnostic survives a generator failure")
	assert.NotEmpty(t, notifier.errors)
	assert.Equal(t, []string{"fix_generator_error"}, sink.exceptions)
}

func TestWorkflowDiffToolError(t *testing.T) {
	t.Parallel()

	doc := editor.NewTextDocument("Foo.cls", "apex", "bad();")
	d := mustDiagnostic(t, pointViolation("Foo.cls", 1, 1))
	store := diag.NewStore()
	store.Add(d)

	notifier := &mockNotifier{}
	sink := &recordingSink{}
	diff := &mockDiffTool{err: errors.New("view crashed")}
	w := fixflow.NewWorkflow(store, diff, notifier, sink, nil)

	fix := &fixflow.Fix{
		Range: diag.Range{
			Start: diag.Position{Line: 0, Column: 0},
			End:   diag.Position{Line: 0, Column: 3},
		},
		Replacement: "ok",
	}

	outcome := w.Run(context.Background(), d, doc, staticGenerator{fix: fix})

	assert.Equal(t, fixflow.OutcomeError, outcome)
	assert.Equal(t, "bad();", doc.Text())
	assert.Len(t, store.ForFile("Foo.cls"), 1)
	require.Len(t, notifier.errors, 1)
	assert.Contains(t, notifier.errors[0], "unable to present fix diff")
}

func TestWorkflowStaleDuringDiff(t *testing.T) {
	t.Parallel()

	doc := editor.NewTextDocument("Foo.cls", "apex", "bad();")
	d := mustDiagnostic(t, pointViolation("Foo.cls", 1, 1))
	store := diag.NewStore()
	store.Add(d)

	// The user edits the diagnosed text while the diff is open.
	diff := &mockDiffTool{
		decision:  editor.DecisionAccepted,
		whileOpen: func() { d.Stale = true },
	}
	notifier := &mockNotifier{}
	sink := &recordingSink{}
	w := fixflow.NewWorkflow(store, diff, notifier, sink, nil)

	fix := &fixflow.Fix{
		Range: diag.Range{
			Start: diag.Position{Line: 0, Column: 0},
			End:   diag.Position{Line: 0, Column: 3},
		},
		Replacement: "ok",
	}

	outcome := w.Run(context.Background(), d, doc, staticGenerator{fix: fix})

	assert.Equal(t, fixflow.OutcomeStale, outcome)
	assert.Equal(t, "bad();", doc.Text(), "stale acceptance must not touch the document")
	assert.Len(t, store.ForFile("Foo.cls"), 1)
	require.Len(t, notifier.errors, 1)
	assert.Contains(t, notifier.errors[0], "stale")
	assert.Equal(t, []string{"fix_suggested", "fix_stale"}, sink.events,
		"stale cancellation is a terminal state and reports one event")
}

func TestWorkflowSkipsStaleUpfront(t *testing.T) {
	t.Parallel()

	doc := editor.NewTextDocument("Foo.cls", "apex", "bad();")
	d := mustDiagnostic(t, pointViolation("Foo.cls", 1, 1))
	d.Stale = true
	store := diag.NewStore()
	store.Add(d)

	diff := &mockDiffTool{decision: editor.DecisionAccepted}
	w := fixflow.NewWorkflow(store, diff, &mockNotifier{}, &recordingSink{}, nil)

	outcome := w.Run(context.Background(), d, doc, staticGenerator{})
	assert.Equal(t, fixflow.OutcomeSkipped, outcome)
	assert.Zero(t, diff.presented)
}

func TestWorkflowSkipsOtherDocument(t *testing.T) {
	t.Parallel()

	doc := editor.NewTextDocument("Other.cls", "apex", "bad();")
	d := mustDiagnostic(t, pointViolation("Foo.cls", 1, 1))
	store := diag.NewStore()
	store.Add(d)

	w := fixflow.NewWorkflow(store, &mockDiffTool{}, &mockNotifier{}, &recordingSink{}, nil)

	outcome := w.Run(context.Background(), d, doc, staticGenerator{})
	assert.Equal(t, fixflow.OutcomeSkipped, outcome)
}

func TestWorkflowSerializesSameDiagnostic(t *testing.T) {
	t.Parallel()

	doc := editor.NewTextDocument("Foo.cls", "apex", "bad();")
	d := mustDiagnostic(t, pointViolation("Foo.cls", 1, 1))
	store := diag.NewStore()
	store.Add(d)

	var w *fixflow.Workflow
	var reentrant fixflow.Outcome
	diff := &mockDiffTool{
		decision: editor.DecisionRejected,
		whileOpen: func() {
			// A second trigger while the first diff is open is ignored.
			reentrant = w.Run(context.Background(), d, doc, staticGenerator{})
		},
	}
	w = fixflow.NewWorkflow(store, diff, &mockNotifier{}, &recordingSink{}, nil)

	fix := &fixflow.Fix{
		Range: diag.Range{
			Start: diag.Position{Line: 0, Column: 0},
			End:   diag.Position{Line: 0, Column: 3},
		},
		Replacement: "ok",
	}

	outcome := w.Run(context.Background(), d, doc, staticGenerator{fix: fix})

	assert.Equal(t, fixflow.OutcomeRejected, outcome)
	assert.Equal(t, fixflow.OutcomeSkipped, reentrant)
	assert.Equal(t, 1, diff.presented)
}

// End-to-end: an engine-proposed replacement flows from violation to
// applied edit.
func TestWorkflowEngineFixEndToEnd(t *testing.T) {
	t.Parallel()

	source := "public class Foo {\n" +
		"    void run() {\n" +
		"        Map<String, Schema.SObjectType> m;\n" +
		"        Schema.getGlobalDescribe();\n" +
		"    }\n" +
		"}"
	doc := editor.NewTextDocument("Foo.cls", "apex", source)

	v := &violation.Violation{
		Rule:     "AvoidUsingSchemaGetGlobalDescribe",
		Engine:   "pmd",
		Message:  "Schema.getGlobalDescribe is expensive",
		Severity: 3,
		Locations: []violation.CodeLocation{
			{File: "Foo.cls", StartLine: 4, StartColumn: 9},
		},
		Fixes: []violation.Fix{
			{
				Location:  violation.CodeLocation{File: "Foo.cls", StartLine: 4, StartColumn: 9},
				FixedCode: "Opportunity.sObjectType.getDescribe();",
			},
		},
	}
	d := mustDiagnostic(t, v)
	require.Equal(t, diag.Position{Line: 3, Column: 8}, d.Range.Start)
	require.Equal(t, diag.Position{Line: 3, Column: diag.MaxColumn}, d.Range.End)

	store := diag.NewStore()
	store.Add(d)

	sink := &recordingSink{}
	diff := &mockDiffTool{decision: editor.DecisionAccepted}
	w := fixflow.NewWorkflow(store, diff, &mockNotifier{}, sink, nil)

	outcome := w.Run(context.Background(), d, doc, fixflow.EngineFixGenerator{})

	assert.Equal(t, fixflow.OutcomeAccepted, outcome)
	assert.Contains(t, doc.Text(), "        Opportunity.sObjectType.getDescribe();")
	assert.NotContains(t, doc.Text(), "Schema.getGlobalDescribe();")
	assert.False(t, store.HasDiagnostics("Foo.cls"))

	require.Equal(t, []string{"fix_suggested", "fix_accepted"}, sink.events)
	assert.Equal(t, "AvoidUsingSchemaGetGlobalDescribe", sink.props[0]["ruleName"])
}
