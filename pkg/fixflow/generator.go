// Package fixflow runs the fix-suggestion workflow: validate a
// diagnostic, compute a fix through a pluggable generator, present the
// change as a diff, and apply or discard it. The workflow guarantees a
// fix is never applied to text that moved since analysis.
package fixflow

import (
	"context"
	"fmt"
	"slices"

	"github.com/yaklabco/codewatch/pkg/diag"
	"github.com/yaklabco/codewatch/pkg/editor"
)

// Fix is one concrete proposed edit: replace the text under Range with
// Replacement.
type Fix struct {
	Range       diag.Range
	Replacement string
}

// Generator computes a fix for a diagnostic against the current
// document. Returning (nil, nil) means no actionable fix exists.
// Implementations include rule-based suppression, engine-proposed
// rewrites, and external LLM or remote-analysis suggesters.
type Generator interface {
	ComputeFix(ctx context.Context, d *diag.Diagnostic, doc editor.Document) (*Fix, error)
}

// Registry maps engine identifiers to the Generator handling their
// diagnostics. The mapping is fixed at construction so unknown engines
// fail fast instead of silently doing nothing.
type Registry struct {
	byEngine map[string]Generator
}

// NewRegistry creates a Registry. Every engine name must carry a
// non-nil generator.
func NewRegistry(generators map[string]Generator) (*Registry, error) {
	byEngine := make(map[string]Generator, len(generators))
	for engine, gen := range generators {
		if gen == nil {
			return nil, fmt.Errorf("nil fix generator registered for engine %q", engine)
		}
		byEngine[engine] = gen
	}
	return &Registry{byEngine: byEngine}, nil
}

// ForEngine returns the generator for an engine identifier.
func (r *Registry) ForEngine(engine string) (Generator, error) {
	gen, ok := r.byEngine[engine]
	if !ok {
		return nil, fmt.Errorf("no fix generator registered for engine %q", engine)
	}
	return gen, nil
}

// Engines returns the registered engine identifiers, sorted.
func (r *Registry) Engines() []string {
	engines := make([]string, 0, len(r.byEngine))
	for e := range r.byEngine {
		engines = append(engines, e)
	}
	slices.Sort(engines)
	return engines
}
