package scan

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/codewatch/internal/logging"
	"github.com/yaklabco/codewatch/pkg/diag"
	"github.com/yaklabco/codewatch/pkg/violation"
)

// Summary aggregates one orchestrated scan batch.
type Summary struct {
	// Violations is the number of findings returned by all engines.
	Violations int

	// Diagnostics is the number of diagnostics stored.
	Diagnostics int

	// Skipped counts malformed violations that were dropped.
	Skipped int
}

// Orchestrator runs the configured engines over a set of targets,
// converts their violations through the factory, and replaces the
// store's diagnostics for those targets.
type Orchestrator struct {
	registry *Registry
	factory  *diag.Factory
	store    *diag.Store
}

// NewOrchestrator creates an Orchestrator.
func NewOrchestrator(registry *Registry, factory *diag.Factory, store *diag.Store) *Orchestrator {
	return &Orchestrator{
		registry: registry,
		factory:  factory,
		store:    store,
	}
}

// ScanAndStore scans targets with every registered engine concurrently,
// then atomically replaces the targets' diagnostics in the store.
// Logging goes to the context logger (logging.WithLogger).
//
// A malformed violation is logged and skipped without aborting the rest
// of the batch. An engine failure aborts the whole batch and leaves the
// store untouched.
func (o *Orchestrator) ScanAndStore(ctx context.Context, targets []string) (*Summary, error) {
	logger := logging.FromContext(ctx)

	g, ctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	var all []violation.Violation

	for _, name := range o.registry.Names() {
		engine, err := o.registry.Get(name)
		if err != nil {
			return nil, err
		}
		g.Go(func() error {
			found, err := engine.Scan(ctx, targets)
			if err != nil {
				return &ScanFailedError{Engine: engine.Name(), Err: err}
			}
			mu.Lock()
			all = append(all, found...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &Summary{Violations: len(all)}

	diags := make([]*diag.Diagnostic, 0, len(all))
	for i := range all {
		d, err := o.factory.FromViolation(&all[i])
		if err != nil {
			var malformed *violation.MalformedViolationError
			if errors.As(err, &malformed) {
				logger.Warn("skipping malformed violation",
					logging.FieldRule, all[i].Rule,
					logging.FieldEngine, all[i].Engine,
					logging.FieldError, err)
				summary.Skipped++
				continue
			}
			return nil, err
		}
		diags = append(diags, d)
	}

	o.store.ClearFiles(targets...)
	o.store.Add(diags...)
	summary.Diagnostics = len(diags)

	logger.Debug("scan batch stored",
		logging.FieldTargets, len(targets),
		logging.FieldViolations, summary.Violations,
		logging.FieldSkipped, summary.Skipped,
		logging.FieldDiagnostics, summary.Diagnostics)

	return summary, nil
}
