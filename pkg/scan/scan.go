// Package scan defines the scanning-engine contract and orchestrates
// scans across engines and targets, loading results into the diagnostic
// store.
package scan

import (
	"context"
	"fmt"
	"slices"

	"github.com/yaklabco/codewatch/pkg/violation"
)

// Engine is one external scanning engine.
type Engine interface {
	// Name is the engine identifier violations carry in their Engine
	// field.
	Name() string

	// Scan analyzes the target files and returns every violation found.
	Scan(ctx context.Context, targets []string) ([]violation.Violation, error)
}

// ScanFailedError reports that an engine's scan failed as a whole.
type ScanFailedError struct {
	Engine string
	Err    error
}

func (e *ScanFailedError) Error() string {
	return fmt.Sprintf("engine %q scan failed: %v", e.Engine, e.Err)
}

func (e *ScanFailedError) Unwrap() error { return e.Err }

// Registry holds the configured engines, keyed by name. The set is
// fixed at construction; asking for an unknown engine is an error so
// misconfiguration surfaces at startup, not as a silent no-op.
type Registry struct {
	engines map[string]Engine
}

// NewRegistry creates a Registry from the given engines. Duplicate
// names are rejected.
func NewRegistry(engines ...Engine) (*Registry, error) {
	byName := make(map[string]Engine, len(engines))
	for _, e := range engines {
		if _, dup := byName[e.Name()]; dup {
			return nil, fmt.Errorf("duplicate scan engine %q", e.Name())
		}
		byName[e.Name()] = e
	}
	return &Registry{engines: byName}, nil
}

// Get returns the engine with the given name.
func (r *Registry) Get(name string) (Engine, error) {
	e, ok := r.engines[name]
	if !ok {
		return nil, fmt.Errorf("unknown scan engine %q", name)
	}
	return e, nil
}

// Names returns the registered engine names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.engines))
	for n := range r.engines {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
