package diag

import (
	"slices"
	"sync"
)

// Store holds the live diagnostics for every open file, keyed by file
// identity. It is the only shared mutable resource between scanning, the
// reconciler, and the fix workflow; all operations run to completion
// under one lock, so no caller ever observes a half-updated store.
//
// Invariant: a file with zero diagnostics has no map entry, so "has
// violations" is a structural O(1) check.
type Store struct {
	mu    sync.RWMutex
	files map[string][]*Diagnostic
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		files: make(map[string][]*Diagnostic),
	}
}

// Add appends diagnostics to their owning files' collections, in the
// order given. Duplicates by rule and range are allowed; a rescan is
// expected to clear the file first.
func (s *Store) Add(diags ...*Diagnostic) {
	if len(diags) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range diags {
		s.files[d.File] = append(s.files[d.File], d)
	}
}

// ClearFiles removes every diagnostic for exactly the listed files.
// Unlisted files are untouched. Idempotent.
func (s *Store) ClearFiles(files ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range files {
		delete(s.files, f)
	}
}

// ClearDiagnostic removes one specific diagnostic instance from its
// file's collection, matching by identity rather than value. Removing a
// diagnostic that is not present is a no-op.
func (s *Store) ClearDiagnostic(d *Diagnostic) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.files[d.File]
	for i, existing := range kept {
		if existing == d {
			kept = slices.Delete(kept, i, i+1)
			break
		}
	}
	s.setLocked(d.File, kept)
}

// ClearInRange removes diagnostics on file whose range lies on the same
// start and end lines as r. The predicate is line-based, not
// overlap-based: it backs "quick-fix this one violation" actions without
// over-deleting neighbors, at the cost that two diagnostics sharing
// exact start/end lines are removed together. Accepted imprecision.
func (s *Store) ClearInRange(file string, r Range) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.files[file][:0:0]
	for _, d := range s.files[file] {
		if !d.Range.SameLines(r) {
			kept = append(kept, d)
		}
	}
	s.setLocked(file, kept)
}

// ForFile returns the diagnostics for a file in insertion order. Never
// nil; the returned slice is a copy and safe to hold across store
// mutations (the diagnostics themselves stay live).
func (s *Store) ForFile(file string) []*Diagnostic {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.files[file])
}

// HasDiagnostics reports whether any diagnostic is stored for file.
func (s *Store) HasDiagnostics(file string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.files[file]
	return ok
}

// Files returns every file currently holding diagnostics, sorted for
// deterministic iteration.
func (s *Store) Files() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.files))
	for f := range s.files {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

// setLocked stores or prunes a file's collection. Callers hold mu.
func (s *Store) setLocked(file string, diags []*Diagnostic) {
	if len(diags) == 0 {
		delete(s.files, file)
		return
	}
	s.files[file] = diags
}
