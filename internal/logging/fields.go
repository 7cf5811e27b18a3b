// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError = "error"
	FieldFile  = "file"
	FieldFiles = "files"
	FieldCount = "count"

	// Diagnostic fields.
	FieldRule        = "rule"
	FieldEngine      = "engine"
	FieldSeverity    = "severity"
	FieldDiagnostics = "diagnostics"
	FieldStale       = "stale"

	// Scan fields.
	FieldTargets    = "targets"
	FieldViolations = "violations"
	FieldSkipped    = "skipped_violations"

	// Remote analysis fields.
	FieldJobID    = "job_id"
	FieldEndpoint = "endpoint"
	FieldAttempts = "attempts"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
