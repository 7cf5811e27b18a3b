package cli

import "github.com/yaklabco/codewatch/pkg/diag"

// Exit codes for codewatch.
const (
	// ExitSuccess indicates successful execution with no diagnostics.
	ExitSuccess = 0

	// ExitViolations indicates the scan completed but found errors.
	ExitViolations = 1

	// ExitWarnings indicates the scan found warnings (strict mode only).
	ExitWarnings = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70
)

// ExitCodeFromStore determines the exit code from the stored
// diagnostics and strict mode.
func ExitCodeFromStore(store *diag.Store, strict bool) int {
	var errors, warnings int
	for _, f := range store.Files() {
		for _, d := range store.ForFile(f) {
			switch d.Bucket {
			case diag.BucketError:
				errors++
			case diag.BucketWarning:
				warnings++
			}
		}
	}

	if errors > 0 {
		return ExitViolations
	}
	if strict && warnings > 0 {
		return ExitWarnings
	}
	return ExitSuccess
}
