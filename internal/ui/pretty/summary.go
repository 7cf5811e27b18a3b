package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/codewatch/pkg/diag"
	"github.com/yaklabco/codewatch/pkg/scan"
)

// FormatScanSummary formats one scan batch as a single line.
// Example: "7 diagnostics (2 errors, 4 warnings, 1 info) across 3 files".
func (s *Styles) FormatScanSummary(summary *scan.Summary, store *diag.Store) string {
	if summary.Diagnostics == 0 {
		msg := s.Success.Render("No violations found")
		if summary.Skipped > 0 {
			msg += s.Dim.Render(fmt.Sprintf(" (%d malformed violations skipped)", summary.Skipped))
		}
		return msg + "\n"
	}

	counts := map[diag.Bucket]int{}
	files := store.Files()
	for _, f := range files {
		for _, d := range store.ForFile(f) {
			counts[d.Bucket]++
		}
	}

	var severityParts []string
	if n := counts[diag.BucketError]; n > 0 {
		severityParts = append(severityParts, s.Error.Render(fmt.Sprintf("%d errors", n)))
	}
	if n := counts[diag.BucketWarning]; n > 0 {
		severityParts = append(severityParts, s.Warning.Render(fmt.Sprintf("%d warnings", n)))
	}
	if n := counts[diag.BucketInfo]; n > 0 {
		severityParts = append(severityParts, s.Info.Render(fmt.Sprintf("%d info", n)))
	}

	word := "diagnostics"
	if summary.Diagnostics == 1 {
		word = "diagnostic"
	}
	fileWord := "files"
	if len(files) == 1 {
		fileWord = "file"
	}

	line := fmt.Sprintf("%d %s", summary.Diagnostics, word)
	if len(severityParts) > 0 {
		line += " (" + strings.Join(severityParts, ", ") + ")"
	}
	line += fmt.Sprintf(" across %d %s", len(files), fileWord)
	if summary.Skipped > 0 {
		line += s.Dim.Render(fmt.Sprintf(", %d malformed skipped", summary.Skipped))
	}
	return line + "\n"
}
