package remote

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/codewatch/pkg/violation"
)

// remoteEngineName labels violations produced by the remote analysis
// service.
const remoteEngineName = "remote-analysis"

// MalformedExternalResponseError reports a remote payload that could
// not be decoded. The whole response is discarded; no partial
// diagnostics are ever emitted from a bad report.
type MalformedExternalResponseError struct {
	Reason string
}

func (e *MalformedExternalResponseError) Error() string {
	return "malformed remote analysis response: " + e.Reason
}

// findingRecord is one engine-specific entry in the decoded report.
type findingRecord struct {
	RuleName    string   `json:"ruleName"`
	Message     string   `json:"message"`
	Severity    int      `json:"severity"`
	Line        int      `json:"line"`
	Column      int      `json:"column"`
	EndLine     int      `json:"endLine"`
	EndColumn   int      `json:"endColumn"`
	Tags        []string `json:"tags"`
	URLs        []string `json:"urls"`
	FixedCode   string   `json:"fixedCode"`
	Suggestions []struct {
		Line    int    `json:"line"`
		Column  int    `json:"column"`
		Message string `json:"message"`
	} `json:"suggestions"`
}

// DecodeReport turns a base64-encoded JSON array of finding records
// into violations attached to fileName.
func DecodeReport(report, fileName string) ([]violation.Violation, error) {
	raw, err := base64.StdEncoding.DecodeString(report)
	if err != nil {
		return nil, &MalformedExternalResponseError{
			Reason: fmt.Sprintf("report is not valid base64: %v", err),
		}
	}

	var records []findingRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, &MalformedExternalResponseError{
			Reason: fmt.Sprintf("report is not a JSON finding array: %v", err),
		}
	}

	violations := make([]violation.Violation, 0, len(records))
	for _, rec := range records {
		loc := violation.CodeLocation{
			File:        fileName,
			StartLine:   rec.Line,
			StartColumn: rec.Column,
			EndLine:     rec.EndLine,
			EndColumn:   rec.EndColumn,
		}

		v := violation.Violation{
			Rule:      rec.RuleName,
			Engine:    remoteEngineName,
			Message:   rec.Message,
			Severity:  rec.Severity,
			Locations: []violation.CodeLocation{loc},
			Tags:      rec.Tags,
			Resources: rec.URLs,
		}
		if rec.FixedCode != "" {
			v.Fixes = []violation.Fix{{Location: loc, FixedCode: rec.FixedCode}}
		}
		for _, s := range rec.Suggestions {
			v.Suggestions = append(v.Suggestions, violation.Suggestion{
				Location: violation.CodeLocation{
					File:        fileName,
					StartLine:   s.Line,
					StartColumn: s.Column,
				},
				Message: s.Message,
			})
		}
		violations = append(violations, v)
	}

	return violations, nil
}
