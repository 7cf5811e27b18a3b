package scan

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/yaklabco/codewatch/pkg/violation"
)

// JSONFileEngine replays violations from a JSON report an engine wrote
// earlier. It lets the CLI exercise the full diagnostic pipeline without
// shelling out to a real engine, and mirrors how engine reports are
// normalized into the common violation model.
type JSONFileEngine struct {
	// ReportPath is the JSON file holding an array of violations.
	ReportPath string

	// EngineName overrides the name stamped onto violations that carry
	// none. Defaults to "import".
	EngineName string
}

// Name implements Engine.
func (e *JSONFileEngine) Name() string {
	if e.EngineName == "" {
		return "import"
	}
	return e.EngineName
}

// Scan implements Engine. Violations are filtered to the requested
// targets; an empty target list keeps everything.
func (e *JSONFileEngine) Scan(_ context.Context, targets []string) ([]violation.Violation, error) {
	data, err := os.ReadFile(e.ReportPath)
	if err != nil {
		return nil, fmt.Errorf("read report %s: %w", e.ReportPath, err)
	}

	var violations []violation.Violation
	if err := json.Unmarshal(data, &violations); err != nil {
		return nil, fmt.Errorf("report %s is not a violation array: %w", e.ReportPath, err)
	}

	kept := violations[:0]
	for _, v := range violations {
		if v.Engine == "" {
			v.Engine = e.Name()
		}
		if len(targets) > 0 && len(v.Locations) > 0 &&
			!slices.Contains(targets, v.Locations[0].File) {
			continue
		}
		kept = append(kept, v)
	}
	return kept, nil
}
