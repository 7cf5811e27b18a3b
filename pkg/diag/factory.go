package diag

import "github.com/yaklabco/codewatch/pkg/violation"

// Factory builds diagnostics from violations using a product-supplied
// severity policy.
type Factory struct {
	policy SeverityPolicy
}

// NewFactory creates a Factory. A nil policy falls back to the
// conventional thresholds.
func NewFactory(policy SeverityPolicy) *Factory {
	if policy == nil {
		policy = DefaultPolicy()
	}
	return &Factory{policy: policy}
}

// FromViolation projects a violation into a diagnostic. It returns a
// *violation.MalformedViolationError when the violation has no locations
// or an out-of-range primary index; such violations must never reach the
// store.
func (f *Factory) FromViolation(v *violation.Violation) (*Diagnostic, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}

	primary := v.PrimaryLocation()

	d := &Diagnostic{
		File:    primary.File,
		Range:   RangeFromLocation(primary, v.Rule),
		Bucket:  f.policy.BucketFor(v.Severity),
		Source:  v.Engine,
		Message: v.Message,
		v:       v,
	}

	for _, s := range v.Suggestions {
		d.Related = append(d.Related, RelatedInfo{
			File:    s.Location.File,
			Range:   RangeFromLocation(s.Location, v.Rule),
			Message: s.Message,
		})
	}

	return d, nil
}
