package manifest

import (
	"fmt"

	"github.com/modoterra/check-clamav/pkg/freshness"
)

// Validate checks the probe file for values the check cannot run with.
// Threshold ordering is deliberately not checked: critical always wins.
func Validate(p *Probe) []error {
	var errs []error

	if p.Version != 1 {
		errs = append(errs, fmt.Errorf("version must be 1, got %d", p.Version))
	}
	if p.Thresholds.Warning < 0 {
		errs = append(errs, fmt.Errorf("thresholds.warning must be >= 0, got %d", p.Thresholds.Warning))
	}
	if p.Thresholds.Critical < 0 {
		errs = append(errs, fmt.Errorf("thresholds.critical must be >= 0, got %d", p.Thresholds.Critical))
	}
	if _, err := freshness.ParseExpiry(p.Expiry); err != nil {
		errs = append(errs, fmt.Errorf("expiry: %w", err))
	}

	return errs
}
