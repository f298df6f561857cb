package analysis

import "github.com/chainwatch/chainwatch-go/internal/models"

// Thresholds holds the CV cutoffs between risk tiers. They are passed in
// explicitly rather than read from package state so callers can tune and test
// them without code changes.
type Thresholds struct {
	Warning  float64 `json:"warning"`
	Critical float64 `json:"critical"`
}

// DefaultThresholds returns the standard tier cutoffs: CV above 0.5 is
// CRITICAL, above 0.3 is WARNING, anything at or below 0.3 is STABLE.
func DefaultThresholds() Thresholds {
	return Thresholds{Warning: 0.3, Critical: 0.5}
}

// Valid reports whether the thresholds are usable: both positive and
// warning strictly below critical.
func (t Thresholds) Valid() bool {
	return t.Warning > 0 && t.Critical > t.Warning
}

// Classify maps a coefficient of variation to a risk tier. Comparisons are
// strict, so a CV sitting exactly on a cutoff takes the lower tier.
func Classify(cv float64, th Thresholds) models.RiskStatus {
	switch {
	case cv > th.Critical:
		return models.StatusCritical
	case cv > th.Warning:
		return models.StatusWarning
	default:
		return models.StatusStable
	}
}
