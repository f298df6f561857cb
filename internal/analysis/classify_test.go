package analysis

import (
	"testing"

	"github.com/chainwatch/chainwatch-go/internal/models"
)

func TestClassify(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		name     string
		cv       float64
		expected models.RiskStatus
	}{
		{"Zero dispersion", 0.0, models.StatusStable},
		{"Low dispersion", 0.15, models.StatusStable},
		{"Warning boundary stays stable", 0.3, models.StatusStable},
		{"Just above warning boundary", 0.3001, models.StatusWarning},
		{"Mid warning band", 0.4, models.StatusWarning},
		{"Critical boundary stays warning", 0.5, models.StatusWarning},
		{"Just above critical boundary", 0.5001, models.StatusCritical},
		{"Extreme dispersion", 1.354, models.StatusCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.cv, th); got != tt.expected {
				t.Errorf("Classify(%.4f) = %v, want %v", tt.cv, got, tt.expected)
			}
		})
	}
}

func TestClassifyCustomThresholds(t *testing.T) {
	th := Thresholds{Warning: 0.1, Critical: 0.2}

	if got := Classify(0.15, th); got != models.StatusWarning {
		t.Errorf("Classify(0.15) with tightened thresholds = %v, want WARNING", got)
	}
	if got := Classify(0.25, th); got != models.StatusCritical {
		t.Errorf("Classify(0.25) with tightened thresholds = %v, want CRITICAL", got)
	}
}

func TestThresholdsValid(t *testing.T) {
	tests := []struct {
		name     string
		th       Thresholds
		expected bool
	}{
		{"Defaults are valid", DefaultThresholds(), true},
		{"Inverted cutoffs", Thresholds{Warning: 0.5, Critical: 0.3}, false},
		{"Equal cutoffs", Thresholds{Warning: 0.3, Critical: 0.3}, false},
		{"Zero warning", Thresholds{Warning: 0, Critical: 0.5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.th.Valid(); got != tt.expected {
				t.Errorf("Valid() = %v, want %v", got, tt.expected)
			}
		})
	}
}
