package analysis

import (
	"math"

	"github.com/chainwatch/chainwatch-go/internal/models"
)

// ComputeDispersion computes mean, sample standard deviation and coefficient
// of variation over a price set and classifies the result.
//
// The CV is undefined when fewer than two prices exist or when the mean is
// non-positive or non-finite; those cases yield a nil risk score and NO_DATA
// instead of an error. Variance uses the n-1 denominator: observed prices are
// a sample of the regional price distribution, not the whole population.
func ComputeDispersion(prices []float64, th Thresholds) models.DispersionResult {
	if len(prices) < 2 {
		return models.DispersionResult{Status: models.StatusNoData}
	}

	var sum float64
	for _, p := range prices {
		sum += p
	}
	mean := sum / float64(len(prices))
	if math.IsNaN(mean) || math.IsInf(mean, 0) || mean <= 0 {
		return models.DispersionResult{Status: models.StatusNoData}
	}

	var sqDiff float64
	for _, p := range prices {
		d := p - mean
		sqDiff += d * d
	}
	variance := sqDiff / float64(len(prices)-1)
	cv := math.Sqrt(variance) / mean
	if math.IsNaN(cv) || math.IsInf(cv, 0) {
		return models.DispersionResult{Status: models.StatusNoData}
	}

	score := round(cv, 4)
	return models.DispersionResult{
		Mean:      round(mean, 2),
		RiskScore: &score,
		Status:    Classify(cv, th),
	}
}

// round rounds v to the given number of decimal places.
func round(v float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(v*shift) / shift
}

// meanOf returns the arithmetic mean, or 0 for an empty slice.
func meanOf(prices []float64) float64 {
	if len(prices) == 0 {
		return 0
	}
	var sum float64
	for _, p := range prices {
		sum += p
	}
	return sum / float64(len(prices))
}
