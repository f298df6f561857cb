package models

import "time"

// RiskStatus is the risk tier assigned to a commodity or region based on
// its coefficient of variation.
type RiskStatus string

const (
	StatusStable   RiskStatus = "STABLE"
	StatusWarning  RiskStatus = "WARNING"
	StatusCritical RiskStatus = "CRITICAL"
	StatusNoData   RiskStatus = "NO_DATA"
)

// String returns the string representation of RiskStatus
func (s RiskStatus) String() string {
	return string(s)
}

// PriceRecord is one observed price instance normalized from a raw API item.
// Records are transient: they exist only for the duration of a single
// analysis pass and are never persisted individually.
type PriceRecord struct {
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
	Country  string  `json:"country"`
	City     string  `json:"city"`
	Date     string  `json:"date"`
}

// DispersionResult holds the statistics computed over a set of prices.
// RiskScore is nil exactly when Status is NO_DATA (fewer than two prices,
// or a non-positive/non-finite mean makes the CV undefined).
type DispersionResult struct {
	Mean      float64    `json:"mean"`
	RiskScore *float64   `json:"risk_score"`
	Status    RiskStatus `json:"status"`
}

// RegionSummary is one region's dispersion result plus identity.
// Only regions backed by at least the minimum sample size are ever emitted.
type RegionSummary struct {
	Region     string     `json:"region"`
	MeanPrice  *float64   `json:"mean_price"`
	RiskScore  *float64   `json:"risk_score"`
	Status     RiskStatus `json:"status"`
	SampleSize int        `json:"sample_size"`
}

// RegionBreakdown groups the top stressed regions at both grouping levels.
// Both trees are derived from the identical extracted record list.
type RegionBreakdown struct {
	ByCountry []RegionSummary `json:"by_country"`
	ByCity    []RegionSummary `json:"by_city"`
}

// CommodityReport combines the overall and regional dispersion views for one
// commodity or free-text keyword. DroppedRecords counts raw API items that
// failed price extraction, so consumers can distinguish "no risk" from
// "no usable data".
type CommodityReport struct {
	Name           string          `json:"name"`
	MeanPrice      *float64        `json:"mean_price"`
	RiskScore      *float64        `json:"risk_score"`
	Status         RiskStatus      `json:"status"`
	Currency       string          `json:"currency"`
	SampleSize     int             `json:"sample_size"`
	DroppedRecords int             `json:"dropped_records,omitempty"`
	Regions        RegionBreakdown `json:"regions"`
}

// IsActionable reports whether the commodity should appear in an alert with
// the given severity filter. WARNING includes CRITICAL.
func (c *CommodityReport) IsActionable(includeWarnings bool) bool {
	if c.Status == StatusCritical {
		return true
	}
	return includeWarnings && c.Status == StatusWarning
}

// Report is the full system report produced by one batch scan, consumed by
// persistence, alerting and the static dashboard.
type Report struct {
	ID          string            `json:"id"`
	Timestamp   time.Time         `json:"timestamp"`
	Commodities []CommodityReport `json:"commodities"`
}

// CriticalCommodities returns the subset of commodities at CRITICAL status.
func (r *Report) CriticalCommodities() []CommodityReport {
	var out []CommodityReport
	for _, c := range r.Commodities {
		if c.Status == StatusCritical {
			out = append(out, c)
		}
	}
	return out
}
