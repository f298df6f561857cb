package analysis

import (
	"github.com/chainwatch/chainwatch-go/internal/models"
	"github.com/chainwatch/chainwatch-go/internal/openprices"
)

// BuildCommodityReport runs the full per-commodity pipeline over an already
// fetched payload: extract records, score the overall price set, then score
// both regional breakdowns from the identical record list.
func BuildCommodityReport(name string, items []openprices.Item, th Thresholds) models.CommodityReport {
	records, dropped := ExtractRecords(items)
	prices := Prices(records)

	overall := ComputeDispersion(prices, th)
	opts := DefaultRegionOptions()

	report := models.CommodityReport{
		Name:           name,
		RiskScore:      overall.RiskScore,
		Status:         overall.Status,
		Currency:       firstCurrency(records),
		SampleSize:     len(prices),
		DroppedRecords: dropped,
		Regions: models.RegionBreakdown{
			ByCountry: AggregateByRegion(records, LevelCountry, th, opts),
			ByCity:    AggregateByRegion(records, LevelCity, th, opts),
		},
	}
	if len(prices) > 0 {
		mean := round(meanOf(prices), 2)
		report.MeanPrice = &mean
	}
	return report
}

// firstCurrency returns the first non-empty currency among records, or "N/A"
// when none carries one.
func firstCurrency(records []models.PriceRecord) string {
	for _, r := range records {
		if r.Currency != "" {
			return r.Currency
		}
	}
	return "N/A"
}
