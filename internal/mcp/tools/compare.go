package tools

import (
	"context"
	"fmt"

	"github.com/chainwatch/chainwatch-go/internal/models"
)

// CompareCommoditiesTool analyzes several commodities and returns a
// comparative risk summary.
type CompareCommoditiesTool struct {
	analyzer Analyzer
}

// NewCompareCommoditiesTool creates the tool.
func NewCompareCommoditiesTool(analyzer Analyzer) *CompareCommoditiesTool {
	return &CompareCommoditiesTool{analyzer: analyzer}
}

// ComparisonSummary tallies statuses across the compared commodities.
type ComparisonSummary struct {
	CriticalCount int                     `json:"critical_count"`
	WarningCount  int                     `json:"warning_count"`
	StableCount   int                     `json:"stable_count"`
	HighestRisk   *models.CommodityReport `json:"highest_risk"`
}

// Execute analyzes each requested commodity.
func (t *CompareCommoditiesTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	keywords := stringSliceArg(args, "commodities")
	if len(keywords) == 0 {
		return nil, fmt.Errorf("commodities is required and must be a non-empty list of strings")
	}

	reports, err := t.analyzer.AnalyzeMany(ctx, keywords)
	if err != nil {
		return nil, fmt.Errorf("compare commodities: %w", err)
	}

	summary := ComparisonSummary{}
	var highest *models.CommodityReport
	for i := range reports {
		switch reports[i].Status {
		case models.StatusCritical:
			summary.CriticalCount++
		case models.StatusWarning:
			summary.WarningCount++
		case models.StatusStable:
			summary.StableCount++
		}
		if highest == nil || scoreOf(&reports[i]) > scoreOf(highest) {
			highest = &reports[i]
		}
	}
	summary.HighestRisk = highest

	return map[string]interface{}{
		"commodities": reports,
		"summary":     summary,
	}, nil
}

// GetSchema returns the tool's input schema.
func (t *CompareCommoditiesTool) GetSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"commodities": map[string]interface{}{
				"type":        "array",
				"items":       map[string]interface{}{"type": "string"},
				"description": "Commodity names or keywords to compare",
			},
		},
		"required": []string{"commodities"},
	}
}

// scoreOf treats a missing risk score as zero when ranking.
func scoreOf(c *models.CommodityReport) float64 {
	if c.RiskScore == nil {
		return 0
	}
	return *c.RiskScore
}
