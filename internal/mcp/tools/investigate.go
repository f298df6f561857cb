package tools

import (
	"context"
	"fmt"
)

// InvestigateCommodityTool fetches live price data for one commodity or
// free-text keyword and returns its risk report, for real-time supply chain
// investigation without touching persisted state.
type InvestigateCommodityTool struct {
	analyzer Analyzer
}

// NewInvestigateCommodityTool creates the tool.
func NewInvestigateCommodityTool(analyzer Analyzer) *InvestigateCommodityTool {
	return &InvestigateCommodityTool{analyzer: analyzer}
}

// Execute runs the investigation.
func (t *InvestigateCommodityTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	commodity, ok := stringArg(args, "commodity")
	if !ok {
		return nil, fmt.Errorf("commodity is required")
	}
	report, err := t.analyzer.AnalyzeCommodity(ctx, commodity)
	if err != nil {
		return nil, fmt.Errorf("analyze %q: %w", commodity, err)
	}
	return report, nil
}

// GetSchema returns the tool's input schema.
func (t *InvestigateCommodityTool) GetSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"commodity": map[string]interface{}{
				"type":        "string",
				"description": "Commodity name or free-text product keyword to analyze",
			},
		},
		"required": []string{"commodity"},
	}
}

// ListCommoditiesTool returns the standard commodity watch list.
type ListCommoditiesTool struct {
	analyzer Analyzer
}

// NewListCommoditiesTool creates the tool.
func NewListCommoditiesTool(analyzer Analyzer) *ListCommoditiesTool {
	return &ListCommoditiesTool{analyzer: analyzer}
}

// Execute returns the watch list.
func (t *ListCommoditiesTool) Execute(_ context.Context, _ map[string]interface{}) (interface{}, error) {
	return map[string]interface{}{
		"commodities": t.analyzer.Commodities(),
	}, nil
}

// GetSchema returns the tool's input schema.
func (t *ListCommoditiesTool) GetSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}
