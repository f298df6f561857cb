package tools

import (
	"context"

	"github.com/chainwatch/chainwatch-go/internal/models"
)

// Analyzer is the slice of the risk engine the tools need.
type Analyzer interface {
	AnalyzeCommodity(ctx context.Context, keyword string) (models.CommodityReport, error)
	AnalyzeMany(ctx context.Context, keywords []string) ([]models.CommodityReport, error)
	Commodities() []string
}

// ReportReader reads persisted scan reports.
type ReportReader interface {
	LatestReport(ctx context.Context) (*models.Report, error)
}

// JSONRPCRequest represents a JSON-RPC 2.0 request
type JSONRPCRequest struct {
	JSONRPC string                 `json:"jsonrpc"`
	ID      interface{}            `json:"id"`
	Method  string                 `json:"method"`
	Params  map[string]interface{} `json:"params,omitempty"`
}

// JSONRPCResponse represents a JSON-RPC 2.0 response
type JSONRPCResponse struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      interface{}   `json:"id"`
	Result  interface{}   `json:"result,omitempty"`
	Error   *JSONRPCError `json:"error,omitempty"`
}

// JSONRPCError represents a JSON-RPC 2.0 error
type JSONRPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// stringArg extracts a required string argument.
func stringArg(args map[string]interface{}, key string) (string, bool) {
	v, ok := args[key].(string)
	return v, ok && v != ""
}

// stringSliceArg extracts a list-of-strings argument.
func stringSliceArg(args map[string]interface{}, key string) []string {
	raw, ok := args[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
