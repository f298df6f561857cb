package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/chainwatch/chainwatch-go/internal/storage"
)

// GetReportTool returns the latest persisted scan report.
type GetReportTool struct {
	store ReportReader
}

// NewGetReportTool creates the tool.
func NewGetReportTool(store ReportReader) *GetReportTool {
	return &GetReportTool{store: store}
}

// Execute reads the latest report.
func (t *GetReportTool) Execute(ctx context.Context, _ map[string]interface{}) (interface{}, error) {
	report, err := t.store.LatestReport(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return map[string]interface{}{
			"error": "report not yet generated: run a scan or use investigate_commodity",
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read latest report: %w", err)
	}
	return report, nil
}

// GetSchema returns the tool's input schema.
func (t *GetReportTool) GetSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}
