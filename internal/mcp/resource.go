package mcp

import (
	"context"
	"errors"

	"github.com/chainwatch/chainwatch-go/internal/mcp/tools"
	"github.com/chainwatch/chainwatch-go/internal/storage"
)

// ReportResource exposes the latest persisted scan report as an MCP
// resource.
type ReportResource struct {
	store tools.ReportReader
}

// NewReportResource creates the resource.
func NewReportResource(store tools.ReportReader) *ReportResource {
	return &ReportResource{store: store}
}

// Read returns the latest report, or a placeholder when no scan has run.
func (r *ReportResource) Read(ctx context.Context) (interface{}, error) {
	report, err := r.store.LatestReport(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return map[string]interface{}{
			"error": "report not yet generated",
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return report, nil
}
