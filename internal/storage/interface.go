package storage

import (
	"context"
	"errors"

	"github.com/chainwatch/chainwatch-go/internal/models"
)

// Common errors
var (
	ErrNotFound = errors.New("not found")
)

// ReportStore defines report persistence. Individual price records are never
// stored; only the derived reports are.
type ReportStore interface {
	// SaveReport persists one scan's report.
	SaveReport(ctx context.Context, report *models.Report) error

	// LatestReport returns the most recent report, or ErrNotFound when no
	// scan has run yet.
	LatestReport(ctx context.Context) (*models.Report, error)

	// ListReports returns up to limit reports, newest first.
	ListReports(ctx context.Context, limit int) ([]*models.Report, error)

	// Close releases any underlying resources.
	Close() error
}
