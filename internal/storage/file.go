package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chainwatch/chainwatch-go/internal/models"
	"github.com/sirupsen/logrus"
)

// DefaultReportPath is the well-known location the static dashboard and
// alerting read the latest report from.
const DefaultReportPath = "data/latest_report.json"

// FileStore persists only the latest report as pretty-printed JSON at a
// well-known path. ListReports sees at most that one report.
type FileStore struct {
	path   string
	logger *logrus.Logger
}

// NewFileStore creates a FileStore writing to the given path.
func NewFileStore(path string, logger *logrus.Logger) *FileStore {
	if path == "" {
		path = DefaultReportPath
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &FileStore{path: path, logger: logger}
}

// Path returns the report location.
func (s *FileStore) Path() string {
	return s.path
}

// SaveReport writes the report atomically: to a temp file first, then into
// place, so dashboard readers never observe a partial document.
func (s *FileStore) SaveReport(_ context.Context, report *models.Report) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".report-*.json")
	if err != nil {
		return fmt.Errorf("create temp report: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp report: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace report: %w", err)
	}

	s.logger.WithField("path", s.path).Info("report written")
	return nil
}

// LatestReport reads the report back from disk.
func (s *FileStore) LatestReport(_ context.Context) (*models.Report, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}

	var report models.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("unmarshal report: %w", err)
	}
	return &report, nil
}

// ListReports returns the latest report when one exists.
func (s *FileStore) ListReports(ctx context.Context, limit int) ([]*models.Report, error) {
	if limit == 0 {
		return nil, nil
	}
	report, err := s.LatestReport(ctx)
	if err == ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []*models.Report{report}, nil
}

// Close is a no-op for file storage.
func (s *FileStore) Close() error {
	return nil
}
