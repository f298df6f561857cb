package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chainwatch/chainwatch-go/internal/models"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

// SQLiteStore keeps the full report history in SQLite (for local use).
type SQLiteStore struct {
	db     *sqlx.DB
	logger *logrus.Logger
}

// NewSQLiteStore creates a new SQLite report store.
func NewSQLiteStore(path string, logger *logrus.Logger) (*SQLiteStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("connect to sqlite: %w", err)
	}

	db.Exec("PRAGMA journal_mode = WAL")

	store := &SQLiteStore{db: db, logger: logger}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS reports (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		commodities TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_reports_created_at ON reports(created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveReport inserts one scan's report, commodities serialized as JSON.
func (s *SQLiteStore) SaveReport(ctx context.Context, report *models.Report) error {
	payload, err := json.Marshal(report.Commodities)
	if err != nil {
		return fmt.Errorf("marshal commodities: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO reports (id, created_at, commodities) VALUES (?, ?, ?)`,
		report.ID, report.Timestamp.UTC(), string(payload))
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"report_id":   report.ID,
		"commodities": len(report.Commodities),
	}).Debug("report saved")
	return nil
}

// LatestReport returns the newest report.
func (s *SQLiteStore) LatestReport(ctx context.Context) (*models.Report, error) {
	reports, err := s.ListReports(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		return nil, ErrNotFound
	}
	return reports[0], nil
}

// ListReports returns up to limit reports, newest first.
func (s *SQLiteStore) ListReports(ctx context.Context, limit int) ([]*models.Report, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryxContext(ctx,
		`SELECT id, created_at, commodities FROM reports ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	var reports []*models.Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// scanReport decodes one reports row shared by the SQLite and Postgres
// stores.
func scanReport(rows *sqlx.Rows) (*models.Report, error) {
	var (
		id        string
		createdAt time.Time
		payload   string
	)
	if err := rows.Scan(&id, &createdAt, &payload); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan report: %w", err)
	}

	var commodities []models.CommodityReport
	if err := json.Unmarshal([]byte(payload), &commodities); err != nil {
		return nil, fmt.Errorf("unmarshal commodities: %w", err)
	}

	return &models.Report{ID: id, Timestamp: createdAt, Commodities: commodities}, nil
}
