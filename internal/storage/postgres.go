package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/chainwatch/chainwatch-go/internal/models"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

// PostgresStore keeps the report history in PostgreSQL (for server
// deployments where multiple consumers read the history).
type PostgresStore struct {
	db     *sqlx.DB
	logger *logrus.Logger
}

// NewPostgresStore creates a new PostgreSQL report store.
func NewPostgresStore(dsn string, logger *logrus.Logger) (*PostgresStore, error) {
	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	store := &PostgresStore{db: db, logger: logger}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return store, nil
}

func (s *PostgresStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS reports (
		id TEXT PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL,
		commodities JSONB NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_reports_created_at ON reports(created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveReport inserts one scan's report.
func (s *PostgresStore) SaveReport(ctx context.Context, report *models.Report) error {
	payload, err := json.Marshal(report.Commodities)
	if err != nil {
		return fmt.Errorf("marshal commodities: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO reports (id, created_at, commodities) VALUES ($1, $2, $3)`,
		report.ID, report.Timestamp.UTC(), string(payload))
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}

	s.logger.WithField("report_id", report.ID).Debug("report saved")
	return nil
}

// LatestReport returns the newest report.
func (s *PostgresStore) LatestReport(ctx context.Context) (*models.Report, error) {
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
func (s *PostgresStore) ListReports(ctx context.Context, limit int) ([]*models.Report, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryxContext(ctx,
		`SELECT id, created_at, commodities::text FROM reports ORDER BY created_at DESC LIMIT $1`, limit)
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
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
