package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chainwatch/chainwatch-go/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *models.Report {
	score := 0.1234
	mean := 2.5
	return &models.Report{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC().Truncate(time.Second),
		Commodities: []models.CommodityReport{
			{
				Name:       "rice",
				MeanPrice:  &mean,
				RiskScore:  &score,
				Status:     models.StatusStable,
				Currency:   "EUR",
				SampleSize: 42,
			},
			{
				Name:     "milk",
				Status:   models.StatusNoData,
				Currency: "N/A",
			},
		},
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "latest_report.json")
	store := NewFileStore(path, nil)
	ctx := context.Background()

	_, err := store.LatestReport(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	report := sampleReport()
	require.NoError(t, store.SaveReport(ctx, report))

	got, err := store.LatestReport(ctx)
	require.NoError(t, err)
	assert.Equal(t, report.ID, got.ID)
	require.Len(t, got.Commodities, 2)
	assert.Equal(t, "rice", got.Commodities[0].Name)
	require.NotNil(t, got.Commodities[0].RiskScore)
	assert.Equal(t, 0.1234, *got.Commodities[0].RiskScore)

	// NO_DATA entries keep a nil risk score through serialization.
	assert.Nil(t, got.Commodities[1].RiskScore)
	assert.Equal(t, models.StatusNoData, got.Commodities[1].Status)
}

func TestFileStoreOverwritesLatest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latest_report.json")
	store := NewFileStore(path, nil)
	ctx := context.Background()

	first := sampleReport()
	second := sampleReport()
	require.NoError(t, store.SaveReport(ctx, first))
	require.NoError(t, store.SaveReport(ctx, second))

	got, err := store.LatestReport(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)

	reports, err := store.ListReports(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, reports, 1)

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
