package analysis

import (
	"testing"

	"github.com/chainwatch/chainwatch-go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(price float64, country, city string) models.PriceRecord {
	return models.PriceRecord{Price: price, Currency: "EUR", Country: country, City: city}
}

func nRecords(n int, price float64, country, city string) []models.PriceRecord {
	out := make([]models.PriceRecord, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, record(price, country, city))
	}
	return out
}

func TestAggregateByRegionSkipsSmallGroups(t *testing.T) {
	th := DefaultThresholds()
	opts := DefaultRegionOptions()

	// Four samples is one short of the minimum.
	records := nRecords(4, 10, "A", "X")
	assert.Empty(t, AggregateByRegion(records, LevelCountry, th, opts))

	// A fifth sample for the same country crosses the minimum.
	records = append(records, record(10, "A", "X"))
	regions := AggregateByRegion(records, LevelCountry, th, opts)

	require.Len(t, regions, 1)
	assert.Equal(t, "A", regions[0].Region)
	assert.Equal(t, 5, regions[0].SampleSize)
	require.NotNil(t, regions[0].RiskScore)
	assert.Equal(t, 0.0, *regions[0].RiskScore)
	assert.Equal(t, models.StatusStable, regions[0].Status)
}

func TestAggregateByRegionCityKeys(t *testing.T) {
	records := nRecords(5, 12, "France", "Paris")
	records = append(records, nRecords(5, 12, "France", "Lyon")...)

	regions := AggregateByRegion(records, LevelCity, DefaultThresholds(), DefaultRegionOptions())

	require.Len(t, regions, 2)
	names := []string{regions[0].Region, regions[1].Region}
	assert.Contains(t, names, "Paris, France")
	assert.Contains(t, names, "Lyon, France")
}

func TestAggregateByRegionUnknownGroupsTogether(t *testing.T) {
	// Records with no location share the Unknown placeholder key.
	records := nRecords(5, 8, UnknownLocation, UnknownLocation)

	regions := AggregateByRegion(records, LevelCountry, DefaultThresholds(), DefaultRegionOptions())

	require.Len(t, regions, 1)
	assert.Equal(t, UnknownLocation, regions[0].Region)
}

func TestAggregateByRegionOrderingAndTruncation(t *testing.T) {
	th := DefaultThresholds()
	opts := DefaultRegionOptions()

	var records []models.PriceRecord
	// Stable: identical prices.
	records = append(records, nRecords(5, 10, "Stableland", "S")...)
	// Critical: wide spread.
	records = append(records, record(1, "Criticania", "C"), record(1, "Criticania", "C"),
		record(1, "Criticania", "C"), record(100, "Criticania", "C"), record(100, "Criticania", "C"))
	// Warning: moderate spread, cv = 6/14 ~ 0.43.
	records = append(records, record(8, "Warningia", "W"), record(20, "Warningia", "W"),
		record(8, "Warningia", "W"), record(20, "Warningia", "W"), record(14, "Warningia", "W"))
	// No data: negative prices make the mean non-positive.
	records = append(records, nRecords(5, -3, "Nodataville", "N")...)
	// Mild: slightly dispersed, lowest positive score.
	records = append(records, record(10, "Mildora", "M"), record(10.1, "Mildora", "M"),
		record(9.9, "Mildora", "M"), record(10, "Mildora", "M"), record(10.05, "Mildora", "M"))

	regions := AggregateByRegion(records, LevelCountry, th, opts)

	// Five qualifying groups truncate to the three most stressed; the
	// NO_DATA group sorts below every scored region and falls off.
	require.Len(t, regions, 3)
	assert.Equal(t, "Criticania", regions[0].Region)
	assert.Equal(t, models.StatusCritical, regions[0].Status)
	assert.Equal(t, "Warningia", regions[1].Region)
	assert.Equal(t, models.StatusWarning, regions[1].Status)
	assert.Equal(t, "Mildora", regions[2].Region)
	assert.Equal(t, models.StatusStable, regions[2].Status)
}

func TestAggregateByRegionNilScoresSortLast(t *testing.T) {
	var records []models.PriceRecord
	records = append(records, nRecords(5, -1, "Undefined", "U")...)
	records = append(records, nRecords(5, 10, "Scored", "S")...)

	regions := AggregateByRegion(records, LevelCountry, DefaultThresholds(), DefaultRegionOptions())

	require.Len(t, regions, 2)
	assert.Equal(t, "Scored", regions[0].Region)
	assert.Equal(t, "Undefined", regions[1].Region)
	assert.Nil(t, regions[1].RiskScore)
	assert.Equal(t, models.StatusNoData, regions[1].Status)
}

func TestAggregateByRegionNeverExceedsLimit(t *testing.T) {
	var records []models.PriceRecord
	countries := []string{"A", "B", "C", "D", "E", "F"}
	for _, c := range countries {
		records = append(records, nRecords(5, 10, c, c)...)
	}

	regions := AggregateByRegion(records, LevelCountry, DefaultThresholds(), DefaultRegionOptions())
	assert.Len(t, regions, 3)
}

func TestAggregateByRegionEmptyInput(t *testing.T) {
	assert.Nil(t, AggregateByRegion(nil, LevelCountry, DefaultThresholds(), DefaultRegionOptions()))
}
