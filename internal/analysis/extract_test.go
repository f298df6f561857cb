package analysis

import (
	"encoding/json"
	"testing"

	"github.com/chainwatch/chainwatch-go/internal/openprices"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractRecords(t *testing.T) {
	items := []openprices.Item{
		{Price: 2.5, Currency: "EUR", Location: &openprices.Location{Country: "France", City: "Paris"}},
		{Price: json.Number("3.10"), Currency: "EUR", Location: &openprices.Location{Country: "France"}},
		{Price: "4.75", Currency: "USD"},
		{Price: "not-a-number"},
		{Price: nil},
		{Price: true},
	}

	records, dropped := ExtractRecords(items)

	require.Len(t, records, 3)
	assert.Equal(t, 3, dropped)

	assert.Equal(t, 2.5, records[0].Price)
	assert.Equal(t, "France", records[0].Country)
	assert.Equal(t, "Paris", records[0].City)

	assert.Equal(t, 3.10, records[1].Price)
	assert.Equal(t, UnknownLocation, records[1].City)

	assert.Equal(t, 4.75, records[2].Price)
	assert.Equal(t, UnknownLocation, records[2].Country)
	assert.Equal(t, UnknownLocation, records[2].City)
	assert.Equal(t, "USD", records[2].Currency)
}

func TestExtractRecordsEmptyPayload(t *testing.T) {
	records, dropped := ExtractRecords(nil)

	assert.Empty(t, records)
	assert.Zero(t, dropped)
}

func TestExtractRecordsTrimsFields(t *testing.T) {
	items := []openprices.Item{
		{Price: 1.0, Currency: " EUR ", Date: " 2026-01-15 ", Location: &openprices.Location{Country: "  ", City: " Lyon "}},
	}

	records, dropped := ExtractRecords(items)

	require.Len(t, records, 1)
	assert.Zero(t, dropped)
	assert.Equal(t, "EUR", records[0].Currency)
	assert.Equal(t, "2026-01-15", records[0].Date)
	assert.Equal(t, UnknownLocation, records[0].Country)
	assert.Equal(t, "Lyon", records[0].City)
}

func TestPrices(t *testing.T) {
	records, _ := ExtractRecords([]openprices.Item{
		{Price: 1.0}, {Price: 2.0}, {Price: 3.0},
	})

	assert.Equal(t, []float64{1, 2, 3}, Prices(records))
}
