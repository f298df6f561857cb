package analysis

import (
	"math"
	"strings"

	"github.com/chainwatch/chainwatch-go/internal/models"
	"github.com/chainwatch/chainwatch-go/internal/openprices"
)

// UnknownLocation is the placeholder used when a raw item carries no country
// or city. Records sharing it group together during regional aggregation.
const UnknownLocation = "Unknown"

// ExtractRecords normalizes raw API items into price records. Items whose
// price cannot be coerced to a finite number are dropped silently; the second
// return value counts them. An output shorter than the input is expected, not
// an error.
func ExtractRecords(items []openprices.Item) ([]models.PriceRecord, int) {
	records := make([]models.PriceRecord, 0, len(items))
	dropped := 0

	for _, item := range items {
		price, ok := item.PriceValue()
		if !ok || math.IsNaN(price) || math.IsInf(price, 0) {
			dropped++
			continue
		}

		country, city := UnknownLocation, UnknownLocation
		if item.Location != nil {
			if v := strings.TrimSpace(item.Location.Country); v != "" {
				country = v
			}
			if v := strings.TrimSpace(item.Location.City); v != "" {
				city = v
			}
		}

		records = append(records, models.PriceRecord{
			Price:    price,
			Currency: strings.TrimSpace(item.Currency),
			Country:  country,
			City:     city,
			Date:     strings.TrimSpace(item.Date),
		})
	}

	return records, dropped
}

// Prices returns the price column of a record list.
func Prices(records []models.PriceRecord) []float64 {
	prices := make([]float64, len(records))
	for i, r := range records {
		prices[i] = r.Price
	}
	return prices
}
