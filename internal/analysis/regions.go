package analysis

import (
	"fmt"
	"sort"

	"github.com/chainwatch/chainwatch-go/internal/models"
)

// RegionLevel selects the grouping key for regional aggregation.
type RegionLevel string

const (
	LevelCountry RegionLevel = "country"
	LevelCity    RegionLevel = "city"
)

// RegionOptions bounds the regional aggregation output.
type RegionOptions struct {
	MinSamples int // groups with fewer valid prices are skipped entirely
	Limit      int // at most this many regions are returned
}

// DefaultRegionOptions returns the standard bounds: a region needs at least
// five observations to support a variance estimate, and only the three most
// stressed regions are reported.
func DefaultRegionOptions() RegionOptions {
	return RegionOptions{MinSamples: 5, Limit: 3}
}

// AggregateByRegion partitions records by region, scores each retained group
// independently and returns the most stressed regions first.
//
// Groups below MinSamples are absent from the result rather than reported as
// NO_DATA: too few observations is insufficient evidence either way. Regions
// with an undefined score sort last; ties break on larger sample size.
func AggregateByRegion(records []models.PriceRecord, level RegionLevel, th Thresholds, opts RegionOptions) []models.RegionSummary {
	if len(records) == 0 {
		return nil
	}
	if opts.MinSamples <= 0 {
		opts.MinSamples = DefaultRegionOptions().MinSamples
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultRegionOptions().Limit
	}

	groups := make(map[string][]float64)
	var order []string
	for _, r := range records {
		key := regionKey(r, level)
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], r.Price)
	}

	summaries := make([]models.RegionSummary, 0, len(order))
	for _, region := range order {
		prices := groups[region]
		if len(prices) < opts.MinSamples {
			continue
		}

		result := ComputeDispersion(prices, th)
		mean := round(meanOf(prices), 2)
		summaries = append(summaries, models.RegionSummary{
			Region:     region,
			MeanPrice:  &mean,
			RiskScore:  result.RiskScore,
			Status:     result.Status,
			SampleSize: len(prices),
		})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		si, sj := scoreForSort(summaries[i]), scoreForSort(summaries[j])
		if si != sj {
			return si > sj
		}
		return summaries[i].SampleSize > summaries[j].SampleSize
	})

	if len(summaries) > opts.Limit {
		summaries = summaries[:opts.Limit]
	}
	return summaries
}

// regionKey builds the grouping key for a record at the given level.
func regionKey(r models.PriceRecord, level RegionLevel) string {
	if level == LevelCity {
		return fmt.Sprintf("%s, %s", r.City, r.Country)
	}
	return r.Country
}

// scoreForSort treats an undefined risk score as -1 so NO_DATA regions rank
// below every scored region.
func scoreForSort(s models.RegionSummary) float64 {
	if s.RiskScore == nil {
		return -1
	}
	return *s.RiskScore
}
