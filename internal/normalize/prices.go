package normalize

import (
	"sort"

	"github.com/brixmarket/brix/pkg/api"
)

var (
	priceSampleDateFields  = CandidateFieldSet{"date", "baseDate", "tradeDate", "createdAt", "regDate", "day", "dt"}
	priceSampleValueFields = CandidateFieldSet{"price", "avgPrice", "averagePrice", "avg", "avg_total_price", "avgPriceWon", "meanPrice"}
)

// NormalizePriceSeries projects the envelope's records onto price samples.
// Unlike display records, a sample whose price fails numeric coercion or
// whose date fails date coercion is dropped from the series: chart data must
// not contain holes. The result is sorted by date ascending; duplicate dates
// are kept and left to the caller.
func NormalizePriceSeries(env Envelope) []api.PriceSample {
	records := env.Records()
	out := make([]api.PriceSample, 0, len(records))
	for _, r := range records {
		date := priceSampleDateFields.FirstDate(r)
		price := priceSampleValueFields.FirstNumber(r)
		if date.IsNil() || price.IsNil() {
			continue
		}
		out = append(out, api.PriceSample{Date: date.Value, Price: price.Value})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	return out
}

// FilterPriceRange keeps samples whose date falls within [start, end]
// inclusive. Dates are canonical YYYY-MM-DD strings, so lexical comparison
// is chronological.
func FilterPriceRange(series []api.PriceSample, start, end string) []api.PriceSample {
	if start == "" && end == "" {
		return series
	}
	out := make([]api.PriceSample, 0, len(series))
	for _, s := range series {
		if start != "" && s.Date < start {
			continue
		}
		if end != "" && s.Date > end {
			continue
		}
		out = append(out, s)
	}
	return out
}
