package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brixmarket/brix/pkg/api"
)

func TestNormalizePriceSeries(t *testing.T) {
	body := `{"data":[
		{"baseDate":"20240103","avgPrice":9100},
		{"baseDate":"20240101","avgPrice":8800},
		{"baseDate":"20240102","avgPrice":"8950"}
	]}`

	series := NormalizePriceSeries(ParseEnvelope([]byte(body)))
	require.Len(t, series, 3)
	assert.Equal(t, []api.PriceSample{
		{Date: "2024-01-01", Price: 8800},
		{Date: "2024-01-02", Price: 8950},
		{Date: "2024-01-03", Price: 9100},
	}, series)
}

func TestNormalizePriceSeriesDropsBrokenSamples(t *testing.T) {
	body := `{"data":[
		{"date":"2024-01-01","price":8800},
		{"date":"2024-01-02","price":"unavailable"},
		{"date":"not a date","price":9000},
		{"date":"2024-01-04"},
		{"price":9100},
		{"date":"2024-01-06","price":null},
		{"date":"2024-01-07","price":9200}
	]}`

	series := NormalizePriceSeries(ParseEnvelope([]byte(body)))
	// drop, never zero-fill: a chart hole would read as a price crash
	require.Len(t, series, 2)
	assert.Equal(t, api.PriceSample{Date: "2024-01-01", Price: 8800}, series[0])
	assert.Equal(t, api.PriceSample{Date: "2024-01-07", Price: 9200}, series[1])
}

func TestNormalizePriceSeriesKeyVariants(t *testing.T) {
	// the same sample under different backend key pairs normalizes identically
	variants := []string{
		`{"data":[{"date":"2024-02-01","price":7500}]}`,
		`{"data":[{"baseDate":"20240201","avgPrice":7500}]}`,
		`{"data":[{"tradeDate":"2024/02/01","averagePrice":7500}]}`,
		`{"data":[{"regDate":"2024-02-01T00:00:00Z","avg_total_price":7500}]}`,
	}
	want := []api.PriceSample{{Date: "2024-02-01", Price: 7500}}
	for _, body := range variants {
		assert.Equal(t, want, NormalizePriceSeries(ParseEnvelope([]byte(body))), body)
	}
}

func TestNormalizePriceSeriesEmpty(t *testing.T) {
	assert.Empty(t, NormalizePriceSeries(ParseEnvelope(nil)))
	assert.Empty(t, NormalizePriceSeries(ParseEnvelope([]byte(`{"data":[]}`))))
}

func TestFilterPriceRange(t *testing.T) {
	series := []api.PriceSample{
		{Date: "2024-01-01", Price: 1},
		{Date: "2024-02-01", Price: 2},
		{Date: "2024-03-01", Price: 3},
	}

	assert.Len(t, FilterPriceRange(series, "", ""), 3)
	assert.Equal(t, series[1:], FilterPriceRange(series, "2024-02-01", ""))
	assert.Equal(t, series[:2], FilterPriceRange(series, "", "2024-02-01"))
	assert.Equal(t, series[1:2], FilterPriceRange(series, "2024-01-15", "2024-02-15"))
	assert.Empty(t, FilterPriceRange(series, "2025-01-01", ""))
}
