package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeListings(t *testing.T) {
	resolver := NewImageResolver("https://api.example.com")
	body := `{"data":{"content":[
		{"id":1,"title":"Seolhyang strawberries","grade":"A","price":15900,
		 "avgRating":4.7,"reviewCount":31,"imageUrl":"/img/1.jpg"},
		{"productId":2,"product":{"id":2,"title":"Shine muscat","price":32000,"imageUrl":"/img/2.jpg"}}
	]}}`

	listings := NormalizeListings(ParseEnvelope([]byte(body)), resolver)
	require.Len(t, listings, 2)

	first := listings[0]
	assert.Equal(t, "1", first.ID.Value)
	assert.Equal(t, "Seolhyang strawberries", first.Title.Value)
	assert.Equal(t, "A", first.Grade.Value)
	assert.Equal(t, float64(15900), first.Price.Value)
	assert.Equal(t, 4.7, first.Rating.Value)
	assert.Equal(t, float64(31), first.ReviewCount.Value)
	assert.Equal(t, "https://api.example.com/img/1.jpg", first.Image.Resolved)

	// flattened and embedded rows normalize to the same shape
	second := listings[1]
	assert.Equal(t, "2", second.ID.Value)
	assert.Equal(t, "Shine muscat", second.Title.Value)
	assert.Equal(t, float64(32000), second.Price.Value)
	assert.Equal(t, "https://api.example.com/img/2.jpg", second.Image.Resolved)
}

func TestNormalizeListingPriceKeyEquivalence(t *testing.T) {
	resolver := NewImageResolver("")
	for _, doc := range []string{
		`{"data":[{"id":1,"price":9800}]}`,
		`{"data":[{"id":1,"avgPrice":9800}]}`,
		`{"data":[{"id":1,"totalAmount":9800}]}`,
		`{"data":[{"id":1,"minTotalPrice":9800}]}`,
		`{"data":[{"id":1,"product":{"price":9800}}]}`,
	} {
		listings := NormalizeListings(ParseEnvelope([]byte(doc)), resolver)
		require.Len(t, listings, 1, doc)
		assert.Equal(t, float64(9800), listings[0].Price.Value, doc)
	}
}
