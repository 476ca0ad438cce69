package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeReviews(t *testing.T) {
	body := `{"data":{"content":[
		{"id":1,"nickname":"fruitlover","rating":4.5,"content":"Very sweet","createdAt":"2024-05-01T08:00:00Z"},
		{"reviewId":2,"author":"kim","score":"5","comment":"Arrived fresh","date":"2024/05/03"}
	]}}`

	reviews := NormalizeReviews(ParseEnvelope([]byte(body)))
	require.Len(t, reviews, 2)

	assert.Equal(t, "1", reviews[0].ID.Value)
	assert.Equal(t, "fruitlover", reviews[0].Nickname)
	assert.Equal(t, 4.5, reviews[0].Rating.Value)
	assert.Equal(t, "Very sweet", reviews[0].Content.Value)
	assert.Equal(t, "2024-05-01", reviews[0].CreatedAt.Value)

	assert.Equal(t, "2", reviews[1].ID.Value)
	assert.Equal(t, "kim", reviews[1].Nickname)
	assert.Equal(t, float64(5), reviews[1].Rating.Value)
	assert.Equal(t, "Arrived fresh", reviews[1].Content.Value)
	assert.Equal(t, "2024-05-03", reviews[1].CreatedAt.Value)
}

func TestNormalizeReviewAnonymousFallback(t *testing.T) {
	reviews := NormalizeReviews(ParseEnvelope([]byte(`{"data":[{"rating":3},{"nickname":"  "}]}`)))
	require.Len(t, reviews, 2)
	assert.Equal(t, "anonymous", reviews[0].Nickname)
	assert.Equal(t, "anonymous", reviews[1].Nickname)
}
