package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestCandidateFieldSetFirst(t *testing.T) {
	cs := CandidateFieldSet{"price", "avgPrice", "product.price"}

	r := gjson.Parse(`{"avgPrice":1200,"product":{"price":900}}`)
	assert.Equal(t, float64(1200), cs.First(r).Float())

	// explicit null is treated as absent, evaluation moves on
	r = gjson.Parse(`{"price":null,"avgPrice":1500}`)
	assert.Equal(t, float64(1500), cs.First(r).Float())

	// relation path as the last resort
	r = gjson.Parse(`{"product":{"price":900}}`)
	assert.Equal(t, float64(900), cs.First(r).Float())

	r = gjson.Parse(`{"title":"no price at all"}`)
	assert.False(t, cs.First(r).Exists())
}

func TestCandidateFieldSetOrderIsAuthoritative(t *testing.T) {
	cs := CandidateFieldSet{"price", "avgPrice"}
	r := gjson.Parse(`{"avgPrice":9999,"price":100}`)
	// earlier candidate wins regardless of key order in the document
	assert.Equal(t, float64(100), cs.First(r).Float())
}

func TestFirstString(t *testing.T) {
	cs := CandidateFieldSet{"title", "name"}

	v := cs.FirstString(gjson.Parse(`{"title":"  Hallabong  "}`))
	require.False(t, v.IsNil())
	assert.Equal(t, "Hallabong", v.Value)

	// numeric ids arrive as numbers on some endpoints
	v = CandidateFieldSet{"id"}.FirstString(gjson.Parse(`{"id":42}`))
	require.False(t, v.IsNil())
	assert.Equal(t, "42", v.Value)

	// whitespace-only strings are absent, not empty-present
	v = cs.FirstString(gjson.Parse(`{"title":"   "}`))
	assert.True(t, v.IsNil())

	// objects and arrays never stringify
	v = cs.FirstString(gjson.Parse(`{"title":{"ko":"한라봉"}}`))
	assert.True(t, v.IsNil())

	v = cs.FirstString(gjson.Parse(`{}`))
	assert.True(t, v.IsNil())
}

func TestFirstNumberCoercion(t *testing.T) {
	cs := CandidateFieldSet{"price"}

	tests := []struct {
		name   string
		doc    string
		want   float64
		absent bool
	}{
		{"plain number", `{"price":12500}`, 12500, false},
		{"decimal", `{"price":12.5}`, 12.5, false},
		{"numeric string", `{"price":"9900"}`, 9900, false},
		{"padded numeric string", `{"price":" 9900 "}`, 9900, false},
		{"non-numeric string", `{"price":"soldout"}`, 0, true},
		{"nan string", `{"price":"NaN"}`, 0, true},
		{"inf string", `{"price":"Inf"}`, 0, true},
		{"boolean", `{"price":true}`, 0, true},
		{"object", `{"price":{"amount":100}}`, 0, true},
		{"null", `{"price":null}`, 0, true},
		{"missing", `{}`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := cs.FirstNumber(gjson.Parse(tt.doc))
			if tt.absent {
				assert.True(t, v.IsNil())
				return
			}
			require.False(t, v.IsNil())
			assert.Equal(t, tt.want, v.Value)
		})
	}
}
