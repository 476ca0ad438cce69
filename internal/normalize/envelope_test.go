package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnvelopeLeniency(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"whitespace body", "  \n\t "},
		{"truncated json", `{"status":200,"data":[{"id":`},
		{"html error page", "<html><body>502 Bad Gateway</body></html>"},
		{"plain text", "internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := ParseEnvelope([]byte(tt.body))
			assert.True(t, env.IsNull())
			assert.Equal(t, 0, env.Status())
			assert.Empty(t, env.Message())
			assert.Empty(t, env.Records())
		})
	}
}

func TestParseEnvelopeFields(t *testing.T) {
	env := ParseEnvelope([]byte(`{"status":201,"message":"created","data":{"id":9}}`))
	require.False(t, env.IsNull())
	assert.Equal(t, 201, env.Status())
	assert.Equal(t, "created", env.Message())
	assert.Equal(t, int64(9), env.Data().Get("id").Int())
}

func TestEnvelopeDataFallsBackToRoot(t *testing.T) {
	env := ParseEnvelope([]byte(`{"id":3,"title":"Yellow melon"}`))
	assert.Equal(t, int64(3), env.Data().Get("id").Int())
}

func TestEnvelopeRecords(t *testing.T) {
	tests := []struct {
		name string
		body string
		ids  []int64
	}{
		{
			"paginated double wrap",
			`{"data":{"data":{"content":[{"id":1},{"id":2}],"totalPages":5}}}`,
			[]int64{1, 2},
		},
		{
			"double wrap",
			`{"data":{"data":[{"id":3}]}}`,
			[]int64{3},
		},
		{
			"single-wrap paginated",
			`{"data":{"content":[{"id":4},{"id":5}],"last":false}}`,
			[]int64{4, 5},
		},
		{
			"plain wrap",
			`{"data":[{"id":6}]}`,
			[]int64{6},
		},
		{
			"bare array",
			`[{"id":7},{"id":8}]`,
			[]int64{7, 8},
		},
		{
			"no array anywhere",
			`{"data":{"id":9}}`,
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := ParseEnvelope([]byte(tt.body)).Records()
			var ids []int64
			for _, r := range records {
				ids = append(ids, r.Get("id").Int())
			}
			assert.Equal(t, tt.ids, ids)
		})
	}
}

func TestEnvelopeRecordsProbeOrder(t *testing.T) {
	// when both the paginated container and the outer wrap are arrays, the
	// deeper container wins
	body := `{"data":{"data":{"content":[{"id":1}]},"extra":[{"id":99}]}}`
	records := ParseEnvelope([]byte(body)).Records()
	require.Len(t, records, 1)
	assert.Equal(t, int64(1), records[0].Get("id").Int())
}

func TestFirstRecord(t *testing.T) {
	bare := ParseEnvelope([]byte(`{"data":{"id":1}}`))
	assert.Equal(t, int64(1), firstRecord(bare.Data()).Get("id").Int())

	wrapped := ParseEnvelope([]byte(`{"data":[{"id":2},{"id":3}]}`))
	assert.Equal(t, int64(2), firstRecord(wrapped.Data()).Get("id").Int())

	empty := ParseEnvelope([]byte(`{"data":[]}`))
	assert.False(t, firstRecord(empty.Data()).Exists())

	scalar := ParseEnvelope([]byte(`{"data":"nothing here"}`))
	assert.False(t, firstRecord(scalar.Data()).Exists())
}
