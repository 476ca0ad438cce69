package normalize

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHydrateRecoversMissingImages(t *testing.T) {
	resolver := NewImageResolver("https://api.example.com")

	// five listings: 1, 2, 4 carry an image directly; 3 and 5 need a detail
	// fetch, and the fetch for 5 fails
	body := `{"data":[
		{"id":1,"title":"one","imageUrl":"/1.jpg"},
		{"id":2,"title":"two","imageUrl":"/2.jpg"},
		{"id":3,"title":"three"},
		{"id":4,"title":"four","imageUrl":"/4.jpg"},
		{"id":5,"title":"five"}
	]}`

	var fetches int32
	fetch := func(ctx context.Context, id string) (Envelope, error) {
		atomic.AddInt32(&fetches, 1)
		if id == "5" {
			return Envelope{}, errors.New("detail fetch: connection reset")
		}
		detail := fmt.Sprintf(`{"data":{"id":%s,"imageUrl":"/detail/%s.jpg"}}`, id, id)
		return ParseEnvelope([]byte(detail)), nil
	}

	h := NewHydrator(resolver, fetch)
	listings := h.Hydrate(context.Background(), ParseEnvelope([]byte(body)))
	require.Len(t, listings, 5)

	// order preserved
	for i, want := range []string{"one", "two", "three", "four", "five"} {
		assert.Equal(t, want, listings[i].Title.Value)
	}

	assert.Equal(t, "https://api.example.com/1.jpg", listings[0].Image.Resolved)
	assert.Equal(t, "https://api.example.com/2.jpg", listings[1].Image.Resolved)
	assert.Equal(t, "https://api.example.com/detail/3.jpg", listings[2].Image.Resolved)
	assert.Equal(t, "https://api.example.com/4.jpg", listings[3].Image.Resolved)

	// the failed record degrades alone, the other four keep their images
	assert.False(t, listings[4].Image.HasResolved())

	// only the two image-less records triggered a fetch
	assert.Equal(t, int32(2), atomic.LoadInt32(&fetches))
}

func TestHydrateSkipsRecordsWithoutID(t *testing.T) {
	var fetches int32
	fetch := func(ctx context.Context, id string) (Envelope, error) {
		atomic.AddInt32(&fetches, 1)
		return ParseEnvelope([]byte(`{"data":{"imageUrl":"/x.jpg"}}`)), nil
	}

	h := NewHydrator(NewImageResolver("https://api.example.com"), fetch)
	listings := h.Hydrate(context.Background(), ParseEnvelope([]byte(`{"data":[{"title":"no id"}]}`)))
	require.Len(t, listings, 1)
	assert.False(t, listings[0].Image.HasResolved())
	assert.Equal(t, int32(0), atomic.LoadInt32(&fetches))
}

func TestHydrateUnresolvedDetailImage(t *testing.T) {
	fetch := func(ctx context.Context, id string) (Envelope, error) {
		return ParseEnvelope([]byte(`{"data":{"id":1,"title":"detail without image"}}`)), nil
	}
	h := NewHydrator(NewImageResolver("https://api.example.com"), fetch)
	listings := h.Hydrate(context.Background(), ParseEnvelope([]byte(`{"data":[{"id":1}]}`)))
	require.Len(t, listings, 1)
	assert.False(t, listings[0].Image.HasResolved())
}

func TestHydrateConcurrencyCap(t *testing.T) {
	const limit = 2

	var mu sync.Mutex
	inflight, peak := 0, 0

	gate := make(chan struct{})
	fetch := func(ctx context.Context, id string) (Envelope, error) {
		mu.Lock()
		inflight++
		if inflight > peak {
			peak = inflight
		}
		mu.Unlock()

		<-gate

		mu.Lock()
		inflight--
		mu.Unlock()
		return ParseEnvelope([]byte(`{"data":{"imageUrl":"/x.jpg"}}`)), nil
	}

	body := `{"data":[{"id":1},{"id":2},{"id":3},{"id":4},{"id":5},{"id":6}]}`
	h := NewHydrator(NewImageResolver("https://api.example.com"), fetch).WithLimit(limit)

	done := make(chan struct{})
	go func() {
		h.Hydrate(context.Background(), ParseEnvelope([]byte(body)))
		close(done)
	}()
	close(gate)
	<-done

	mu.Lock()
	defer mu.Unlock()
	assert.LessOrEqual(t, peak, limit)
}

func TestHydrateNullEnvelope(t *testing.T) {
	h := NewHydrator(NewImageResolver(""), func(ctx context.Context, id string) (Envelope, error) {
		t.Error("fetch must not be called")
		return Envelope{}, nil
	})
	assert.Empty(t, h.Hydrate(context.Background(), ParseEnvelope(nil)))
}
