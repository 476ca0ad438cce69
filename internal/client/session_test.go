package client

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLifecycle(t *testing.T) {
	s := NewSession()
	assert.False(t, s.Active())
	assert.Empty(t, s.Token())

	s.Set("tok-1")
	assert.True(t, s.Active())
	assert.Equal(t, "tok-1", s.Token())

	s.Set("tok-2")
	assert.Equal(t, "tok-2", s.Token())

	s.Clear()
	assert.False(t, s.Active())
	assert.Empty(t, s.Token())
}

func TestRefreshOnceSingleFlight(t *testing.T) {
	s := NewSession()
	s.Set("stale")

	var calls int32
	started := make(chan struct{})
	release := make(chan struct{})

	const workers = 10
	var wg, entered sync.WaitGroup
	tokens := make([]string, workers)
	errs := make([]error, workers)

	// the first caller blocks inside do until released; everyone else must
	// join its flight instead of starting their own refresh
	do := func() (string, error) {
		atomic.AddInt32(&calls, 1)
		close(started)
		<-release
		return "fresh", nil
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		tokens[0], errs[0] = s.refreshOnce(do)
	}()
	<-started // flight is in progress and parked

	for i := 1; i < workers; i++ {
		wg.Add(1)
		entered.Add(1)
		go func(i int) {
			defer wg.Done()
			entered.Done()
			tokens[i], errs[i] = s.refreshOnce(do)
		}(i)
	}
	entered.Wait()
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "fresh", tokens[i])
	}
	assert.Equal(t, "fresh", s.Token())
}

func TestRefreshOnceFailureShared(t *testing.T) {
	s := NewSession()
	s.Set("stale")

	refreshErr := errors.New("reissue rejected")
	var calls int32
	token, err := s.refreshOnce(func() (string, error) {
		atomic.AddInt32(&calls, 1)
		return "", refreshErr
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, refreshErr)
	assert.Empty(t, token)

	// failure does not touch the stored token; expiry is the caller's call
	assert.Equal(t, "stale", s.Token())

	// a later refresh is a new flight, not a cached failure
	token, err = s.refreshOnce(func() (string, error) {
		atomic.AddInt32(&calls, 1)
		return "fresh", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", token)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestEndpointsNormalization(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare host gets https", "api.brix.kr", "https://api.brix.kr"},
		{"trailing slash trimmed", "https://api.brix.kr/", "https://api.brix.kr"},
		{"many slashes trimmed", "https://api.brix.kr///", "https://api.brix.kr"},
		{"http preserved", "http://localhost:8080", "http://localhost:8080"},
		{"empty stays empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MorphServer(tt.in))
		})
	}
}

func TestEndpointPaths(t *testing.T) {
	e := NewEndpoints("https://api.brix.kr")

	assert.Equal(t, "https://api.brix.kr/auth/login", e.Login())
	assert.Equal(t, "https://api.brix.kr/auth/reissue", e.Reissue())
	assert.Equal(t, "https://api.brix.kr/users/me", e.Me())
	assert.Equal(t, "https://api.brix.kr/orders/my", e.MyOrders())
	assert.Equal(t, "https://api.brix.kr/orders/42", e.OrderDetail("42"))
	assert.Equal(t, "https://api.brix.kr/products/7/reviews", e.ProductReviews("7"))
	assert.Equal(t, "https://api.brix.kr/fruits/graph", e.PriceSeries())
	assert.Equal(t, "https://api.brix.kr/health", e.Health())

	assert.Equal(t, "https://api.brix.kr", e.Origin())
	assert.Equal(t, "http://localhost:8080", NewEndpoints("http://localhost:8080/").Origin())
}
