package client

import (
	"sync"
)

// Session holds the current bearer token. A single instance is shared by
// reference across every in-flight request; the token is set on login or
// refresh success and cleared on logout, account deletion, or unrecoverable
// session expiry.
//
// Refreshes are single-flighted: when several concurrent requests hit an
// unauthorized response at once, only one refresh call goes to the server and
// the rest wait for its outcome.
type Session struct {
	mu    sync.RWMutex
	token string

	refreshMu sync.Mutex
	inflight  *refreshCall
}

type refreshCall struct {
	done  chan struct{}
	token string
	err   error
}

// NewSession creates an empty session. The token is set by Login or refresh.
func NewSession() *Session {
	return &Session{}
}

// Token returns the current bearer token, or an empty string when logged out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Set replaces the current bearer token.
func (s *Session) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// Clear removes the current bearer token.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}

// clearIfActive removes the token and reports whether one was present. Used
// to make session expiry fire its callback once even when concurrent waiters
// all observe the same failed refresh.
func (s *Session) clearIfActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return false
	}
	s.token = ""
	return true
}

// Active reports whether a bearer token is present.
func (s *Session) Active() bool {
	return s.Token() != ""
}

// refreshOnce runs do at most once across concurrent callers. The first
// caller performs the refresh; everyone else blocks until it finishes and
// shares the result. On success the new token is stored in the session
// before any waiter is released.
func (s *Session) refreshOnce(do func() (string, error)) (string, error) {
	s.refreshMu.Lock()
	if call := s.inflight; call != nil {
		s.refreshMu.Unlock()
		<-call.done
		return call.token, call.err
	}
	call := &refreshCall{done: make(chan struct{})}
	s.inflight = call
	s.refreshMu.Unlock()

	call.token, call.err = do()
	if call.err == nil {
		s.Set(call.token)
	}

	s.refreshMu.Lock()
	s.inflight = nil
	s.refreshMu.Unlock()
	close(call.done)

	return call.token, call.err
}
