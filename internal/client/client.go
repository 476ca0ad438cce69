// Package client implements the authenticated request layer of the Brix
// storefront client. It issues requests with the current bearer token and, on
// a single unauthorized response, performs exactly one refresh-and-retry
// cycle before surfacing session expiry to the caller.
//
// The refresh/retry sequence is an explicit state machine rather than
// exception-driven control flow: Sent -> {Authorized, Unauthorized},
// Unauthorized -> Refreshing -> {RetrySent, Expired}. Terminal outcomes are
// an ordinary response, ErrSessionExpired, or ErrTransport.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

// DefaultTimeout applies uniformly to every request the client makes. The
// backend has no long-poll endpoints; uploads included, a call that takes
// longer than this has failed.
const DefaultTimeout = 30 * time.Second

// Request describes one outbound API call. Body carries a JSON document
// unless ContentType says otherwise; multipart callers pass the boundary
// content type produced by their writer, and the transport never forces a
// JSON content type onto a binary body.
type Request struct {
	Method      string
	URL         string            // absolute URL from the endpoint table
	Query       map[string]string // optional query parameters
	Headers     map[string]string // optional extra headers
	Body        []byte            // optional request body
	ContentType string            // empty means application/json when Body is set
}

// Response is the raw outcome of a request. Body interpretation is left to
// the normalization layer.
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the response status is in the 2xx range.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Client issues authenticated requests against the Brix API. The refresh
// credential travels in a cookie set at login, held by the underlying
// http.Client's cookie jar, separate from the bearer header.
type Client struct {
	endpoints  Endpoints
	session    *Session
	httpClient *http.Client
	onExpired  func()
}

// Option configures a Client.
type Option func(*Client)

// WithExpiryHandler registers a callback invoked once per unrecoverable
// session expiry, after the session has been cleared. The CLI uses it to
// signal "sign in again".
func WithExpiryHandler(fn func()) Option {
	return func(c *Client) { c.onExpired = fn }
}

// WithHTTPClient replaces the underlying http.Client. Tests use this to
// point the client at httptest servers with instrumented transports.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a client for the given endpoint table and session.
func New(endpoints Endpoints, session *Session, opts ...Option) *Client {
	jar, _ := cookiejar.New(nil)
	c := &Client{
		endpoints: endpoints,
		session:   session,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
			Jar:     jar,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoints returns the client's endpoint table.
func (c *Client) Endpoints() Endpoints {
	return c.endpoints
}

// Session returns the session shared by this client.
func (c *Client) Session() *Session {
	return c.session
}

// Execute sends the request with the current bearer token. A single
// unauthorized response triggers exactly one refresh and one retry; a second
// unauthorized response, or a refresh failure, clears the session and fails
// with ErrSessionExpired. Any network failure propagates immediately as
// ErrTransport with no automatic retry.
func (c *Client) Execute(ctx context.Context, req Request) (*Response, error) {
	resp, err := c.send(ctx, req, c.session.Token())
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	log.Debug().Str("method", req.Method).Str("url", req.URL).Msg("unauthorized, refreshing token")
	token, err := c.session.refreshOnce(func() (string, error) {
		return c.refreshToken(ctx)
	})
	if err != nil {
		// A network failure during refresh is a transport problem, not
		// proof the session is dead; keep the token for the next attempt.
		if errors.Is(err, ErrTransport) {
			return nil, err
		}
		c.expire()
		return nil, err
	}

	resp, err = c.send(ctx, req, token)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		c.expire()
		return nil, ErrSessionExpired
	}
	return resp, nil
}

// send performs one HTTP round trip with the given bearer token.
func (c *Client) send(ctx context.Context, req Request, token string) (*Response, error) {
	u, err := url.Parse(req.URL)
	if err != nil {
		return nil, ErrInvalidRequest.Msg(err.Error())
	}
	if len(req.Query) > 0 {
		q := u.Query()
		for k, v := range req.Query {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u.String(), bytes.NewReader(req.Body))
	if err != nil {
		return nil, ErrInvalidRequest.Msg(err.Error())
	}
	// extra headers first; Content-Type and Authorization stay authoritative
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if len(req.Body) > 0 {
		if req.ContentType != "" {
			httpReq.Header.Set("Content-Type", req.ContentType)
		} else {
			httpReq.Header.Set("Content-Type", "application/json")
		}
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, ErrTransport.Err(err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, ErrTransport.Err(err)
	}

	log.Debug().Str("method", req.Method).Str("url", u.String()).Int("status", httpResp.StatusCode).Msg("request complete")
	return &Response{StatusCode: httpResp.StatusCode, Body: body}, nil
}

// refreshToken calls the reissue endpoint. Authentication rides on the
// refresh cookie in the jar, not the bearer header. Any non-success status or
// unexpected body shape is a refresh failure.
func (c *Client) refreshToken(ctx context.Context) (string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoints.Reissue(), nil)
	if err != nil {
		return "", ErrRefreshFailed.Msg(err.Error())
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", ErrTransport.Err(err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", ErrTransport.Err(err)
	}
	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		log.Warn().Int("status", httpResp.StatusCode).Msg("token refresh rejected")
		return "", ErrRefreshFailed
	}

	token := gjson.GetBytes(body, "accessToken").String()
	if token == "" {
		token = gjson.GetBytes(body, "data.accessToken").String()
	}
	if token == "" {
		return "", ErrRefreshFailed
	}
	log.Debug().Msg("token refreshed")
	return token, nil
}

// expire clears the session and fires the expiry callback. The callback runs
// once per terminal expiry: concurrent waiters on the same failed refresh
// all land here, but only the caller that actually cleared the token fires it.
func (c *Client) expire() {
	if !c.session.clearIfActive() {
		return
	}
	if c.onExpired != nil {
		c.onExpired()
	}
}

// loginRequest is the login endpoint's request body.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates with username and password. On success the bearer
// token is stored in the session and the refresh cookie lands in the jar.
// The token location varies by backend version: data.accessToken with an
// accessToken fallback.
func (c *Client) Login(ctx context.Context, username, password string) error {
	body, err := json.Marshal(loginRequest{Username: username, Password: password})
	if err != nil {
		return ErrInvalidRequest.Msg(err.Error())
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoints.Login(), bytes.NewReader(body))
	if err != nil {
		return ErrInvalidRequest.Msg(err.Error())
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return ErrTransport.Err(err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return ErrTransport.Err(err)
	}
	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		if msg := gjson.GetBytes(respBody, "message").String(); msg != "" {
			return ErrLoginFailed.Msg(msg)
		}
		return ErrLoginFailed
	}

	token := gjson.GetBytes(respBody, "data.accessToken").String()
	if token == "" {
		token = gjson.GetBytes(respBody, "accessToken").String()
	}
	if token == "" {
		return ErrLoginFailed.Msg("no access token in response")
	}

	c.session.Set(token)
	log.Debug().Str("username", username).Msg("login successful")
	return nil
}

// changePasswordRequest is the password change endpoint's request body.
type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangePassword updates the account password. The session stays valid; the
// backend does not rotate tokens on a password change.
func (c *Client) ChangePassword(ctx context.Context, current, next string) (*Response, error) {
	body, err := json.Marshal(changePasswordRequest{CurrentPassword: current, NewPassword: next})
	if err != nil {
		return nil, ErrInvalidRequest.Msg(err.Error())
	}
	return c.Execute(ctx, Request{
		Method: http.MethodPost,
		URL:    c.endpoints.ChangePassword(),
		Body:   body,
	})
}

// Logout clears the local session. The backend invalidates the refresh
// cookie on its own schedule; there is no logout endpoint.
func (c *Client) Logout() {
	c.session.Clear()
}

// DeleteAccount permanently removes the authenticated account and clears the
// session on success.
func (c *Client) DeleteAccount(ctx context.Context) (*Response, error) {
	resp, err := c.Execute(ctx, Request{Method: http.MethodDelete, URL: c.endpoints.Me()})
	if err != nil {
		return nil, err
	}
	if resp.OK() {
		c.session.Clear()
	}
	return resp, nil
}

// Ping probes the unauthenticated health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoints.Health(), nil)
	if err != nil {
		return ErrInvalidRequest.Msg(err.Error())
	}
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return ErrTransport.Err(err)
	}
	defer httpResp.Body.Close()
	io.Copy(io.Discard, httpResp.Body)
	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return ErrTransport.Msg("health check failed")
	}
	return nil
}
