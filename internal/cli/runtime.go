package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/brixmarket/brix/internal/client"
)

// newAPIClient builds an authenticated client from the loaded configuration.
// The stored token, if any, seeds the session; on unrecoverable expiry the
// stored token is cleared and the user is told to sign in again.
func newAPIClient() (*client.Client, error) {
	cfg := GetConfig()
	if cfg == nil {
		return nil, fmt.Errorf("no configuration loaded")
	}

	session := client.NewSession()
	if cfg.CurrentToken != "" {
		session.Set(cfg.CurrentToken)
	}

	cl := client.New(client.NewEndpoints(cfg.ServerURL), session,
		client.WithExpiryHandler(func() {
			cfg.CurrentToken = ""
			_ = cfg.WriteConfig(configFile)
			errorLabel.Fprintln(os.Stderr, "Session expired. Sign in again with \"brix login\".")
		}))
	return cl, nil
}

// saveSession persists the session token back to the config file when a
// refresh changed it mid-command.
func saveSession(cl *client.Client) {
	cfg := GetConfig()
	if cfg == nil {
		return
	}
	if token := cl.Session().Token(); token != cfg.CurrentToken {
		cfg.CurrentToken = token
		_ = cfg.WriteConfig(configFile)
	}
}

// requireSession fails fast when no token is stored, instead of burning a
// round trip on a request that can only come back unauthorized.
func requireSession(cl *client.Client) error {
	if !cl.Session().Active() {
		return client.ErrNotLoggedIn.Msg("not signed in. Run \"brix login\" first")
	}
	return nil
}

// commandContext bounds a whole command run, on top of the client's
// per-request timeout.
func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 2*time.Minute)
}

// dash renders absent display values.
func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
