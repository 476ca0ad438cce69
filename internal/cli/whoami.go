package cli

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"github.com/brixmarket/brix/internal/client"
	"github.com/brixmarket/brix/internal/normalize"
)

// newWhoamiCmd creates and returns a new whoami command
func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account and session expiry",
		RunE:  runWhoami,
	}
}

func runWhoami(cmd *cobra.Command, args []string) error {
	cl, err := newAPIClient()
	if err != nil {
		return err
	}
	if err := requireSession(cl); err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	resp, err := cl.Execute(ctx, client.Request{
		Method: http.MethodGet,
		URL:    cl.Endpoints().Me(),
	})
	if err != nil {
		return err
	}
	saveSession(cl)

	profile := normalize.NormalizeProfile(normalize.ParseEnvelope(resp.Body))
	remaining := tokenRemaining(cl.Session().Token())

	if jsonOutput {
		out := map[string]interface{}{"profile": profile}
		if remaining > 0 {
			out["token_expires_in_seconds"] = int(remaining.Seconds())
		}
		printJSON(out)
		return nil
	}

	fmt.Printf("Username: %s\n", dash(profile.Username.String()))
	fmt.Printf("Nickname: %s\n", dash(profile.Nickname.String()))
	fmt.Printf("Email:    %s\n", dash(profile.Email.String()))
	fmt.Printf("Role:     %s\n", dash(profile.Role.String()))
	if remaining > 0 {
		fmt.Printf("Session expires in %s\n", remaining.Round(time.Second))
	}
	return nil
}

// tokenRemaining reads the exp claim from the bearer token without verifying
// the signature; the server is the authority, this is display only.
func tokenRemaining(token string) time.Duration {
	if token == "" {
		return 0
	}
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return 0
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return 0
	}
	remaining := time.Until(exp.Time)
	if remaining < 0 {
		return 0
	}
	return remaining
}
