package cli

import (
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// newStatusCmd creates and returns the status command
func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check connectivity to the Brix server",
		Long: `Check connectivity to the Brix server by probing its health endpoint.
The probe retries with backoff; authenticated requests made by other commands
never retry on transport failure.`,
		RunE: runStatus,
	}
}

func runStatus(cmd *cobra.Command, args []string) error {
	cl, err := newAPIClient()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	start := time.Now()
	err = retry.Do(func() error {
		return cl.Ping(ctx)
	}, retry.Attempts(3),
		retry.Delay(500*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			log.Warn().Err(err).Uint("attempt", n+1).Msg("health probe failed, retrying")
		}))
	elapsed := time.Since(start)

	if err != nil {
		return fmt.Errorf("server unreachable: %w", err)
	}

	if jsonOutput {
		printJSON(map[string]string{
			"status":  "ok",
			"server":  cl.Endpoints().BaseURL(),
			"latency": elapsed.Round(time.Millisecond).String(),
		})
	} else {
		okLabel.Println("✓ Server reachable")
		fmt.Printf("Server:  %s\n", cl.Endpoints().BaseURL())
		fmt.Printf("Latency: %s\n", elapsed.Round(time.Millisecond))
	}
	return nil
}
