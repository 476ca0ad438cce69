package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newLoginCmd creates and returns a new login command
func newLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with the Brix server",
		Long: `Login to the Brix server and store the session token in your
configuration file.

Example:
  brix login --username alice --passwd=mypassword
  brix login  # uses credentials from config file or BRIX_USERNAME/BRIX_PASSWORD`,
		RunE: runLogin,
	}

	cmd.Flags().String("username", "", "Account name")
	cmd.Flags().String("passwd", "", "Password for authentication")
	return cmd
}

// runLogin handles the login command execution
func runLogin(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	if cfg == nil {
		return fmt.Errorf("no configuration loaded")
	}

	username, _ := cmd.Flags().GetString("username")
	if username == "" {
		username = cfg.Username
		if username == "" {
			return fmt.Errorf("no username provided. Use --username flag or set username in config file")
		}
	}
	passwd, _ := cmd.Flags().GetString("passwd")
	if passwd == "" {
		passwd = cfg.Password
		if passwd == "" {
			return fmt.Errorf("no password provided. Use --passwd flag or set password in config file")
		}
	}

	cl, err := newAPIClient()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	if err := cl.Login(ctx, username, passwd); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	cfg.Username = username
	cfg.Password = passwd
	cfg.CurrentToken = cl.Session().Token()

	if err := cfg.WriteConfig(configFile); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	if jsonOutput {
		printJSON(map[string]string{
			"status":  "success",
			"message": "Login successful",
		})
	} else {
		okLabel.Println("✓ Login successful")
	}

	return nil
}

// newLogoutCmd creates and returns a new logout command
func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := GetConfig()
			if cfg == nil {
				return fmt.Errorf("no configuration loaded")
			}
			cfg.CurrentToken = ""
			if err := cfg.WriteConfig(configFile); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}
			if jsonOutput {
				printJSON(map[string]string{"status": "success"})
			} else {
				okLabel.Println("✓ Signed out")
			}
			return nil
		},
	}
}
