package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

// newAccountCmd creates and returns the account command group
func newAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage your account",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}
	cmd.AddCommand(newAccountDeleteCmd())
	cmd.AddCommand(newAccountPasswdCmd())
	cmd.AddCommand(newAccountImageCmd())
	return cmd
}

func newAccountImageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "image <imagefile>",
		Short: "Replace your profile image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("unable to read image: %w", err)
			}

			cl, err := newAPIClient()
			if err != nil {
				return err
			}
			if err := requireSession(cl); err != nil {
				return err
			}

			ctx, cancel := commandContext()
			defer cancel()

			resp, err := cl.UpdateProfileImage(ctx, args[0], data)
			if err != nil {
				return err
			}
			saveSession(cl)

			if !resp.OK() {
				return fmt.Errorf("profile image update failed with status %d", resp.StatusCode)
			}
			if jsonOutput {
				printJSON(map[string]string{"status": "success"})
			} else {
				okLabel.Println("✓ Profile image updated")
			}
			return nil
		},
	}
}

func newAccountPasswdCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "passwd",
		Short: "Change your password",
		RunE:  runAccountPasswd,
	}
	cmd.Flags().String("current", "", "Current password")
	cmd.Flags().String("new", "", "New password")
	cmd.MarkFlagRequired("current")
	cmd.MarkFlagRequired("new")
	return cmd
}

func runAccountPasswd(cmd *cobra.Command, args []string) error {
	current, _ := cmd.Flags().GetString("current")
	next, _ := cmd.Flags().GetString("new")

	cl, err := newAPIClient()
	if err != nil {
		return err
	}
	if err := requireSession(cl); err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	resp, err := cl.ChangePassword(ctx, current, next)
	if err != nil {
		return err
	}
	saveSession(cl)

	if !resp.OK() {
		if msg := gjson.GetBytes(resp.Body, "message").String(); msg != "" {
			return fmt.Errorf("password change failed: %s", msg)
		}
		return fmt.Errorf("password change failed with status %d", resp.StatusCode)
	}

	cfg := GetConfig()
	if cfg != nil && cfg.Password != "" {
		cfg.Password = next
		_ = cfg.WriteConfig(configFile)
	}

	if jsonOutput {
		printJSON(map[string]string{"status": "success"})
	} else {
		okLabel.Println("✓ Password changed")
	}
	return nil
}

func newAccountDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Permanently delete your account",
		Long: `Permanently delete your account. This cannot be undone. Products you
have listed must be removed first.`,
		RunE: runAccountDelete,
	}
	cmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
	return cmd
}

func runAccountDelete(cmd *cobra.Command, args []string) error {
	confirmed, _ := cmd.Flags().GetBool("yes")
	if !confirmed {
		fmt.Print("Really delete your account? This cannot be undone. Type 'delete' to confirm: ")
		line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if strings.TrimSpace(line) != "delete" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	cl, err := newAPIClient()
	if err != nil {
		return err
	}
	if err := requireSession(cl); err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	resp, err := cl.DeleteAccount(ctx)
	if err != nil {
		return err
	}

	if !resp.OK() {
		// The backend reports listing conflicts through its message field.
		if msg := gjson.GetBytes(resp.Body, "message").String(); strings.Contains(msg, "foreign key") {
			return fmt.Errorf("delete your product listings before deleting the account")
		}
		return fmt.Errorf("account deletion failed with status %d", resp.StatusCode)
	}

	cfg := GetConfig()
	if cfg != nil {
		cfg.CurrentToken = ""
		_ = cfg.WriteConfig(configFile)
	}

	if jsonOutput {
		printJSON(map[string]string{"status": "success"})
	} else {
		okLabel.Println("✓ Account deleted")
	}
	return nil
}
