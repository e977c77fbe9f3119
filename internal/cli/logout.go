package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newLogoutCmd creates and returns a new logout command
func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out of the booking service",
		Long: `Log out of the booking service. This clears the stored token and identity.
Logging out while already logged out is not an error.`,
		RunE: runLogout,
	}
}

// runLogout handles the logout command execution
func runLogout(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	if cfg == nil {
		return fmt.Errorf("no configuration loaded")
	}

	client, err := newStudioClient()
	if err != nil {
		return err
	}
	client.auth.Logout()

	cfg.ClearIdentity()
	if err := cfg.WriteConfig(configFile); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	if jsonOutput {
		printJSON(map[string]string{
			"status":  "success",
			"message": "Logged out",
		})
	} else {
		okLabel.Println("✓ Logged out")
	}

	return nil
}
