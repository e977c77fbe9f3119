package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/studiokit/studiokit/internal/auth"
)

// newLoginCmd creates and returns a new login command
func newLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with the booking service",
		Long: `Login to the booking service to obtain an authentication token.
This command authenticates with the server and stores the token in your
configuration file so subsequent commands run as you.

Example:
  studiokit login --email me@studio.test --password secret`,
		RunE: runLogin,
	}

	cmd.Flags().String("email", "", "Account email")
	cmd.Flags().String("password", "", "Account password")
	return cmd
}

// runLogin handles the login command execution
func runLogin(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	if cfg == nil {
		return fmt.Errorf("no configuration loaded")
	}

	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	if email == "" || password == "" {
		return fmt.Errorf("email and password are required. Use --email and --password")
	}

	client, err := newStudioClient()
	if err != nil {
		return err
	}

	ident, err := client.auth.Login(cmd.Context(), auth.LoginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	var expiry string
	if exp := auth.TokenExpiry(ident.Token); !exp.IsZero() {
		expiry = exp.Format(time.RFC3339)
	}
	cfg.SetIdentity(ident, expiry)

	if err := cfg.WriteConfig(configFile); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	if jsonOutput {
		kv := map[string]interface{}{
			"status":  "success",
			"message": "Login successful",
			"user":    ident.DisplayName(),
			"admin":   ident.Admin,
		}
		if expiry != "" {
			kv["expires_at"] = expiry
		}
		printJSON(kv)
	} else {
		okLabel.Println("✓ Login successful")
		fmt.Printf("Logged in as: %s\n", ident.DisplayName())
		if ident.Admin {
			fmt.Println("Role: administrator")
		}
		if expiry != "" {
			fmt.Printf("Token expires at: %s\n", expiry)
		}
	}

	return nil
}
