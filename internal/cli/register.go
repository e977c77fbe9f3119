package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studiokit/studiokit/internal/auth"
)

// newRegisterCmd creates and returns a new register command
func newRegisterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account on the booking service",
		Long: `Create a new account on the booking service. Registration does not log you
in; run "studiokit login" afterwards.

Example:
  studiokit register --email me@studio.test --password secret --first-name Jane --last-name Doe`,
		RunE: runRegister,
	}

	cmd.Flags().String("email", "", "Account email")
	cmd.Flags().String("password", "", "Account password")
	cmd.Flags().String("first-name", "", "First name")
	cmd.Flags().String("last-name", "", "Last name")
	return cmd
}

// runRegister handles the register command execution
func runRegister(cmd *cobra.Command, args []string) error {
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	firstName, _ := cmd.Flags().GetString("first-name")
	lastName, _ := cmd.Flags().GetString("last-name")

	if email == "" || password == "" {
		return fmt.Errorf("email and password are required. Use --email and --password")
	}

	client, err := newStudioClient()
	if err != nil {
		return err
	}

	err = client.auth.Register(cmd.Context(), auth.RegisterRequest{
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Password:  password,
	})
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	if jsonOutput {
		printJSON(map[string]string{
			"status":  "success",
			"message": "Registration successful",
		})
	} else {
		okLabel.Println("✓ Registration successful")
		fmt.Println("Log in with \"studiokit login\"")
	}

	return nil
}
