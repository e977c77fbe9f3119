package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// accountCmd represents the account command
var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Show the logged-in account",
	Long: `Show the server-side account record for the logged-in user. Unlike whoami,
this fetches the account from the server.`,
	Args: cobra.NoArgs,
	RunE: showAccount,
}

// accountDeleteCmd represents the account delete command
var accountDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the logged-in account",
	Long: `Delete the logged-in account on the server. The stored credentials are
cleared afterwards; the account cannot be recovered.`,
	Args: cobra.NoArgs,
	RunE: deleteAccount,
}

// showAccount fetches and prints the account record
func showAccount(cmd *cobra.Command, args []string) error {
	client, err := newStudioClient()
	if err != nil {
		return err
	}
	ident, err := client.requireIdentity()
	if err != nil {
		return err
	}

	acct, err := client.auth.Account(cmd.Context(), ident.ID)
	if err != nil {
		return err
	}

	if jsonOutput {
		printJSON(acct)
		return nil
	}
	fmt.Printf("ID:    %d\n", acct.ID)
	fmt.Printf("Name:  %s %s\n", acct.FirstName, acct.LastName)
	fmt.Printf("Email: %s\n", acct.Email)
	if acct.Admin {
		fmt.Println("Role:  administrator")
	}
	return nil
}

// deleteAccount deletes the account and clears the stored credentials
func deleteAccount(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	if cfg == nil {
		return fmt.Errorf("no configuration loaded")
	}

	client, err := newStudioClient()
	if err != nil {
		return err
	}
	ident, err := client.requireIdentity()
	if err != nil {
		return err
	}

	if err := client.auth.DeleteAccount(cmd.Context(), ident.ID); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	cfg.ClearIdentity()
	if err := cfg.WriteConfig(configFile); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	if jsonOutput {
		printJSON(map[string]string{
			"status":  "success",
			"message": "Account deleted",
		})
	} else {
		okLabel.Println("✓ Account deleted")
	}
	return nil
}

func init() {
	accountCmd.AddCommand(accountDeleteCmd)
	rootCmd.AddCommand(accountCmd)
}
