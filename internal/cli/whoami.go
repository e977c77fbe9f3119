package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studiokit/studiokit/internal/auth"
)

// whoamiCmd represents the whoami command
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in identity",
	Long: `Show the identity stored by the last login: display name, user id, whether
it is an administrator account, and when the token expires. Purely local; no
request is made.`,
	RunE: runWhoami,
}

// runWhoami prints the persisted identity
func runWhoami(cmd *cobra.Command, args []string) error {
	client, err := newStudioClient()
	if err != nil {
		return err
	}

	ident, ok := client.store.Current()
	if !ok {
		if jsonOutput {
			printJSON(map[string]bool{"logged_in": false})
			return nil
		}
		fmt.Println("Not logged in")
		return nil
	}

	if jsonOutput {
		kv := map[string]any{
			"logged_in": true,
			"user_id":   ident.ID,
			"username":  ident.Username,
			"name":      ident.DisplayName(),
			"admin":     ident.Admin,
		}
		if exp := auth.TokenExpiry(ident.Token); !exp.IsZero() {
			kv["token_expires_at"] = exp
		}
		printJSON(kv)
		return nil
	}

	fmt.Printf("Logged in as: %s (%s)\n", ident.DisplayName(), ident.Username)
	fmt.Printf("User id: %d\n", ident.ID)
	if ident.Admin {
		fmt.Println("Role: administrator")
	}
	if exp := auth.TokenExpiry(ident.Token); !exp.IsZero() {
		fmt.Printf("Token expires at: %s\n", exp.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
