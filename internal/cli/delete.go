package cli

import (
	"github.com/spf13/cobra"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete SESSION_ID",
	Short: "Delete a session (admin)",
	Long: `Delete a session. Deleting sessions requires an administrator account; the
server rejects the call otherwise.

Examples:
  # Delete session 3
  studiokit delete 3`,
	Args: cobra.ExactArgs(1),
	RunE: deleteSession,
}

// deleteSession deletes the session identified by the argument
func deleteSession(cmd *cobra.Command, args []string) error {
	id, err := parseSessionID(args[0])
	if err != nil {
		return err
	}

	client, err := newStudioClient()
	if err != nil {
		return err
	}

	if !client.workflow.CanManage() {
		noticeLabel.Fprintln(cmd.ErrOrStderr(), "Note: deleting sessions requires an administrator account")
	}

	if err := client.workflow.Delete(cmd.Context(), id); err != nil {
		return err
	}

	if jsonOutput {
		printJSON(map[string]string{
			"status":  "success",
			"message": "Session deleted",
		})
	} else {
		okLabel.Println("✓ Session deleted")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
