package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/studiokit/studiokit/internal/booking"
)

var leaveUserID int64

// leaveCmd represents the leave command
var leaveCmd = &cobra.Command{
	Use:   "leave SESSION_ID",
	Short: "Leave a session",
	Long: `Leave a session as the logged-in user. Leaving a session you are not
registered on is not a blocking error.

Examples:
  # Leave session 3
  studiokit leave 3

  # Remove user 10 from session 3
  studiokit leave 3 --user 10`,
	Args: cobra.ExactArgs(1),
	RunE: leaveSession,
}

// leaveSession removes a user from the session roster
func leaveSession(cmd *cobra.Command, args []string) error {
	id, err := parseSessionID(args[0])
	if err != nil {
		return err
	}

	client, err := newStudioClient()
	if err != nil {
		return err
	}

	userID := leaveUserID
	if userID == 0 {
		ident, err := client.requireIdentity()
		if err != nil {
			return err
		}
		userID = ident.ID
	}

	err = client.workflow.Leave(cmd.Context(), id, userID)
	if err != nil && !errors.Is(err, booking.ErrNotParticipant) {
		return err
	}

	if jsonOutput {
		kv := map[string]any{
			"status":  "success",
			"message": "Left session",
			"session": id,
			"user":    userID,
		}
		if err != nil {
			kv["message"] = "Not registered on this session"
		}
		printJSON(kv)
	} else if err != nil {
		noticeLabel.Println("Not registered on this session, nothing to do")
	} else {
		okLabel.Println("✓ Left session")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(leaveCmd)

	leaveCmd.Flags().Int64Var(&leaveUserID, "user", 0, "User id to remove (defaults to the logged-in user)")
}
