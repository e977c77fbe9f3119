package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/studiokit/studiokit/internal/booking"
)

var joinUserID int64

// joinCmd represents the join command
var joinCmd = &cobra.Command{
	Use:   "join SESSION_ID",
	Short: "Join a session",
	Long: `Join a session as the logged-in user. Joining a session you already joined
is accepted and leaves the roster unchanged.

The --user flag registers a different user on the roster (admin-assisted
registration).

Examples:
  # Join session 3 as yourself
  studiokit join 3

  # Register user 10 on session 3
  studiokit join 3 --user 10`,
	Args: cobra.ExactArgs(1),
	RunE: joinSession,
}

// joinSession adds a user to the session roster
func joinSession(cmd *cobra.Command, args []string) error {
	id, err := parseSessionID(args[0])
	if err != nil {
		return err
	}

	client, err := newStudioClient()
	if err != nil {
		return err
	}

	userID := joinUserID
	if userID == 0 {
		ident, err := client.requireIdentity()
		if err != nil {
			return err
		}
		userID = ident.ID
	}

	err = client.workflow.Join(cmd.Context(), id, userID)
	if err != nil && !errors.Is(err, booking.ErrAlreadyParticipant) {
		return err
	}

	if jsonOutput {
		kv := map[string]any{
			"status":  "success",
			"message": "Joined session",
			"session": id,
			"user":    userID,
		}
		if err != nil {
			kv["message"] = "Already registered on this session"
		}
		printJSON(kv)
	} else if err != nil {
		noticeLabel.Println("Already registered on this session, nothing to do")
	} else {
		okLabel.Println("✓ Joined session")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(joinCmd)

	joinCmd.Flags().Int64Var(&joinUserID, "user", 0, "User id to register (defaults to the logged-in user)")
}
