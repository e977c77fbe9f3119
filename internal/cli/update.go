package cli

import (
	"github.com/spf13/cobra"
)

var (
	updateFile        string
	updateName        string
	updateDescription string
	updateDate        string
	updateTeacherID   int64
)

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update SESSION_ID [flags]",
	Short: "Update a session (admin)",
	Long: `Update a session. The draft fully replaces the session's editable fields, so
provide all of them, from a YAML file, flags, or both (flags win).

Examples:
  # Update session 3 from a draft file
  studiokit update 3 -f session.yaml

  # Update session 3 from flags
  studiokit update 3 --name "Hot Yoga" --description "Bring water" --date 2025-03-01 --teacher 7`,
	Args: cobra.ExactArgs(1),
	RunE: updateSession,
}

// updateSession builds the draft and updates the session
func updateSession(cmd *cobra.Command, args []string) error {
	id, err := parseSessionID(args[0])
	if err != nil {
		return err
	}

	client, err := newStudioClient()
	if err != nil {
		return err
	}

	if !client.workflow.CanManage() {
		noticeLabel.Fprintln(cmd.ErrOrStderr(), "Note: updating sessions requires an administrator account")
	}

	draft, err := loadDraft(updateFile, updateName, updateDescription, updateDate, updateTeacherID)
	if err != nil {
		return err
	}

	session, err := client.workflow.Update(cmd.Context(), id, draft)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printSession(session, nil)
	}
	okLabel.Println("✓ Session updated")
	return nil
}

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().StringVarP(&updateFile, "file", "f", "", "Path to a YAML draft file")
	updateCmd.Flags().StringVar(&updateName, "name", "", "Session name")
	updateCmd.Flags().StringVar(&updateDescription, "description", "", "Session description")
	updateCmd.Flags().StringVar(&updateDate, "date", "", "Session date (2006-01-02 or RFC 3339)")
	updateCmd.Flags().Int64Var(&updateTeacherID, "teacher", 0, "Teacher id")
}
