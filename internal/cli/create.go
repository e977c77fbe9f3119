package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	createFile        string
	createName        string
	createDescription string
	createDate        string
	createTeacherID   int64
)

// createCmd represents the create command
var createCmd = &cobra.Command{
	Use:   "create [flags]",
	Short: "Create a new session (admin)",
	Long: `Create a new session. The draft can come from a YAML file, from flags, or
both (flags win). Creating sessions requires an administrator account; the
server rejects the call otherwise.

Draft file format:
  name: Yoga
  description: Morning flow
  date: 2025-01-01
  teacher_id: 5

Examples:
  # Create from a draft file
  studiokit create -f session.yaml

  # Create from flags
  studiokit create --name Yoga --description "Morning flow" --date 2025-01-01 --teacher 5`,
	Args: cobra.NoArgs,
	RunE: createSession,
}

// createSession builds the draft and creates the session
func createSession(cmd *cobra.Command, args []string) error {
	client, err := newStudioClient()
	if err != nil {
		return err
	}

	if !client.workflow.CanManage() {
		noticeLabel.Fprintln(cmd.ErrOrStderr(), "Note: creating sessions requires an administrator account")
	}

	draft, err := loadDraft(createFile, createName, createDescription, createDate, createTeacherID)
	if err != nil {
		return err
	}

	session, err := client.workflow.Create(cmd.Context(), draft)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printSession(session, nil)
	}
	okLabel.Println("✓ Session created")
	fmt.Printf("ID: %d\n", session.ID)
	return nil
}

func init() {
	rootCmd.AddCommand(createCmd)

	createCmd.Flags().StringVarP(&createFile, "file", "f", "", "Path to a YAML draft file")
	createCmd.Flags().StringVar(&createName, "name", "", "Session name")
	createCmd.Flags().StringVar(&createDescription, "description", "", "Session description")
	createCmd.Flags().StringVar(&createDate, "date", "", "Session date (2006-01-02 or RFC 3339)")
	createCmd.Flags().Int64Var(&createTeacherID, "teacher", 0, "Teacher id")
}
