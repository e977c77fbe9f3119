package cli

import (
	"github.com/spf13/cobra"
)

// describeCmd represents the describe command
var describeCmd = &cobra.Command{
	Use:   "describe SESSION_ID",
	Short: "Show the details of a session",
	Long: `Show the details of a session, including its roster.

Examples:
  # Show session 3
  studiokit describe 3

  # Show session 3 in JSON format
  studiokit describe 3 -j`,
	Args: cobra.ExactArgs(1),
	RunE: describeSession,
}

// describeSession fetches and prints one session
func describeSession(cmd *cobra.Command, args []string) error {
	id, err := parseSessionID(args[0])
	if err != nil {
		return err
	}

	client, err := newStudioClient()
	if err != nil {
		return err
	}

	session, err := client.workflow.Get(cmd.Context(), id)
	if err != nil {
		return err
	}

	var names map[int64]string
	if !jsonOutput {
		names = teacherNames(cmd, client)
	}
	return printSession(session, names)
}

func init() {
	rootCmd.AddCommand(describeCmd)
}
