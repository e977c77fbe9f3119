package cli

import (
	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all sessions",
	Long: `List all sessions on the booking service.

Examples:
  # List sessions
  studiokit list

  # List sessions in JSON format
  studiokit list -j`,
	Args: cobra.NoArgs,
	RunE: listSessions,
}

// listSessions fetches and prints all sessions
func listSessions(cmd *cobra.Command, args []string) error {
	client, err := newStudioClient()
	if err != nil {
		return err
	}

	sessions, err := client.workflow.List(cmd.Context())
	if err != nil {
		return err
	}

	var names map[int64]string
	if !jsonOutput {
		names = teacherNames(cmd, client)
	}
	return printSessionList(sessions, names)
}

func init() {
	rootCmd.AddCommand(listCmd)
}
