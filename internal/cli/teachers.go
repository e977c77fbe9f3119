package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/studiokit/studiokit/internal/booking"
)

// teachersCmd represents the teachers command
var teachersCmd = &cobra.Command{
	Use:   "teachers [TEACHER_ID]",
	Short: "List teachers or show one",
	Long: `List the teacher directory, or show a single teacher when an id is given.

Examples:
  # List all teachers
  studiokit teachers

  # Show teacher 5
  studiokit teachers 5`,
	Args: cobra.MaximumNArgs(1),
	RunE: showTeachers,
}

// showTeachers fetches and prints the teacher directory
func showTeachers(cmd *cobra.Command, args []string) error {
	client, err := newStudioClient()
	if err != nil {
		return err
	}

	if len(args) == 1 {
		id, err := parseSessionID(args[0])
		if err != nil {
			return fmt.Errorf("invalid teacher id %q", args[0])
		}
		teacher, err := client.workflow.Teacher(cmd.Context(), id)
		if err != nil {
			return err
		}
		return printTeacher(teacher)
	}

	teachers, err := client.workflow.Teachers(cmd.Context())
	if err != nil {
		return err
	}
	return printTeacherList(teachers)
}

func printTeacherList(teachers []booking.Teacher) error {
	if jsonOutput {
		data, err := json.MarshalIndent(teachers, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	if len(teachers) == 0 {
		fmt.Println("No teachers found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME")
	for _, t := range teachers {
		fmt.Fprintf(w, "%d\t%s\n", t.ID, t.DisplayName())
	}
	return w.Flush()
}

func printTeacher(t booking.Teacher) error {
	if jsonOutput {
		data, err := json.MarshalIndent(t, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("ID:   %d\n", t.ID)
	fmt.Printf("Name: %s\n", t.DisplayName())
	return nil
}

func init() {
	rootCmd.AddCommand(teachersCmd)
}
