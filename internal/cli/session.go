package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/studiokit/studiokit/internal/booking"
)

// parseSessionID parses a positional session id argument.
func parseSessionID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid session id %q", arg)
	}
	return id, nil
}

// loadDraft builds a session draft from a YAML file and/or flags. Flags win
// over file values so a file can be used as a base.
func loadDraft(file, name, description, date string, teacherID int64) (booking.SessionDraft, error) {
	var draft booking.SessionDraft

	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return draft, fmt.Errorf("unable to read draft file: %w", err)
		}
		if err := yaml.Unmarshal(data, &draft); err != nil {
			return draft, fmt.Errorf("unable to parse draft file: %w", err)
		}
	}

	if name != "" {
		draft.Name = name
	}
	if description != "" {
		draft.Description = description
	}
	if date != "" {
		draft.Date = date
	}
	if teacherID != 0 {
		draft.TeacherID = teacherID
	}

	return draft, nil
}

// teacherNames fetches the teacher directory and indexes it by id. A fetch
// failure is not fatal for rendering; callers fall back to raw ids.
func teacherNames(cmd *cobra.Command, client *studioClient) map[int64]string {
	teachers, err := client.workflow.Teachers(cmd.Context())
	if err != nil {
		return nil
	}
	names := make(map[int64]string, len(teachers))
	for _, t := range teachers {
		names[t.ID] = t.DisplayName()
	}
	return names
}

// teacherName resolves an id against the fetched directory, falling back to
// the raw id when the directory could not be fetched or lacks the entry.
func teacherName(names map[int64]string, id int64) string {
	if name, ok := names[id]; ok {
		return name
	}
	return fmt.Sprintf("%d", id)
}

// printSessionList renders sessions as a table, or JSON with -j.
func printSessionList(sessions []booking.Session, names map[int64]string) error {
	if jsonOutput {
		data, err := json.MarshalIndent(sessions, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tDATE\tTEACHER\tATTENDEES")
	for _, s := range sessions {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\n", s.ID, s.Name, s.Date, teacherName(names, s.TeacherID), len(s.Users))
	}
	return w.Flush()
}

// printSession renders a single session, or JSON with -j.
func printSession(s booking.Session, names map[int64]string) error {
	if jsonOutput {
		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("ID:          %d\n", s.ID)
	fmt.Printf("Name:        %s\n", s.Name)
	fmt.Printf("Date:        %s\n", s.Date)
	fmt.Printf("Teacher:     %s\n", teacherName(names, s.TeacherID))
	fmt.Printf("Description: %s\n", s.Description)
	fmt.Printf("Attendees:   %v\n", s.Users)
	if !s.CreatedAt.IsZero() {
		fmt.Printf("Created:     %s\n", s.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	if !s.UpdatedAt.IsZero() {
		fmt.Printf("Updated:     %s\n", s.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}
