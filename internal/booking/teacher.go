package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

const teacherEndpoint = "teacher"

// Teacher is a directory entry for the person leading a session. Read-only:
// the backend owns the table, the client only resolves ids to names.
type Teacher struct {
	ID        int64     `json:"id"`
	LastName  string    `json:"lastName"`
	FirstName string    `json:"firstName"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// DisplayName returns the presentation name for the teacher.
func (t Teacher) DisplayName() string {
	return t.FirstName + " " + t.LastName
}

// Teachers fetches the full teacher directory.
func (w *Workflow) Teachers(ctx context.Context) ([]Teacher, error) {
	body, err := w.client.GetResource(ctx, teacherEndpoint)
	if err != nil {
		return nil, mapHTTPError(err)
	}
	var teachers []Teacher
	if err := json.Unmarshal(body, &teachers); err != nil {
		return nil, ErrServer.MsgErr("failed to decode teacher list", err)
	}
	return teachers, nil
}

// Teacher fetches a single teacher by id.
func (w *Workflow) Teacher(ctx context.Context, teacherID int64) (Teacher, error) {
	body, err := w.client.GetResource(ctx, fmt.Sprintf("%s/%d", teacherEndpoint, teacherID))
	if err != nil {
		return Teacher{}, mapHTTPError(err)
	}
	var t Teacher
	if err := json.Unmarshal(body, &t); err != nil {
		return Teacher{}, ErrServer.MsgErr("failed to decode teacher", err)
	}
	return t, nil
}
