// Package booking mediates all session-resource operations against the
// booking service. It validates drafts before dispatch, issues exactly one
// HTTP call per operation, and normalizes backend outcomes into classified
// errors. It keeps no session cache: every response is relayed verbatim.
package booking

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/tidwall/sjson"
)

// dateLayouts are the accepted formats for a session date.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// Session is a booking resource as reported by the backend. Users is the
// roster in insertion order; CreatedAt and UpdatedAt are server-assigned.
type Session struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	TeacherID   int64     `json:"teacher_id"`
	Users       []int64   `json:"users"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}

// SessionDraft carries the client-supplied fields for create and update.
// All fields are required; Date must parse as 2006-01-02 or RFC 3339.
type SessionDraft struct {
	Name        string `json:"name" yaml:"name" validate:"required"`
	Description string `json:"description" yaml:"description" validate:"required"`
	Date        string `json:"date" yaml:"date" validate:"required,sessiondate"`
	TeacherID   int64  `json:"teacher_id" yaml:"teacher_id" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	err := v.RegisterValidation("sessiondate", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		for _, layout := range dateLayouts {
			if _, err := time.Parse(layout, value); err == nil {
				return true
			}
		}
		return false
	})
	if err != nil {
		panic(err)
	}
	return v
}

// Validate checks the draft locally. A failing draft is never dispatched.
func (d SessionDraft) Validate() error {
	if err := validate.Struct(d); err != nil {
		return ErrValidation.MsgErr("invalid session draft", err)
	}
	return nil
}

// payload serializes exactly the draft fields, nothing else. The backend
// ignores unknown fields but the contract is to never send any.
func (d SessionDraft) payload() ([]byte, error) {
	body := []byte(`{}`)
	var err error
	for _, f := range []struct {
		path  string
		value any
	}{
		{"name", d.Name},
		{"description", d.Description},
		{"date", d.Date},
		{"teacher_id", d.TeacherID},
	} {
		if body, err = sjson.SetBytes(body, f.path, f.value); err != nil {
			return nil, err
		}
	}
	return body, nil
}
