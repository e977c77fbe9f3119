package booking

import (
	"net/http"

	"github.com/studiokit/studiokit/internal/common/apperrors"
)

var (
	ErrBookingError apperrors.Error = apperrors.New("booking error")
	ErrValidation   apperrors.Error = ErrBookingError.New("invalid session draft").SetStatusCode(http.StatusBadRequest)
	ErrUnauthorized apperrors.Error = ErrBookingError.New("not authorized").SetStatusCode(http.StatusForbidden)
	ErrNotFound     apperrors.Error = ErrBookingError.New("session not found").SetStatusCode(http.StatusNotFound)
	ErrConflict     apperrors.Error = ErrBookingError.New("conflicting change").SetStatusCode(http.StatusConflict)
	ErrServer       apperrors.Error = ErrBookingError.New("server error").SetStatusCode(http.StatusInternalServerError)

	// ErrNotParticipant reports a leave for a user the backend does not have
	// on the roster. It is NotFound-class but non-fatal: callers should not
	// surface it as a blocking error.
	ErrNotParticipant apperrors.Error = ErrNotFound.New("user is not a participant")

	// ErrAlreadyParticipant reports a join the backend rejected because the
	// user is already on the roster. Non-fatal: the roster is already in the
	// requested state.
	ErrAlreadyParticipant apperrors.Error = ErrConflict.New("user is already a participant")
)
