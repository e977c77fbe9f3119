package auth

import (
	"net/http"

	"github.com/studiokit/studiokit/internal/common/apperrors"
)

var (
	ErrAuthError          apperrors.Error = apperrors.New("auth error")
	ErrInvalidRequest     apperrors.Error = ErrAuthError.New("invalid request").SetStatusCode(http.StatusBadRequest)
	ErrInvalidCredentials apperrors.Error = ErrAuthError.New("invalid credentials").SetStatusCode(http.StatusUnauthorized)
	ErrRegistration       apperrors.Error = ErrAuthError.New("registration rejected").SetStatusCode(http.StatusBadRequest)
	ErrAccountNotFound    apperrors.Error = ErrAuthError.New("account not found").SetStatusCode(http.StatusNotFound)
	ErrServer             apperrors.Error = ErrAuthError.New("server error").SetStatusCode(http.StatusInternalServerError)
)
