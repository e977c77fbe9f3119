// Package auth implements the authentication calls of the booking service and
// populates the identity store on success. The store is only ever written
// here and by an explicit logout; everything else reads it.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/studiokit/studiokit/internal/common/apperrors"
	"github.com/studiokit/studiokit/internal/common/httpclient"
	"github.com/studiokit/studiokit/internal/identity"
)

// LoginRequest carries the credentials for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest carries the fields for the register endpoint.
type RegisterRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
}

// Client issues authentication requests and records the resulting identity.
type Client struct {
	client httpclient.Interface
	store  *identity.Store
}

// NewClient creates an auth client writing to the given identity store.
func NewClient(client httpclient.Interface, store *identity.Store) *Client {
	return &Client{
		client: client,
		store:  store,
	}
}

// Login authenticates against the backend and, on success, replaces the
// current identity in the store. The returned identity includes the issued
// token and token type.
func (c *Client) Login(ctx context.Context, req LoginRequest) (identity.Identity, error) {
	if req.Email == "" || req.Password == "" {
		return identity.Identity{}, ErrInvalidRequest.Msg("email and password are required")
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return identity.Identity{}, ErrInvalidRequest.MsgErr("failed to encode login request", err)
	}

	body, err := c.client.CreateResource(ctx, "auth/login", payload)
	if err != nil {
		return identity.Identity{}, mapAuthError(err)
	}

	var ident identity.Identity
	if err := json.Unmarshal(body, &ident); err != nil {
		return identity.Identity{}, ErrServer.MsgErr("failed to decode login response", err)
	}
	if ident.TokenType == "" {
		ident.TokenType = "Bearer"
	}

	c.store.LogIn(ident)
	log.Debug().Int64("user_id", ident.ID).Bool("admin", ident.Admin).Msg("logged in")
	return ident, nil
}

// Register creates a new account. The backend responds with no identity;
// callers log in separately afterwards.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	if req.Email == "" || req.Password == "" {
		return ErrInvalidRequest.Msg("email and password are required")
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return ErrInvalidRequest.MsgErr("failed to encode register request", err)
	}

	if _, err := c.client.CreateResource(ctx, "auth/register", payload); err != nil {
		return mapAuthError(err)
	}
	return nil
}

// Logout clears the identity store. Purely local; the backend holds no
// session state beyond the token itself.
func (c *Client) Logout() {
	c.store.LogOut()
	log.Debug().Msg("logged out")
}

// TokenExpiry extracts the expiry claim from the issued token without
// verifying the signature. The client never validates tokens, it only
// reports when one will stop working. Returns the zero time when the token
// is not a JWT or carries no expiry.
func TokenExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

func mapAuthError(err error) apperrors.Error {
	var httpErr *httpclient.HTTPError
	if !errors.As(err, &httpErr) {
		return ErrServer.MsgErr("request failed", err)
	}
	switch httpErr.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrInvalidCredentials.MsgErr(httpErr.Message, httpErr)
	case http.StatusNotFound:
		return ErrAccountNotFound.MsgErr(httpErr.Message, httpErr)
	case http.StatusBadRequest, http.StatusConflict:
		return ErrRegistration.MsgErr(httpErr.Message, httpErr).SetStatusCode(httpErr.StatusCode)
	default:
		return ErrServer.MsgErr(httpErr.Message, httpErr).SetStatusCode(httpErr.StatusCode)
	}
}
