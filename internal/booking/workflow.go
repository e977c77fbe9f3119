package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/studiokit/studiokit/internal/common/apperrors"
	"github.com/studiokit/studiokit/internal/common/httpclient"
	"github.com/studiokit/studiokit/internal/identity"
)

const sessionEndpoint = "session"

// Workflow exposes the session CRUD operations and the join/leave roster
// toggle. Privilege gating against the identity store is a UX convenience
// only; the backend remains the authority and its 401/403 responses surface
// as unauthorized errors regardless of local state.
//
// Each operation issues exactly one backend call and relays its outcome
// unchanged on success. There is no retry and no client-side cache.
type Workflow struct {
	client httpclient.Interface
	store  *identity.Store
}

// NewWorkflow creates a Workflow backed by the given client and identity store.
func NewWorkflow(client httpclient.Interface, store *identity.Store) *Workflow {
	return &Workflow{
		client: client,
		store:  store,
	}
}

// CanManage reports whether the current identity may be offered the
// create/edit/delete operations. Screens use it to decide what to render;
// it is not an enforcement point.
func (w *Workflow) CanManage() bool {
	ident, ok := w.store.Current()
	return ok && ident.Admin
}

// List fetches all sessions.
func (w *Workflow) List(ctx context.Context) ([]Session, error) {
	body, err := w.client.GetResource(ctx, sessionEndpoint)
	if err != nil {
		return nil, mapHTTPError(err)
	}
	var sessions []Session
	if err := json.Unmarshal(body, &sessions); err != nil {
		return nil, ErrServer.MsgErr("failed to decode session list", err)
	}
	for i := range sessions {
		normalize(&sessions[i])
	}
	return sessions, nil
}

// Get fetches a single session by id.
func (w *Workflow) Get(ctx context.Context, sessionID int64) (Session, error) {
	body, err := w.client.GetResource(ctx, sessionPath(sessionID))
	if err != nil {
		return Session{}, mapHTTPError(err)
	}
	return decodeSession(body)
}

// Create validates the draft and creates a new session. The caller should be
// privileged; a non-privileged invocation is still dispatched and answered by
// the backend, never overridden locally.
func (w *Workflow) Create(ctx context.Context, draft SessionDraft) (Session, error) {
	if err := draft.Validate(); err != nil {
		return Session{}, err
	}
	w.warnIfUnprivileged("create")

	payload, err := draft.payload()
	if err != nil {
		return Session{}, ErrValidation.MsgErr("failed to encode session draft", err)
	}
	body, err := w.client.CreateResource(ctx, sessionEndpoint, payload)
	if err != nil {
		return Session{}, mapHTTPError(err)
	}
	return decodeSession(body)
}

// Update validates the draft and replaces the session identified by id.
// Same privilege and validation rules as Create.
func (w *Workflow) Update(ctx context.Context, sessionID int64, draft SessionDraft) (Session, error) {
	if err := draft.Validate(); err != nil {
		return Session{}, err
	}
	w.warnIfUnprivileged("update")

	payload, err := draft.payload()
	if err != nil {
		return Session{}, ErrValidation.MsgErr("failed to encode session draft", err)
	}
	body, err := w.client.UpdateResource(ctx, sessionPath(sessionID), payload)
	if err != nil {
		return Session{}, mapHTTPError(err)
	}
	return decodeSession(body)
}

// Delete removes the session identified by id.
func (w *Workflow) Delete(ctx context.Context, sessionID int64) error {
	w.warnIfUnprivileged("delete")
	if err := w.client.DeleteResource(ctx, sessionPath(sessionID)); err != nil {
		return mapHTTPError(err)
	}
	return nil
}

// Join registers the given user on the session roster. The operation is
// idempotent at the desired-state level: the client performs no local
// deduplication of rapid repeats, and when the backend rejects a repeat
// (400, the user is already on the roster) the error is the non-fatal
// ErrAlreadyParticipant since the roster already holds the user.
func (w *Workflow) Join(ctx context.Context, sessionID, userID int64) error {
	_, err := w.client.CreateResource(ctx, participatePath(sessionID, userID), nil)
	if err == nil {
		return nil
	}
	mapped := mapHTTPError(err)
	// on this route 400 means "already participating", not a malformed
	// request; 404 is an unknown session or user and stays blocking
	if errors.Is(mapped, ErrValidation) || errors.Is(mapped, ErrConflict) {
		return ErrAlreadyParticipant.Err(mapped)
	}
	return mapped
}

// Leave removes the given user from the session roster. Leaving when not a
// member is non-fatal: the backend rejects it with 400, which maps to
// ErrNotParticipant; callers should not surface it as a blocking error.
// A 404 (unknown roster entry on older deployments) maps the same way.
func (w *Workflow) Leave(ctx context.Context, sessionID, userID int64) error {
	err := w.client.DeleteResource(ctx, participatePath(sessionID, userID))
	if err == nil {
		return nil
	}
	mapped := mapHTTPError(err)
	if errors.Is(mapped, ErrValidation) || errors.Is(mapped, ErrNotFound) {
		return ErrNotParticipant.Err(mapped)
	}
	return mapped
}

// warnIfUnprivileged notes a mutating call made without the admin flag.
// The call proceeds; the backend decides.
func (w *Workflow) warnIfUnprivileged(op string) {
	ident, ok := w.store.Current()
	if !ok || !ident.Admin {
		log.Debug().Str("op", op).Msg("mutating call without admin privilege, deferring to server")
	}
}

func sessionPath(sessionID int64) string {
	return fmt.Sprintf("%s/%d", sessionEndpoint, sessionID)
}

func participatePath(sessionID, userID int64) string {
	return fmt.Sprintf("%s/%d/participate/%d", sessionEndpoint, sessionID, userID)
}

func decodeSession(body []byte) (Session, error) {
	var s Session
	if err := json.Unmarshal(body, &s); err != nil {
		return Session{}, ErrServer.MsgErr("failed to decode session", err)
	}
	normalize(&s)
	return s, nil
}

// normalize keeps the roster non-nil so an empty roster is [] on re-encode.
func normalize(s *Session) {
	if s.Users == nil {
		s.Users = []int64{}
	}
}

// mapHTTPError converts transport-level errors into classified booking
// errors. The raw transport detail stays wrapped for logging; callers see
// only the mapped kind.
func mapHTTPError(err error) apperrors.Error {
	var httpErr *httpclient.HTTPError
	if !errors.As(err, &httpErr) {
		return ErrServer.MsgErr("request failed", err)
	}
	var mapped apperrors.Error
	switch apperrors.KindFromStatus(httpErr.StatusCode) {
	case apperrors.KindValidation:
		mapped = ErrValidation
	case apperrors.KindUnauthorized:
		mapped = ErrUnauthorized
	case apperrors.KindNotFound:
		mapped = ErrNotFound
	case apperrors.KindConflict:
		mapped = ErrConflict
	default:
		mapped = ErrServer
	}
	return mapped.MsgErr(httpErr.Message, httpErr).SetStatusCode(httpErr.StatusCode)
}
