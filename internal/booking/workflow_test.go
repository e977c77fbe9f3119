package booking

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiokit/studiokit/internal/auth"
	"github.com/studiokit/studiokit/internal/common/apperrors"
	"github.com/studiokit/studiokit/internal/common/httpclient"
	"github.com/studiokit/studiokit/internal/identity"
	"github.com/studiokit/studiokit/internal/studiotest"
)

// storeConfig feeds the HTTP client credentials from the identity store, so
// requests pick up whatever identity is current at dispatch time.
type storeConfig struct {
	serverURL string
	store     *identity.Store
}

func (c *storeConfig) GetServerURL() string { return c.serverURL }

func (c *storeConfig) GetToken() string {
	ident, ok := c.store.Current()
	if !ok {
		return ""
	}
	return ident.Token
}

func (c *storeConfig) GetTokenType() string {
	ident, ok := c.store.Current()
	if !ok {
		return ""
	}
	return ident.TokenType
}

type harness struct {
	workflow *Workflow
	auth     *auth.Client
	server   *studiotest.Server
	store    *identity.Store
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	server := studiotest.NewServer()
	server.MountHandlers()
	ts := httptest.NewServer(server.Router)
	t.Cleanup(ts.Close)

	server.SeedUser("admin@studio.test", "admin-pass", "Ada", "Admin", true)
	server.SeedUser("member@studio.test", "member-pass", "Mia", "Member", false)

	store := identity.NewStore()
	client := httpclient.NewClient(&storeConfig{serverURL: ts.URL, store: store})

	return &harness{
		workflow: NewWorkflow(client, store),
		auth:     auth.NewClient(client, store),
		server:   server,
		store:    store,
	}
}

func (h *harness) loginAdmin(t *testing.T) identity.Identity {
	t.Helper()
	ident, err := h.auth.Login(context.Background(), auth.LoginRequest{
		Email:    "admin@studio.test",
		Password: "admin-pass",
	})
	require.NoError(t, err)
	require.True(t, ident.Admin)
	return ident
}

func (h *harness) loginMember(t *testing.T) identity.Identity {
	t.Helper()
	ident, err := h.auth.Login(context.Background(), auth.LoginRequest{
		Email:    "member@studio.test",
		Password: "member-pass",
	})
	require.NoError(t, err)
	require.False(t, ident.Admin)
	return ident
}

func validDraft() SessionDraft {
	return SessionDraft{
		Name:        "Yoga",
		Description: "desc",
		Date:        "2025-01-01",
		TeacherID:   5,
	}
}

func TestList(t *testing.T) {
	h := newHarness(t)
	h.loginMember(t)

	h.server.SeedSession("Morning Flow", "sun salutations", "2025-02-01", 3)
	h.server.SeedSession("Evening Stretch", "wind down", "2025-02-02", 4)

	sessions, err := h.workflow.List(context.Background())
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "Morning Flow", sessions[0].Name)
	assert.Equal(t, "Evening Stretch", sessions[1].Name)
	assert.NotNil(t, sessions[0].Users)
}

func TestListRequiresAuthentication(t *testing.T) {
	h := newHarness(t)

	_, err := h.workflow.List(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.GetKind(err))
}

func TestGetNotFound(t *testing.T) {
	h := newHarness(t)
	h.loginMember(t)

	_, err := h.workflow.Get(context.Background(), 42)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, apperrors.KindNotFound, apperrors.GetKind(err))
}

func TestCreateRoundTrip(t *testing.T) {
	h := newHarness(t)
	h.loginAdmin(t)

	draft := validDraft()
	created, err := h.workflow.Create(context.Background(), draft)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, []int64{}, created.Users)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := h.workflow.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, draft.Name, got.Name)
	assert.Equal(t, draft.Description, got.Description)
	assert.Equal(t, draft.Date, got.Date)
	assert.Equal(t, draft.TeacherID, got.TeacherID)
}

func TestCreateValidationSkipsDispatch(t *testing.T) {
	h := newHarness(t)
	h.loginAdmin(t)

	before := h.server.RequestCount()

	tests := []struct {
		name  string
		draft SessionDraft
	}{
		{"empty name", SessionDraft{Description: "desc", Date: "2025-01-01", TeacherID: 5}},
		{"empty description", SessionDraft{Name: "Yoga", Date: "2025-01-01", TeacherID: 5}},
		{"missing teacher", SessionDraft{Name: "Yoga", Description: "desc", Date: "2025-01-01"}},
		{"unparseable date", SessionDraft{Name: "Yoga", Description: "desc", Date: "next tuesday", TeacherID: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.workflow.Create(context.Background(), tt.draft)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Equal(t, apperrors.KindValidation, apperrors.GetKind(err))
		})
	}

	assert.Equal(t, before, h.server.RequestCount(), "validation failures must not reach the backend")
}

func TestCreateAcceptsRFC3339Date(t *testing.T) {
	h := newHarness(t)
	h.loginAdmin(t)

	draft := validDraft()
	draft.Date = "2025-01-01T09:00:00Z"
	created, err := h.workflow.Create(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, draft.Date, created.Date)
}

func TestUpdateRoundTrip(t *testing.T) {
	h := newHarness(t)
	h.loginAdmin(t)

	id := h.server.SeedSession("Yoga", "desc", "2025-01-01", 5)

	draft := SessionDraft{
		Name:        "Hot Yoga",
		Description: "bring water",
		Date:        "2025-03-01",
		TeacherID:   7,
	}
	updated, err := h.workflow.Update(context.Background(), id, draft)
	require.NoError(t, err)
	assert.Equal(t, id, updated.ID)

	got, err := h.workflow.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Hot Yoga", got.Name)
	assert.Equal(t, "bring water", got.Description)
	assert.Equal(t, "2025-03-01", got.Date)
	assert.Equal(t, int64(7), got.TeacherID)
}

func TestUpdateNotFound(t *testing.T) {
	h := newHarness(t)
	h.loginAdmin(t)

	_, err := h.workflow.Update(context.Background(), 42, validDraft())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	h := newHarness(t)
	h.loginAdmin(t)

	id := h.server.SeedSession("Yoga", "desc", "2025-01-01", 5)
	require.NoError(t, h.workflow.Delete(context.Background(), id))

	_, err := h.workflow.Get(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteUnprivilegedSurfacesUnauthorized(t *testing.T) {
	h := newHarness(t)
	h.loginMember(t)

	id := h.server.SeedSession("Yoga", "desc", "2025-01-01", 5)

	// the call is dispatched, the backend answers 403, no local override
	err := h.workflow.Delete(context.Background(), id)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.GetKind(err))

	// no state change server-side
	_, err = h.workflow.Get(context.Background(), id)
	assert.NoError(t, err)
}

func TestJoinIdempotent(t *testing.T) {
	h := newHarness(t)
	ident := h.loginMember(t)

	id := h.server.SeedSession("Yoga", "desc", "2025-01-01", 5)

	before := h.server.RequestCount()
	require.NoError(t, h.workflow.Join(context.Background(), id, ident.ID))
	require.NoError(t, h.workflow.Join(context.Background(), id, ident.ID))
	// no client-side suppression: both calls reach the backend
	assert.Equal(t, before+2, h.server.RequestCount())

	got, err := h.workflow.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, []int64{ident.ID}, got.Users)
}

func TestJoinRosterOrderStable(t *testing.T) {
	h := newHarness(t)
	h.loginMember(t)

	id := h.server.SeedSession("Yoga", "desc", "2025-01-01", 5)

	require.NoError(t, h.workflow.Join(context.Background(), id, 30))
	require.NoError(t, h.workflow.Join(context.Background(), id, 10))
	require.NoError(t, h.workflow.Join(context.Background(), id, 20))
	require.NoError(t, h.workflow.Join(context.Background(), id, 10))

	got, err := h.workflow.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, []int64{30, 10, 20}, got.Users)
}

func TestJoinUnknownSession(t *testing.T) {
	h := newHarness(t)
	ident := h.loginMember(t)

	err := h.workflow.Join(context.Background(), 42, ident.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLeave(t *testing.T) {
	h := newHarness(t)
	ident := h.loginMember(t)

	id := h.server.SeedSession("Yoga", "desc", "2025-01-01", 5)
	require.NoError(t, h.workflow.Join(context.Background(), id, ident.ID))
	require.NoError(t, h.workflow.Leave(context.Background(), id, ident.ID))

	got, err := h.workflow.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Empty(t, got.Users)
}

func TestLeaveNonMemberAccepted(t *testing.T) {
	h := newHarness(t)
	ident := h.loginMember(t)

	id := h.server.SeedSession("Yoga", "desc", "2025-01-01", 5)

	// backend accepts the no-op leave; treated as plain success
	assert.NoError(t, h.workflow.Leave(context.Background(), id, ident.ID))
}

func TestLeaveNonMemberRejectedIsNonFatal(t *testing.T) {
	// the backend rejects a leave for a non-member with 400
	h := newHarness(t)
	ident := h.loginMember(t)
	h.server.StrictLeave = true

	id := h.server.SeedSession("Yoga", "desc", "2025-01-01", 5)

	err := h.workflow.Leave(context.Background(), id, ident.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotParticipant)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLeaveNonMemberLegacy404IsNonFatal(t *testing.T) {
	// older deployments answer the same rejection with 404
	h := newHarness(t)
	ident := h.loginMember(t)
	h.server.LegacyLeave = true

	id := h.server.SeedSession("Yoga", "desc", "2025-01-01", 5)

	err := h.workflow.Leave(context.Background(), id, ident.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotParticipant)
}

func TestJoinRepeatRejectedIsNonFatal(t *testing.T) {
	// a strict backend rejects the duplicate join with 400; the roster is
	// already in the requested state, so the error is the non-fatal
	// already-participant one
	h := newHarness(t)
	ident := h.loginMember(t)
	h.server.StrictJoin = true

	id := h.server.SeedSession("Yoga", "desc", "2025-01-01", 5)

	before := h.server.RequestCount()
	require.NoError(t, h.workflow.Join(context.Background(), id, ident.ID))

	err := h.workflow.Join(context.Background(), id, ident.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAlreadyParticipant)
	assert.ErrorIs(t, err, ErrConflict)
	// both calls reach the backend, no client-side suppression
	assert.Equal(t, before+2, h.server.RequestCount())

	got, err := h.workflow.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, []int64{ident.ID}, got.Users)
}

func TestTeachers(t *testing.T) {
	h := newHarness(t)
	h.loginMember(t)

	h.server.SeedTeacher("Delahaye", "Margot")
	h.server.SeedTeacher("Thiercelin", "Hélène")

	teachers, err := h.workflow.Teachers(context.Background())
	require.NoError(t, err)
	require.Len(t, teachers, 2)
	assert.Equal(t, "Margot Delahaye", teachers[0].DisplayName())
	assert.Equal(t, "Hélène Thiercelin", teachers[1].DisplayName())
}

func TestTeacherDetail(t *testing.T) {
	h := newHarness(t)
	h.loginMember(t)

	id := h.server.SeedTeacher("Delahaye", "Margot")

	teacher, err := h.workflow.Teacher(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, teacher.ID)
	assert.Equal(t, "Margot", teacher.FirstName)
	assert.Equal(t, "Delahaye", teacher.LastName)
}

func TestTeacherNotFound(t *testing.T) {
	h := newHarness(t)
	h.loginMember(t)

	_, err := h.workflow.Teacher(context.Background(), 42)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCanManage(t *testing.T) {
	h := newHarness(t)
	assert.False(t, h.workflow.CanManage())

	h.loginMember(t)
	assert.False(t, h.workflow.CanManage())

	h.loginAdmin(t)
	assert.True(t, h.workflow.CanManage())

	h.store.LogOut()
	assert.False(t, h.workflow.CanManage())
}

// The in-process recorder client must behave identically to the network
// client; run the create/get round trip through it as well.
func TestWorkflowWithInProcessClient(t *testing.T) {
	server := studiotest.NewServer()
	server.MountHandlers()
	server.SeedUser("admin@studio.test", "admin-pass", "Ada", "Admin", true)

	store := identity.NewStore()
	cfg := &storeConfig{serverURL: "http://studiotest", store: store}
	client := httpclient.NewTestClient(cfg, server)

	authClient := auth.NewClient(client, store)
	_, err := authClient.Login(context.Background(), auth.LoginRequest{
		Email:    "admin@studio.test",
		Password: "admin-pass",
	})
	require.NoError(t, err)

	workflow := NewWorkflow(client, store)
	created, err := workflow.Create(context.Background(), validDraft())
	require.NoError(t, err)

	got, err := workflow.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Yoga", got.Name)
}

func TestMapHTTPErrorKinds(t *testing.T) {
	tests := []struct {
		status int
		target error
		kind   apperrors.Kind
	}{
		{400, ErrValidation, apperrors.KindValidation},
		{401, ErrUnauthorized, apperrors.KindUnauthorized},
		{403, ErrUnauthorized, apperrors.KindUnauthorized},
		{404, ErrNotFound, apperrors.KindNotFound},
		{409, ErrConflict, apperrors.KindConflict},
		{500, ErrServer, apperrors.KindServer},
		{503, ErrServer, apperrors.KindServer},
		{0, ErrServer, apperrors.KindServer}, // transport failure
	}
	for _, tt := range tests {
		err := mapHTTPError(&httpclient.HTTPError{StatusCode: tt.status, Message: "boom"})
		assert.ErrorIs(t, err, tt.target, "status %d", tt.status)
		assert.Equal(t, tt.kind, apperrors.GetKind(err), "status %d", tt.status)
	}
}
