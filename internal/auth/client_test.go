package auth

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiokit/studiokit/internal/common/apperrors"
	"github.com/studiokit/studiokit/internal/common/httpclient"
	"github.com/studiokit/studiokit/internal/identity"
	"github.com/studiokit/studiokit/internal/studiotest"
)

type staticConfig struct {
	serverURL string
	store     *identity.Store
}

func (c *staticConfig) GetServerURL() string { return c.serverURL }

func (c *staticConfig) GetToken() string {
	ident, ok := c.store.Current()
	if !ok {
		return ""
	}
	return ident.Token
}

func (c *staticConfig) GetTokenType() string { return "Bearer" }

func newTestClient(t *testing.T) (*Client, *identity.Store, *studiotest.Server) {
	t.Helper()

	server := studiotest.NewServer()
	server.MountHandlers()
	ts := httptest.NewServer(server.Router)
	t.Cleanup(ts.Close)

	server.SeedUser("yogi@studio.test", "secret", "John", "Doe", false)

	store := identity.NewStore()
	client := httpclient.NewClient(&staticConfig{serverURL: ts.URL, store: store})
	return NewClient(client, store), store, server
}

func TestLogin(t *testing.T) {
	c, store, _ := newTestClient(t)

	ident, err := c.Login(context.Background(), LoginRequest{
		Email:    "yogi@studio.test",
		Password: "secret",
	})
	require.NoError(t, err)

	assert.Equal(t, "yogi@studio.test", ident.Username)
	assert.Equal(t, "John", ident.FirstName)
	assert.Equal(t, "Doe", ident.LastName)
	assert.False(t, ident.Admin)
	assert.NotEmpty(t, ident.Token)
	assert.Equal(t, "Bearer", ident.TokenType)

	// the store now holds the identity and broadcasts logged-in
	cur, ok := store.Current()
	require.True(t, ok)
	assert.Equal(t, ident, cur)
	assert.True(t, store.LoggedIn())
}

func TestLoginBadCredentials(t *testing.T) {
	c, store, _ := newTestClient(t)

	_, err := c.Login(context.Background(), LoginRequest{
		Email:    "yogi@studio.test",
		Password: "wrong",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.GetKind(err))
	assert.False(t, store.LoggedIn(), "failed login must not touch the store")
}

func TestLoginMissingFieldsSkipsDispatch(t *testing.T) {
	c, _, server := newTestClient(t)

	before := server.RequestCount()
	_, err := c.Login(context.Background(), LoginRequest{Email: "yogi@studio.test"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.Equal(t, before, server.RequestCount())
}

func TestRegisterThenLogin(t *testing.T) {
	c, store, _ := newTestClient(t)

	err := c.Register(context.Background(), RegisterRequest{
		Email:     "new@studio.test",
		FirstName: "New",
		LastName:  "User",
		Password:  "pw123456",
	})
	require.NoError(t, err)
	assert.False(t, store.LoggedIn(), "register does not log in")

	ident, err := c.Login(context.Background(), LoginRequest{
		Email:    "new@studio.test",
		Password: "pw123456",
	})
	require.NoError(t, err)
	assert.Equal(t, "New", ident.FirstName)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	c, _, _ := newTestClient(t)

	err := c.Register(context.Background(), RegisterRequest{
		Email:    "yogi@studio.test",
		Password: "pw123456",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRegistration)
	assert.Equal(t, apperrors.KindValidation, apperrors.GetKind(err))
}

func TestLogout(t *testing.T) {
	c, store, _ := newTestClient(t)

	_, err := c.Login(context.Background(), LoginRequest{
		Email:    "yogi@studio.test",
		Password: "secret",
	})
	require.NoError(t, err)

	c.Logout()
	assert.False(t, store.LoggedIn())

	// idempotent
	c.Logout()
	assert.False(t, store.LoggedIn())
}

func TestTokenExpiry(t *testing.T) {
	c, _, _ := newTestClient(t)

	ident, err := c.Login(context.Background(), LoginRequest{
		Email:    "yogi@studio.test",
		Password: "secret",
	})
	require.NoError(t, err)

	exp := TokenExpiry(ident.Token)
	require.False(t, exp.IsZero())
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), exp, time.Minute)

	assert.True(t, TokenExpiry("not-a-jwt").IsZero())
	assert.True(t, TokenExpiry("").IsZero())
}
