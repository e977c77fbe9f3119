package cli

import (
	"fmt"

	"github.com/studiokit/studiokit/internal/auth"
	"github.com/studiokit/studiokit/internal/booking"
	"github.com/studiokit/studiokit/internal/common/httpclient"
	"github.com/studiokit/studiokit/internal/identity"
)

// studioClient bundles the identity store, the auth client, and the booking
// workflow for one CLI invocation. The store is seeded from the persisted
// config so a prior login carries over.
type studioClient struct {
	store    *identity.Store
	auth     *auth.Client
	workflow *booking.Workflow
}

func newStudioClient() (*studioClient, error) {
	cfg := GetConfig()
	if cfg == nil {
		return nil, fmt.Errorf("no configuration loaded")
	}

	store := identity.NewStore()
	if ident, ok := cfg.Identity(); ok {
		store.LogIn(ident)
	}

	client := httpclient.NewClient(cfg)
	return &studioClient{
		store:    store,
		auth:     auth.NewClient(client, store),
		workflow: booking.NewWorkflow(client, store),
	}, nil
}

// requireIdentity returns the current identity or an error telling the user
// to log in.
func (c *studioClient) requireIdentity() (identity.Identity, error) {
	ident, ok := c.store.Current()
	if !ok {
		return identity.Identity{}, fmt.Errorf("not logged in. Run \"studiokit login\" first")
	}
	return ident, nil
}
