package auth

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Account is the server-side record for a registered user, as returned by the
// user endpoint. It carries more than the login identity (notably the email)
// and is fetched on demand rather than cached.
type Account struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	LastName  string `json:"lastName"`
	FirstName string `json:"firstName"`
	Admin     bool   `json:"admin"`
}

// Account fetches the account record for the given user id.
func (c *Client) Account(ctx context.Context, userID int64) (Account, error) {
	body, err := c.client.GetResource(ctx, userPath(userID))
	if err != nil {
		return Account{}, mapAuthError(err)
	}
	var acct Account
	if err := json.Unmarshal(body, &acct); err != nil {
		return Account{}, ErrServer.MsgErr("failed to decode account", err)
	}
	return acct, nil
}

// DeleteAccount removes the account for the given user id. When the deleted
// account is the logged-in one, the identity store is cleared: the token is
// dead and every subscriber must see the logged-out transition.
func (c *Client) DeleteAccount(ctx context.Context, userID int64) error {
	if err := c.client.DeleteResource(ctx, userPath(userID)); err != nil {
		return mapAuthError(err)
	}
	if ident, ok := c.store.Current(); ok && ident.ID == userID {
		c.store.LogOut()
		log.Debug().Int64("user_id", userID).Msg("account deleted, logged out")
	}
	return nil
}

func userPath(userID int64) string {
	return fmt.Sprintf("user/%d", userID)
}
