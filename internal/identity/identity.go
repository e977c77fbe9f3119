// Package identity holds the process-wide record of the authenticated user.
// The Store is the single source of truth for "who is logged in and with what
// privileges"; every other component reads it and subscribes to its login
// state rather than tracking credentials on its own.
package identity

import "strings"

// Identity is the authenticated principal. Token and TokenType are opaque
// credentials forwarded on authenticated calls; the client never inspects
// them beyond optionally reporting the token expiry.
type Identity struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Admin     bool   `json:"admin"`
	Token     string `json:"token"`
	TokenType string `json:"type"`
}

// DisplayName returns the presentation name composed from first and last name.
// Falls back to the username when both are empty.
func (i Identity) DisplayName() string {
	name := strings.TrimSpace(i.FirstName + " " + i.LastName)
	if name == "" {
		return i.Username
	}
	return name
}
