package identity

import (
	"context"
)

// TokenResolver reads the identity that JWKSVerifier attached to the
// verified token.
type TokenResolver struct{}

func (TokenResolver) Resolve(_ context.Context, creds Credentials) (Identity, error) {
	if creds.Token == nil {
		return Identity{}, unauthorized("missing bearer token", nil)
	}
	if id, ok := creds.Token.Extra[identityKey].(Identity); ok && id.AuthProviderID != "" {
		return id, nil
	}
	if creds.Token.UserID == "" {
		return Identity{}, unauthorized("token has no subject", nil)
	}
	return Identity{AuthProviderID: creds.Token.UserID, Handle: DefaultHandle}, nil
}
