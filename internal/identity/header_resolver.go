package identity

import (
	"context"
	"strings"
)

const (
	HeaderDevUserID      = "X-Dev-User-Id"
	HeaderDevHandle      = "X-Dev-Handle"
	HeaderDevDisplayName = "X-Dev-Display-Name"
	HeaderDevAvatarURL   = "X-Dev-Avatar-Url"
)

// HeaderResolver trusts caller-supplied headers. Only for local development.
type HeaderResolver struct {
	defaultUserID string
	defaultHandle string
}

func NewHeaderResolver(defaultUserID, defaultHandle string) HeaderResolver {
	return HeaderResolver{defaultUserID: defaultUserID, defaultHandle: defaultHandle}
}

func (r HeaderResolver) Resolve(_ context.Context, creds Credentials) (Identity, error) {
	userID := strings.TrimSpace(creds.Header.Get(HeaderDevUserID))
	if userID == "" {
		userID = r.defaultUserID
	}
	if userID == "" {
		return Identity{}, misconfigured("no development user configured", nil)
	}

	handle := strings.TrimSpace(creds.Header.Get(HeaderDevHandle))
	if handle == "" {
		handle = r.defaultHandle
	}
	if handle == "" {
		handle = userID
	}

	return Identity{
		AuthProviderID: "dev:" + userID,
		Handle:         NormalizeHandle(handle),
		DisplayName:    optional(creds.Header.Get(HeaderDevDisplayName)),
		AvatarURL:      optional(creds.Header.Get(HeaderDevAvatarURL)),
	}, nil
}
