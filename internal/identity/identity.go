// Package identity turns the credentials attached to an MCP request into
// the external identity of the caller.
package identity

import (
	"context"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/ahmetcoskunkizilkaya/listshare/internal/config"
	"github.com/modelcontextprotocol/go-sdk/auth"
)

const (
	DefaultHandle  = "user"
	MaxHandleRunes = 24

	// HandleSuffixLen is the length of the _NNNN collision suffix.
	HandleSuffixLen = 5
)

// Identity is the caller as seen by the auth layer. AuthProviderID is
// stable across requests; Handle is only a candidate and may be adjusted
// when the user record is written.
type Identity struct {
	AuthProviderID string
	Handle         string
	DisplayName    *string
	AvatarURL      *string
}

// Credentials carries whatever the transport attached to a request.
type Credentials struct {
	Header http.Header
	Token  *auth.TokenInfo
}

type Resolver interface {
	Resolve(ctx context.Context, creds Credentials) (Identity, error)
}

// NewResolver picks the resolver for the configured auth mode.
func NewResolver(cfg *config.Config) Resolver {
	if cfg.AuthMode == config.AuthModeOAuth {
		return TokenResolver{}
	}
	return NewHeaderResolver(cfg.DevUserID, cfg.DevHandle)
}

// NormalizeHandle lower-cases s and reduces it to [a-z0-9_], collapsing
// underscore runs and trimming them from both ends.
func NormalizeHandle(s string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	out := strings.Trim(b.String(), "_")
	if utf8.RuneCountInString(out) > MaxHandleRunes {
		out = strings.TrimRight(out[:MaxHandleRunes], "_")
	}
	if out == "" {
		return DefaultHandle
	}
	return out
}

// LookupHandle turns user input such as "@Ann" into the stored form. It
// does not truncate, so suffixed handles longer than MaxHandleRunes stay
// reachable.
func LookupHandle(s string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "@"))
}

// SuffixStem shortens a normalized handle so that base + "_NNNN" still
// fits in MaxHandleRunes.
func SuffixStem(base string) string {
	limit := MaxHandleRunes - HandleSuffixLen
	if len(base) <= limit {
		return base
	}
	stem := strings.TrimRight(base[:limit], "_")
	if stem == "" {
		return DefaultHandle
	}
	return stem
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
