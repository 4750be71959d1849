package identity

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/modelcontextprotocol/go-sdk/auth"
)

const identityKey = "identity"

var errVerifierClosed = errors.New("jwks verifier closed")

var acceptedAlgs = []string{"RS256", "RS384", "RS512", "ES256", "ES384"}

// JWKSVerifier verifies bearer tokens against the issuer's remote key set.
// The key set is fetched on first use and refreshed in the background.
type JWKSVerifier struct {
	issuer   string
	audience string
	jwksURL  string
	client   *http.Client

	mu     sync.Mutex
	jwks   *keyfunc.JWKS
	closed bool
}

func NewJWKSVerifier(cfg *config.Config) *JWKSVerifier {
	return &JWKSVerifier{
		issuer:   cfg.OAuthIssuer,
		audience: cfg.OAuthAudience,
		jwksURL:  cfg.OAuthJWKSURL,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// VerifyToken has the shape of auth.TokenVerifier.
func (v *JWKSVerifier) VerifyToken(ctx context.Context, token string, _ *http.Request) (*auth.TokenInfo, error) {
	if v.issuer == "" || v.audience == "" || v.jwksURL == "" {
		return nil, misconfigured("oauth issuer, audience and key set url must be configured", nil)
	}
	if strings.TrimSpace(token) == "" {
		return nil, unauthorized("missing bearer token", nil)
	}

	jwks, err := v.keySet()
	if err != nil {
		return nil, misconfigured("failed to load signing keys", err)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, jwks.Keyfunc,
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
		jwt.WithValidMethods(acceptedAlgs),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(30*time.Second),
	)
	if err != nil || !parsed.Valid {
		return nil, unauthorized("invalid bearer token", err)
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, unauthorized("token has no subject", err)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, unauthorized("token has no expiry", err)
	}

	return &auth.TokenInfo{
		UserID:     sub,
		Scopes:     scopesFromClaims(claims),
		Expiration: exp.Time,
		Extra:      map[string]any{identityKey: identityFromClaims(sub, claims)},
	}, nil
}

// Warm fetches the key set ahead of the first verification.
func (v *JWKSVerifier) Warm() error {
	if v.jwksURL == "" {
		return misconfigured("oauth key set url must be configured", nil)
	}
	_, err := v.keySet()
	return err
}

// Close stops the background key refresh.
func (v *JWKSVerifier) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
	if v.jwks != nil {
		v.jwks.EndBackground()
		v.jwks = nil
	}
}

// keySet returns the cached key set, fetching it without holding v.mu so
// a slow endpoint does not block Close or callers that already have keys.
func (v *JWKSVerifier) keySet() (*keyfunc.JWKS, error) {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return nil, errVerifierClosed
	}
	if v.jwks != nil {
		jwks := v.jwks
		v.mu.Unlock()
		return jwks, nil
	}
	v.mu.Unlock()

	fetched, err := keyfunc.Get(v.jwksURL, keyfunc.Options{
		Client:            v.client,
		RefreshInterval:   time.Hour,
		RefreshRateLimit:  5 * time.Minute,
		RefreshTimeout:    10 * time.Second,
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			slog.Warn("jwks refresh failed", "url", v.jwksURL, "error", err)
		},
	})
	if err != nil {
		return nil, err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	switch {
	case v.closed:
		fetched.EndBackground()
		return nil, errVerifierClosed
	case v.jwks != nil:
		// Lost a concurrent first fetch.
		fetched.EndBackground()
		return v.jwks, nil
	}
	v.jwks = fetched
	return fetched, nil
}

func scopesFromClaims(claims jwt.MapClaims) []string {
	switch raw := claims["scope"].(type) {
	case string:
		return strings.Fields(raw)
	}
	var scopes []string
	if raw, ok := claims["scp"].([]any); ok {
		for _, s := range raw {
			if str, ok := s.(string); ok && str != "" {
				scopes = append(scopes, str)
			}
		}
	}
	return scopes
}

// identityFromClaims derives the candidate handle from the most
// username-like claim available.
func identityFromClaims(sub string, claims jwt.MapClaims) Identity {
	candidate := DefaultHandle
	switch {
	case claimString(claims, "preferred_username") != "":
		candidate = claimString(claims, "preferred_username")
	case claimString(claims, "nickname") != "":
		candidate = claimString(claims, "nickname")
	case emailLocalPart(claimString(claims, "email")) != "":
		candidate = emailLocalPart(claimString(claims, "email"))
	case claimString(claims, "name") != "":
		candidate = claimString(claims, "name")
	}

	return Identity{
		AuthProviderID: sub,
		Handle:         NormalizeHandle(candidate),
		DisplayName:    optional(claimString(claims, "name")),
		AvatarURL:      optional(claimString(claims, "picture")),
	}
}

func claimString(claims jwt.MapClaims, key string) string {
	s, _ := claims[key].(string)
	return strings.TrimSpace(s)
}

func emailLocalPart(email string) string {
	local, _, found := strings.Cut(email, "@")
	if !found {
		return ""
	}
	return strings.TrimSpace(local)
}
