package handlers

import (
	"github.com/ahmetcoskunkizilkaya/listshare/internal/config"
	"github.com/gofiber/fiber/v2"
	"github.com/modelcontextprotocol/go-sdk/oauthex"
)

// DiscoveryHandler serves the OAuth protected resource metadata that MCP
// clients fetch after a 401 from /mcp.
type DiscoveryHandler struct {
	cfg *config.Config
}

func NewDiscoveryHandler(cfg *config.Config) *DiscoveryHandler {
	return &DiscoveryHandler{cfg: cfg}
}

func (h *DiscoveryHandler) ProtectedResource(c *fiber.Ctx) error {
	meta := oauthex.ProtectedResourceMetadata{
		Resource:               h.cfg.ResourceURL(),
		ScopesSupported:        h.cfg.OAuthScopes,
		BearerMethodsSupported: []string{"header"},
		ResourceName:           "Lists",
	}
	if h.cfg.OAuthIssuer != "" {
		meta.AuthorizationServers = []string{h.cfg.OAuthIssuer}
	}
	c.Set(fiber.HeaderCacheControl, "public, max-age=3600")
	return c.JSON(meta)
}

// MetadataURL is where ProtectedResource is mounted, as advertised in
// WWW-Authenticate challenges.
func MetadataURL(cfg *config.Config) string {
	return cfg.PublicBaseURL + "/.well-known/oauth-protected-resource"
}
