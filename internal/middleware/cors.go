package middleware

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/listshare/internal/config"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/identity"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func CORS(cfg *config.Config) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: strings.Join([]string{
			"Origin", "Content-Type", "Authorization", "Accept",
			"Mcp-Session-Id", "Mcp-Protocol-Version", "Last-Event-ID",
			identity.HeaderDevUserID, identity.HeaderDevHandle,
			identity.HeaderDevDisplayName, identity.HeaderDevAvatarURL,
		}, ", "),
		AllowMethods:     "GET, POST, DELETE, OPTIONS",
		ExposeHeaders:    "Mcp-Session-Id, WWW-Authenticate",
		AllowCredentials: false,
	})
}
