package routes

import (
	"net/http"
	"time"

	"github.com/ahmetcoskunkizilkaya/listshare/internal/handlers"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// Handlers bundles everything the route table mounts.
type Handlers struct {
	Health    *handlers.HealthHandler
	Discovery *handlers.DiscoveryHandler
	Widget    *handlers.WidgetHandler
	MCP       http.Handler
	Metrics   http.Handler
}

func Setup(app *fiber.App, h Handlers) {
	app.Get("/health", h.Health.Check)

	// Protected resource metadata, at the root and at the resource-suffixed path.
	app.Get("/.well-known/oauth-protected-resource", h.Discovery.ProtectedResource)
	app.Get("/.well-known/oauth-protected-resource/mcp", h.Discovery.ProtectedResource)

	app.Get("/widget", h.Widget.Document)
	app.Get("/widget.json", h.Widget.Descriptor)

	if h.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(h.Metrics))
	}

	// MCP rate limiter: 120 req/min per IP
	app.All("/mcp", limiter.New(limiter.Config{
		Max:               120,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}), forwardRequestID, adaptor.HTTPHandler(h.MCP))
}

// forwardRequestID copies the id assigned by the requestid middleware onto
// the request so net/http handlers behind the adaptor can log it.
func forwardRequestID(c *fiber.Ctx) error {
	if rid := c.GetRespHeader(fiber.HeaderXRequestID); rid != "" {
		c.Request().Header.Set(fiber.HeaderXRequestID, rid)
	}
	return c.Next()
}
