package middleware

import "github.com/gofiber/fiber/v2"

// SecurityHeaders sets the response headers every route shares. The
// widget document is framed by MCP hosts, so it may not send X-Frame-Options.
func SecurityHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-XSS-Protection", "1; mode=block")
		if c.Path() != "/widget" {
			c.Set("X-Frame-Options", "DENY")
		}
		return c.Next()
	}
}
