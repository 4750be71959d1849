package handlers

import (
	"github.com/ahmetcoskunkizilkaya/listshare/internal/config"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/dto"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/mcp"
	"github.com/gofiber/fiber/v2"
)

type WidgetHandler struct {
	cfg *config.Config
}

func NewWidgetHandler(cfg *config.Config) *WidgetHandler {
	return &WidgetHandler{cfg: cfg}
}

// Document serves the same HTML the MCP widget resource returns, for
// hosts that load it by URL and for local previews.
func (h *WidgetHandler) Document(c *fiber.Ctx) error {
	return c.Type("html").SendString(mcp.WidgetHTML())
}

func (h *WidgetHandler) Descriptor(c *fiber.Ctx) error {
	return c.JSON(dto.WidgetDescriptor{
		URI:      mcp.WidgetURI,
		MIMEType: mcp.WidgetMIMEType,
		HTMLURL:  h.cfg.PublicBaseURL + "/widget",
		Tools:    mcp.ToolNames,
	})
}
