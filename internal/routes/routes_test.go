package routes

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ahmetcoskunkizilkaya/listshare/internal/config"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/dbtest"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/dto"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/identity"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/mcp"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/store"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(t *testing.T) *fiber.App {
	t.Helper()
	return newAppWithMCP(t, nil)
}

// newAppWithMCP mounts mcpHandler at /mcp, or the real MCP server when nil.
func newAppWithMCP(t *testing.T, mcpHandler http.Handler) *fiber.App {
	t.Helper()

	t.Setenv("PUBLIC_BASE_URL", "https://lists.example.com")
	t.Setenv("OAUTH_ISSUER", "https://auth.example.com")
	cfg, err := config.FromViper(config.NewViper())
	require.NoError(t, err)

	db := dbtest.Open(t)
	m := metrics.New()
	srv := mcp.NewServer(mcp.Deps{
		Store:    store.New(db),
		Resolver: identity.NewResolver(cfg),
		Metrics:  m,
	})

	if mcpHandler == nil {
		mcpHandler = srv.Handler(nil, "")
	}

	app := fiber.New()
	app.Use(requestid.New())
	app.Use(middleware.SecurityHeaders())
	Setup(app, Handlers{
		Health:    handlers.NewHealthHandler(db),
		Discovery: handlers.NewDiscoveryHandler(cfg),
		Widget:    handlers.NewWidgetHandler(cfg),
		MCP:       mcpHandler,
		Metrics:   m.Handler(),
	})
	return app
}

func get(t *testing.T, app *fiber.App, path string) (*http.Response, []byte) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return resp, body
}

func TestHealth(t *testing.T) {
	app := newApp(t)
	resp, body := get(t, app, "/health")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var health dto.HealthResponse
	require.NoError(t, json.Unmarshal(body, &health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "ok", health.DB)
	assert.NotEmpty(t, health.Timestamp)
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
}

func TestProtectedResourceMetadata(t *testing.T) {
	app := newApp(t)
	for _, path := range []string{"/.well-known/oauth-protected-resource", "/.well-known/oauth-protected-resource/mcp"} {
		resp, body := get(t, app, path)
		require.Equal(t, http.StatusOK, resp.StatusCode, path)

		var meta map[string]any
		require.NoError(t, json.Unmarshal(body, &meta))
		assert.Equal(t, "https://lists.example.com/mcp", meta["resource"])
		assert.Equal(t, []any{"https://auth.example.com"}, meta["authorization_servers"])
		assert.Equal(t, []any{"lists.read", "lists.write"}, meta["scopes_supported"])
		assert.Equal(t, []any{"header"}, meta["bearer_methods_supported"])
	}
}

func TestWidgetRoutes(t *testing.T) {
	app := newApp(t)

	resp, body := get(t, app, "/widget")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Equal(t, mcp.WidgetHTML(), string(body))
	assert.Empty(t, resp.Header.Get("X-Frame-Options"))

	resp, body = get(t, app, "/widget.json")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var desc dto.WidgetDescriptor
	require.NoError(t, json.Unmarshal(body, &desc))
	assert.Equal(t, mcp.WidgetURI, desc.URI)
	assert.Equal(t, "https://lists.example.com/widget", desc.HTMLURL)
	assert.Equal(t, mcp.ToolNames, desc.Tools)
}

func TestMetricsExposition(t *testing.T) {
	app := newApp(t)
	resp, body := get(t, app, "/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestMCPRouteAnswersJSONRPC(t *testing.T) {
	app := newApp(t)

	body := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-06-18","capabilities":{},"clientInfo":{"name":"test","version":"0.0.1"}}}`
	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Result struct {
			ServerInfo struct {
				Name string `json:"name"`
			} `json:"serverInfo"`
		} `json:"result"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "listshare", out.Result.ServerInfo.Name)
}

func TestMCPRouteForwardsRequestID(t *testing.T) {
	var seen []string
	app := newAppWithMCP(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get(fiber.HeaderXRequestID))
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader("{}"))
	req.Header.Set(fiber.HeaderXRequestID, "req-from-client")
	resp, err := app.Test(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, "req-from-client", resp.Header.Get(fiber.HeaderXRequestID))

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader("{}")))
	require.NoError(t, err)
	_ = resp.Body.Close()
	generated := resp.Header.Get(fiber.HeaderXRequestID)
	require.NotEmpty(t, generated)

	assert.Equal(t, []string{"req-from-client", generated}, seen)
}
