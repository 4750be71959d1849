// Package mcp exposes the list services as MCP tools.
package mcp

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/ahmetcoskunkizilkaya/listshare/internal/dto"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/identity"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/models"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/services"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/store"
	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	mcpauth "github.com/modelcontextprotocol/go-sdk/auth"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	serverName    = "listshare"
	serverVersion = "1.0.0"

	headerRequestID = "X-Request-ID"
)

// Deps are the collaborators of a Server. Metrics and Logger may be nil.
type Deps struct {
	Store           *store.Store
	Resolver        identity.Resolver
	Metrics         *metrics.Metrics
	Logger          *slog.Logger
	DevToolsEnabled bool
}

type Server struct {
	store     *store.Store
	resolver  identity.Resolver
	users     *services.UserService
	lists     *services.ListService
	views     *services.ViewService
	bookmarks *services.BookmarkService
	metrics   *metrics.Metrics
	logger    *slog.Logger
	devTools  bool
}

func NewServer(deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	views := services.NewViewService(deps.Store)
	return &Server{
		store:     deps.Store,
		resolver:  deps.Resolver,
		users:     services.NewUserService(deps.Store),
		lists:     services.NewListService(deps.Store),
		views:     views,
		bookmarks: services.NewBookmarkService(deps.Store, views),
		metrics:   deps.Metrics,
		logger:    logger,
		devTools:  deps.DevToolsEnabled,
	}
}

// MCPServer builds the protocol server with every tool and the widget resource.
func (s *Server) MCPServer() *mcpsdk.Server {
	srv := mcpsdk.NewServer(&mcpsdk.Implementation{
		Name:    serverName,
		Version: serverVersion,
	}, &mcpsdk.ServerOptions{
		Instructions: serverInstructions,
	})
	s.registerResources(srv)
	s.registerTools(srv)
	return srv
}

// Handler serves MCP over streamable HTTP. Sessions are not kept: every
// request carries its own credentials and is answered with plain JSON.
// verifier is nil in trusted-header mode.
func (s *Server) Handler(verifier mcpauth.TokenVerifier, resourceMetadataURL string) http.Handler {
	srv := s.MCPServer()
	var h http.Handler = mcpsdk.NewStreamableHTTPHandler(func(*http.Request) *mcpsdk.Server {
		return srv
	}, &mcpsdk.StreamableHTTPOptions{
		Stateless:    true,
		JSONResponse: true,
	})
	if verifier != nil {
		h = mcpauth.RequireBearerToken(verifier, &mcpauth.RequireBearerTokenOptions{
			ResourceMetadataURL: resourceMetadataURL,
		})(h)
	}
	return h
}

// toolResult is the structured content of every successful call.
type toolResult struct {
	Message       string     `json:"message"`
	View          dto.View   `json:"view"`
	CreatedItemID *uuid.UUID `json:"created_item_id,omitempty"`
}

type viewerHandler[In any] func(ctx context.Context, viewer *models.User, in In) (*toolResult, error)

// withViewer resolves the caller once, runs h with it, and turns errors
// into structured tool errors.
func withViewer[In any](s *Server, tool string, h viewerHandler[In]) mcpsdk.ToolHandlerFor[In, any] {
	return func(ctx context.Context, req *mcpsdk.CallToolRequest, in In) (*mcpsdk.CallToolResult, any, error) {
		start := time.Now()
		logger, traceID := s.requestLogger(req)
		viewer, err := s.viewer(ctx, req)
		var res *toolResult
		if err == nil {
			res, err = h(ctx, viewer, in)
		}
		elapsed := time.Since(start)

		if err != nil {
			env := classifyToolError(err)
			s.logFailure(ctx, logger, traceID, tool, viewer, env, err, elapsed)
			s.metrics.ObserveTool(tool, env.ErrorCode, elapsed)
			return nil, nil, toolError{Envelope: env}
		}

		logger.InfoContext(ctx, "tool call",
			"tool", tool,
			"user_id", viewer.ID.String(),
			"handle", viewer.Handle,
			"latency_ms", elapsed.Milliseconds(),
		)
		s.metrics.ObserveTool(tool, metrics.OutcomeOK, elapsed)
		return &mcpsdk.CallToolResult{
			Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: res.Message}},
		}, res, nil
	}
}

func (s *Server) viewer(ctx context.Context, req *mcpsdk.CallToolRequest) (*models.User, error) {
	var creds identity.Credentials
	if req != nil && req.Extra != nil {
		creds.Header = req.Extra.Header
		creds.Token = req.Extra.TokenInfo
	}
	id, err := s.resolver.Resolve(ctx, creds)
	if err != nil {
		return nil, err
	}
	return s.users.EnsureUser(ctx, id)
}

// requestLogger tags the logger with the request id forwarded by the HTTP
// layer, when there is one.
func (s *Server) requestLogger(req *mcpsdk.CallToolRequest) (*slog.Logger, string) {
	if req == nil || req.Extra == nil || req.Extra.Header == nil {
		return s.logger, ""
	}
	traceID := req.Extra.Header.Get(headerRequestID)
	if traceID == "" {
		return s.logger, ""
	}
	return s.logger.With("trace_id", traceID), traceID
}

func (s *Server) logFailure(ctx context.Context, logger *slog.Logger, traceID, tool string, viewer *models.User, env toolErrorEnvelope, err error, elapsed time.Duration) {
	attrs := []any{
		"tool", tool,
		"error_code", env.ErrorCode,
		"error", err.Error(),
		"latency_ms", elapsed.Milliseconds(),
	}
	if viewer != nil {
		attrs = append(attrs, "user_id", viewer.ID.String(), "handle", viewer.Handle)
	}
	if isClientError(env) {
		logger.WarnContext(ctx, "tool call rejected", attrs...)
		return
	}
	logger.ErrorContext(ctx, "tool call failed", attrs...)
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("tool", tool)
		if traceID != "" {
			scope.SetTag("trace_id", traceID)
		}
		if viewer != nil {
			scope.SetUser(sentry.User{ID: viewer.ID.String(), Username: viewer.Handle})
		}
		sentry.CaptureException(err)
	})
}
