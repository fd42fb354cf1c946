package mcp

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"
)

type contextKey int

const userIDKey contextKey = iota

// UserIDFromContext extracts the user ID injected by the transport layer.
// Over stdio the REST API resolves the user, so the fallback is never used
// to read another user's data.
func UserIDFromContext(ctx context.Context) int {
	if id, ok := ctx.Value(userIDKey).(int); ok {
		return id
	}
	return 1
}

// WithUserID returns a context with the given user ID.
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("LiftLog", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("LiftLog progressive overload server. List your lifts, preview this week's working weights, prefill a workout log from a template, and read the public feed. Weights are rounded to the nearest 5."),
	)

	h := &handlers{ds: ds, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolListLifts, Handler: h.listLifts},
		server.ServerTool{Tool: toolPreviewLift, Handler: h.previewLift},
		server.ServerTool{Tool: toolPrefillLog, Handler: h.prefillLog},
		server.ServerTool{Tool: toolGetFeed, Handler: h.getFeed},
	)

	s.AddResources(
		server.ServerResource{Resource: resLifts, Handler: h.liftsResource},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}
