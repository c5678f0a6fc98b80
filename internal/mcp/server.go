// Package mcp exposes the workout store to AI assistants over the Model
// Context Protocol, mirroring the REST API's operations as tools.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("ProgressPath", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("Bodyweight progression tracker. List progressions, log workouts against the current exercise of a progression, change or reset levels, and query streak and completion statistics."),
	)

	h := &handlers{ds: ds, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolListProgressions, Handler: h.listProgressions},
		server.ServerTool{Tool: toolGetProgression, Handler: h.getProgression},
		server.ServerTool{Tool: toolLogWorkout, Handler: h.logWorkout},
		server.ServerTool{Tool: toolChangeLevel, Handler: h.changeLevel},
		server.ServerTool{Tool: toolResetProgression, Handler: h.resetProgression},
		server.ServerTool{Tool: toolGetStats, Handler: h.getStats},
		server.ServerTool{Tool: toolGetProgressionStats, Handler: h.getProgressionStats},
		server.ServerTool{Tool: toolGetRecentWorkouts, Handler: h.getRecentWorkouts},
	)

	s.AddResources(
		server.ServerResource{Resource: resDashboard, Handler: h.dashboard},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

var resDashboard = mcp.NewResource(
	"progresspath://dashboard",
	"Dashboard",
	mcp.WithResourceDescription("All progressions with current levels, plus overall workout statistics and streak"),
	mcp.WithMIMEType("application/json"),
)
