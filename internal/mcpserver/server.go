// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Wunjo's weekly-note commands for LLM integration via
// stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/wunjo/internal/dateformat"
	"github.com/starford/wunjo/internal/storage"
	"github.com/starford/wunjo/internal/week"
	"github.com/starford/wunjo/internal/weekly"
)

// anchorDateLayout is the format accepted for explicit anchor dates.
const anchorDateLayout = "YYYY-MM-DD"

// Server wraps the MCP server with Wunjo tools.
type Server struct {
	mcp    *server.MCPServer
	store  storage.Provider
	weekly *weekly.Service
	now    func() time.Time
}

// New creates a new MCP server with all Wunjo tools registered.
func New(store storage.Provider, svc *weekly.Service) *Server {
	s := &Server{store: store, weekly: svc, now: time.Now}

	s.mcp = server.NewMCPServer(
		"Wunjo",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("open_weekly_note",
		mcp.WithDescription("Open (or create) the weekly note for a date. "+
			"New notes are seeded from the configured template with weekday "+
			"placeholders resolved."),
		mcp.WithString("date", mcp.Description("Anchor date as YYYY-MM-DD (defaults to today)")),
	), s.openWeeklyNote)

	s.mcp.AddTool(mcp.NewTool("open_next_weekly_note",
		mcp.WithDescription("Open (or create) next week's note relative to a date."),
		mcp.WithString("date", mcp.Description("Anchor date as YYYY-MM-DD (defaults to today)")),
	), s.openNextWeeklyNote)

	s.mcp.AddTool(mcp.NewTool("read_note",
		mcp.WithDescription("Read the full content of a Markdown note."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Relative path to the note (e.g. weekly/2024-W10.md)")),
	), s.readNote)

	s.mcp.AddTool(mcp.NewTool("list_notes",
		mcp.WithDescription("List all notes or notes in a specific folder."),
		mcp.WithString("folder", mcp.Description("Optional folder to list (empty for all)")),
	), s.listNotes)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// anchorFromRequest resolves the optional "date" argument to an anchor date.
func (s *Server) anchorFromRequest(req mcp.CallToolRequest) (time.Time, error) {
	raw, err := req.RequireString("date")
	if err != nil || raw == "" {
		return s.now(), nil
	}
	parsed, err := dateformat.Parse(raw, anchorDateLayout)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", raw)
	}
	return parsed, nil
}

func (s *Server) openWeeklyNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	anchor, err := s.anchorFromRequest(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, err := s.weekly.Open(ctx, anchor)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(res, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) openNextWeeklyNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	anchor, err := s.anchorFromRequest(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, err := s.weekly.Open(ctx, week.Next(anchor))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(res, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, err := s.store.Read(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", path)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) listNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	folder := ""
	if f, err := req.RequireString("folder"); err == nil {
		folder = f
	}

	metas, err := s.store.List(folder)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var paths []string
	for _, m := range metas {
		paths = append(paths, m.Path)
	}
	return mcp.NewToolResultText(strings.Join(paths, "\n")), nil
}
