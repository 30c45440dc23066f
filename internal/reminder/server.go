package reminder

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	serverName    = "remind-bot"
	serverVersion = "1.2.0"
)

// Identity is the ambient (owner, target, target kind) applied when a
// tool call does not carry its own.
type Identity struct {
	Owner      string
	Target     string
	TargetKind TargetKind
}

// Server is the MCP surface of the reminder service. The chat layer in
// front of it decides when to call which tool; this side only validates
// arguments and renders replies.
type Server struct {
	mcpServer *server.MCPServer
	handler   *CommandHandler
	svc       *Service
	identity  Identity
}

// NewServer wraps the service in an MCP server with the reminder tools
// registered.
func NewServer(svc *Service, identity Identity) *Server {
	s := &Server{
		handler:  NewCommandHandler(svc),
		svc:      svc,
		identity: identity,
	}

	s.mcpServer = server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(false),
	)

	s.registerTools()
	return s
}

// MCPServer returns the underlying MCP server for serving.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

func (s *Server) registerTools() {
	// set_reminder
	s.mcpServer.AddTool(
		mcp.NewTool("set_reminder",
			mcp.WithDescription("Set a reminder from a natural-language time description, e.g. 30分钟后 / 明天下午3点 / 周六21点"),
			mcp.WithString("content", mcp.Required(), mcp.Description("What to be reminded about")),
			mcp.WithString("time_description", mcp.Required(), mcp.Description("Natural-language time phrase")),
			mcp.WithString("repeat_type", mcp.Description("不重复 (default), 每天, 每周 or 每月")),
			mcp.WithString("owner", mcp.Description("Sender id; defaults to the configured identity")),
			mcp.WithString("target", mcp.Description("Delivery destination id; defaults to the configured identity")),
			mcp.WithString("target_kind", mcp.Description("person or group; defaults to the configured identity")),
		),
		s.handleSetReminder,
	)

	// list_reminders
	s.mcpServer.AddTool(
		mcp.NewTool("list_reminders",
			mcp.WithDescription("List the owner's reminders"),
			mcp.WithString("owner", mcp.Description("Sender id; defaults to the configured identity")),
		),
		s.handleListReminders,
	)

	// delete_reminder
	s.mcpServer.AddTool(
		mcp.NewTool("delete_reminder",
			mcp.WithDescription("Delete a reminder permanently"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Reminder id")),
			mcp.WithString("owner", mcp.Description("Sender id; defaults to the configured identity")),
		),
		s.handleDeleteReminder,
	)

	// pause_reminder
	s.mcpServer.AddTool(
		mcp.NewTool("pause_reminder",
			mcp.WithDescription("Pause a reminder without deleting it"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Reminder id")),
			mcp.WithString("owner", mcp.Description("Sender id; defaults to the configured identity")),
		),
		s.handlePauseReminder,
	)

	// resume_reminder
	s.mcpServer.AddTool(
		mcp.NewTool("resume_reminder",
			mcp.WithDescription("Resume a paused reminder; a due time already in the past stays unscheduled"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Reminder id")),
			mcp.WithString("owner", mcp.Description("Sender id; defaults to the configured identity")),
		),
		s.handleResumeReminder,
	)
}

func (s *Server) owner(req mcp.CallToolRequest) string {
	if v := req.GetString("owner", ""); v != "" {
		return v
	}
	return s.identity.Owner
}

func (s *Server) handleSetReminder(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content := req.GetString("content", "")
	phrase := req.GetString("time_description", "")
	if content == "" {
		return mcp.NewToolResultError("content is required"), nil
	}
	if phrase == "" {
		return mcp.NewToolResultError("time_description is required"), nil
	}

	target := req.GetString("target", "")
	if target == "" {
		target = s.identity.Target
	}
	kind := TargetKind(req.GetString("target_kind", ""))
	if kind == "" {
		kind = s.identity.TargetKind
	}
	rec := Recurrence(req.GetString("repeat_type", ""))

	reply := s.handler.HandleCreate(s.owner(req), target, kind, content, phrase, rec)
	return mcp.NewToolResultText(reply), nil
}

func (s *Server) handleListReminders(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	records := s.svc.List(s.owner(req))
	if len(records) == 0 {
		return mcp.NewToolResultText("📝 您当前没有任何提醒"), nil
	}

	output, _ := json.MarshalIndent(records, "", "  ")
	return mcp.NewToolResultText(string(output)), nil
}

func (s *Server) handleDeleteReminder(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}
	return mcp.NewToolResultText(s.handler.handleDelete("删除提醒"+id, s.owner(req))), nil
}

func (s *Server) handlePauseReminder(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}
	return mcp.NewToolResultText(s.handler.handleToggle("暂停提醒"+id, "暂停提醒", s.owner(req), false)), nil
}

func (s *Server) handleResumeReminder(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}
	return mcp.NewToolResultText(s.handler.handleToggle("恢复提醒"+id, "恢复提醒", s.owner(req), true)), nil
}
