package reminder

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/notexe/taskdeck/internal/notify"
	"github.com/notexe/taskdeck/internal/task"
)

const (
	serverName    = "taskdeck"
	serverVersion = "1.0.0"
)

// Tasks is the controller the MCP tools operate on.
type Tasks interface {
	Add(ctx context.Context, d task.Draft) (task.Task, bool, error)
	Toggle(id string) (task.Task, bool)
	Delete(id string) bool
	Tasks() []task.Task
	Notifications() []notify.Toast
	Permission() notify.Permission
	Platform() string
	Now() time.Time
}

// Server is the MCP server for task management.
type Server struct {
	mcpServer *server.MCPServer
	tasks     Tasks
}

// NewServer creates a new task MCP server backed by the given controller.
func NewServer(tasks Tasks) *Server {
	s := &Server{
		tasks: tasks,
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

// taskView is a task as reported to MCP clients.
type taskView struct {
	task.Task
	Overdue bool `json:"overdue"`
}

func (s *Server) registerTools() {
	// add_task
	s.mcpServer.AddTool(
		mcp.NewTool("add_task",
			mcp.WithDescription("Add a task with a title, optional comma separated tags, a color and an optional due date and time"),
			mcp.WithString("title", mcp.Required(), mcp.Description("Task title")),
			mcp.WithString("tags", mcp.Description("Comma separated tags, e.g. \"work, urgent\"")),
			mcp.WithString("color", mcp.Description("Color marker: gray, red, yellow, green, blue, purple (default: gray)")),
			mcp.WithString("due_date", mcp.Description("Due date as YYYY-MM-DD; ignored unless due_time is also set")),
			mcp.WithString("due_time", mcp.Description("Due time as HH:MM (24h); ignored unless due_date is also set")),
		),
		s.handleAddTask,
	)

	// list_tasks
	s.mcpServer.AddTool(
		mcp.NewTool("list_tasks",
			mcp.WithDescription("List tasks in insertion order, optionally filtered by status (open or completed)"),
			mcp.WithString("status", mcp.Description("Filter by status: open, completed, or empty for all")),
		),
		s.handleListTasks,
	)

	// toggle_task
	s.mcpServer.AddTool(
		mcp.NewTool("toggle_task",
			mcp.WithDescription("Toggle a task between open and completed"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Task ID")),
		),
		s.handleToggleTask,
	)

	// delete_task
	s.mcpServer.AddTool(
		mcp.NewTool("delete_task",
			mcp.WithDescription("Delete a task permanently"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Task ID")),
		),
		s.handleDeleteTask,
	)

	// get_notifications
	s.mcpServer.AddTool(
		mcp.NewTool("get_notifications",
			mcp.WithDescription("Get the reminder toasts that are currently queued for display"),
		),
		s.handleGetNotifications,
	)

	// notification_status
	s.mcpServer.AddTool(
		mcp.NewTool("notification_status",
			mcp.WithDescription("Show the notification platform and its permission state"),
		),
		s.handleNotificationStatus,
	)
}

func (s *Server) handleAddTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	draft := task.Draft{
		Title:   req.GetString("title", ""),
		Tags:    req.GetString("tags", ""),
		Color:   req.GetString("color", ""),
		DueDate: req.GetString("due_date", ""),
		DueTime: req.GetString("due_time", ""),
	}

	added, ok, err := s.tasks.Add(ctx, draft)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to add task: %v", err)), nil
	}
	if !ok {
		return mcp.NewToolResultError("title is required"), nil
	}

	output, _ := json.MarshalIndent(added, "", "  ")
	return mcp.NewToolResultText(string(output)), nil
}

func (s *Server) handleListTasks(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status := req.GetString("status", "")
	if status != "" && status != "open" && status != "completed" {
		return mcp.NewToolResultError(fmt.Sprintf("unknown status: %s (use open or completed)", status)), nil
	}

	now := s.tasks.Now()
	var views []taskView
	for _, t := range s.tasks.Tasks() {
		if status == "open" && t.Completed || status == "completed" && !t.Completed {
			continue
		}
		views = append(views, taskView{Task: t, Overdue: t.Overdue(now)})
	}

	if len(views) == 0 {
		return mcp.NewToolResultText("No tasks found."), nil
	}

	output, _ := json.MarshalIndent(views, "", "  ")
	return mcp.NewToolResultText(string(output)), nil
}

func (s *Server) handleToggleTask(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	t, ok := s.tasks.Toggle(id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("task %s not found", id)), nil
	}

	state := "open"
	if t.Completed {
		state = "completed"
	}
	return mcp.NewToolResultText(fmt.Sprintf("Task %q marked as %s.", t.Title, state)), nil
}

func (s *Server) handleDeleteTask(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	if !s.tasks.Delete(id) {
		return mcp.NewToolResultError(fmt.Sprintf("task %s not found", id)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Task %s deleted.", id)), nil
}

func (s *Server) handleGetNotifications(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	toasts := s.tasks.Notifications()
	if len(toasts) == 0 {
		return mcp.NewToolResultText("No pending notifications."), nil
	}

	output, _ := json.MarshalIndent(toasts, "", "  ")
	return mcp.NewToolResultText(string(output)), nil
}

func (s *Server) handleNotificationStatus(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(fmt.Sprintf("platform: %s\npermission: %s", s.tasks.Platform(), s.tasks.Permission())), nil
}
