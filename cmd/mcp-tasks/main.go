// Command mcp-tasks provides an MCP server for task tracking with reminders.
//
// Tasks live in memory for the lifetime of the server. A background monitor
// checks due tasks every second and queues a reminder for each, optionally
// forwarding it to a notification platform (Telegram).
//
// Usage:
//
//	./mcp-tasks          # Start MCP server (stdio)
//	./mcp-tasks --help   # Show help
//
// Environment:
//
//	TASKDECK_CONFIG     Path to the YAML config (default: ~/.taskdeck/config.yaml)
//	TELEGRAM_BOT_TOKEN  Bot token for Telegram reminders
//	TELEGRAM_CHAT_ID    Chat that receives Telegram reminders
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/notexe/taskdeck/internal/config"
	"github.com/notexe/taskdeck/internal/notify"
	"github.com/notexe/taskdeck/internal/reminder"
	"github.com/notexe/taskdeck/internal/task"
	"github.com/notexe/taskdeck/internal/tracker"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--help", "-h":
			printHelp()
			return
		}
	}

	configPath := os.Getenv("TASKDECK_CONFIG")
	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// stdout carries the protocol; the terminal platform has nowhere to go.
	if cfg.Notify.Platform == config.PlatformTerminal {
		cfg.Notify.Platform = config.PlatformNone
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// No one to ask over stdio: "ask" denies.
	platform, err := notify.NewPlatform(cfg.Notify, os.Stderr, false, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create notification platform: %v\n", err)
		os.Exit(1)
	}

	log.SetOutput(os.Stderr)

	tr := tracker.New(platform,
		tracker.WithInterval(cfg.Monitor.Interval),
		tracker.WithToastDuration(cfg.Notify.ToastDuration),
		tracker.WithDefaultColor(task.ParseColor(cfg.UI.DefaultColor)),
	)
	tr.Start(context.Background())
	defer tr.Close()

	s := reminder.NewServer(tr)

	if err := server.ServeStdio(s.MCPServer()); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		tr.Close()
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println(`MCP Tasks Server - Task tracking with reminders via MCP protocol

USAGE:
    mcp-tasks          Start MCP server (communicates via stdio)
    mcp-tasks --help   Show this help

ENVIRONMENT:
    TASKDECK_CONFIG     Path to the YAML config file
                        Default: ~/.taskdeck/config.yaml
    TELEGRAM_BOT_TOKEN  Telegram bot token for reminders
    TELEGRAM_CHAT_ID    Telegram chat receiving reminders

TOOLS:
    add_task             Add a task (title, tags, color, due_date, due_time)
    list_tasks           List tasks (optional status filter: open, completed)
    toggle_task          Toggle a task between open and completed
    delete_task          Delete a task permanently
    get_notifications    Show reminders queued for display
    notification_status  Show notification platform and permission

Tasks are kept in memory and are lost when the server exits.

CONFIGURATION:
    Add to your MCP client configuration:
    {
      "mcpServers": {
        "tasks": {
          "command": "/path/to/mcp-tasks",
          "args": []
        }
      }
    }`)
}
