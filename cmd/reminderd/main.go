// Command reminderd hosts the reminder service behind an MCP server.
//
// The chat layer connects over stdio and drives the set_reminder /
// list_reminders / delete_reminder / pause_reminder / resume_reminder
// tools; reminderd keeps the timers running and sends due reminders
// through the configured transport.
//
// Usage:
//
//	./reminderd            # Start MCP server (stdio)
//	./reminderd --help     # Show help
//
// Environment:
//
//	REMINDBOT_CONFIG              Path to config.yaml (default: ~/.remind-bot/config.yaml)
//	REMINDBOT_DATA_FILE           Path to the reminders JSON file
//	REMINDBOT_TELEGRAM_BOT_TOKEN  Telegram bot token (enables Telegram delivery)
//	REMINDBOT_TELEGRAM_CHAT_ID    Default Telegram chat id
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/notexe/remind-bot/internal/config"
	"github.com/notexe/remind-bot/internal/delivery"
	"github.com/notexe/remind-bot/internal/reminder"
	"github.com/notexe/remind-bot/internal/timeparse"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--help", "-h":
			printHelp()
			return
		}
	}

	configPath := os.Getenv("REMINDBOT_CONFIG")
	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.EnsureDataDir(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create data directory: %v\n", err)
		os.Exit(1)
	}

	// Stdout is the MCP transport, so logs go to stderr.
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	store := reminder.NewStore(cfg.DataFile, logger)
	store.Load()

	var deliverer reminder.Deliverer
	if cfg.Telegram.Enabled {
		deliverer = delivery.NewTelegram(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	} else {
		deliverer = delivery.NewConsole(os.Stderr)
	}

	svc := reminder.NewService(store, timeparse.Resolve, deliverer, logger)
	defer svc.Close()
	svc.Restore()

	srv := reminder.NewServer(svc, reminder.Identity{
		Owner:      cfg.Defaults.Owner,
		Target:     cfg.Defaults.Target,
		TargetKind: reminder.TargetKind(cfg.Defaults.TargetKind),
	})

	if err := server.ServeStdio(srv.MCPServer()); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println(`remind-bot MCP server - natural-language reminders

USAGE:
    reminderd          Start MCP server (communicates via stdio)
    reminderd --help   Show this help

ENVIRONMENT:
    REMINDBOT_CONFIG              Path to config.yaml
                                  Default: ~/.remind-bot/config.yaml
    REMINDBOT_DATA_FILE           Path to the reminders JSON file
    REMINDBOT_TELEGRAM_BOT_TOKEN  Telegram bot token (enables Telegram delivery)
    REMINDBOT_TELEGRAM_CHAT_ID    Default Telegram chat id

TOOLS:
    set_reminder      Set a reminder from a natural-language phrase
                      (30分钟后, 明天下午3点, 周六21点, 2025-06-08 15:30)
    list_reminders    List the owner's reminders
    delete_reminder   Delete a reminder permanently
    pause_reminder    Pause a reminder without deleting it
    resume_reminder   Resume a paused reminder

CONFIGURATION:
    Add to the chat client's mcp.json:
    {
      "mcpServers": {
        "remind-bot": {
          "command": "/path/to/reminderd",
          "args": []
        }
      }
    }`)
}
