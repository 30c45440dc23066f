// Command remindctl runs the reminder service with a local interactive
// prompt instead of a chat platform: due reminders print straight to
// the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/notexe/remind-bot/internal/config"
	"github.com/notexe/remind-bot/internal/delivery"
	"github.com/notexe/remind-bot/internal/reminder"
	"github.com/notexe/remind-bot/internal/repl"
	"github.com/notexe/remind-bot/internal/timeparse"
)

func main() {
	configPath := flag.String("config", config.GetDefaultConfigPath(), "Path to configuration file")
	owner := flag.String("owner", "", "Owner identity (overrides config)")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	if *owner != "" {
		cfg.Defaults.Owner = *owner
	}
	if *noColor {
		cfg.UI.ColoredOutput = false
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.EnsureDataDir(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create data directory: %v\n", err)
		os.Exit(1)
	}

	// Keep the prompt clean: only warnings and errors on screen.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	store := reminder.NewStore(cfg.DataFile, logger)
	store.Load()

	svc := reminder.NewService(store, timeparse.Resolve, delivery.NewConsole(os.Stdout), logger)
	defer svc.Close()
	svc.Restore()

	replInstance, err := repl.NewREPL(svc, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating REPL: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
		svc.Close()
		os.Exit(0)
	}()

	if err := replInstance.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
