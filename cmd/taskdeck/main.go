package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/notexe/taskdeck/internal/config"
	"github.com/notexe/taskdeck/internal/notify"
	"github.com/notexe/taskdeck/internal/repl"
	"github.com/notexe/taskdeck/internal/task"
	"github.com/notexe/taskdeck/internal/tracker"
)

func main() {
	configPath := flag.String("config", config.GetDefaultConfigPath(), "Path to configuration file")
	platform := flag.String("notify", "", "Notification platform (terminal, telegram, none)")
	permission := flag.String("permission", "", "Notification permission policy (ask, granted, denied)")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	debug := flag.Bool("debug", false, "Log reminder activity to stderr")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Apply CLI flag overrides
	if *platform != "" {
		cfg.Notify.Platform = strings.ToLower(*platform)
	}
	if *permission != "" {
		cfg.Notify.Permission = strings.ToLower(*permission)
	}
	if *noColor {
		cfg.UI.ColoredOutput = false
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	if !*debug {
		log.SetOutput(io.Discard)
	}

	// The REPL does not exist yet when the platform is built; permission is
	// only asked for once a task with a due time is added.
	var replInstance *repl.REPL
	ask := func(ctx context.Context, question string) (bool, bool) {
		if replInstance == nil {
			return false, false
		}
		return replInstance.Confirm(ctx, question)
	}

	platformInstance, err := notify.NewPlatform(cfg.Notify, os.Stdout, cfg.UI.ColoredOutput, ask)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating notification platform: %v\n", err)
		os.Exit(1)
	}

	tr := tracker.New(platformInstance,
		tracker.WithInterval(cfg.Monitor.Interval),
		tracker.WithToastDuration(cfg.Notify.ToastDuration),
		tracker.WithDefaultColor(task.ParseColor(cfg.UI.DefaultColor)),
	)

	replInstance, err = repl.NewREPL(tr, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating REPL: %v\n", err)
		os.Exit(1)
	}

	if term, ok := platformInstance.(*notify.Terminal); ok {
		term.SetOutput(replInstance.Output())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tr.Start(ctx)
	defer tr.Close()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nInterrupted.")
		cancel()
		replInstance.Stop()
	}()

	if err := replInstance.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		tr.Close()
		os.Exit(1)
	}
}
