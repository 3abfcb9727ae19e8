// Package main is the entry point for the weekplan CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/runoshun/weekplan/internal/app"
	"github.com/runoshun/weekplan/internal/cli"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Create dependency injection container
	container, err := app.New("")
	if err != nil {
		return runWithoutContainer(ctx, fmt.Errorf("failed to initialize: %w", err))
	}
	defer func() { _ = container.Close() }()

	// Create and execute root command
	rootCmd := cli.NewRootCommand(container, version)
	return rootCmd.ExecuteContext(ctx)
}

// runWithoutContainer handles cases where the configuration cannot be used.
// Help, version and the config template still work so the user can repair it.
func runWithoutContainer(ctx context.Context, initErr error) error {
	if !canRunWithoutContainer(os.Args[1:]) {
		return initErr
	}
	return cli.NewRootCommand(nil, version).ExecuteContext(ctx)
}

func canRunWithoutContainer(args []string) bool {
	if len(args) == 0 {
		return false
	}
	if args[0] == "help" {
		return true
	}
	if len(args) >= 2 && args[0] == "config" && args[1] == "template" {
		return true
	}
	return slices.ContainsFunc(args, func(arg string) bool {
		return arg == "--version" || arg == "--help" || arg == "-h"
	})
}
