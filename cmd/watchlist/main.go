// Package main is the watchlist CLI, a terminal client for the watchlist
// API. It keeps a local cached copy of the collection for the lifetime of
// an invocation and reconciles it with the server after every action.
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/calebtr/watchlist/internal/client"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})

	// A config file is optional; without one the CLI talks to a local
	// development server.
	config := client.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		loaded, err := client.LoadConfig("config.toml")
		if err != nil {
			logger.Fatal("invalid config file", "err", err)
		}
		config = loaded
	}

	runner := NewRunner(RunnerOpts{
		Config: config,
		Logger: logger,
	})

	app := &cli.Command{
		Name:     "watchlist",
		Usage:    "Manage your personal movie watchlist",
		Version:  "1.0.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatal(err)
	}
}
