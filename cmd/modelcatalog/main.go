// Package main provides the entry point for the modelcatalog CLI tool.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/plustoolkit/modelcatalog/cmd/modelcatalog/cmd"
	"github.com/plustoolkit/modelcatalog/pkg/logging"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	// Load .env if present; absence is fine.
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cmd.SetVersion(version, commit, date)
	if err := cmd.Execute(ctx); err != nil {
		logging.Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
