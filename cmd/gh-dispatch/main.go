package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/s41290/gh-dispatch/internal/cli"
)

func main() {
	// Load .env if present; GITHUB_TOKEN may also come from the environment
	// or the gh CLI.
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cli.Execute(ctx)
}
