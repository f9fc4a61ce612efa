package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pesapots/backend/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.NewRootCommand().ExecuteContext(ctx)
	cancel()

	if err != nil {
		os.Exit(1)
	}
}
