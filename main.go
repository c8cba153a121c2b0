package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/melatron/hft-service/cmd/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cli.ExecuteContext(ctx)
}
