package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gabapcia/transferscope/internal/config"
	"github.com/gabapcia/transferscope/internal/handlers/cli"
	"github.com/gabapcia/transferscope/internal/infra/hypersync"
	"github.com/gabapcia/transferscope/internal/pkg/resilience/retry"
	transport "github.com/gabapcia/transferscope/internal/pkg/transport/http"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	source := hypersync.NewClient(
		hypersync.WithHTTPClient(transport.NewClient(
			transport.WithTimeout(cfg.HTTPTimeout),
			transport.WithRetryMax(cfg.HTTPRetryMax),
			transport.WithBearerToken(cfg.HyperSyncToken),
		)),
		hypersync.WithRetry(retry.New(
			retry.WithAttempts(cfg.StreamRetryAttempts),
			retry.WithName("hypersync.fetch"),
		)),
	)

	if err := cli.Run(ctx, cfg, source, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
