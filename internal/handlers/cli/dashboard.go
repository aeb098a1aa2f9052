package cli

import (
	"context"

	"github.com/gabapcia/transferscope/internal/config"
	"github.com/gabapcia/transferscope/internal/handlers/tui"
	"github.com/gabapcia/transferscope/internal/loader"
	"github.com/gabapcia/transferscope/internal/pkg/logger"

	"github.com/urfave/cli/v3"
)

const progressBuffer = 16

// dashboardAction opens the terminal dashboard. When --address is given the
// query builder opens prefilled from the query flags.
//
// Usage example:
//
//	transferscope --address 0x742d35cc6634c0532925a3b844bc454e4438f44e --chain optimism
//
// Logs go to the configured log file so they never draw over the dashboard.
func dashboardAction(cfg config.Config, source loader.StreamSource) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		q, err := queryFromFlags(c)
		if err != nil {
			return err
		}

		cleanup, err := setup(ctx, cfg, cfg.LogFile)
		if err != nil {
			return err
		}
		defer cleanup()

		updates := make(chan loader.Progress, progressBuffer)
		svc := loader.New(source, loader.WithProgressHandler(tui.ForwardProgress(updates)))

		opts := []tui.Option{
			tui.WithOutputDir(cfg.OutputDir),
			tui.WithProgress(updates),
		}
		if c.IsSet("address") {
			opts = append(opts, tui.WithQuery(q))
		}

		logger.Info(ctx, "dashboard started", "output.dir", cfg.OutputDir)
		defer logger.Info(ctx, "dashboard closed")

		return tui.Run(ctx, tui.NewModel(ctx, svc, opts...))
	}
}
