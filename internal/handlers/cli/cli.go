package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/gabapcia/transferscope/internal/chain"
	"github.com/gabapcia/transferscope/internal/config"
	"github.com/gabapcia/transferscope/internal/loader"
	"github.com/gabapcia/transferscope/internal/pkg/logger"
	"github.com/gabapcia/transferscope/internal/pkg/telemetry"
	"github.com/gabapcia/transferscope/internal/query"

	"github.com/urfave/cli/v3"
)

const shutdownTimeout = 5 * time.Second

// Run initializes and executes the transferscope CLI application.
//
// Without a command it opens the terminal dashboard. The available commands are:
//
//   - `fetch`: Loads the transfers of one wallet and writes them as JSON.
//
// Parameters:
//   - ctx: Context used to control the lifecycle of the CLI application.
//   - cfg: Process configuration read from the environment.
//   - source: Stream source every load reads from.
//   - args: Command line, including the program name.
func Run(ctx context.Context, cfg config.Config, source loader.StreamSource, args []string) error {
	return newApp(cfg, source).Run(ctx, args)
}

func newApp(cfg config.Config, source loader.StreamSource) *cli.Command {
	return &cli.Command{
		EnableShellCompletion: true,
		Name:                  "transferscope",
		Description:           "Explore the native, ERC20 and ERC721 transfers of a wallet on HyperSync-indexed chains.",
		Usage:                 "transferscope [command] [flags]",
		Flags:                 queryFlags(false),
		Action:                dashboardAction(cfg, source),
		Commands: []*cli.Command{
			fetchCommand(cfg, source),
		},
	}
}

// queryFlags returns the flags describing a wallet query.
func queryFlags(requireAddress bool) []cli.Flag {
	defaults := query.New()

	return []cli.Flag{
		&cli.StringFlag{
			Name:     "address",
			Usage:    "Wallet address (0x followed by 40 hex digits)",
			Required: requireAddress,
			Local:    true,
		},
		&cli.StringFlag{
			Name:  "chain",
			Usage: "Chain to query: mainnet, optimism or arbitrum",
			Value: defaults.Chain.String(),
			Local: true,
		},
		&cli.StringFlag{
			Name:  "start-block",
			Usage: "First block to scan",
			Value: defaults.StartBlock,
			Local: true,
		},
		&cli.BoolFlag{
			Name:  "native",
			Usage: "Include regular ether transfers",
			Value: defaults.WantNative,
			Local: true,
		},
		&cli.BoolFlag{
			Name:  "erc20",
			Usage: "Include ERC20 token transfers",
			Value: defaults.WantERC20,
			Local: true,
		},
		&cli.BoolFlag{
			Name:  "erc721",
			Usage: "Include ERC721 token transfers",
			Value: defaults.WantERC721,
			Local: true,
		},
	}
}

// queryFromFlags builds a wallet query from the flags of c. It does not
// validate the address or start block.
func queryFromFlags(c *cli.Command) (query.WalletQuery, error) {
	ch, err := chain.Parse(c.String("chain"))
	if err != nil {
		return query.WalletQuery{}, err
	}

	return query.WalletQuery{
		Address:    c.String("address"),
		Chain:      ch,
		StartBlock: c.String("start-block"),
		WantNative: c.Bool("native"),
		WantERC20:  c.Bool("erc20"),
		WantERC721: c.Bool("erc721"),
	}, nil
}

// setup starts telemetry when enabled and initializes the global logger to
// write to logPath. The returned function flushes both.
func setup(ctx context.Context, cfg config.Config, logPath string) (func(), error) {
	shutdown := telemetry.ShutdownFunc(func(context.Context) error { return nil })
	if cfg.TelemetryEnabled {
		s, err := telemetry.Init(ctx, cfg.ServiceName)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
		}
		shutdown = s
	}

	if err := logger.Init(logger.WithLevel(cfg.LogLevel), logger.WithOutputPaths(logPath)); err != nil {
		_ = shutdown(ctx)
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		if err := shutdown(ctx); err != nil {
			logger.Warn(ctx, "failed to flush telemetry", "error", err)
		}
		_ = logger.Sync()
	}, nil
}
