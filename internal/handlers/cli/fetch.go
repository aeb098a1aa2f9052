package cli

import (
	"context"
	"fmt"

	"github.com/gabapcia/transferscope/internal/config"
	"github.com/gabapcia/transferscope/internal/loader"
	"github.com/gabapcia/transferscope/internal/pkg/logger"
	"github.com/gabapcia/transferscope/internal/transfer"

	"github.com/urfave/cli/v3"
)

// fetchCommand returns a CLI command that loads the transfers of one wallet
// without the dashboard and writes them as a JSON document.
//
// Usage example:
//
//	transferscope fetch --address 0x742d35cc6634c0532925a3b844bc454e4438f44e --chain arbitrum --erc721=false
//
// The path of the written file is printed on success. Logs go to stderr.
func fetchCommand(cfg config.Config, source loader.StreamSource) *cli.Command {
	return &cli.Command{
		Name:        "fetch",
		Description: "Load the transfers of a wallet and save them as JSON without opening the dashboard.",
		Usage:       "Fetches transfers headlessly. Must provide an address.",
		Flags: append(queryFlags(true), &cli.StringFlag{
			Name:  "output-dir",
			Usage: "Directory the JSON document is written to",
			Value: cfg.OutputDir,
		}),
		Action: func(ctx context.Context, c *cli.Command) error {
			q, err := queryFromFlags(c)
			if err != nil {
				return err
			}
			if err := q.Validate(); err != nil {
				return err
			}

			cleanup, err := setup(ctx, cfg, "stderr")
			if err != nil {
				return err
			}
			defer cleanup()

			svc := loader.New(source, loader.WithProgressHandler(logProgress))
			result, err := svc.Load(ctx, loader.NewRequest(q))
			if err != nil {
				return err
			}

			path, err := transfer.WriteFile(c.String("output-dir"), q.Address, q.Chain.String(), result.Store.Snapshot())
			if err != nil {
				return err
			}

			logger.Info(ctx, "transfers saved",
				"output.path", path,
				"load.native", result.Stats.Native,
				"load.erc20", result.Stats.ERC20,
				"load.erc721", result.Stats.ERC721,
			)

			_, err = fmt.Fprintln(c.Root().Writer, path)
			return err
		},
	}
}

func logProgress(ctx context.Context, p loader.Progress) {
	logger.Info(ctx, "batch loaded",
		"run.id", p.RunID,
		"load.batches", p.Batches,
		"load.next_block", p.NextBlock,
		"load.archive_height", p.ArchiveHeight,
	)
}
