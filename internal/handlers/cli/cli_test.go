package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gabapcia/transferscope/internal/chain"
	"github.com/gabapcia/transferscope/internal/config"
	"github.com/gabapcia/transferscope/internal/loader"
	"github.com/gabapcia/transferscope/internal/pkg/logger"
	"github.com/gabapcia/transferscope/internal/pkg/types"
	"github.com/gabapcia/transferscope/internal/query"
	"github.com/gabapcia/transferscope/internal/transfer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func init() {
	_ = logger.Init(logger.WithLevel("error"))
}

const (
	wallet = "0x742d35cc6634c0532925a3b844bc454e4438f44e"
	peer   = "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48"
)

// sourceFunc adapts a function to loader.StreamSource.
type sourceFunc func(ctx context.Context, endpoint string, descriptor query.Descriptor) (<-chan loader.StreamEvent, error)

func (f sourceFunc) Stream(ctx context.Context, endpoint string, descriptor query.Descriptor) (<-chan loader.StreamEvent, error) {
	return f(ctx, endpoint, descriptor)
}

func ptr(s string) *string { return &s }

func events(evs ...loader.StreamEvent) <-chan loader.StreamEvent {
	ch := make(chan loader.StreamEvent, len(evs))
	for _, e := range evs {
		ch <- e
	}
	close(ch)
	return ch
}

func testConfig(t *testing.T) config.Config {
	return config.Config{
		LogLevel:            "error",
		LogFile:             filepath.Join(t.TempDir(), "transferscope.log"),
		OutputDir:           t.TempDir(),
		StreamRetryAttempts: 1,
		ServiceName:         "transferscope-test",
	}
}

func TestQueryFromFlags(t *testing.T) {
	parse := func(t *testing.T, args ...string) (query.WalletQuery, error) {
		var (
			q   query.WalletQuery
			err error
		)
		cmd := &cli.Command{
			Flags: queryFlags(false),
			Action: func(_ context.Context, c *cli.Command) error {
				q, err = queryFromFlags(c)
				return nil
			},
		}
		require.NoError(t, cmd.Run(t.Context(), append([]string{"test"}, args...)))
		return q, err
	}

	t.Run("should default to the initial query", func(t *testing.T) {
		q, err := parse(t)

		require.NoError(t, err)
		assert.Equal(t, query.New(), q)
	})

	t.Run("should read every query flag", func(t *testing.T) {
		q, err := parse(t,
			"--address", wallet,
			"--chain", "arbitrum",
			"--start-block", "18000000",
			"--native=false",
			"--erc721=false",
		)

		require.NoError(t, err)
		assert.Equal(t, query.WalletQuery{
			Address:    wallet,
			Chain:      chain.Arbitrum,
			StartBlock: "18000000",
			WantNative: false,
			WantERC20:  true,
			WantERC721: false,
		}, q)
	})

	t.Run("should reject an unknown chain", func(t *testing.T) {
		_, err := parse(t, "--chain", "solana")

		assert.ErrorIs(t, err, chain.ErrUnknownChain)
	})
}

func TestFetchCommand(t *testing.T) {
	t.Run("should create command with correct metadata", func(t *testing.T) {
		cmd := fetchCommand(testConfig(t), nil)

		assert.Equal(t, "fetch", cmd.Name)
		assert.Len(t, cmd.Flags, 7)

		addressFlag := cmd.Flags[0].(*cli.StringFlag)
		assert.Equal(t, "address", addressFlag.Name)
		assert.True(t, addressFlag.Required)
	})

	t.Run("should load and save the transfers", func(t *testing.T) {
		cfg := testConfig(t)

		var (
			gotEndpoint   string
			gotDescriptor query.Descriptor
		)
		source := sourceFunc(func(_ context.Context, endpoint string, descriptor query.Descriptor) (<-chan loader.StreamEvent, error) {
			gotEndpoint, gotDescriptor = endpoint, descriptor
			return events(loader.StreamEvent{Batch: loader.Batch{
				Transactions: [][]transfer.RawTransaction{{
					{
						Hash:        ptr("0x01"),
						BlockNumber: types.Quantity("100"),
						From:        ptr(wallet),
						To:          ptr(peer),
						Value:       types.Quantity("0xde0b6b3a7640000"),
					},
				}},
				NextBlock:     101,
				ArchiveHeight: 101,
			}}), nil
		})

		app := newApp(cfg, source)
		var out bytes.Buffer
		app.Writer = &out

		err := app.Run(t.Context(), []string{"transferscope", "fetch", "--address", wallet, "--chain", "optimism", "--start-block", "90"})
		require.NoError(t, err)

		assert.Equal(t, chain.Optimism.URL(), gotEndpoint)
		assert.EqualValues(t, 90, gotDescriptor.FromBlock)

		path := strings.TrimSpace(out.String())
		assert.Equal(t, filepath.Join(cfg.OutputDir, wallet+"-optimism.json"), path)

		body, err := os.ReadFile(path)
		require.NoError(t, err)

		var doc struct {
			Native []transfer.NativeTransfer `json:"regular_transfers"`
			ERC20  []transfer.ERC20Transfer  `json:"erc20_transfers"`
		}
		require.NoError(t, json.Unmarshal(body, &doc))
		require.Len(t, doc.Native, 1)
		assert.Equal(t, "1", doc.Native[0].Value)
		assert.Empty(t, doc.ERC20)
	})

	t.Run("should honor the output directory flag", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested")
		source := sourceFunc(func(context.Context, string, query.Descriptor) (<-chan loader.StreamEvent, error) {
			return events(), nil
		})

		app := newApp(testConfig(t), source)
		app.Writer = &bytes.Buffer{}

		err := app.Run(t.Context(), []string{"transferscope", "fetch", "--address", wallet, "--output-dir", dir})
		require.NoError(t, err)

		assert.FileExists(t, filepath.Join(dir, wallet+"-mainnet.json"))
	})

	t.Run("should reject an invalid address before streaming", func(t *testing.T) {
		source := sourceFunc(func(context.Context, string, query.Descriptor) (<-chan loader.StreamEvent, error) {
			t.Fatal("stream must not be opened")
			return nil, nil
		})

		app := newApp(testConfig(t), source)
		app.Writer = &bytes.Buffer{}

		err := app.Run(t.Context(), []string{"transferscope", "fetch", "--address", "0x1234"})

		assert.ErrorIs(t, err, query.ErrInvalidAddressFormat)
	})

	t.Run("should fail when the address flag is missing", func(t *testing.T) {
		app := newApp(testConfig(t), nil)
		app.Writer = &bytes.Buffer{}
		app.ErrWriter = &bytes.Buffer{}

		err := app.Run(t.Context(), []string{"transferscope", "fetch"})

		assert.ErrorContains(t, err, "address")
	})

	t.Run("should return stream errors without writing a file", func(t *testing.T) {
		cfg := testConfig(t)
		source := sourceFunc(func(context.Context, string, query.Descriptor) (<-chan loader.StreamEvent, error) {
			return events(loader.StreamEvent{Err: errors.New("connection reset")}), nil
		})

		app := newApp(cfg, source)
		app.Writer = &bytes.Buffer{}

		err := app.Run(t.Context(), []string{"transferscope", "fetch", "--address", wallet})

		assert.ErrorContains(t, err, "connection reset")
		entries, readErr := os.ReadDir(cfg.OutputDir)
		require.NoError(t, readErr)
		assert.Empty(t, entries)
	})
}
